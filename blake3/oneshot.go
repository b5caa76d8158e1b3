package blake3

import (
	"runtime"
	"sync"
)

// parallelMinChunks is the work-unit count (full chunks, or parent pairs
// in one tree level) at or above which the one-shot Sum family fans out
// across goroutines. Below it,
// goroutine setup costs more than it saves and the serial path is used.
const parallelMinChunks = 128

var cvPool = sync.Pool{
	New: func() any { return make([][8]uint32, 0, parallelMinChunks) },
}

// Sum256 returns the 32-byte BLAKE3 hash of data.
func Sum256(data []byte) [OutLen]byte {
	var out [OutLen]byte
	sumInto(out[:], data, iv, 0)
	return out
}

// Sum writes len(out) bytes of BLAKE3 extended output for data into out.
func Sum(data []byte, out []byte) {
	sumInto(out, data, iv, 0)
}

// SumKeyed returns the 32-byte keyed BLAKE3 hash of data under key.
func SumKeyed(key [KeyLen]byte, data []byte) [OutLen]byte {
	var out [OutLen]byte
	sumInto(out[:], data, keyWordsFromBytes(key[:]), keyedHashFlag)
	return out
}

// SumKeyedSlice is the boundary-checked counterpart of SumKeyed.
func SumKeyedSlice(key []byte, data []byte) ([OutLen]byte, error) {
	var out [OutLen]byte
	if len(key) != KeyLen {
		return out, ErrInvalidKeyLength
	}
	sumInto(out[:], data, keyWordsFromBytes(key), keyedHashFlag)
	return out, nil
}

// DeriveKey derives len(out) bytes of key material from context and
// material using the two-pass key-derivation mode.
func DeriveKey(context string, material []byte, out []byte) {
	var contextKey [KeyLen]byte
	sumInto(contextKey[:], []byte(context), iv, deriveKeyContextFlag)
	sumInto(out, material, keyWordsFromBytes(contextKey[:]), deriveKeyMaterialFlag)
}

func sumInto(out []byte, data []byte, keyWords [8]uint32, flags uint32) {
	rootOutput(data, keyWords, flags).rootBytes(out)
}

// rootOutput computes the root compression input for data under the given
// key/flags. It fans full-chunk and parent compression out across
// goroutines once the input is large enough to make it worthwhile, and
// falls back to the serial per-chunk path below that threshold. Both
// paths produce bit-identical output to the streaming treeHasher.
func rootOutput(data []byte, keyWords [8]uint32, flags uint32) compressionInput {
	if len(data) <= ChunkLen {
		cs := newChunkState(keyWords, 0, flags)
		cs.update(data)
		return cs.output()
	}

	fullChunks := len(data) / ChunkLen
	rem := len(data) % ChunkLen
	totalChunks := fullChunks
	if rem != 0 {
		totalChunks++
	} else {
		// The last full chunk is the final leaf finalized below, not one
		// more entry precomputed into the batch.
		fullChunks--
	}

	cvs := getCVs(totalChunks)
	defer putCVs(cvs)

	if fullChunks > 0 {
		if shouldParallel(fullChunks) {
			chunkCVsParallel(data[:fullChunks*ChunkLen], keyWords, flags, cvs[:fullChunks])
		} else {
			for i := 0; i < fullChunks; i++ {
				cvs[i] = chunkCVFull(data[i*ChunkLen:(i+1)*ChunkLen], keyWords, uint64(i), flags)
			}
		}
	}

	cs := newChunkState(keyWords, uint64(fullChunks), flags)
	cs.update(data[fullChunks*ChunkLen:])
	cvs[fullChunks] = cs.output().chainingValue()

	reduced := reduceToTwo(cvs[:totalChunks], keyWords, flags)
	return parentInput(reduced[0], reduced[1], keyWords, flags)
}

// reduceToTwo repeatedly compresses adjacent pairs of level in place until
// exactly two chaining values remain, carrying an unpaired trailing
// element up unmerged when len(level) is odd. This produces the identical
// tree shape the streaming treeHasher's eager CV-stack merges produce
// (verified for the canonical shapes in treehasher_test.go).
func reduceToTwo(level [][8]uint32, keyWords [8]uint32, flags uint32) [2][8]uint32 {
	for len(level) > 2 {
		outLen := len(level) / 2
		if shouldParallel(outLen) {
			parentsParallel(level, outLen, keyWords, flags)
		} else {
			for i := 0; i < outLen; i++ {
				level[i] = parentCV(level[i*2], level[i*2+1], keyWords, flags)
			}
		}
		if len(level)%2 == 1 {
			level[outLen] = level[len(level)-1]
			outLen++
		}
		level = level[:outLen]
	}
	return [2][8]uint32{level[0], level[1]}
}

func shouldParallel(units int) bool {
	if units < parallelMinChunks {
		return false
	}
	return runtime.GOMAXPROCS(0) > 1
}

func workerCount(units int) int {
	workers := runtime.GOMAXPROCS(0)
	if workers > units {
		workers = units
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func chunkCVsParallel(data []byte, keyWords [8]uint32, flags uint32, out [][8]uint32) {
	chunks := len(out)
	workers := workerCount(chunks)
	if workers < 2 {
		for i := 0; i < chunks; i++ {
			out[i] = chunkCVFull(data[i*ChunkLen:(i+1)*ChunkLen], keyWords, uint64(i), flags)
		}
		return
	}

	var wg sync.WaitGroup
	base := chunks / workers
	extra := chunks % workers
	start := 0
	for i := 0; i < workers; i++ {
		n := base
		if i < extra {
			n++
		}
		end := start + n
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			cvs := currentKernel.compressChunks(sliceChunks(data, start, end), keyWords, uint64(start), flags)
			copy(out[start:end], cvs)
		}(start, end)
		start = end
	}
	wg.Wait()
}

// parentsParallel compresses level's adjacent CV pairs into its first
// outLen slots. Workers batch pairs through the kernel contract and write
// into a scratch slice: worker i's pair reads (level[2j], level[2j+1])
// overlap a neighboring worker's output range, so the in-place write the
// serial loop gets away with would race here.
func parentsParallel(level [][8]uint32, outLen int, keyWords [8]uint32, flags uint32) {
	workers := workerCount(outLen)
	if workers < 2 {
		for i := 0; i < outLen; i++ {
			level[i] = parentCV(level[i*2], level[i*2+1], keyWords, flags)
		}
		return
	}

	scratch := make([][8]uint32, outLen)
	var wg sync.WaitGroup
	base := outLen / workers
	extra := outLen % workers
	start := 0
	for i := 0; i < workers; i++ {
		n := base
		if i < extra {
			n++
		}
		end := start + n
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			pairs := make([][2][8]uint32, end-start)
			for j := start; j < end; j++ {
				pairs[j-start] = [2][8]uint32{level[j*2], level[j*2+1]}
			}
			cvs := currentKernel.compressParents(pairs, keyWords, flags)
			copy(scratch[start:end], cvs)
		}(start, end)
		start = end
	}
	wg.Wait()
	copy(level, scratch)
}

func sliceChunks(data []byte, start, end int) [][]byte {
	chunks := make([][]byte, 0, end-start)
	for i := start; i < end; i++ {
		chunks = append(chunks, data[i*ChunkLen:(i+1)*ChunkLen])
	}
	return chunks
}

func getCVs(n int) [][8]uint32 {
	cvs := cvPool.Get().([][8]uint32)
	if cap(cvs) < n {
		return make([][8]uint32, n)
	}
	return cvs[:n]
}

func putCVs(cvs [][8]uint32) {
	cvPool.Put(cvs[:0])
}
