package blake3

// treeHasher is the streaming Merkle tree-hasher state machine: it
// absorbs bytes into a current chunk, and whenever a chunk completes with
// more input still to come, merges its chaining value into a stack of
// completed-subtree chaining values under the subtree-size rule.
//
// A treeHasher is sequential and owns its data; concurrent calls on one
// instance are not supported.
type treeHasher struct {
	chunk      chunkState
	keyWords   [8]uint32
	cvStack    [maxStackDepth][8]uint32
	cvStackLen uint8
	flags      uint32
}

func newTreeHasher(keyWords [8]uint32, flags uint32) *treeHasher {
	return &treeHasher{
		chunk:    newChunkState(keyWords, 0, flags),
		keyWords: keyWords,
		flags:    flags,
	}
}

func (t *treeHasher) pushStack(cv [8]uint32) {
	t.cvStack[t.cvStackLen] = cv
	t.cvStackLen++
}

func (t *treeHasher) popStack() [8]uint32 {
	t.cvStackLen--
	return t.cvStack[t.cvStackLen]
}

// pushCV implements the subtree merge rule: while the low bits of
// totalChunks (the count of chunks completed after this push) indicate
// that newCV completes a subtree with the current stack top, pop and
// merge; then push what remains. This keeps the stack's depth equal to
// the popcount of totalChunks at all times.
func (t *treeHasher) pushCV(newCV [8]uint32, totalChunks uint64) {
	for totalChunks&1 == 0 {
		newCV = parentCV(t.popStack(), newCV, t.keyWords, t.flags)
		totalChunks >>= 1
	}
	t.pushStack(newCV)
}

// update absorbs bytes into the tree:
// feed the in-progress chunk until it completes, merge completed chunks
// into the CV stack, and batch-compress full chunks through the SIMD
// kernel contract when no chunk is in progress and more than one chunk's
// worth of input remains.
func (t *treeHasher) update(input []byte) {
	for len(input) > 0 {
		if t.chunk.len() == 0 && len(input) > ChunkLen {
			fullChunks := len(input) / ChunkLen
			if len(input)%ChunkLen == 0 {
				fullChunks--
			}
			if fullChunks > 0 {
				t.absorbFullChunks(input[:fullChunks*ChunkLen])
				input = input[fullChunks*ChunkLen:]
				continue
			}
		}

		if t.chunk.len() == ChunkLen {
			chunkCV := t.chunk.output().chainingValue()
			totalChunks := t.chunk.chunkCounter + 1
			t.pushCV(chunkCV, totalChunks)
			t.chunk = newChunkState(t.keyWords, totalChunks, t.flags)
		}

		want := ChunkLen - t.chunk.len()
		if want > len(input) {
			want = len(input)
		}
		t.chunk.update(input[:want])
		input = input[want:]
	}
}

// absorbFullChunks compresses a run of complete chunks in batches through
// the kernel contract and merges each resulting CV into the stack in
// order, then primes a fresh chunk state at the next counter.
func (t *treeHasher) absorbFullChunks(input []byte) {
	startCounter := t.chunk.chunkCounter
	totalChunks := len(input) / ChunkLen

	chunks := make([][]byte, 0, preferredBatchSize)
	counter := startCounter
	for i := 0; i < totalChunks; i += preferredBatchSize {
		batch := preferredBatchSize
		if totalChunks-i < batch {
			batch = totalChunks - i
		}
		chunks = chunks[:0]
		for b := 0; b < batch; b++ {
			start := (i + b) * ChunkLen
			chunks = append(chunks, input[start:start+ChunkLen])
		}
		cvs := currentKernel.compressChunks(chunks, t.keyWords, counter, t.flags)
		for _, cv := range cvs {
			counter++
			t.pushCV(cv, counter)
		}
	}
	t.chunk = newChunkState(t.keyWords, counter, t.flags)
}

// rootOutput folds the in-progress chunk and the CV stack into the root
// compression input: if the whole input is
// at most one chunk, that chunk's own last block is the root; otherwise
// the in-progress chunk is finalized as non-root and its CV is combined
// with the stack, top-down, with the final merge carrying the root flag.
func (t *treeHasher) rootOutput() compressionInput {
	output := t.chunk.output()
	for i := int(t.cvStackLen) - 1; i >= 0; i-- {
		output = parentInput(t.cvStack[i], output.chainingValue(), t.keyWords, t.flags)
	}
	return output
}

// finalize writes the first len(out) bytes of the root's extended output
// into out; a 32-byte out receives the digest.
func (t *treeHasher) finalize(out []byte) {
	t.rootOutput().rootBytes(out)
}

// finalizeXOF returns an extendable-output reader over the root.
func (t *treeHasher) finalizeXOF() *OutputReader {
	return newOutputReader(t.rootOutput())
}

// reset restores the hasher to its just-constructed state, keeping the
// same key and flags.
func (t *treeHasher) reset() {
	t.chunk = newChunkState(t.keyWords, 0, t.flags)
	t.cvStackLen = 0
}
