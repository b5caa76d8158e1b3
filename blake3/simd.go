package blake3

// kernel is the SIMD kernel contract: given N independent
// (input CV, block, counter, block length, flags) tuples that share a key
// and flags, produce N independent outputs bit-identical to N serial
// compressions. Only the portable fallback ships; the tree-hasher's
// multi-chunk absorb and the one-shot path's parallel workers call through
// this interface rather than a bare loop, so a real vector backend
// (4/8/16-lane AVX2/NEON/etc.) can be dropped in later without touching
// them. The one-shot path's serial fallback loops call the scalar
// compressors directly.
type kernel interface {
	// compressChunks compresses len(chunks) full (ChunkLen-byte) chunks
	// sharing a key and flags, returning one chaining value per chunk.
	// chunks[i] corresponds to counter startCounter+i.
	compressChunks(chunks [][]byte, keyWords [8]uint32, startCounter uint64, flags uint32) [][8]uint32

	// compressParents compresses len(pairs) parent nodes sharing a key and
	// flags, returning one chaining value per pair.
	compressParents(pairs [][2][8]uint32, keyWords [8]uint32, flags uint32) [][8]uint32
}

// preferredBatchSize is the lane width a real vector kernel would expect
// (BLAKE3's reference kernels use 4, 8 or 16). The portable kernel ignores
// it, but the tree-hasher's multi-chunk absorb batches at this granularity
// so swapping in a real kernel changes performance, not behavior or call
// shape. The one-shot parallel workers pass their whole range as one batch.
const preferredBatchSize = 8

type portableKernel struct{}

func (portableKernel) compressChunks(chunks [][]byte, keyWords [8]uint32, startCounter uint64, flags uint32) [][8]uint32 {
	out := make([][8]uint32, len(chunks))
	for i, chunk := range chunks {
		out[i] = chunkCVFull(chunk, keyWords, startCounter+uint64(i), flags)
	}
	return out
}

func (portableKernel) compressParents(pairs [][2][8]uint32, keyWords [8]uint32, flags uint32) [][8]uint32 {
	out := make([][8]uint32, len(pairs))
	for i, pair := range pairs {
		out[i] = parentCV(pair[0], pair[1], keyWords, flags)
	}
	return out
}

// currentKernel is the active batch-compression backend. It is a
// variable, not a constant dispatch table, so a build that wires in a
// real vector kernel behind a capability probe can replace it at init
// time.
var currentKernel kernel = portableKernel{}
