package blake3

// Output, key, block and chunk sizes, in bytes.
const (
	OutLen   = 32
	KeyLen   = 32
	BlockLen = 64
	ChunkLen = 1024
)

// blocksPerChunk is the number of 64-byte blocks in a full chunk.
const blocksPerChunk = ChunkLen / BlockLen

// maxStackDepth bounds the CV stack: 2^54 chunks covers the full 2^64-byte
// input range, so the stack never needs more than 54 live entries.
const maxStackDepth = 54

// Domain-separation flag bits. Multiple flags may be set on the same
// compression.
const (
	chunkStart            uint32 = 1 << 0
	chunkEnd              uint32 = 1 << 1
	parentFlag            uint32 = 1 << 2
	rootFlag              uint32 = 1 << 3
	keyedHashFlag         uint32 = 1 << 4
	deriveKeyContextFlag  uint32 = 1 << 5
	deriveKeyMaterialFlag uint32 = 1 << 6
)

// iv holds the eight BLAKE2s IV words. The first four seed state words
// 8-11 of every compression, and all eight double as the default hash key.
var iv = [8]uint32{
	0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A,
	0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19,
}

// msgPermutation reorders the message schedule between rounds.
var msgPermutation = [16]uint8{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8}
