package blake3

// chunkState is the incremental per-chunk accumulator: it holds the
// chunk's running chaining value (initially the key), a partial-block
// buffer of 0-64 bytes, and the chunk's index (used as the compression
// counter).
type chunkState struct {
	chainingValue    [8]uint32
	chunkCounter     uint64
	block            [BlockLen]byte
	blockLen         uint8
	blocksCompressed uint8
	flags            uint32
}

func newChunkState(keyWords [8]uint32, chunkCounter uint64, flags uint32) chunkState {
	return chunkState{
		chainingValue: keyWords,
		chunkCounter:  chunkCounter,
		flags:         flags,
	}
}

// len reports the number of bytes absorbed into this chunk so far.
func (c *chunkState) len() int {
	return BlockLen*int(c.blocksCompressed) + int(c.blockLen)
}

// startFlag reports chunkStart if and only if no block of this chunk has
// been compressed yet.
func (c *chunkState) startFlag() uint32 {
	if c.blocksCompressed == 0 {
		return chunkStart
	}
	return 0
}

// update appends bytes to the chunk, compressing interior blocks as soon
// as the buffer fills and more input remains. The final block is never
// eagerly compressed here — only finalize compresses it, with the
// chunk-end flag.
func (c *chunkState) update(input []byte) {
	for len(input) > 0 {
		if c.blockLen == BlockLen {
			var blockWords [16]uint32
			loadWords(&blockWords, c.block[:])
			c.chainingValue = first8Words(compress(
				&c.chainingValue,
				&blockWords,
				c.chunkCounter,
				BlockLen,
				c.flags|c.startFlag(),
			))
			c.blocksCompressed++
			clear(c.block[:])
			c.blockLen = 0
		}

		want := BlockLen - int(c.blockLen)
		if want > len(input) {
			want = len(input)
		}
		copy(c.block[int(c.blockLen):], input[:want])
		c.blockLen += uint8(want)
		input = input[want:]
	}
}

// output captures the compression inputs for this chunk's final block,
// with chunkEnd (and chunkStart, if this is also the chunk's only block)
// set. The caller decides whether this is the root.
func (c *chunkState) output() compressionInput {
	var blockWords [16]uint32
	loadWords(&blockWords, c.block[:])
	return compressionInput{
		inputCV:  c.chainingValue,
		block:    blockWords,
		counter:  c.chunkCounter,
		blockLen: uint32(c.blockLen),
		flags:    c.flags | c.startFlag() | chunkEnd,
	}
}

// chunkCVFull compresses one complete (ChunkLen-byte) chunk in isolation
// and returns its chaining value. It is the unit of work the SIMD kernel
// contract batches across chunks (see simd.go).
func chunkCVFull(input []byte, keyWords [8]uint32, chunkCounter uint64, flags uint32) [8]uint32 {
	cv := keyWords
	var blockWords [16]uint32
	for block := 0; block < blocksPerChunk; block++ {
		loadWords(&blockWords, input[block*BlockLen:])
		blockFlags := flags
		if block == 0 {
			blockFlags |= chunkStart
		}
		if block == blocksPerChunk-1 {
			blockFlags |= chunkEnd
		}
		cv = first8Words(compress(&cv, &blockWords, chunkCounter, BlockLen, blockFlags))
	}
	return cv
}
