package blake3

// compressionInput captures everything needed to
// regenerate a compression's full 16-word extended output for any counter.
// It is captured once at finalization and is enough to drive the chaining
// value of a non-root node or the arbitrary-length stream of the root.
type compressionInput struct {
	inputCV  [8]uint32
	block    [16]uint32
	counter  uint64
	blockLen uint32
	flags    uint32
}

// chainingValue returns the first 8 words of this compression's output,
// the value used to feed a parent node.
func (o compressionInput) chainingValue() [8]uint32 {
	return first8Words(compress(&o.inputCV, &o.block, o.counter, o.blockLen, o.flags))
}

// rootBytes fills out with as many extended-output bytes as it holds,
// recompressing this node with the root flag at successive output-block
// counters.
func (o compressionInput) rootBytes(out []byte) {
	var outputBlockCounter uint64
	for len(out) > 0 {
		words := compress(&o.inputCV, &o.block, outputBlockCounter, o.blockLen, o.flags|rootFlag)
		var blockBytes [BlockLen]byte
		storeWords(blockBytes[:], &words)
		n := copy(out, blockBytes[:])
		out = out[n:]
		outputBlockCounter++
	}
}

func parentInput(leftCV, rightCV, keyWords [8]uint32, flags uint32) compressionInput {
	var blockWords [16]uint32
	copy(blockWords[:8], leftCV[:])
	copy(blockWords[8:], rightCV[:])
	return compressionInput{
		inputCV:  keyWords,
		block:    blockWords,
		counter:  0,
		blockLen: BlockLen,
		flags:    parentFlag | flags,
	}
}

func parentCV(leftCV, rightCV, keyWords [8]uint32, flags uint32) [8]uint32 {
	return parentInput(leftCV, rightCV, keyWords, flags).chainingValue()
}

// OutputReader is an extendable-output stream produced by finalizing a
// hasher. It owns a copy of the root's compression inputs, so it
// stays valid after the hasher that produced it is discarded, and two
// readers derived from the same finalization always yield identical
// streams.
type OutputReader struct {
	root compressionInput
	pos  uint64
}

func newOutputReader(root compressionInput) *OutputReader {
	return &OutputReader{root: root}
}

// Read implements io.Reader, pulling the next len(p) bytes of the stream.
func (r *OutputReader) Read(p []byte) (int, error) {
	n := len(p)
	if n == 0 {
		return 0, nil
	}
	r.readAt(p, r.pos)
	r.pos += uint64(n)
	return n, nil
}

// Seek repositions the stream to an arbitrary absolute byte offset. There
// is no end to seek past; any 64-bit position is valid.
func (r *OutputReader) Seek(pos uint64) {
	r.pos = pos
}

// ReadAt fills p with the stream's bytes starting at the given absolute
// offset, without moving the reader's current position.
func (r *OutputReader) ReadAt(p []byte, off uint64) (int, error) {
	r.readAt(p, off)
	return len(p), nil
}

func (r *OutputReader) readAt(p []byte, pos uint64) {
	for len(p) > 0 {
		blockIndex := pos / BlockLen
		blockOffset := int(pos % BlockLen)

		words := compress(&r.root.inputCV, &r.root.block, blockIndex, r.root.blockLen, r.root.flags|rootFlag)
		var blockBytes [BlockLen]byte
		storeWords(blockBytes[:], &words)

		n := copy(p, blockBytes[blockOffset:])
		p = p[n:]
		pos += uint64(n)
	}
}
