package blake3

import "hash"

// Hasher is a streaming BLAKE3 hasher with extendable output. It
// implements hash.Hash for the fixed 32-byte digest, plus Finalize and XOF
// for arbitrary-length output.
type Hasher struct {
	tree *treeHasher
}

var _ hash.Hash = (*Hasher)(nil)

func newHasher(keyWords [8]uint32, flags uint32) *Hasher {
	return &Hasher{tree: newTreeHasher(keyWords, flags)}
}

// Write adds input to the hash state. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	n := len(p)
	h.tree.update(p)
	return n, nil
}

// Sum appends the 32-byte digest to b and returns the resulting slice, as
// required by hash.Hash. It does not mutate the hasher's state.
func (h *Hasher) Sum(b []byte) []byte {
	var out [OutLen]byte
	h.tree.finalize(out[:])
	return append(b, out[:]...)
}

// Reset clears the hash state, keeping the same key/flags configuration.
func (h *Hasher) Reset() {
	h.tree.reset()
}

// Size returns the default output size of BLAKE3.
func (h *Hasher) Size() int { return OutLen }

// BlockSize returns the block size of the underlying compression function.
func (h *Hasher) BlockSize() int { return BlockLen }

// Finalize writes len(out) bytes of extended output into out.
func (h *Hasher) Finalize(out []byte) {
	h.tree.finalize(out)
}

// Sum256 returns the 32-byte BLAKE3 digest of the current state.
func (h *Hasher) Sum256() [OutLen]byte {
	var out [OutLen]byte
	h.tree.finalize(out[:])
	return out
}

// XOF returns an extendable-output reader over the current state. Writing
// more input after calling XOF does not affect readers already returned.
func (h *Hasher) XOF() *OutputReader {
	return h.tree.finalizeXOF()
}
