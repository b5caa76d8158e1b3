package blake3

// New constructs a hasher for the plain hash function: key = IV, no mode
// flags.
func New() *Hasher {
	return newHasher(iv, 0)
}

// NewKeyed constructs a hasher for the keyed hash function with a
// statically-sized 32-byte key.
func NewKeyed(key [KeyLen]byte) *Hasher {
	return newHasher(keyWordsFromBytes(key[:]), keyedHashFlag)
}

// NewKeyedSlice is the boundary-checked counterpart of NewKeyed: it
// accepts a key of any length and fails with ErrInvalidKeyLength unless
// it is exactly KeyLen bytes.
func NewKeyedSlice(key []byte) (*Hasher, error) {
	if len(key) != KeyLen {
		return nil, ErrInvalidKeyLength
	}
	return newHasher(keyWordsFromBytes(key), keyedHashFlag), nil
}

// NewDeriveKey constructs a hasher for the key-derivation function.
// It is a two-pass construction: the context string is hashed under
// deriveKeyContextFlag to produce a context key, which then becomes the
// key for hashing the key material under deriveKeyMaterialFlag. The
// returned hasher is ready to absorb key material via Write.
func NewDeriveKey(context string) *Hasher {
	contextHasher := newHasher(iv, deriveKeyContextFlag)
	_, _ = contextHasher.Write([]byte(context))
	var contextKey [KeyLen]byte
	contextHasher.Finalize(contextKey[:])
	return newHasher(keyWordsFromBytes(contextKey[:]), deriveKeyMaterialFlag)
}
