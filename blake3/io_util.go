package blake3

import "encoding/binary"

// loadWordsSlow decodes 16 little-endian words from a 64-byte block. It is
// the portable fallback used on big-endian or unaligned-unsafe platforms,
// and always the correctness reference.
func loadWordsSlow(dst *[16]uint32, b []byte) {
	_ = b[BlockLen-1]
	for i := 0; i < 16; i++ {
		dst[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
}

// storeWords encodes 16 words into dst as little-endian bytes. dst must
// have a length of at least 64 bytes.
func storeWords(dst []byte, words *[16]uint32) {
	_ = dst[BlockLen-1]
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], words[i])
	}
}

func keyWordsFromBytes(key []byte) [8]uint32 {
	var words [8]uint32
	for i := 0; i < 8; i++ {
		words[i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	return words
}
