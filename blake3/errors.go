package blake3

import "errors"

// ErrInvalidKeyLength is returned by the slice-based keyed-hash
// constructors when the supplied key is not exactly KeyLen bytes.
var ErrInvalidKeyLength = errors.New("blake3: key must be exactly 32 bytes")
