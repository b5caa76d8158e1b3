package blake3

import (
	"io"
	"os"
	"time"
)

// DefaultBufferSize is the read-buffer size used by the streaming helpers
// when the caller does not supply one.
const DefaultBufferSize = 256 * 1024

// maxEmptyReads bounds how many consecutive zero-byte, nil-error reads
// WriteReader tolerates before giving up with io.ErrNoProgress.
const maxEmptyReads = 8

// Progress is a snapshot of a streaming hash in flight. Total is zero when
// the input length is unknown.
type Progress struct {
	Processed uint64
	Total     uint64
	Elapsed   time.Duration
}

// ProgressFunc receives progress snapshots during a streaming hash. The
// callback may call Sum256 on the hasher to snapshot the digest so far.
type ProgressFunc func(Progress)

// WriteReader absorbs r into the hasher through buf, reporting progress
// after every read that returns data, and once more at end of input when
// the read that reports io.EOF returns no data. It returns the number
// of bytes absorbed. Pass total = 0 when the input length is unknown.
func (h *Hasher) WriteReader(r io.Reader, buf []byte, total uint64, onProgress ProgressFunc) (int64, error) {
	if len(buf) == 0 {
		buf = make([]byte, DefaultBufferSize)
	}

	start := time.Now()
	var processed uint64
	report := func() {
		if onProgress != nil {
			onProgress(Progress{
				Processed: processed,
				Total:     total,
				Elapsed:   time.Since(start),
			})
		}
	}

	emptyReads := 0
	for {
		n, err := r.Read(buf)
		if n > 0 {
			emptyReads = 0
			_, _ = h.Write(buf[:n])
			processed += uint64(n)
			report()
		}

		switch {
		case err == io.EOF:
			if n == 0 {
				report()
			}
			return int64(processed), nil
		case err != nil:
			return int64(processed), err
		case n == 0:
			emptyReads++
			if emptyReads >= maxEmptyReads {
				return int64(processed), io.ErrNoProgress
			}
		}
	}
}

// HashReader streams r into a fresh plain hasher and returns the digest.
func HashReader(r io.Reader, bufSize int, onProgress ProgressFunc) ([OutLen]byte, error) {
	h := New()
	if _, err := h.WriteReader(r, make([]byte, bufferSizeOrDefault(bufSize)), 0, onProgress); err != nil {
		return [OutLen]byte{}, err
	}
	return h.Sum256(), nil
}

// HashFile streams the named file into a fresh plain hasher, reporting
// progress against the file's size.
func HashFile(path string, bufSize int, onProgress ProgressFunc) ([OutLen]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return [OutLen]byte{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return [OutLen]byte{}, err
	}

	h := New()
	buf := make([]byte, bufferSizeOrDefault(bufSize))
	if _, err := h.WriteReader(f, buf, uint64(info.Size()), onProgress); err != nil {
		return [OutLen]byte{}, err
	}
	return h.Sum256(), nil
}

func bufferSizeOrDefault(n int) int {
	if n > 0 {
		return n
	}
	return DefaultBufferSize
}
