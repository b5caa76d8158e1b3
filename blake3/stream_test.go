package blake3

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReader(t *testing.T) {
	input := patternBytes(300 * 1024)
	want := Sum256(input)

	h := New()
	var lastProgress Progress
	calls := 0
	n, err := h.WriteReader(bytes.NewReader(input), make([]byte, 64*1024), uint64(len(input)), func(p Progress) {
		calls++
		lastProgress = p
	})
	if err != nil {
		t.Fatalf("WriteReader: %v", err)
	}
	if n != int64(len(input)) {
		t.Fatalf("WriteReader consumed %d bytes, want %d", n, len(input))
	}
	if calls == 0 {
		t.Fatalf("progress callback never invoked")
	}
	if lastProgress.Processed != uint64(len(input)) || lastProgress.Total != uint64(len(input)) {
		t.Fatalf("final progress %d/%d, want %d/%d", lastProgress.Processed, lastProgress.Total, len(input), len(input))
	}

	if got := h.Sum256(); got != want {
		t.Fatalf("WriteReader digest mismatch\nwant=%x\ngot =%x", want, got)
	}
}

func TestHashReader(t *testing.T) {
	input := patternBytes(4097)
	want := Sum256(input)

	got, err := HashReader(bytes.NewReader(input), 0, nil)
	if err != nil {
		t.Fatalf("HashReader: %v", err)
	}
	if got != want {
		t.Fatalf("HashReader mismatch\nwant=%x\ngot =%x", want, got)
	}
}

func TestHashFile(t *testing.T) {
	input := patternBytes(70000)
	path := filepath.Join(t.TempDir(), "input.bin")
	if err := os.WriteFile(path, input, 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	var sawTotal uint64
	got, err := HashFile(path, 16*1024, func(p Progress) {
		sawTotal = p.Total
	})
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if got != Sum256(input) {
		t.Fatalf("HashFile digest mismatch")
	}
	if sawTotal != uint64(len(input)) {
		t.Fatalf("progress total %d, want %d", sawTotal, len(input))
	}
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope.bin"), 0, nil)
	if err == nil {
		t.Fatalf("want error for missing file")
	}
}

// noProgressReader returns (0, nil) forever.
type noProgressReader struct{}

func (noProgressReader) Read([]byte) (int, error) { return 0, nil }

func TestWriteReaderNoProgress(t *testing.T) {
	h := New()
	_, err := h.WriteReader(noProgressReader{}, nil, 0, nil)
	if !errors.Is(err, io.ErrNoProgress) {
		t.Fatalf("want io.ErrNoProgress, got %v", err)
	}
}
