package blake3

import (
	"testing"
)

// TestIncrementality checks that splitting an input at any set of
// offsets and absorbing it in that many Write calls equals a single-shot
// hash, with particular attention to the block and chunk boundary split
// points: 63, 64, 65, 1023, 1024, 1025 and multiples of 1024.
func TestIncrementality(t *testing.T) {
	const size = 1025 + 3*1024 // exercises several chunk boundaries
	input := patternBytes(size)
	want := Sum256(input)

	splitSets := [][]int{
		{0, 1, 63, 64, 65, 1023, 1024, 1025, 2048, 3072},
		{1},
		{size - 1},
		{63, 64, 65},
	}

	for _, splits := range splitSets {
		h := New()
		offset := 0
		for _, s := range splits {
			if s < offset || s > size {
				continue
			}
			_, _ = h.Write(input[offset:s])
			offset = s
		}
		_, _ = h.Write(input[offset:])
		got := h.Sum256()
		if got != want {
			t.Fatalf("incrementality mismatch for splits=%v\nwant=%x\ngot =%x", splits, want, got)
		}
	}
}

// TestByteAtATime is the 1-byte-granularity incrementality case.
func TestByteAtATime(t *testing.T) {
	input := patternBytes(2500)
	want := Sum256(input)

	h := New()
	for i := range input {
		_, _ = h.Write(input[i : i+1])
	}
	got := h.Sum256()
	if got != want {
		t.Fatalf("byte-at-a-time mismatch\nwant=%x\ngot =%x", want, got)
	}
}

// TestIETFScenario: absorbing "I", "ET", "F" must match a single
// Write of "IETF".
func TestIETFScenario(t *testing.T) {
	want := Sum256([]byte("IETF"))

	h := New()
	_, _ = h.Write([]byte("I"))
	_, _ = h.Write([]byte("ET"))
	_, _ = h.Write([]byte("F"))
	got := h.Sum256()
	if got != want {
		t.Fatalf("IETF scenario mismatch\nwant=%x\ngot =%x", want, got)
	}
}

// TestBoundaryLengths checks that one-shot Sum256 agrees with the
// streaming hasher across a dense set of lengths straddling block and
// chunk boundaries, guarding the oneshot.go fast path against the
// treeHasher path for the single-write case.
func TestBoundaryLengths(t *testing.T) {
	lengths := []int{
		0, 1, 63, 64, 65, 1023, 1024, 1025, 2048, 2049,
		3072, 3073, 4096, 4097, 5120, 5121, 6144, 6145,
		7168, 7169, 8192, 8193,
	}
	for _, n := range lengths {
		input := patternBytes(n)

		streaming := New()
		_, _ = streaming.Write(input)
		streamSum := streaming.Sum256()

		oneshotSum := Sum256(input)
		if streamSum != oneshotSum {
			t.Fatalf("streaming/one-shot mismatch at len=%d\nstream =%x\noneshot=%x", n, streamSum, oneshotSum)
		}
	}
}
