package blake3

import "testing"

// TestTwoChunkTreeShape: a 1025-byte input must produce a two-chunk
// tree whose second chunk holds exactly one byte, with the root being a
// parent compression of the two chunk chaining values.
func TestTwoChunkTreeShape(t *testing.T) {
	input := patternBytes(1025)

	h := New()
	_, _ = h.Write(input)

	if h.tree.cvStackLen != 1 {
		t.Fatalf("want 1 stack entry before finalize, got %d", h.tree.cvStackLen)
	}
	if h.tree.chunk.chunkCounter != 1 {
		t.Fatalf("want second chunk (index 1) in progress, got index %d", h.tree.chunk.chunkCounter)
	}
	if h.tree.chunk.len() != 1 {
		t.Fatalf("want second chunk to hold exactly 1 byte, got %d", h.tree.chunk.len())
	}

	cv0 := chunkCVFull(input[:ChunkLen], iv, 0, 0)
	if h.tree.cvStack[0] != cv0 {
		t.Fatalf("stack entry does not match the first chunk's chaining value")
	}

	cs1 := newChunkState(iv, 1, 0)
	cs1.update(input[ChunkLen:])
	cv1 := cs1.output().chainingValue()

	var wantRoot [OutLen]byte
	parentInput(cv0, cv1, iv, 0).rootBytes(wantRoot[:])

	got := h.Sum256()
	if got != wantRoot {
		t.Fatalf("root mismatch\nwant=%x\ngot =%x", wantRoot, got)
	}
}

// TestBalancedEightChunkTree: an 8192-byte input forms a perfectly
// balanced, depth-3, 8-chunk tree; the root merges two 4-chunk subtrees.
func TestBalancedEightChunkTree(t *testing.T) {
	input := patternBytes(8192)

	h := New()
	_, _ = h.Write(input)

	if h.tree.cvStackLen != 3 {
		t.Fatalf("want 3 stack entries before finalize, got %d", h.tree.cvStackLen)
	}
	if h.tree.chunk.chunkCounter != 7 {
		t.Fatalf("want eighth chunk (index 7) in progress, got index %d", h.tree.chunk.chunkCounter)
	}

	var cvs [8][8]uint32
	for i := 0; i < 8; i++ {
		cvs[i] = chunkCVFull(input[i*ChunkLen:(i+1)*ChunkLen], iv, uint64(i), 0)
	}

	left := parentCV(parentCV(cvs[0], cvs[1], iv, 0), parentCV(cvs[2], cvs[3], iv, 0), iv, 0)
	right := parentCV(parentCV(cvs[4], cvs[5], iv, 0), parentCV(cvs[6], cvs[7], iv, 0), iv, 0)

	var wantRoot [OutLen]byte
	parentInput(left, right, iv, 0).rootBytes(wantRoot[:])

	got := h.Sum256()
	if got != wantRoot {
		t.Fatalf("balanced-tree root mismatch\nwant=%x\ngot =%x", wantRoot, got)
	}
}

// TestExactlyOneChunkIsNotSplit: exactly
// ChunkLen bytes of input is a single chunk whose last block is the root,
// never two chunks.
func TestExactlyOneChunkIsNotSplit(t *testing.T) {
	input := patternBytes(ChunkLen)

	h := New()
	_, _ = h.Write(input)

	if h.tree.cvStackLen != 0 {
		t.Fatalf("want an empty stack for single-chunk input, got %d entries", h.tree.cvStackLen)
	}
	if h.tree.chunk.chunkCounter != 0 {
		t.Fatalf("want the only chunk to be index 0, got %d", h.tree.chunk.chunkCounter)
	}

	cs := newChunkState(iv, 0, 0)
	cs.update(input)
	var want [OutLen]byte
	cs.output().rootBytes(want[:])

	got := h.Sum256()
	if got != want {
		t.Fatalf("single-chunk root mismatch\nwant=%x\ngot =%x", want, got)
	}
}
