package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("hello world", 100, 10)
	if len(chunks) != 1 || chunks[0] != "hello world" {
		t.Fatalf("expected single passthrough chunk, got %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 25)
	chunks := SplitText(text, 10, 4)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks[:len(chunks)-1] {
		if len(c) != 10 {
			t.Errorf("chunk %d has length %d, want 10", i, len(c))
		}
	}

	// Step is chunkSize-overlap, so consecutive chunks share 4 characters.
	rejoined := chunks[0]
	for _, c := range chunks[1:] {
		rejoined += c[4:]
	}
	if rejoined != text {
		t.Errorf("rejoined chunks do not reproduce the input")
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("b", 30)
	chunks := SplitText(text, 10, 15)

	// Degenerate overlap must not loop forever; fallback steps a full chunk.
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
}

func TestSplitTextUnicodeSafe(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 50)
	chunks := SplitText(text, 100, 20)

	for i, c := range chunks {
		if !strings.HasPrefix(text, chunks[0]) {
			t.Fatalf("first chunk is not a prefix of the input")
		}
		// Splitting on runes must never produce invalid UTF-8.
		if strings.ContainsRune(c, '�') {
			t.Errorf("chunk %d contains a replacement character", i)
		}
	}
}
