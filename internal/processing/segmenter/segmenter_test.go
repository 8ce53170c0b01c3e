package segmenter

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		if s.maxSize != DefaultMaxSize {
			t.Errorf("expected maxSize %d, got %d", DefaultMaxSize, s.maxSize)
		}
		if s.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, s.overlap)
		}
	})

	t.Run("custom sizes", func(t *testing.T) {
		s := New(WithMaxSize(500), WithOverlap(100))
		if s.maxSize != 500 {
			t.Errorf("expected maxSize 500, got %d", s.maxSize)
		}
		if s.overlap != 100 {
			t.Errorf("expected overlap 100, got %d", s.overlap)
		}
	})

	t.Run("overlap exceeding max size is clamped", func(t *testing.T) {
		s := New(WithMaxSize(100), WithOverlap(150))
		if s.overlap >= s.maxSize {
			t.Errorf("overlap %d should be below maxSize %d", s.overlap, s.maxSize)
		}
	})

	t.Run("non-positive values ignored", func(t *testing.T) {
		s := New(WithMaxSize(0), WithOverlap(-1))
		if s.maxSize != DefaultMaxSize {
			t.Errorf("expected default maxSize, got %d", s.maxSize)
		}
		if s.overlap != DefaultOverlap {
			t.Errorf("expected default overlap, got %d", s.overlap)
		}
	})
}

func TestSegmenter_Segment_Empty(t *testing.T) {
	s := New()
	if got := s.Segment(""); len(got) != 0 {
		t.Errorf("expected no segments for empty input, got %d", len(got))
	}
}

func TestSegmenter_Segment_SmallInput(t *testing.T) {
	s := New(WithMaxSize(100), WithOverlap(20))
	segments := s.Segment("A short piece of documentation.")

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0] != "A short piece of documentation." {
		t.Errorf("unexpected segment content: %q", segments[0])
	}
}

// TestSegmenter_Segment_SentenceBoundaries covers the repeated-sentence
// example: windows should end at or near sentence boundaries and none should
// be empty.
func TestSegmenter_Segment_SentenceBoundaries(t *testing.T) {
	text := strings.Repeat("This is a test sentence. ", 10)
	s := New(WithMaxSize(100), WithOverlap(20))

	segments := s.Segment(text)

	if len(segments) < 2 {
		t.Fatalf("expected at least 2 segments, got %d", len(segments))
	}
	for i, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			t.Errorf("segment %d is empty after trimming", i)
		}
		// Both edges may snap: the start back by up to overlap, the
		// end forward by up to overlap.
		if len(seg) > s.maxSize+2*s.overlap {
			t.Errorf("segment %d length %d exceeds maxSize+2*overlap", i, len(seg))
		}
		if !strings.HasSuffix(seg, ".") {
			t.Errorf("segment %d does not end at a sentence boundary: %q", i, seg)
		}
	}
}

// TestSegmenter_Segment_NoBoundaryFallback verifies the raw arithmetic cut
// applies when no boundary character exists within the scan window.
func TestSegmenter_Segment_NoBoundaryFallback(t *testing.T) {
	text := strings.Repeat("x", 250)
	s := New(WithMaxSize(100), WithOverlap(20))

	segments := s.Segment(text)

	if len(segments) < 3 {
		t.Fatalf("expected at least 3 segments, got %d", len(segments))
	}
	if segments[0] != strings.Repeat("x", 100) {
		t.Errorf("expected first segment to be the raw 100-char cut, got %d chars", len(segments[0]))
	}
}

// TestSegmenter_Segment_Overlap verifies consecutive segments share content.
func TestSegmenter_Segment_Overlap(t *testing.T) {
	text := strings.Repeat("x", 250)
	s := New(WithMaxSize(100), WithOverlap(20))

	segments := s.Segment(text)

	for i := 1; i < len(segments); i++ {
		prev, cur := segments[i-1], segments[i]
		tail := prev[len(prev)-10:]
		if !strings.Contains(cur, tail) {
			t.Errorf("segment %d does not overlap with its predecessor", i)
		}
	}
}

// TestSegmenter_Segment_Coverage verifies the segments jointly reconstruct the
// non-overlapping content of the input.
func TestSegmenter_Segment_Coverage(t *testing.T) {
	text := strings.Repeat("The apod endpoint returns the picture of the day. ", 20)
	s := New(WithMaxSize(120), WithOverlap(30))

	segments := s.Segment(text)

	total := 0
	for _, seg := range segments {
		total += len(seg)
	}
	// Overlap duplicates content, so concatenated length must be at least
	// the trimmed input length.
	if total < len(strings.TrimSpace(text)) {
		t.Errorf("segments cover %d chars, want at least %d", total, len(strings.TrimSpace(text)))
	}
}

// TestSegmenter_Segment_ShortTail verifies a short final segment is kept.
func TestSegmenter_Segment_ShortTail(t *testing.T) {
	text := strings.Repeat("x", 100) + " tail"
	s := New(WithMaxSize(100), WithOverlap(10))

	segments := s.Segment(text)

	last := segments[len(segments)-1]
	if !strings.HasSuffix(last, "tail") {
		t.Errorf("expected final segment to retain the tail, got %q", last)
	}
}

func TestSegmenter_Segment_Deterministic(t *testing.T) {
	text := strings.Repeat("Query parameter api_key is required. ", 15)
	s := New(WithMaxSize(80), WithOverlap(16))

	first := s.Segment(text)
	second := s.Segment(text)

	if len(first) != len(second) {
		t.Fatalf("segment counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs between runs", i)
		}
	}
}
