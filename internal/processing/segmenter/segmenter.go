// Package segmenter provides boundary-snapping text segmentation.
package segmenter

import "strings"

// DefaultMaxSize is the default number of characters per segment.
const DefaultMaxSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// boundaryChars are the characters a window edge snaps to.
const boundaryChars = ".!?\n"

// Segmenter splits text into overlapping segments, preferring to cut at
// sentence or line boundaries over mid-sentence positions.
type Segmenter struct {
	maxSize int
	overlap int
}

// Option configures the segmenter.
type Option func(*Segmenter)

// WithMaxSize sets the maximum segment size in characters.
func WithMaxSize(size int) Option {
	return func(s *Segmenter) {
		if size > 0 {
			s.maxSize = size
		}
	}
}

// WithOverlap sets the overlap between segments in characters.
func WithOverlap(overlap int) Option {
	return func(s *Segmenter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		maxSize: DefaultMaxSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must stay below the window size or the window cannot advance.
	if s.overlap >= s.maxSize {
		s.overlap = s.maxSize / 4
	}

	return s
}

// MaxSize returns the configured window size.
func (s *Segmenter) MaxSize() int {
	return s.maxSize
}

// Overlap returns the configured overlap.
func (s *Segmenter) Overlap() int {
	return s.overlap
}

// Segment splits text into overlapping segments. Every window after the first
// snaps its start backward to just after the nearest boundary character within
// overlap characters; every window not reaching end-of-text snaps its end
// forward similarly, inclusive of the boundary character. When no boundary is
// found the raw arithmetic cut applies. Segments are trimmed; empty ones are
// dropped. A short final segment is kept. Segments are not deduplicated.
//
// Segment is a total function: empty input yields no segments, never an error.
func (s *Segmenter) Segment(text string) []string {
	if text == "" {
		return nil
	}

	n := len(text)
	segments := make([]string, 0, n/(s.maxSize-s.overlap)+1)

	start := 0
	for start < n {
		// end is computed from the pre-snap start; the next window
		// advances from it, which keeps the overlap near the configured
		// value even after the start snaps backward.
		end := start + s.maxSize

		if start > 0 {
			start = snapStartBack(text, start, s.overlap)
		}
		if end < n {
			end = snapEndForward(text, end, s.overlap)
		}

		sliceEnd := min(end, n)
		if seg := strings.TrimSpace(text[start:sliceEnd]); seg != "" {
			segments = append(segments, seg)
		}

		// Advances past the text end on the final window, terminating
		// the loop; overlap < maxSize guarantees end-overlap > start.
		start = end - s.overlap
	}

	return segments
}

// snapStartBack scans backward from start, up to overlap characters, for a
// boundary character and returns the position just after it. Without a
// boundary in range, start is returned unchanged.
func snapStartBack(text string, start, overlap int) int {
	for i := start; i > start-overlap && i > 0; i-- {
		if i < len(text) && isBoundary(text[i]) {
			return i + 1
		}
	}
	return start
}

// snapEndForward scans forward from end, up to overlap characters, for a
// boundary character and returns the position just after it. Without a
// boundary in range, end is returned unchanged.
func snapEndForward(text string, end, overlap int) int {
	limit := min(end+overlap, len(text))
	for i := end; i < limit; i++ {
		if isBoundary(text[i]) {
			return i + 1
		}
	}
	return end
}

func isBoundary(c byte) bool {
	return strings.IndexByte(boundaryChars, c) >= 0
}
