// Package assembler builds chunk records from segmented document text.
package assembler

import (
	"time"

	"github.com/JepStar990/plainapi/internal/core/domain"
	"github.com/JepStar990/plainapi/internal/processing/segmenter"
)

// DefaultMinChunkLength is the minimum trimmed length a segment must have to
// become a chunk. Shorter fragments are navigation noise and are dropped.
const DefaultMinChunkLength = 50

// Assembler combines segmenter output with classification and metadata into
// addressable chunk records.
type Assembler struct {
	segmenter *segmenter.Segmenter
	minLength int
}

// Option configures the assembler.
type Option func(*Assembler)

// WithSegmenter replaces the default segmenter.
func WithSegmenter(s *segmenter.Segmenter) Option {
	return func(a *Assembler) {
		if s != nil {
			a.segmenter = s
		}
	}
}

// WithMinChunkLength sets the degenerate-chunk threshold.
func WithMinChunkLength(n int) Option {
	return func(a *Assembler) {
		if n >= 0 {
			a.minLength = n
		}
	}
}

// New creates an assembler with the given options.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		segmenter: segmenter.New(),
		minLength: DefaultMinChunkLength,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble segments content and builds one Chunk per surviving segment.
//
// chunk_index is the segment's pre-filter position, so IDs stay stable for a
// given raw segment even if the minimum-length threshold changes; dropped
// segments therefore leave gaps in the index sequence. Output order matches
// segment order. Calling Assemble twice on identical input yields identical
// IDs in identical order.
func (a *Assembler) Assemble(content, sourceURL string, docType domain.DocumentType, base map[string]any) []domain.Chunk {
	segments := a.segmenter.Segment(content)
	if len(segments) == 0 {
		return nil
	}

	endpoint, _ := base["api_endpoint"].(string)
	now := time.Now().UTC()

	chunks := make([]domain.Chunk, 0, len(segments))
	for i, seg := range segments {
		// Segments arrive trimmed from the segmenter.
		if len(seg) < a.minLength {
			continue
		}

		md := make(map[string]any, len(base)+3)
		for k, v := range base {
			md[k] = v
		}
		md["chunk_index"] = i
		md["total_chunks"] = len(segments)
		md["chunk_size"] = len(seg)

		chunks = append(chunks, domain.Chunk{
			ID:           domain.ChunkID(sourceURL, i),
			Content:      seg,
			DocumentType: docType,
			SourceURL:    sourceURL,
			APIEndpoint:  endpoint,
			Metadata:     md,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	return chunks
}
