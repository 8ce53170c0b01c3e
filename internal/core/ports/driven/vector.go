package driven

import (
	"context"

	"github.com/JepStar990/plainapi/internal/core/domain"
)

// VectorStore indexes chunks for semantic similarity search.
// Chunks are keyed by their deterministic ID: adding a chunk whose ID already
// exists overwrites the previous record, which is what makes re-ingestion
// idempotent. Metadata is flattened to string values at this boundary.
type VectorStore interface {
	// Add indexes the given chunks, overwriting on ID collision.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Query finds the k nearest chunks to the query embedding.
	Query(ctx context.Context, embedding []float32, k int) ([]VectorHit, error)

	// Count returns the number of indexed chunks.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Content is the stored chunk text.
	Content string

	// Metadata is the flattened metadata stored with the chunk.
	Metadata map[string]string

	// Similarity is the cosine similarity score (0-1).
	Similarity float32
}
