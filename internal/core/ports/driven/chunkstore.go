package driven

import (
	"context"

	"github.com/JepStar990/plainapi/internal/core/domain"
)

// ChunkStore persists chunk records and their metadata.
// Backed by SQLite; saving a chunk whose ID exists updates it in place.
type ChunkStore interface {
	// SaveChunks stores or updates chunks.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunk retrieves a chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ListBySourceURL returns all chunks extracted from a page, in
	// chunk_index order.
	ListBySourceURL(ctx context.Context, sourceURL string) ([]domain.Chunk, error)

	// DeleteBySourceURL removes all chunks extracted from a page.
	DeleteBySourceURL(ctx context.Context, sourceURL string) error

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
