package driven

import "context"

// EmbeddingService generates vector embeddings from chunk text.
// This is an optional service - when nil, chunks are stored without
// embeddings and semantic search is disabled.
//
// Zero-vector fallback on embedding failure is the service's contract, not
// the pipeline's; see the embedding.ZeroFallback decorator.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in input order.
	// The returned slice has the same length as texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 768).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
