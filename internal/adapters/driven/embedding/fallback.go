// Package embedding provides decorators shared by the embedding adapters.
package embedding

import (
	"context"

	"github.com/JepStar990/plainapi/internal/core/ports/driven"
	"github.com/JepStar990/plainapi/internal/logger"
)

// Ensure ZeroFallback implements the interface.
var _ driven.EmbeddingService = (*ZeroFallback)(nil)

// ZeroFallback wraps an embedding service and substitutes zero vectors when
// the backend fails, so an embedding outage degrades a run instead of
// aborting it. Chunks embedded with zero vectors are stored but will not
// match any similarity query.
type ZeroFallback struct {
	inner driven.EmbeddingService
}

// NewZeroFallback wraps inner with zero-vector degradation.
func NewZeroFallback(inner driven.EmbeddingService) *ZeroFallback {
	return &ZeroFallback{inner: inner}
}

// Embed returns the inner embedding, or a zero vector on failure.
func (z *ZeroFallback) Embed(ctx context.Context, text string) ([]float32, error) {
	embedding, err := z.inner.Embed(ctx, text)
	if err != nil {
		logger.Warn("Embedding failed, substituting zero vector: %v", err)
		return make([]float32, z.inner.Dimensions()), nil
	}
	return embedding, nil
}

// EmbedBatch returns the inner embeddings, or one zero vector per text on
// failure.
func (z *ZeroFallback) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings, err := z.inner.EmbedBatch(ctx, texts)
	if err != nil {
		logger.Warn("Batch embedding failed, substituting %d zero vectors: %v", len(texts), err)
		embeddings = make([][]float32, len(texts))
		for i := range embeddings {
			embeddings[i] = make([]float32, z.inner.Dimensions())
		}
		return embeddings, nil
	}
	return embeddings, nil
}

// Dimensions returns the inner service's vector size.
func (z *ZeroFallback) Dimensions() int { return z.inner.Dimensions() }

// ModelName returns the inner service's model name.
func (z *ZeroFallback) ModelName() string { return z.inner.ModelName() }

// Close closes the inner service.
func (z *ZeroFallback) Close() error { return z.inner.Close() }
