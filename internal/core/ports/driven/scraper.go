package driven

import (
	"context"

	"github.com/JepStar990/plainapi/internal/core/domain"
)

// Scraper fetches documentation pages and turns them into raw documents.
// The pipeline makes no assumption about fetch ordering; failures are
// recorded per URL in the result, never retried here.
type Scraper interface {
	// ScrapeAll fetches every configured documentation URL.
	ScrapeAll(ctx context.Context) (*domain.ScrapeResult, error)

	// Scrape fetches a single URL.
	Scrape(ctx context.Context, url string) (*domain.RawDocument, error)

	// Close releases resources.
	Close() error
}

// RawDocumentSource replays previously scraped raw documents, so a corpus can
// be re-ingested without hitting the network.
type RawDocumentSource interface {
	// Load reads all stored raw documents.
	Load(ctx context.Context) ([]domain.RawDocument, error)

	// Save persists raw documents for later replay.
	Save(ctx context.Context, docs []domain.RawDocument) error

	// Watch emits raw documents as they appear in the store.
	// The channels close when ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.RawDocument, <-chan error, error)
}
