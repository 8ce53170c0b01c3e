package driving

import "context"

// Ingestor coordinates a full ingestion run: scrape (or replay), process,
// report, embed and index.
type Ingestor interface {
	// IngestFromScrape scrapes the configured documentation URLs and runs
	// the pipeline over the result.
	IngestFromScrape(ctx context.Context) (*IngestStatus, error)

	// IngestFromStore replays stored raw documents through the pipeline.
	IngestFromStore(ctx context.Context) (*IngestStatus, error)

	// Status returns the status of the most recent run.
	Status(ctx context.Context) *IngestStatus
}

// IngestStatus tracks the progress of an ingestion run.
type IngestStatus struct {
	// RunID identifies the run in logs.
	RunID string

	// Running is true while the run is in flight.
	Running bool

	// DocumentsProcessed counts raw documents that produced chunks.
	DocumentsProcessed int

	// ChunksIndexed counts chunks handed to the vector store.
	ChunksIndexed int

	// ErrorCount counts per-document failures (processing or indexing).
	ErrorCount int
}
