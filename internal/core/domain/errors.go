package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates a raw document with no usable content
	// or source URL.
	ErrEmptyDocument = errors.New("empty document")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Chunks are still produced and persisted, but carry no
	// embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not
	// configured. Ingestion still writes processing reports.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrRateLimited indicates the documentation host rejected a request
	// for exceeding its rate limit.
	ErrRateLimited = errors.New("rate limited")

	// ErrScrapeFailed indicates a page could not be fetched or yielded
	// no usable text.
	ErrScrapeFailed = errors.New("scrape failed")
)
