package domain

import (
	"crypto/md5" //nolint:gosec // stable identifier derivation, not security
	"encoding/hex"
	"fmt"
)

// idLength is the number of hex characters in a chunk ID.
const idLength = 16

// NewID derives a deterministic 16-hex-char identifier from seed.
// The same seed always yields the same ID, which is what makes
// re-ingestion idempotent at the store boundary.
func NewID(seed string) string {
	sum := md5.Sum([]byte(seed)) //nolint:gosec // see above
	return hex.EncodeToString(sum[:])[:idLength]
}

// ChunkID derives the identifier for the chunk at position index within the
// document scraped from sourceURL.
func ChunkID(sourceURL string, index int) string {
	return NewID(fmt.Sprintf("%s_%d", sourceURL, index))
}
