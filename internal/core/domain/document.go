package domain

import "time"

// ContentType identifies the wire format a page was scraped as.
type ContentType string

// Content types produced by the scraper.
const (
	ContentHTML ContentType = "html"
	ContentJSON ContentType = "json"
	ContentText ContentType = "text"
)

// RawDocument is a scraped documentation page before processing.
// It is owned by the caller and read-only to the pipeline.
type RawDocument struct {
	// URL is the page this document was scraped from.
	URL string `json:"url"`

	// Content is the cleaned text content of the page.
	Content string `json:"content"`

	// ContentType records the original wire format (html, json, text).
	ContentType ContentType `json:"content_type"`

	// Headers are the response headers captured at scrape time.
	Headers map[string]string `json:"headers,omitempty"`

	// Timestamp is when the page was scraped.
	Timestamp time.Time `json:"timestamp"`
}

// Chunk is the atomic unit stored and retrieved: a bounded piece of
// documentation text plus derived metadata and an optional embedding.
type Chunk struct {
	// ID is a deterministic 16-hex-char identifier derived from the
	// source URL and chunk position. Re-ingesting the same input yields
	// the same ID, so stores overwrite instead of duplicating.
	ID string `json:"id"`

	// Content is the trimmed chunk text.
	Content string `json:"content"`

	// DocumentType is the classification of the source page.
	DocumentType DocumentType `json:"document_type"`

	// SourceURL is the page the chunk was extracted from.
	SourceURL string `json:"source_url"`

	// APIEndpoint names the NASA API endpoint the page documents, when
	// one could be derived from the URL.
	APIEndpoint string `json:"api_endpoint,omitempty"`

	// Metadata carries the extractor's base fields plus chunk_index,
	// total_chunks and chunk_size.
	Metadata map[string]any `json:"metadata"`

	// Embedding is the vector representation, assigned by the embedding
	// service after assembly. Nil until embedded.
	Embedding []float32 `json:"embedding,omitempty"`

	// CreatedAt is when the chunk record was built.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the chunk record was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// ProcessedDocument is the per-page result of a batch run.
// A document that failed to process has empty Chunks and a non-empty
// Errors list; it never aborts the batch.
type ProcessedDocument struct {
	// OriginalURL is the URL of the RawDocument this result belongs to.
	OriginalURL string `json:"original_url"`

	// Chunks are the assembled chunks in segment order.
	Chunks []Chunk `json:"chunks"`

	// TotalChunks is len(Chunks), persisted for the report format.
	TotalChunks int `json:"total_chunks"`

	// ProcessingTime is the wall-clock processing duration in seconds.
	ProcessingTime float64 `json:"processing_time"`

	// Errors records per-document failures; empty on success.
	Errors []string `json:"errors"`
}

// ScrapeResult summarises one scraping run across all documentation URLs.
type ScrapeResult struct {
	// Successful is true when no URL failed.
	Successful bool `json:"successful"`

	// Documents are the successfully scraped pages.
	Documents []RawDocument `json:"documents"`

	// Errors records per-URL scrape failures.
	Errors []string `json:"errors"`

	// TotalURLs is the number of URLs attempted.
	TotalURLs int `json:"total_urls"`

	// ProcessedURLs is the number of URLs that yielded a document.
	ProcessedURLs int `json:"processed_urls"`

	// StartTime and EndTime bound the run.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns the scrape run duration in seconds.
func (r ScrapeResult) Duration() float64 {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime).Seconds()
}
