package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JepStar990/plainapi/internal/core/domain"
	"github.com/JepStar990/plainapi/internal/core/ports/driven"
)

type fakeScraper struct {
	docs []domain.RawDocument
	err  error
}

func (f *fakeScraper) ScrapeAll(_ context.Context) (*domain.ScrapeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ScrapeResult{
		Successful:    true,
		Documents:     f.docs,
		Errors:        []string{},
		TotalURLs:     len(f.docs),
		ProcessedURLs: len(f.docs),
		StartTime:     time.Now().UTC(),
		EndTime:       time.Now().UTC(),
	}, nil
}

func (f *fakeScraper) Scrape(_ context.Context, url string) (*domain.RawDocument, error) {
	for i := range f.docs {
		if f.docs[i].URL == url {
			return &f.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScraper) Close() error { return nil }

type fakeRawSource struct {
	saved  []domain.RawDocument
	loaded []domain.RawDocument
}

func (f *fakeRawSource) Load(_ context.Context) ([]domain.RawDocument, error) {
	return f.loaded, nil
}

func (f *fakeRawSource) Save(_ context.Context, docs []domain.RawDocument) error {
	f.saved = append(f.saved, docs...)
	return nil
}

func (f *fakeRawSource) Watch(_ context.Context) (<-chan domain.RawDocument, <-chan error, error) {
	return nil, nil, errors.New("watch not supported")
}

type fakeEmbedder struct {
	calls int
	fail  bool
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if f.fail {
		return nil, domain.ErrEmbeddingUnavailable
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.fail {
		return nil, domain.ErrEmbeddingUnavailable
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int   { return 3 }
func (f *fakeEmbedder) ModelName() string { return "fake-embed" }
func (f *fakeEmbedder) Close() error      { return nil }

type fakeVectorStore struct {
	added map[string]domain.Chunk
}

func (f *fakeVectorStore) Add(_ context.Context, chunks []domain.Chunk) error {
	if f.added == nil {
		f.added = make(map[string]domain.Chunk)
	}
	for _, c := range chunks {
		f.added[c.ID] = c
	}
	return nil
}

func (f *fakeVectorStore) Query(_ context.Context, _ []float32, _ int) ([]driven.VectorHit, error) {
	return nil, nil
}

func (f *fakeVectorStore) Count(_ context.Context) (int, error) { return len(f.added), nil }
func (f *fakeVectorStore) Close() error                         { return nil }

type fakeChunkStore struct {
	chunks map[string]domain.Chunk
}

func (f *fakeChunkStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if f.chunks == nil {
		f.chunks = make(map[string]domain.Chunk)
	}
	for _, c := range chunks {
		f.chunks[c.ID] = c
	}
	return nil
}

func (f *fakeChunkStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	c, ok := f.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (f *fakeChunkStore) ListBySourceURL(_ context.Context, sourceURL string) ([]domain.Chunk, error) {
	var out []domain.Chunk
	for _, c := range f.chunks {
		if c.SourceURL == sourceURL {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChunkStore) DeleteBySourceURL(_ context.Context, sourceURL string) error {
	for id, c := range f.chunks {
		if c.SourceURL == sourceURL {
			delete(f.chunks, id)
		}
	}
	return nil
}

func (f *fakeChunkStore) Count(_ context.Context) (int, error) { return len(f.chunks), nil }
func (f *fakeChunkStore) Close() error                         { return nil }

type fakeReportStore struct {
	saved []domain.ProcessedDocument
}

func (f *fakeReportStore) Save(_ context.Context, docs []domain.ProcessedDocument) ([]string, error) {
	f.saved = append(f.saved, docs...)
	locations := make([]string, len(docs))
	for i := range docs {
		locations[i] = fmt.Sprintf("report-%d.json", i)
	}
	return locations, nil
}

func (f *fakeReportStore) Load(_ context.Context) ([]domain.ProcessedDocument, error) {
	return f.saved, nil
}

func ingestTestDocs() []domain.RawDocument {
	return []domain.RawDocument{
		{
			URL:         "https://api.nasa.gov/#apod",
			Content:     strings.Repeat("The apod endpoint returns the astronomy picture of the day. ", 10),
			ContentType: domain.ContentHTML,
			Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			URL:         "https://api.nasa.gov/#neo",
			Content:     strings.Repeat("The neo endpoint lists near earth objects for a date range. ", 10),
			ContentType: domain.ContentHTML,
			Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestIngestor_IngestFromScrape(t *testing.T) {
	scraper := &fakeScraper{docs: ingestTestDocs()}
	rawSource := &fakeRawSource{}
	embedder := &fakeEmbedder{}
	vectors := &fakeVectorStore{}
	chunkStore := &fakeChunkStore{}
	reports := &fakeReportStore{}

	ing := NewIngestor(scraper, rawSource, newTestProcessor(), embedder, vectors, chunkStore, reports)

	status, err := ing.IngestFromScrape(context.Background())
	require.NoError(t, err)
	require.NotNil(t, status)

	assert.NotEmpty(t, status.RunID)
	assert.False(t, status.Running)
	assert.Equal(t, 2, status.DocumentsProcessed)
	assert.Zero(t, status.ErrorCount)
	assert.Positive(t, status.ChunksIndexed)

	// Scraped pages land in the raw store for offline replay.
	assert.Len(t, rawSource.saved, 2)

	// One report per input document.
	assert.Len(t, reports.saved, 2)

	// Chunk store and vector store see the same chunks, with embeddings.
	assert.Equal(t, status.ChunksIndexed, len(chunkStore.chunks))
	assert.Equal(t, status.ChunksIndexed, len(vectors.added))
	for _, c := range vectors.added {
		assert.Len(t, c.Embedding, 3)
	}
}

func TestIngestor_IngestFromScrape_NoScraper(t *testing.T) {
	ing := NewIngestor(nil, nil, newTestProcessor(), nil, nil, nil, nil)

	_, err := ing.IngestFromScrape(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScrapeFailed)
}

func TestIngestor_IngestFromStore(t *testing.T) {
	rawSource := &fakeRawSource{loaded: ingestTestDocs()}
	reports := &fakeReportStore{}

	ing := NewIngestor(nil, rawSource, newTestProcessor(), nil, nil, nil, reports)

	status, err := ing.IngestFromStore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, status.DocumentsProcessed)
	assert.Len(t, reports.saved, 2)
}

func TestIngestor_IngestFromStore_NoSource(t *testing.T) {
	ing := NewIngestor(nil, nil, newTestProcessor(), nil, nil, nil, nil)

	_, err := ing.IngestFromStore(context.Background())
	require.Error(t, err)
}

// TestIngestor_EmbedFailureCounted verifies an embedding outage is counted
// per document, not fatal to the run.
func TestIngestor_EmbedFailureCounted(t *testing.T) {
	rawSource := &fakeRawSource{loaded: ingestTestDocs()}
	embedder := &fakeEmbedder{fail: true}
	vectors := &fakeVectorStore{}

	ing := NewIngestor(nil, rawSource, newTestProcessor(), embedder, vectors, nil, nil)

	status, err := ing.IngestFromStore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, status.ErrorCount)
	assert.Zero(t, status.DocumentsProcessed)
	assert.Empty(t, vectors.added)
}

// TestIngestor_FailedDocumentSkipped verifies a document that fails
// processing is reported but never reaches the embedder or the stores.
func TestIngestor_FailedDocumentSkipped(t *testing.T) {
	docs := ingestTestDocs()
	docs = append(docs, domain.RawDocument{Content: "no url"})

	rawSource := &fakeRawSource{loaded: docs}
	embedder := &fakeEmbedder{}
	vectors := &fakeVectorStore{}
	reports := &fakeReportStore{}

	ing := NewIngestor(nil, rawSource, newTestProcessor(), embedder, vectors, nil, reports)

	status, err := ing.IngestFromStore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, status.DocumentsProcessed)
	assert.Equal(t, 1, status.ErrorCount)
	assert.Len(t, reports.saved, 3)
	assert.Equal(t, 2, embedder.calls)
}

func TestIngestor_Status_CopiesState(t *testing.T) {
	rawSource := &fakeRawSource{loaded: ingestTestDocs()}
	ing := NewIngestor(nil, rawSource, newTestProcessor(), nil, nil, nil, nil)

	_, err := ing.IngestFromStore(context.Background())
	require.NoError(t, err)

	s1 := ing.Status(context.Background())
	s2 := ing.Status(context.Background())
	require.NotSame(t, s1, s2)
	assert.Equal(t, *s1, *s2)
}
