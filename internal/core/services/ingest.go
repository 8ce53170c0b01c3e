package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/JepStar990/plainapi/internal/core/domain"
	"github.com/JepStar990/plainapi/internal/core/ports/driven"
	"github.com/JepStar990/plainapi/internal/core/ports/driving"
	"github.com/JepStar990/plainapi/internal/logger"
)

// Ensure Ingestor implements the interface.
var _ driving.Ingestor = (*Ingestor)(nil)

// Ingestor coordinates an ingestion run: scrape (or replay) → process →
// persist reports → embed → index. The embedding service, vector store and
// chunk store are optional; without them the run still produces reports.
type Ingestor struct {
	scraper    driven.Scraper
	rawSource  driven.RawDocumentSource
	processor  driving.Processor
	embedder   driven.EmbeddingService
	vectors    driven.VectorStore
	chunkStore driven.ChunkStore
	reports    driven.ReportStore

	mu     sync.RWMutex
	status driving.IngestStatus
}

// NewIngestor creates an ingest orchestrator. scraper, rawSource, embedder,
// vectors and chunkStore may each be nil; the corresponding steps are skipped.
func NewIngestor(
	scraper driven.Scraper,
	rawSource driven.RawDocumentSource,
	processor driving.Processor,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	chunkStore driven.ChunkStore,
	reports driven.ReportStore,
) *Ingestor {
	return &Ingestor{
		scraper:    scraper,
		rawSource:  rawSource,
		processor:  processor,
		embedder:   embedder,
		vectors:    vectors,
		chunkStore: chunkStore,
		reports:    reports,
	}
}

// IngestFromScrape scrapes the configured documentation URLs and runs the
// pipeline over the result. Scraped pages are also saved to the raw-document
// store, when one is configured, so later runs can replay them offline.
func (g *Ingestor) IngestFromScrape(ctx context.Context) (*driving.IngestStatus, error) {
	if g.scraper == nil {
		return nil, fmt.Errorf("ingest: %w", domain.ErrScrapeFailed)
	}

	result, err := g.scraper.ScrapeAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scrape: %w", err)
	}
	logger.Info("Scraped %d/%d pages (%d errors)",
		result.ProcessedURLs, result.TotalURLs, len(result.Errors))

	if g.rawSource != nil && len(result.Documents) > 0 {
		if err := g.rawSource.Save(ctx, result.Documents); err != nil {
			logger.Warn("Failed to save raw documents: %v", err)
		}
	}

	return g.ingest(ctx, result.Documents)
}

// IngestFromStore replays stored raw documents through the pipeline.
func (g *Ingestor) IngestFromStore(ctx context.Context) (*driving.IngestStatus, error) {
	if g.rawSource == nil {
		return nil, fmt.Errorf("ingest: no raw document store configured")
	}

	raws, err := g.rawSource.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load raw documents: %w", err)
	}

	return g.ingest(ctx, raws)
}

// Status returns a copy of the most recent run's status.
func (g *Ingestor) Status(_ context.Context) *driving.IngestStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()

	status := g.status
	return &status
}

// ingest runs the pipeline over raw documents and hands the chunks to the
// collaborators. One document's embedding or indexing failure is counted and
// skipped, never fatal to the run.
func (g *Ingestor) ingest(ctx context.Context, raws []domain.RawDocument) (*driving.IngestStatus, error) {
	runID := uuid.New().String()
	g.setStatus(driving.IngestStatus{RunID: runID, Running: true})
	logger.Section(fmt.Sprintf("Ingest run %s", runID))

	processed := g.processor.ProcessAll(ctx, raws)

	if g.reports != nil {
		if _, err := g.reports.Save(ctx, processed); err != nil {
			g.finish()
			return g.Status(ctx), fmt.Errorf("save reports: %w", err)
		}
	}

	for i := range processed {
		doc := &processed[i]
		if len(doc.Errors) > 0 {
			g.bumpErrors()
			continue
		}
		if len(doc.Chunks) == 0 {
			continue
		}

		if err := g.embedChunks(ctx, doc.Chunks); err != nil {
			logger.Warn("Embedding failed for %s: %v", doc.OriginalURL, err)
			g.bumpErrors()
			continue
		}

		if err := g.storeChunks(ctx, doc.Chunks); err != nil {
			logger.Warn("Indexing failed for %s: %v", doc.OriginalURL, err)
			g.bumpErrors()
			continue
		}

		g.bumpProcessed(len(doc.Chunks))
	}

	g.finish()
	status := g.Status(ctx)
	logger.Info("Ingest complete: %d documents, %d chunks, %d errors",
		status.DocumentsProcessed, status.ChunksIndexed, status.ErrorCount)
	return status, nil
}

// embedChunks assigns embeddings in place, in chunk order.
func (g *Ingestor) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	if g.embedder == nil {
		return nil
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	embeddings, err := g.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(embeddings), len(chunks))
	}

	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}
	return nil
}

// storeChunks hands chunks to the chunk store and the vector store.
func (g *Ingestor) storeChunks(ctx context.Context, chunks []domain.Chunk) error {
	if g.chunkStore != nil {
		if err := g.chunkStore.SaveChunks(ctx, chunks); err != nil {
			return fmt.Errorf("save chunks: %w", err)
		}
	}
	if g.vectors != nil {
		if err := g.vectors.Add(ctx, chunks); err != nil {
			return fmt.Errorf("index chunks: %w", err)
		}
	}
	return nil
}

func (g *Ingestor) setStatus(status driving.IngestStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
}

func (g *Ingestor) bumpProcessed(chunks int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status.DocumentsProcessed++
	g.status.ChunksIndexed += chunks
}

func (g *Ingestor) bumpErrors() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status.ErrorCount++
}

func (g *Ingestor) finish() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status.Running = false
}
