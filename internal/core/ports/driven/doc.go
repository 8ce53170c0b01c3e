// Package driven defines the interfaces the pipeline calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them:
//
//   - Scraper: fetches raw documentation pages
//   - RawDocumentSource: replays previously scraped pages
//   - EmbeddingService: turns chunk text into vectors
//   - VectorStore: indexes chunks for similarity search
//   - ChunkStore: persists chunk records and metadata
//   - ReportStore: persists per-document processing reports
//   - SettingsStore: persisted user configuration
//
// The embedding service and vector store are optional: without them the
// pipeline still chunks, classifies and writes reports.
package driven
