// Package services implements the core pipeline services: the batch document
// processor and the ingest orchestrator that wires scraping, processing,
// embedding and indexing together.
package services
