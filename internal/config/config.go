// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Settings holds the runtime configuration for the ingestion pipeline.
type Settings struct {
	DataDir  string `env:"DATA_DIR" envDefault:"./data"`
	NASAKey  string `env:"NASA_API_KEY" envDefault:"DEMO_KEY"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ChunkSize      int `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap   int `env:"CHUNK_OVERLAP" envDefault:"200"`
	MinChunkLength int `env:"MIN_CHUNK_LENGTH" envDefault:"50"`

	OllamaURL           string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaEmbedModel    string `env:"OLLAMA_EMBED_MODEL" envDefault:"nomic-embed-text"`
	EmbeddingDimensions int    `env:"EMBEDDING_DIMENSIONS" envDefault:"768"`

	CollectionName  string  `env:"COLLECTION_NAME" envDefault:"nasa_api_docs"`
	ScrapeRateLimit float64 `env:"SCRAPE_RATE_LIMIT" envDefault:"2"`
	MaxConcurrent   int     `env:"SCRAPE_MAX_CONCURRENT" envDefault:"5"`
}

// Load reads settings from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &s, nil
}

// RawDocsDir is where scraped raw documents are stored.
func (s *Settings) RawDocsDir() string {
	return filepath.Join(s.DataDir, "raw_docs")
}

// ProcessedDocsDir is where processing reports are stored.
func (s *Settings) ProcessedDocsDir() string {
	return filepath.Join(s.DataDir, "processed_docs")
}

// VectorStoreDir is where the chromem collection persists.
func (s *Settings) VectorStoreDir() string {
	return filepath.Join(s.DataDir, "vector_store")
}

// ChunkStoreDir is where the SQLite chunk database lives.
func (s *Settings) ChunkStoreDir() string {
	return filepath.Join(s.DataDir, "chunk_store")
}
