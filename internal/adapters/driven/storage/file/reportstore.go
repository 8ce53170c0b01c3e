// Package file persists processing reports as JSON documents, one file per
// processed page.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/JepStar990/plainapi/internal/core/domain"
	"github.com/JepStar990/plainapi/internal/core/ports/driven"
	"github.com/JepStar990/plainapi/internal/logger"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore writes one JSON report per processed document under dir.
// Filenames carry the batch position and a hash of the source URL, so
// re-running the same batch overwrites the previous reports.
type ReportStore struct {
	dir string
}

// New creates a report store rooted at dir, creating it if needed.
func New(dir string) (*ReportStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}
	return &ReportStore{dir: dir}, nil
}

// Save writes one report per processed document and returns the file paths
// in input order.
func (r *ReportStore) Save(_ context.Context, docs []domain.ProcessedDocument) ([]string, error) {
	paths := make([]string, 0, len(docs))
	for i, doc := range docs {
		name := fmt.Sprintf("processed_%03d_%s.json", i, domain.NewID(doc.OriginalURL))
		path := filepath.Join(r.dir, name)

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal report for %s: %w", doc.OriginalURL, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
		paths = append(paths, path)
	}

	logger.Debug("Saved %d reports to %s", len(docs), r.dir)
	return paths, nil
}

// Load reads all stored reports in filename order. A corrupt report is
// skipped with a warning, never fatal to the load.
func (r *ReportStore) Load(_ context.Context) ([]domain.ProcessedDocument, error) {
	paths, err := filepath.Glob(filepath.Join(r.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	sort.Strings(paths)

	docs := make([]domain.ProcessedDocument, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable report %s: %v", filepath.Base(path), err)
			continue
		}

		var doc domain.ProcessedDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			logger.Warn("Skipping corrupt report %s: %v", filepath.Base(path), err)
			continue
		}
		restoreIntMetadata(doc.Chunks)
		docs = append(docs, doc)
	}
	return docs, nil
}

// intMetadataKeys are the metadata fields written as ints. encoding/json
// decodes every JSON number into a float64, so Load restores them to keep
// the save/load round trip exact.
var intMetadataKeys = []string{"chunk_index", "total_chunks", "chunk_size"}

func restoreIntMetadata(chunks []domain.Chunk) {
	for _, chunk := range chunks {
		for _, key := range intMetadataKeys {
			if v, ok := chunk.Metadata[key].(float64); ok {
				chunk.Metadata[key] = int(v)
			}
		}
	}
}
