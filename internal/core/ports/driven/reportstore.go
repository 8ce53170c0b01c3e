package driven

import (
	"context"

	"github.com/JepStar990/plainapi/internal/core/domain"
)

// ReportStore persists processing reports, one per input document.
// The storage format is external and swappable; the file adapter writes one
// JSON file per ProcessedDocument.
type ReportStore interface {
	// Save writes one report per processed document and returns the
	// storage locations in input order.
	Save(ctx context.Context, docs []domain.ProcessedDocument) ([]string, error)

	// Load reads all stored reports. A single corrupt report is skipped
	// with a warning, never fatal to the load.
	Load(ctx context.Context) ([]domain.ProcessedDocument, error)
}
