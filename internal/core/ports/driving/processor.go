package driving

import (
	"context"

	"github.com/JepStar990/plainapi/internal/core/domain"
)

// Processor turns raw documents into processed documents.
type Processor interface {
	// ProcessAll processes each raw document independently, returning one
	// result per input in input order. A failing document yields a result
	// with empty chunks and a recorded error; it never aborts the batch.
	ProcessAll(ctx context.Context, raws []domain.RawDocument) []domain.ProcessedDocument

	// Process processes a single raw document.
	Process(ctx context.Context, raw domain.RawDocument) (domain.ProcessedDocument, error)
}
