package services

import (
	"context"
	"fmt"
	"time"

	"github.com/JepStar990/plainapi/internal/core/domain"
	"github.com/JepStar990/plainapi/internal/core/ports/driving"
	"github.com/JepStar990/plainapi/internal/logger"
	"github.com/JepStar990/plainapi/internal/processing/assembler"
	"github.com/JepStar990/plainapi/internal/processing/classifier"
	"github.com/JepStar990/plainapi/internal/processing/metadata"
)

// Ensure Processor implements the interface.
var _ driving.Processor = (*Processor)(nil)

// Processor runs the classify → extract → segment → assemble pipeline over
// raw documents, one at a time.
type Processor struct {
	extractor *metadata.Extractor
	assembler *assembler.Assembler
}

// NewProcessor creates a processor from its pipeline stages.
func NewProcessor(extractor *metadata.Extractor, asm *assembler.Assembler) *Processor {
	if extractor == nil {
		extractor = metadata.New()
	}
	if asm == nil {
		asm = assembler.New()
	}
	return &Processor{
		extractor: extractor,
		assembler: asm,
	}
}

// ProcessAll processes each raw document independently. One result is
// returned per input, in input order. A document that fails yields a result
// with empty chunks, zero processing time and the error message recorded;
// the failure never aborts the batch and is never retried.
func (p *Processor) ProcessAll(ctx context.Context, raws []domain.RawDocument) []domain.ProcessedDocument {
	results := make([]domain.ProcessedDocument, 0, len(raws))

	for _, raw := range raws {
		processed, err := p.Process(ctx, raw)
		if err != nil {
			logger.Warn("Failed to process %s: %v", raw.URL, err)
			results = append(results, domain.ProcessedDocument{
				OriginalURL:    raw.URL,
				Chunks:         []domain.Chunk{},
				TotalChunks:    0,
				ProcessingTime: 0,
				Errors:         []string{err.Error()},
			})
			continue
		}
		results = append(results, processed)
	}

	return results
}

// Process runs the pipeline over a single raw document, measuring wall-clock
// time from classification through assembly. Panics from any stage are
// recovered at this boundary and downgraded to errors, so one malformed
// document cannot take down a batch.
func (p *Processor) Process(_ context.Context, raw domain.RawDocument) (processed domain.ProcessedDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing %s: %v", raw.URL, r)
		}
	}()

	if raw.URL == "" {
		return domain.ProcessedDocument{}, fmt.Errorf("%w: document has no source URL", domain.ErrEmptyDocument)
	}

	start := time.Now()

	docType := classifier.Classify(raw.URL, raw.Content)
	md := p.extractor.Extract(raw, docType)
	chunks := p.assembler.Assemble(raw.Content, raw.URL, docType, md)
	if chunks == nil {
		chunks = []domain.Chunk{}
	}

	logger.Debug("Processed %s: type=%s chunks=%d", raw.URL, docType, len(chunks))

	return domain.ProcessedDocument{
		OriginalURL:    raw.URL,
		Chunks:         chunks,
		TotalChunks:    len(chunks),
		ProcessingTime: time.Since(start).Seconds(),
		Errors:         []string{},
	}, nil
}
