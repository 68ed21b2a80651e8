package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
	"github.com/joseph-ayodele/receipt-extractor/internal/extract"
	"github.com/joseph-ayodele/receipt-extractor/internal/ocr"
	"github.com/joseph-ayodele/receipt-extractor/internal/parse"
)

// Config holds pipeline-level tunables.
type Config struct {
	Parse         parse.Config
	PreviewMaxLen int // raw_text_preview truncation, in runes
}

// Pipeline coordinates acquisition, normalization, field parsing,
// reconciliation, and assembly for one file. Data flows strictly forward;
// every stage past acquisition degrades to partial data instead of failing.
type Pipeline struct {
	Logger   *slog.Logger
	Acquirer extract.TextAcquirer
	Cfg      Config
}

func NewPipeline(acquirer extract.TextAcquirer, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PreviewMaxLen <= 0 {
		cfg.PreviewMaxLen = 1200
	}
	return &Pipeline{Logger: logger, Acquirer: acquirer, Cfg: cfg}
}

// Run extracts one file into a structured record.
// Acquisition errors are the only fatal outcome; everything downstream
// produces a best-effort result plus human-readable warnings.
func (p *Pipeline) Run(ctx context.Context, path string) (entity.ExtractionResult, error) {
	acquired, err := p.Acquirer.Acquire(ctx, path)
	if err != nil {
		p.Logger.Error("pipeline.acquire.failed", "path", path, "error", err)
		return entity.ExtractionResult{}, err
	}
	p.Logger.Info("pipeline.acquire.ok",
		"path", path,
		"method", acquired.Method,
		"pages", acquired.Pages,
		"used_ocr", acquired.UsedOCR,
		"confidence", acquired.Confidence,
	)

	lines := ocr.SplitLines(acquired.Content)

	supplier := parse.ParseSupplier(lines, p.Cfg.Parse)
	document, headerWarns := parse.ParseHeader(lines, p.Cfg.Parse)
	items, tableEnd, itemWarns := parse.ParseLineItems(lines, p.Cfg.Parse)
	totals := parse.ParseTotals(lines[tableEnd:], p.Cfg.Parse)
	totals, reconWarns := parse.Reconcile(items, totals, p.Cfg.Parse)

	var warnings []string
	warnings = append(warnings, acquired.Warnings...)
	warnings = append(warnings, headerWarns...)
	warnings = append(warnings, itemWarns...)
	warnings = append(warnings, reconWarns...)

	result := Assemble(supplier, document, items, totals, acquired, warnings, p.Cfg.PreviewMaxLen)
	p.Logger.Info("pipeline.parse.ok",
		"path", path,
		"doc_type", result.Document.DocumentType,
		"items", len(result.LineItems),
		"warnings", len(result.Warnings),
	)
	return result, nil
}
