package extract

import (
	"context"

	"github.com/joseph-ayodele/receipt-extractor/internal/ocr"
)

// OCRAdapter adapts the ocr.Extractor to the TextAcquirer seam.
type OCRAdapter struct {
	e *ocr.Extractor
}

func NewOCRAdapter(e *ocr.Extractor) *OCRAdapter {
	return &OCRAdapter{e: e}
}

func (a *OCRAdapter) Acquire(ctx context.Context, path string) (AcquiredText, error) {
	r, err := a.e.Extract(ctx, path)
	return AcquiredText{
		Content:    r.Text,
		Pages:      r.Pages,
		SourceType: r.SourceType,
		Method:     r.Method,
		UsedOCR:    r.UsedOCR,
		Confidence: r.Confidence,
		Duration:   r.Duration,
		Warnings:   r.Warnings,
	}, err
}
