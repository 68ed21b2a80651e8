package extract

import (
	"context"
	"time"
)

// TextAcquirer is Stage 1: file -> raw text.
type TextAcquirer interface {
	Acquire(ctx context.Context, path string) (AcquiredText, error)
}

// AcquiredText is the raw text of one input file plus how it was obtained.
// Produced once per file; immutable; consumed by the normalizer.
type AcquiredText struct {
	Content    string
	Pages      int
	SourceType string // "PDF" | "IMAGE"
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr"
	UsedOCR    bool
	Confidence float32
	Duration   time.Duration
	Warnings   []string
}
