package ocr

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/joseph-ayodele/receipt-extractor/constants"
	"github.com/joseph-ayodele/receipt-extractor/internal/common"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit

	// MinTextDensity is the minimum count of non-whitespace characters per
	// page below which a PDF's native text layer is considered unusable and
	// the scanned-PDF (rasterize + recognize) path is taken instead.
	MinTextDensity int

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	EnableTSVConfidence bool
}

// ExtractionResult is the acquired text plus how it was obtained.
type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr"
	UsedOCR    bool
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MinTextDensity <= 0 {
		cfg.MinTextDensity = 64
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner replaces the command runner; tests stub external binaries here.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract picks a strategy based on file extension.
//
// PDFs get a native text pass first; only when the embedded text layer is
// missing or too sparse does the costly rasterize-then-recognize fallback run.
// The decision is made per document, not per extension, because scanned PDFs
// masquerade as PDFs.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting text acquisition", "path", path, "ext", ext)

	var res ExtractionResult
	var err error
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, path)
	default:
		e.logger.Error("unsupported extension", "extension", ext)
		return ExtractionResult{}, common.NewAppError("ACQUIRE_FORMAT",
			"extension "+ext+" is not extractable", common.ErrUnsupportedFormat)
	}
	res.Duration = time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) || errors.Is(ctxErr, context.Canceled) {
			return res, common.NewAppError("ACQUIRE_TIMEOUT", "acquisition cancelled", common.ErrAcquisitionTimeout)
		}
		return res, common.NewAppError("ACQUIRE_FAILED", err.Error(), common.ErrAcquisitionFailed)
	}
	if strings.TrimSpace(res.Text) == "" {
		return res, common.NewAppError("ACQUIRE_EMPTY", "no text produced", common.ErrAcquisitionFailed)
	}
	return res, nil
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	text, pages, warns, err := e.pdfToText(ctx, path)
	if err == nil && textDensity(text, pages) >= e.cfg.MinTextDensity {
		return ExtractionResult{
			Text:       text,
			Pages:      pages,
			SourceType: constants.PDF,
			Method:     "pdf-text",
			Language:   e.cfg.TesseractLang,
			Warnings:   warns,
			Confidence: 1.0,
		}, nil
	}
	if err != nil {
		warns = append(warns, "pdftotext failed: "+err.Error())
	} else {
		warns = append(warns, "native text layer too sparse, falling back to OCR")
	}
	e.logger.Info("pdf native text unusable, rasterizing", "path", path, "pages", pages)

	text, pages, ocrWarns, err := e.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF, Warnings: warns}, err
	}
	return ExtractionResult{
		Text:       text,
		Pages:      pages,
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		UsedOCR:    true,
		Language:   e.cfg.TesseractLang,
		Warnings:   warns,
		Confidence: heuristicConfidence(text),
	}, nil
}

// textDensity returns non-whitespace characters per page.
func textDensity(text string, pages int) int {
	if pages <= 0 {
		pages = 1
	}
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n / pages
}
