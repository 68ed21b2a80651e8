package pipeline

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-extractor/internal/common"
	"github.com/joseph-ayodele/receipt-extractor/internal/extract"
	"github.com/joseph-ayodele/receipt-extractor/internal/ocr"
	"github.com/joseph-ayodele/receipt-extractor/internal/parse"
)

// FromAppConfig builds the standard pipeline from application configuration:
// external-tool acquisition wired to the rule-based parsers.
func FromAppConfig(cfg *common.Config, logger *slog.Logger) *Pipeline {
	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:      cfg.OCR.Pdftotext,
		Pdftoppm:       cfg.OCR.Pdftoppm,
		Tesseract:      cfg.OCR.Tesseract,
		TesseractLang:  cfg.OCR.TesseractLang,
		DPI:            cfg.OCR.DPI,
		MaxPages:       cfg.OCR.MaxPages,
		MinTextDensity: cfg.OCR.MinTextDensity,
	}, logger)

	parseCfg := parse.Config{
		HeaderWindow: cfg.Parse.HeaderWindow,
		DateFormats:  cfg.Parse.DateFormats,
		AbsTolerance: decimalOrZero(cfg.Parse.AbsTolerance),
		RelTolerance: decimalOrZero(cfg.Parse.RelTolerance),
	}

	return NewPipeline(extract.NewOCRAdapter(extractor), Config{
		Parse:         parseCfg,
		PreviewMaxLen: cfg.Parse.PreviewMaxLen,
	}, logger)
}

// decimalOrZero leaves bad tolerance strings at zero so the parser defaults
// apply instead of failing startup.
func decimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
