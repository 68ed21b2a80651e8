package pipeline

import (
	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
	"github.com/joseph-ayodele/receipt-extractor/internal/extract"
)

// Assemble merges the sub-parser outputs into the final record.
// Pure aggregation; never fails. The raw text is truncated to a bounded
// preview for diagnostics.
func Assemble(
	supplier entity.SupplierInfo,
	document entity.DocumentInfo,
	items []entity.LineItem,
	totals entity.Totals,
	acquired extract.AcquiredText,
	warnings []string,
	previewMaxLen int,
) entity.ExtractionResult {
	if items == nil {
		items = []entity.LineItem{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return entity.ExtractionResult{
		Supplier:       supplier,
		Document:       document,
		LineItems:      items,
		Totals:         totals,
		RawTextPreview: truncateRunes(acquired.Content, previewMaxLen),
		Warnings:       warnings,
		UsedOCR:        acquired.UsedOCR,
		Confidence:     acquired.Confidence,
	}
}

// truncateRunes caps s at max runes without splitting a multibyte character.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
