// Package export writes extraction results to XLSX workbooks.
package export

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
)

const (
	summarySheet = "Receipts"
	itemsSheet   = "Line Items"
)

var summaryHeader = []string{
	"Key", "Supplier", "Document Type", "Document Number", "Issue Date",
	"Subtotal", "Tax", "Discount", "Grand Total", "OCR", "Confidence", "Warnings",
}

var itemsHeader = []string{
	"Key", "Description", "Quantity", "Unit Price", "Line Total",
}

// Exporter renders extraction results as a two-sheet workbook: one summary
// row per document plus a flattened line-item sheet.
type Exporter struct {
	logger *slog.Logger
}

func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// WriteFile writes the workbook to path. Results are keyed the same way the
// batch envelope keys them, and rows are emitted in key order.
func (e *Exporter) WriteFile(results map[string]entity.ExtractionResult, path string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("workbook close failed", "error", err)
		}
	}()

	f.SetSheetName(f.GetSheetName(0), summarySheet)
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return fmt.Errorf("create items sheet: %w", err)
	}

	if err := writeRow(f, summarySheet, 1, toAny(summaryHeader)); err != nil {
		return err
	}
	if err := writeRow(f, itemsSheet, 1, toAny(itemsHeader)); err != nil {
		return err
	}

	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	summaryRow, itemRow := 2, 2
	for _, key := range keys {
		res := results[key]
		row := []any{
			key,
			deref(res.Supplier.Name),
			string(res.Document.DocumentType),
			deref(res.Document.DocumentNumber),
			deref(res.Document.IssueDate),
			amount(res.Totals.Subtotal),
			amount(res.Totals.TaxAmount),
			amount(res.Totals.Discount),
			amount(res.Totals.GrandTotal),
			res.UsedOCR,
			res.Confidence,
			joinWarnings(res.Warnings),
		}
		if err := writeRow(f, summarySheet, summaryRow, row); err != nil {
			return err
		}
		summaryRow++

		for _, item := range res.LineItems {
			itemCells := []any{
				key,
				item.Description,
				amount(item.Quantity),
				amount(item.UnitPrice),
				amount(item.LineTotal),
			}
			if err := writeRow(f, itemsSheet, itemRow, itemCells); err != nil {
				return err
			}
			itemRow++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	e.logger.Info("workbook written", "path", path, "documents", len(results), "item_rows", itemRow-2)
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name for (%d,%d): %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// amount renders a decimal with two places, empty when unset.
func amount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func joinWarnings(ws []string) string {
	out := ""
	for i, w := range ws {
		if i > 0 {
			out += "; "
		}
		out += w
	}
	return out
}
