package entity

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-extractor/constants"
)

// SupplierInfo identifies the party that issued the document.
// Every field is optional; absence is an expected state, not an error.
type SupplierInfo struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	TaxID   *string `json:"tax_id"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

// DocumentInfo carries the transactional header of the document.
type DocumentInfo struct {
	DocumentType   constants.DocumentType `json:"document_type"`
	DocumentNumber *string                `json:"document_number"`
	IssueDate      *string                `json:"issue_date"` // canonical 2006-01-02
	PaymentTerms   *string                `json:"payment_terms"`
}

// LineItem is one purchased row of the item table.
// When all three numeric fields are set, LineTotal ≈ Quantity × UnitPrice
// within the reconciliation tolerance; violations are flagged, not corrected.
type LineItem struct {
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	LineTotal   *decimal.Decimal `json:"line_total"`
}

// Totals is the stated totals block of the document.
type Totals struct {
	Subtotal   *decimal.Decimal `json:"subtotal"`
	TaxAmount  *decimal.Decimal `json:"tax_amount"`
	Discount   *decimal.Decimal `json:"discount"`
	GrandTotal *decimal.Decimal `json:"grand_total"`
}

// ExtractionResult is the root record produced once per input file.
// Immutable after assembly.
type ExtractionResult struct {
	Supplier       SupplierInfo `json:"supplier"`
	Document       DocumentInfo `json:"document"`
	LineItems      []LineItem   `json:"line_items"`
	Totals         Totals       `json:"totals"`
	RawTextPreview string       `json:"raw_text_preview"`
	Warnings       []string     `json:"warnings"`
	UsedOCR        bool         `json:"used_optical_recognition"`
	Confidence     float32      `json:"confidence"`
}
