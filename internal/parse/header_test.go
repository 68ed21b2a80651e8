package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/receipt-extractor/constants"
)

func TestParseHeaderInvoice(t *testing.T) {
	lines := []string{
		"TAX INVOICE",
		"Invoice No: INV-2024-0042",
		"Invoice Date: 15/03/2024",
		"Payment Terms: Net 30",
	}
	got, warns := ParseHeader(lines, Config{})

	assert.Equal(t, constants.DocTypeInvoice, got.DocumentType)
	require.NotNil(t, got.DocumentNumber)
	assert.Equal(t, "INV-2024-0042", *got.DocumentNumber)
	require.NotNil(t, got.IssueDate)
	assert.Equal(t, "2024-03-15", *got.IssueDate)
	require.NotNil(t, got.PaymentTerms)
	assert.Equal(t, "Net 30", *got.PaymentTerms)
	assert.Empty(t, warns)
}

func TestParseHeaderCashSale(t *testing.T) {
	lines := []string{
		"CASH SALE",
		"Cash Sale No. CS123456",
		"Date: 01/02/2024",
	}
	got, warns := ParseHeader(lines, Config{})

	assert.Equal(t, constants.DocTypeReceipt, got.DocumentType)
	require.NotNil(t, got.DocumentNumber)
	assert.Equal(t, "CS123456", *got.DocumentNumber)
	require.NotNil(t, got.IssueDate)
	assert.Equal(t, "2024-02-01", *got.IssueDate)
	assert.Nil(t, got.PaymentTerms)
	assert.Empty(t, warns)
}

func TestParseHeaderCreditNoteBeatsInvoiceKeyword(t *testing.T) {
	lines := []string{
		"CREDIT NOTE",
		"applies to invoice INV-00123",
	}
	got, _ := ParseHeader(lines, Config{})
	assert.Equal(t, constants.DocTypeCreditNote, got.DocumentType)
}

func TestParseHeaderUnknownType(t *testing.T) {
	got, _ := ParseHeader([]string{"some unlabeled scrap of paper"}, Config{})
	assert.Equal(t, constants.DocTypeUnknown, got.DocumentType)
	assert.Nil(t, got.DocumentNumber)
	assert.Nil(t, got.IssueDate)
}

func TestParseHeaderUnparseableDateWarns(t *testing.T) {
	lines := []string{
		"RECEIPT",
		"Date: 99/99/2024",
	}
	got, warns := ParseHeader(lines, Config{})
	assert.Nil(t, got.IssueDate)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "99/99/2024")
}

func TestParseHeaderPrefersLabeledDate(t *testing.T) {
	// a delivery date earlier in the text must not shadow the labeled one
	lines := []string{
		"Delivered 01/01/2024",
		"Invoice Date: 15/03/2024",
	}
	got, _ := ParseHeader(lines, Config{})
	require.NotNil(t, got.IssueDate)
	assert.Equal(t, "2024-03-15", *got.IssueDate)
}

func TestParseHeaderNetTermsWithoutLabel(t *testing.T) {
	lines := []string{"INVOICE", "Due on receipt"}
	got, _ := ParseHeader(lines, Config{})
	require.NotNil(t, got.PaymentTerms)
	assert.Equal(t, "Due on receipt", *got.PaymentTerms)
}
