package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, item interface{ String() string }, want string) {
	t.Helper()
	assert.Equal(t, want, item.String())
}

func TestParseLineItemsWithHeaderRow(t *testing.T) {
	lines := []string{
		"No  Description        Qty  Unit Price  Amount",
		"1.  Widget A           2    5.00        10.00",
		"2.  Gadget B           1    15.50       15.50",
		"3.  Service fee                         25.00",
		"Subtotal                                50.50",
		"Total                                   50.50",
	}
	items, end, warns := ParseLineItems(lines, Config{})

	require.Len(t, items, 3)
	assert.Empty(t, warns)
	assert.Equal(t, 4, end, "table must end at the subtotal line")

	assert.Equal(t, "Widget A", items[0].Description)
	require.NotNil(t, items[0].Quantity)
	dec(t, items[0].Quantity, "2")
	dec(t, items[0].UnitPrice, "5")
	dec(t, items[0].LineTotal, "10")

	assert.Equal(t, "Service fee", items[2].Description)
	assert.Nil(t, items[2].Quantity)
	assert.Nil(t, items[2].UnitPrice)
	dec(t, items[2].LineTotal, "25")
}

func TestParseLineItemsContinuationMerge(t *testing.T) {
	lines := []string{
		"Item Description Qty Price Amount",
		"1. Extended warranty plan 1 99.00 99.00",
		"covers parts and labour",
		"2. Delivery 1 10.00 10.00",
		"Total 109.00",
	}
	items, _, warns := ParseLineItems(lines, Config{})

	require.Len(t, items, 2)
	assert.Empty(t, warns)
	assert.Equal(t, "Extended warranty plan covers parts and labour", items[0].Description)
	assert.Equal(t, "Delivery", items[1].Description)
}

func TestParseLineItemsContinuationNeverIncreasesCount(t *testing.T) {
	base := []string{
		"Item Description Qty Price Amount",
		"1. Thing one 1 5.00 5.00",
		"2. Thing two 1 6.00 6.00",
		"Total 11.00",
	}
	withWrap := []string{
		"Item Description Qty Price Amount",
		"1. Thing one 1 5.00 5.00",
		"wrapped detail text",
		"2. Thing two 1 6.00 6.00",
		"Total 11.00",
	}
	a, _, _ := ParseLineItems(base, Config{})
	b, _, _ := ParseLineItems(withWrap, Config{})
	assert.Equal(t, len(a), len(b))
}

func TestParseLineItemsWithoutHeaderRow(t *testing.T) {
	lines := []string{
		"CASH SALE",
		"Date: 01/02/2024",
		"Roti 2 1,50 3,00",
		"Susu 1 4,70 4,70",
		"Total 7,70",
	}
	items, end, _ := ParseLineItems(lines, Config{})

	require.Len(t, items, 2)
	assert.Equal(t, 4, end)
	assert.Equal(t, "Roti", items[0].Description)
	dec(t, items[0].UnitPrice, "1.5")
	dec(t, items[0].LineTotal, "3")
}

func TestParseLineItemsUnitOfMeasureToken(t *testing.T) {
	lines := []string{
		"Item Description Qty UOM Price Amount",
		"1. Nails 2 pcs 5.00 10.00",
		"Total 10.00",
	}
	items, _, _ := ParseLineItems(lines, Config{})

	require.Len(t, items, 1)
	assert.Equal(t, "Nails", items[0].Description)
	dec(t, items[0].Quantity, "2")
	dec(t, items[0].UnitPrice, "5")
	dec(t, items[0].LineTotal, "10")
}

func TestParseLineItemsPercentDiscountColumn(t *testing.T) {
	lines := []string{
		"Item Description Qty Price Disc Amount",
		"1. Widget 2 5.00 10% 9.00",
		"Total 9.00",
	}
	items, _, _ := ParseLineItems(lines, Config{})

	require.Len(t, items, 1)
	dec(t, items[0].Quantity, "2")
	dec(t, items[0].UnitPrice, "5")
	dec(t, items[0].LineTotal, "9")
}

func TestParseLineItemsNoTable(t *testing.T) {
	lines := []string{
		"RECEIPT",
		"thank you for your visit",
	}
	items, end, warns := ParseLineItems(lines, Config{})
	assert.Empty(t, items)
	assert.Equal(t, 0, end, "without a table the totals scan must cover everything")
	assert.Empty(t, warns)
}

func TestParseLineItemsItemlessReceiptKeepsTotalsRegion(t *testing.T) {
	// flat-fee receipts have no item table at all; the stated total still
	// has to be reachable by the totals scan
	lines := []string{
		"PARKING RECEIPT",
		"Date: 01/02/2024",
		"Total 5.00",
	}
	items, end, _ := ParseLineItems(lines, Config{})
	require.Empty(t, items)

	totals := ParseTotals(lines[end:], Config{})
	require.NotNil(t, totals.GrandTotal)
	dec(t, totals.GrandTotal, "5")
}
