package parse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
)

func d(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestReconcileConsistentDocumentIsSilent(t *testing.T) {
	items := []entity.LineItem{
		{Description: "Widget A", Quantity: d("2"), UnitPrice: d("5.00"), LineTotal: d("10.00")},
		{Description: "Gadget B", Quantity: d("1"), UnitPrice: d("15.50"), LineTotal: d("15.50")},
	}
	totals := entity.Totals{Subtotal: d("25.50"), TaxAmount: d("1.53"), GrandTotal: d("27.03")}

	got, warns := Reconcile(items, totals, Config{})
	assert.Empty(t, warns)
	dec(t, got.Subtotal, "25.5")
	dec(t, got.GrandTotal, "27.03")
}

func TestReconcileStatedSubtotalKeptOnMismatch(t *testing.T) {
	items := []entity.LineItem{
		{Description: "Widget", LineTotal: d("10.00")},
		{Description: "Gadget", LineTotal: d("4.00")},
	}
	totals := entity.Totals{Subtotal: d("20.00"), GrandTotal: d("20.00")}

	got, warns := Reconcile(items, totals, Config{})

	// stated value survives, the discrepancy is only flagged
	dec(t, got.Subtotal, "20")
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "subtotal")
}

func TestReconcileFillsUnsetSubtotalFromItems(t *testing.T) {
	items := []entity.LineItem{
		{Description: "Roti", LineTotal: d("3.00")},
		{Description: "Susu", LineTotal: d("4.70")},
	}
	got, warns := Reconcile(items, entity.Totals{}, Config{})

	require.NotNil(t, got.Subtotal)
	dec(t, got.Subtotal, "7.7")
	require.NotNil(t, got.GrandTotal)
	dec(t, got.GrandTotal, "7.7")
	assert.Empty(t, warns)
}

func TestReconcileGrandTotalFromComponents(t *testing.T) {
	totals := entity.Totals{Subtotal: d("100.00"), TaxAmount: d("6.00"), Discount: d("10.00")}
	got, warns := Reconcile(nil, totals, Config{})

	require.NotNil(t, got.GrandTotal)
	dec(t, got.GrandTotal, "96")
	assert.Empty(t, warns)
}

func TestReconcileQuantityDefaultsToOne(t *testing.T) {
	items := []entity.LineItem{
		{Description: "Service", UnitPrice: d("25.00")},
	}
	got, warns := Reconcile(items, entity.Totals{}, Config{})
	require.NotNil(t, got.Subtotal)
	dec(t, got.Subtotal, "25")
	assert.Empty(t, warns)
}

func TestReconcileFlagsInconsistentItem(t *testing.T) {
	items := []entity.LineItem{
		{Description: "Widget", Quantity: d("2"), UnitPrice: d("5.00"), LineTotal: d("12.00")},
	}
	_, warns := Reconcile(items, entity.Totals{}, Config{})
	require.NotEmpty(t, warns)
	assert.Contains(t, warns[0], "Widget")
}

func TestReconcileItemWithoutAmountsExcluded(t *testing.T) {
	items := []entity.LineItem{
		{Description: "mystery row"},
		{Description: "Widget", LineTotal: d("10.00")},
	}
	got, warns := Reconcile(items, entity.Totals{}, Config{})
	dec(t, got.Subtotal, "10")
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "mystery row")
}

func TestReconcileToleranceAbsorbsRounding(t *testing.T) {
	items := []entity.LineItem{
		{Description: "Widget", LineTotal: d("10.02")},
	}
	totals := entity.Totals{Subtotal: d("10.00")}
	_, warns := Reconcile(items, totals, Config{})
	assert.Empty(t, warns, "0.02 drift sits inside the default tolerance")
}

func TestReconcileRelativeToleranceScalesWithValue(t *testing.T) {
	// 1% of 10000 is 100: a 50 drift passes on a large document
	items := []entity.LineItem{
		{Description: "Bulk order", LineTotal: d("10050.00")},
	}
	totals := entity.Totals{Subtotal: d("10000.00")}
	_, warns := Reconcile(items, totals, Config{})
	assert.Empty(t, warns)

	// the same absolute drift fails on a small document
	items = []entity.LineItem{
		{Description: "Small order", LineTotal: d("60.00")},
	}
	totals = entity.Totals{Subtotal: d("10.00")}
	_, warns = Reconcile(items, totals, Config{})
	assert.NotEmpty(t, warns)
}
