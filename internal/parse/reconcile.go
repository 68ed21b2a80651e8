package parse

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
)

// Reconcile cross-checks the stated totals against a sum computed from the
// line items.
//
// The computed sum uses each item's line total, or quantity × unit price when
// the total is missing; items contributing neither are excluded with a
// warning. Stated values are never overwritten: a mismatch beyond tolerance
// is flagged and the stated value kept. Only entirely unset fields are filled
// from computed data.
func Reconcile(items []entity.LineItem, totals entity.Totals, cfg Config) (entity.Totals, []string) {
	cfg = cfg.withDefaults()
	var warnings []string

	computed := decimal.Zero
	counted := 0
	for i, item := range items {
		switch {
		case item.LineTotal != nil:
			computed = computed.Add(*item.LineTotal)
			counted++
		case item.UnitPrice != nil:
			qty := decimal.NewFromInt(1)
			if item.Quantity != nil {
				qty = *item.Quantity
			}
			computed = computed.Add(qty.Mul(*item.UnitPrice))
			counted++
		default:
			warnings = append(warnings, fmt.Sprintf("line item %d (%q) has no amounts; excluded from reconciliation", i+1, item.Description))
		}

		// per-item consistency: flagged, never corrected
		if item.Quantity != nil && item.UnitPrice != nil && item.LineTotal != nil {
			expect := item.Quantity.Mul(*item.UnitPrice)
			if diff := expect.Sub(*item.LineTotal).Abs(); diff.GreaterThan(tolerance(cfg, *item.LineTotal)) {
				warnings = append(warnings, fmt.Sprintf(
					"line item %d (%q): total %s does not match %s × %s",
					i+1, item.Description, item.LineTotal, item.Quantity, item.UnitPrice))
			}
		}
	}

	if counted > 0 {
		if totals.Subtotal == nil {
			// fill, never overwrite
			c := computed
			totals.Subtotal = &c
		} else if diff := totals.Subtotal.Sub(computed).Abs(); diff.GreaterThan(tolerance(cfg, *totals.Subtotal)) {
			warnings = append(warnings, fmt.Sprintf(
				"stated subtotal %s differs from computed item sum %s beyond tolerance", totals.Subtotal, computed))
		}
	}

	if totals.GrandTotal == nil && totals.Subtotal != nil {
		g := totals.Subtotal.Add(orZero(totals.TaxAmount)).Sub(orZero(totals.Discount))
		totals.GrandTotal = &g
	} else if totals.GrandTotal != nil && totals.Subtotal != nil {
		expect := totals.Subtotal.Add(orZero(totals.TaxAmount)).Sub(orZero(totals.Discount))
		if diff := expect.Sub(*totals.GrandTotal).Abs(); diff.GreaterThan(tolerance(cfg, *totals.GrandTotal)) {
			warnings = append(warnings, fmt.Sprintf(
				"stated grand total %s does not match subtotal %s + tax %s - discount %s",
				totals.GrandTotal, totals.Subtotal, orZero(totals.TaxAmount), orZero(totals.Discount)))
		}
	}

	return totals, warnings
}

// tolerance is the greater of the absolute floor and the relative share of ref.
func tolerance(cfg Config, ref decimal.Decimal) decimal.Decimal {
	rel := cfg.RelTolerance.Mul(ref.Abs())
	if rel.GreaterThan(cfg.AbsTolerance) {
		return rel
	}
	return cfg.AbsTolerance
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
