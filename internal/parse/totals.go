package parse

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
)

// totals rule table: keyword anchors evaluated in order per line, first match
// per field wins. Specific labels come before the bare "total" catch-all so a
// "Subtotal" line never fills the grand total.
var totalsRules = []struct {
	field   string
	re      *regexp.Regexp
	exclude *regexp.Regexp
	set     func(*entity.Totals, decimal.Decimal) bool
}{
	{
		field: "subtotal",
		re:    regexp.MustCompile(`(?i)\bsub\s*-?total\b`),
		set: func(t *entity.Totals, d decimal.Decimal) bool {
			if t.Subtotal != nil {
				return false
			}
			t.Subtotal = &d
			return true
		},
	},
	{
		field:   "tax_amount",
		re:      regexp.MustCompile(`(?i)\b(?:tax|gst|sst|vat|service\s*charge)\b`),
		exclude: regexp.MustCompile(`(?i)\btax\s*(?:id|no|number|invoice)\b|\b(?:gst|vat|sst)\s*(?:id|no|reg)\b`),
		set: func(t *entity.Totals, d decimal.Decimal) bool {
			if t.TaxAmount != nil {
				return false
			}
			t.TaxAmount = &d
			return true
		},
	},
	{
		field: "discount",
		re:    regexp.MustCompile(`(?i)\bdiscount\b`),
		set: func(t *entity.Totals, d decimal.Decimal) bool {
			if t.Discount != nil {
				return false
			}
			t.Discount = &d
			return true
		},
	},
	{
		field:   "grand_total",
		re:      regexp.MustCompile(`(?i)\b(?:grand\s*total|total\s*(?:amount|due|payable)|amount\s*due|balance\s*due|total)\b`),
		exclude: regexp.MustCompile(`(?i)\b(?:sub\s*-?total|total\s*qty|total\s*items?|articles?)\b`),
		set: func(t *entity.Totals, d decimal.Decimal) bool {
			if t.GrandTotal != nil {
				return false
			}
			t.GrandTotal = &d
			return true
		},
	},
	{
		// amount-in-words line: the trailing figure restates the grand total
		field: "grand_total",
		re:    regexp.MustCompile(`(?i)\bringgit\s+malaysia\b|\bdollars?\s+only\b|\bamount\s+in\s+words\b`),
		set: func(t *entity.Totals, d decimal.Decimal) bool {
			if t.GrandTotal != nil {
				return false
			}
			t.GrandTotal = &d
			return true
		},
	},
}

// ParseTotals scans the region after the item table for labeled amounts,
// using the same numeric normalization as the line-item parser.
// Never fails; unmatched fields stay unset.
func ParseTotals(lines []string, cfg Config) entity.Totals {
	_ = cfg.withDefaults()

	var totals entity.Totals
	for _, line := range lines {
		for _, rule := range totalsRules {
			if !rule.re.MatchString(line) {
				continue
			}
			if rule.exclude != nil && rule.exclude.MatchString(line) {
				continue
			}
			d, ok := lastAmountOn(line)
			if !ok {
				continue
			}
			rule.set(&totals, d)
		}
	}
	return totals
}
