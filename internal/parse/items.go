package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
)

var (
	// a column header row marks the start of the item table
	reItemsHeader = regexp.MustCompile(`(?i)^(?:no\.?\s+)?(?:item|description|product|particulars|code)\b.*\b(?:qty|quantity|price|amount|total|uom)\b`)

	// known non-item markers end the table scan
	reTableEnd = regexp.MustCompile(`(?i)^(?:sub\s*-?total|total|grand\s*total|amount\s*(?:due|payable)|balance|rounding|change|tax\b|gst\b|sst\b|vat\b|service\s*charge|discount|ringgit\s+malaysia|amount\s+in\s+words|thank\s+you|payment|cash\s+received|visa|mastercard)`)

	reLineNo  = regexp.MustCompile(`^\d{1,3}[.)]\s+`)
	rePercent = regexp.MustCompile(`^\d{1,3}(?:\.\d+)?%$`)
	reAlpha   = regexp.MustCompile(`^[A-Za-z"']{1,6}$`)
	reTwoDec  = regexp.MustCompile(`\.\d{2}$|,\d{2}$`)
)

// ParseLineItems extracts the item table from lines.
//
// The table is the contiguous region between a detected header row (or the
// first line shaped like an item) and the first non-item marker. Each line
// yields description text plus up to three trailing numeric tokens; a line
// with no numeric tokens at all is a wrapped description and is merged into
// the previous item. Returns the items, the index where the totals scan
// should begin, and any warnings. Without any table the totals scan covers
// the whole sequence: a stated total on an itemless receipt must still be
// found.
func ParseLineItems(lines []string, cfg Config) ([]entity.LineItem, int, []string) {
	cfg = cfg.withDefaults()

	start, headerFound := findTableStart(lines)
	if start < 0 {
		return nil, 0, nil
	}

	var items []entity.LineItem
	var warnings []string
	end := len(lines)

	for i := start; i < len(lines); i++ {
		line := lines[i]
		if reTableEnd.MatchString(line) {
			end = i
			break
		}

		desc, nums, _ := tokenizeItemLine(line)
		if len(nums) == 0 {
			// continuation: wrapped description belongs to the previous item
			if len(items) > 0 {
				items[len(items)-1].Description = strings.TrimSpace(items[len(items)-1].Description + " " + line)
			} else if !headerFound {
				// noise before the first real item; ignore
				continue
			} else if strings.TrimSpace(line) != "" {
				warnings = append(warnings, "dropped orphan table line: "+line)
			}
			continue
		}

		items = append(items, buildItem(desc, nums))
	}

	return items, end, warnings
}

// findTableStart returns the index of the first item line and whether a
// column header row located it. -1 when no table is present.
func findTableStart(lines []string) (int, bool) {
	for i, line := range lines {
		if reItemsHeader.MatchString(line) {
			return i + 1, true
		}
	}
	// no header row: the first line shaped like an item starts the table
	for i, line := range lines {
		if reTableEnd.MatchString(line) {
			continue
		}
		desc, nums, money := tokenizeItemLine(line)
		if desc == "" {
			continue
		}
		if len(nums) >= 2 || (len(nums) == 1 && money) {
			return i, false
		}
	}
	return -1, false
}

// tokenizeItemLine splits a candidate line into description text and its
// trailing numeric tokens. Unit-of-measure words sitting between numeric
// columns and trailing percent discounts are tolerated. money reports whether
// any numeric token carried a two-decimal amount shape.
func tokenizeItemLine(line string) (desc string, nums []decimal.Decimal, money bool) {
	stripped := reLineNo.ReplaceAllString(line, "")
	tokens := strings.Fields(stripped)
	if len(tokens) == 0 {
		return "", nil, false
	}

	first := len(tokens) // index of the first token consumed as a column
	for i := len(tokens) - 1; i >= 0 && len(nums) < 3; i-- {
		tok := tokens[i]
		if rePercent.MatchString(tok) {
			first = i
			continue
		}
		if d, ok := ParseAmount(tok); ok {
			nums = append([]decimal.Decimal{d}, nums...)
			if reTwoDec.MatchString(tok) {
				money = true
			}
			first = i
			continue
		}
		// a short alpha token directly after a numeric column is a UOM word
		if reAlpha.MatchString(tok) && len(nums) > 0 && i > 0 {
			if _, ok := ParseAmount(tokens[i-1]); ok {
				first = i
				continue
			}
		}
		break
	}

	desc = strings.TrimSpace(strings.Join(tokens[:first], " "))
	return desc, nums, money
}

// buildItem maps trailing numeric columns onto the item fields:
// three numbers are quantity, unit price, line total; two are unit price and
// line total; one is the line total. Quantity defaults at reconciliation
// time when unset.
func buildItem(desc string, nums []decimal.Decimal) entity.LineItem {
	item := entity.LineItem{Description: desc}
	switch len(nums) {
	case 3:
		item.Quantity = &nums[0]
		item.UnitPrice = &nums[1]
		item.LineTotal = &nums[2]
	case 2:
		item.UnitPrice = &nums[0]
		item.LineTotal = &nums[1]
	case 1:
		item.LineTotal = &nums[0]
	}
	return item
}
