package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// currency symbols and codes stripped before numeric parsing
	reCurrencyAffix = regexp.MustCompile(`(?i)^[$£€¥]\s*|^(?:rm|myr|usd|eur|gbp|sgd|aud|cad|inr)\.?\s*|\s*[$£€¥]$|\s*(?:rm|myr|usd|eur|gbp|sgd|aud|cad|inr)$`)
	reNumericBody   = regexp.MustCompile(`^\d[\d.,]*$`)
)

// ParseAmount normalizes one numeric token to a decimal value.
//
// Accepts comma-decimal and period-decimal notation, thousands separators,
// currency symbols/codes, a leading minus, and accountant-style parentheses
// for negatives. Returns false for anything that is not a single number.
func ParseAmount(token string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return decimal.Decimal{}, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) > 2 {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(reCurrencyAffix.ReplaceAllString(s, ""))
	s = strings.TrimSpace(reCurrencyAffix.ReplaceAllString(s, "")) // symbol and code may both be present
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.TrimSpace(s)
	if s == "" || !reNumericBody.MatchString(s) {
		return decimal.Decimal{}, false
	}
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, ",") {
		s = s[:len(s)-1]
	}

	s = normalizeSeparators(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// normalizeSeparators rewrites s to period-decimal, no thousands separators.
//
// When both separators appear, the later one is the decimal point. A lone
// separator followed by exactly three digits is a thousands separator
// ("1,500" and "4.793" are both 1500 and 4793); any other trailing digit
// count makes it the decimal point.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	var decSep byte
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			decSep = ','
		} else {
			decSep = '.'
		}
	case lastComma >= 0:
		decSep = separatorRole(s, lastComma, ',')
	case lastDot >= 0:
		decSep = separatorRole(s, lastDot, '.')
	default:
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ',', '.':
			if decSep != 0 && i == lastIndex(s, decSep) && c == decSep {
				b.WriteByte('.')
			}
			// other separators are thousands markers, dropped
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// separatorRole decides whether a lone separator at idx is decimal or thousands.
// Returns the separator byte when decimal, 0 when thousands.
func separatorRole(s string, idx int, sep byte) byte {
	if strings.Count(s, string(sep)) > 1 {
		return 0 // repeated separator can only group thousands
	}
	if len(s)-idx-1 == 3 {
		return 0
	}
	return sep
}

func lastIndex(s string, c byte) int {
	return strings.LastIndexByte(s, c)
}

// lastAmountOn returns the last token of line that parses as an amount.
func lastAmountOn(line string) (decimal.Decimal, bool) {
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0; i-- {
		if d, ok := ParseAmount(fields[i]); ok {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}
