package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/receipt-extractor/constants"
	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
)

// document type keywords, checked in precedence order: the most specific
// first, so "credit note" never classifies as an invoice and invoice keywords
// win over generic receipt ones.
var docTypeRules = []struct {
	docType constants.DocumentType
	re      *regexp.Regexp
}{
	{constants.DocTypeCreditNote, regexp.MustCompile(`(?i)\bcredit\s+(?:note|memo)\b`)},
	{constants.DocTypeInvoice, regexp.MustCompile(`(?i)\b(?:tax\s+invoice|invoice|bill\s+to)\b`)},
	{constants.DocTypeReceipt, regexp.MustCompile(`(?i)\b(?:receipt|cash\s+sales?|sales\s+slip)\b`)},
}

// document number patterns, first match wins. Labeled forms come first,
// bare serial forms (layout-specific prefixes) last.
var docNumberRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:invoice|inv|bill|receipt|credit\s*note|document|doc|ref(?:erence)?)\s*(?:no|num|number)?\.?\s*[:#-]\s*([A-Z0-9][A-Z0-9/-]{2,})`),
	regexp.MustCompile(`(?i)\bcash\s*sales?\s*no\.?\s*[:#-]?\s*([A-Z0-9][A-Z0-9/-]{2,})`),
	regexp.MustCompile(`(?i)\b(?:invoice|receipt)\s*(?:no|num|number|#)\.?\s*([A-Z0-9][A-Z0-9/-]{2,})`),
	regexp.MustCompile(`\b([A-Z]{2,4}-\d{5,})\b`),
	regexp.MustCompile(`\b(CS\d{6,})\b`),
}

var (
	reDateLabel  = regexp.MustCompile(`(?i)\b(?:invoice\s+date|issue\s+date|dated?)\b`)
	reTermsLabel = regexp.MustCompile(`(?i)\bpayment\s+terms?\b|\bterms?\b\s*[:.]`)
	reTermsValue = regexp.MustCompile(`(?i)(?:payment\s+terms?|terms?)\s*[:.]?\s*(.+)$`)
	reNetTerms   = regexp.MustCompile(`(?i)\b(net\s*\d+|due\s+on\s+receipt|cash\s+on\s+delivery|c\.?o\.?d\.?)\b`)
)

// ParseHeader searches the full line sequence for label/value pairs anchored
// by keywords. Missing fields stay unset; only a date candidate that exists
// but cannot be parsed produces a warning.
func ParseHeader(lines []string, cfg Config) (entity.DocumentInfo, []string) {
	cfg = cfg.withDefaults()

	info := entity.DocumentInfo{DocumentType: constants.DocTypeUnknown}
	var warnings []string

	// document type: first rule whose keyword appears anywhere wins
	for _, rule := range docTypeRules {
		if anyLineMatches(lines, rule.re) {
			info.DocumentType = rule.docType
			break
		}
	}

	// document number: ordered patterns across the full text
	for _, re := range docNumberRules {
		if info.DocumentNumber != nil {
			break
		}
		for _, line := range lines {
			if m := re.FindStringSubmatch(line); m != nil {
				v := strings.TrimSpace(m[len(m)-1])
				info.DocumentNumber = &v
				break
			}
		}
	}

	// issue date: a labeled date line is preferred over the first date-looking
	// token anywhere
	token, found := findDateCandidate(lines)
	if found {
		if iso, ok := ParseDate(token, cfg.DateFormats); ok {
			info.IssueDate = &iso
		} else {
			warnings = append(warnings, fmt.Sprintf("unparseable date %q left unset", token))
		}
	}

	// payment terms
	for _, line := range lines {
		if reTermsLabel.MatchString(line) {
			if m := reTermsValue.FindStringSubmatch(line); m != nil {
				if v := strings.TrimSpace(m[1]); v != "" {
					info.PaymentTerms = &v
					break
				}
			}
		}
		if info.PaymentTerms == nil {
			if m := reNetTerms.FindString(line); m != "" {
				v := strings.TrimSpace(m)
				info.PaymentTerms = &v
				break
			}
		}
	}

	return info, warnings
}

func findDateCandidate(lines []string) (string, bool) {
	for _, line := range lines {
		if reDateLabel.MatchString(line) {
			if tok, ok := FindDateToken(line); ok {
				return tok, true
			}
		}
	}
	for _, line := range lines {
		if tok, ok := FindDateToken(line); ok {
			return tok, true
		}
	}
	return "", false
}

func anyLineMatches(lines []string, re *regexp.Regexp) bool {
	for _, line := range lines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
