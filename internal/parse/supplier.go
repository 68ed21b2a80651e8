package parse

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/receipt-extractor/internal/entity"
)

// headerAnchor marks the start of transactional content; the supplier window
// never extends past it.
var headerAnchor = regexp.MustCompile(`(?i)\b(?:invoice|cash\s+sales?|credit\s+note|receipt|bill\s+to|sold\s+to|date[d]?\s*:)\b`)

var (
	reTaxID = regexp.MustCompile(`(?i)\b(?:tax\s*(?:id|no|number)|gst(?:\s*(?:id|no|reg))?|vat(?:\s*(?:id|no|reg))?|sst\s*no|tin|co\.?\s*(?:reg\.?)?\s*no|reg(?:istration)?\s*no)\b\s*[.:#-]*\s*([A-Z0-9][A-Z0-9/-]{3,})`)
	rePhone = regexp.MustCompile(`(?i)\b(?:tel|telephone|phone|hp|mobile|fax)\b\s*[.:]*\s*(\+?\d[\d\s().-]{5,}\d)`)
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// company designators strongly suggest the supplier name line
	reCompany = regexp.MustCompile(`(?i)\b(?:sdn\.?\s*bhd|bhd|pte\.?\s*ltd|ltd|llc|inc|plc|gmbh|llp|corp(?:oration)?|enterprise|trading)\b`)

	// address lines: street/locality keywords or a postcode-looking number
	reAddress = regexp.MustCompile(`(?i)\b(?:no\.?\s*\d|jalan|jln|lorong|street|st\.|road|rd\.|avenue|ave\.|lane|block|blk|suite|unit|level|floor|taman|seksyen|bandar|city|state)\b|\b\d{5}\b`)
)

// supplierRule is one entry of the prioritized rule table. Rules run in order
// per line; the first match for a still-unset field wins and later candidates
// are ignored.
type supplierRule struct {
	field string
	apply func(line string, out *entity.SupplierInfo) bool
}

var supplierRules = []supplierRule{
	{"tax_id", func(line string, out *entity.SupplierInfo) bool {
		if out.TaxID != nil {
			return false
		}
		if m := reTaxID.FindStringSubmatch(line); m != nil {
			v := strings.TrimSpace(m[1])
			out.TaxID = &v
			return true
		}
		return false
	}},
	{"phone", func(line string, out *entity.SupplierInfo) bool {
		if out.Phone != nil {
			return false
		}
		if m := rePhone.FindStringSubmatch(line); m != nil {
			v := strings.TrimSpace(m[1])
			out.Phone = &v
			return true
		}
		return false
	}},
	{"email", func(line string, out *entity.SupplierInfo) bool {
		if out.Email != nil {
			return false
		}
		if m := reEmail.FindString(line); m != "" {
			out.Email = &m
			return true
		}
		return false
	}},
	{"name", func(line string, out *entity.SupplierInfo) bool {
		if out.Name != nil {
			return false
		}
		if reCompany.MatchString(line) {
			v := strings.TrimSpace(line)
			out.Name = &v
			return true
		}
		return false
	}},
}

// ParseSupplier scans the header window for supplier identity.
// Never fails; fields without a match stay unset.
func ParseSupplier(lines []string, cfg Config) entity.SupplierInfo {
	cfg = cfg.withDefaults()

	window := cfg.HeaderWindow
	if window > len(lines) {
		window = len(lines)
	}
	// the header region ends at the first document-header keyword
	for i := 0; i < window; i++ {
		if headerAnchor.MatchString(lines[i]) {
			window = i
			break
		}
	}

	var out entity.SupplierInfo
	var addressParts []string
	for i := 0; i < window; i++ {
		line := lines[i]
		matched := false
		for _, r := range supplierRules {
			if r.apply(line, &out) {
				matched = true
			}
		}
		if !matched && reAddress.MatchString(line) {
			addressParts = append(addressParts, strings.TrimSpace(line))
		}
	}

	// fallback: without a company designator, the first window line that is
	// neither an address nor a labeled field is taken as the name
	if out.Name == nil && window > 0 {
		for i := 0; i < window; i++ {
			line := lines[i]
			if reAddress.MatchString(line) || reTaxID.MatchString(line) ||
				rePhone.MatchString(line) || reEmail.MatchString(line) {
				continue
			}
			if !hasLetters(line) {
				continue
			}
			v := strings.TrimSpace(line)
			out.Name = &v
			break
		}
	}

	if len(addressParts) > 0 {
		v := strings.Join(addressParts, ", ")
		out.Address = &v
	}
	return out
}

func hasLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
