package parse

import (
	"regexp"
	"time"
)

// CanonicalDateLayout is the single representation all parsed dates normalize to.
const CanonicalDateLayout = "2006-01-02"

var reDateCandidates = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+\d{4}\b`),
	regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+\d{1,2},?\s+\d{4}\b`),
}

// FindDateToken returns the first date-looking substring of line.
func FindDateToken(line string) (string, bool) {
	for _, re := range reDateCandidates {
		if m := re.FindString(line); m != "" {
			return m, true
		}
	}
	return "", false
}

// ParseDate normalizes token against the configured layouts, first match wins.
// The canonical representation is the same for every accepted input format.
func ParseDate(token string, formats []string) (string, bool) {
	if len(formats) == 0 {
		formats = DefaultDateFormats
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, token); err == nil {
			// two-digit-year layouts put 26 in 2026; reject clearly bogus years
			if t.Year() < 1990 || t.Year() > 2100 {
				continue
			}
			return t.Format(CanonicalDateLayout), true
		}
	}
	return "", false
}
