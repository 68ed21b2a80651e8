package ocr

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
	reCtrl       = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f�]")
)

var reBoxNoise = regexp.MustCompile(`(?m)^\s*[_\-|=]{3,}\s*$`)

// Normalize collapses noisy whitespace and strips recognition artifacts.
// Conservative: keeps line breaks; collapses >2 newlines into a single blank
// line. Pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "\f", "\n")
	s = reCtrl.ReplaceAllString(s, "")
	s = reBoxNoise.ReplaceAllString(s, "")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	// collapse too many blank lines
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	// trim trailing spaces on lines
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(s)
}

// SplitLines normalizes s and returns the logical line sequence shared by all
// field parsers. Blank lines carry no signal for pattern matching and are
// dropped.
func SplitLines(s string) []string {
	norm := Normalize(s)
	if norm == "" {
		return nil
	}
	raw := strings.Split(norm, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}
