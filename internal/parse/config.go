package parse

import "github.com/shopspring/decimal"

// Config holds the field-parser tunables. Tolerances and window sizes are
// tuned per receipt layout in practice, so nothing here is hard-coded at the
// call sites; zero values fall back to the defaults below.
type Config struct {
	// HeaderWindow is the number of leading lines scanned for the supplier
	// block. The effective window ends earlier when a document-header keyword
	// is seen first.
	HeaderWindow int

	// DateFormats are the accepted date layouts, tried in order.
	DateFormats []string

	// AbsTolerance is the absolute amount by which a stated total may differ
	// from a computed one before reconciliation flags it.
	AbsTolerance decimal.Decimal

	// RelTolerance is the relative fraction of the stated value allowed as
	// drift. The effective tolerance is max(AbsTolerance, RelTolerance*stated).
	RelTolerance decimal.Decimal
}

// DefaultDateFormats covers the layouts seen across real receipts.
// Day-first variants come before month-first: ambiguous numeric dates resolve
// to the earlier layout in the list.
var DefaultDateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"01/02/2006",
	"02/01/06",
	"2 January 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

func (c Config) withDefaults() Config {
	if c.HeaderWindow <= 0 {
		c.HeaderWindow = 12
	}
	if len(c.DateFormats) == 0 {
		c.DateFormats = DefaultDateFormats
	}
	if c.AbsTolerance.IsZero() {
		c.AbsTolerance = decimal.RequireFromString("0.05")
	}
	if c.RelTolerance.IsZero() {
		c.RelTolerance = decimal.RequireFromString("0.01")
	}
	return c
}
