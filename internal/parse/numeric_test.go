package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{"plain integer", "42", "42", true},
		{"period decimal", "12.50", "12.5", true},
		{"comma decimal", "12,50", "12.5", true},
		{"thousands comma period decimal", "1,234.56", "1234.56", true},
		{"thousands period comma decimal", "1.234,56", "1234.56", true},
		{"lone comma three digits is thousands", "1,500", "1500", true},
		{"lone period three digits is thousands", "4.793", "4793", true},
		{"repeated thousands separators", "1,234,567", "1234567", true},
		{"currency symbol prefix", "$5.00", "5", true},
		{"currency code prefix", "RM12.30", "12.3", true},
		{"code and symbol", "MYR 1,234.56", "1234.56", true},
		{"currency code suffix", "9.90 MYR", "9.9", true},
		{"leading minus", "-7.25", "-7.25", true},
		{"parenthesized negative", "(3.50)", "-3.5", true},
		{"trailing separator dropped", "10.", "10", true},
		{"word", "total", "", false},
		{"date-like", "01/02/2024", "", false},
		{"percent", "10%", "", false},
		{"empty", "  ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseAmount(tt.token)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, d.String())
			}
		})
	}
}

func TestParseAmountLocaleInvariance(t *testing.T) {
	// the same value written in either locale convention parses identically
	a, ok := ParseAmount("1,234.56")
	require.True(t, ok)
	b, ok := ParseAmount("1.234,56")
	require.True(t, ok)
	assert.True(t, a.Equal(b), "expected %s == %s", a, b)
}

func TestLastAmountOn(t *testing.T) {
	d, ok := lastAmountOn("GST 6% 3.03")
	require.True(t, ok)
	assert.Equal(t, "3.03", d.String())

	d, ok = lastAmountOn("Total Due RM 53.53")
	require.True(t, ok)
	assert.Equal(t, "53.53", d.String())

	_, ok = lastAmountOn("amount in words only")
	assert.False(t, ok)
}
