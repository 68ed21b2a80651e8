package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateCanonicalAcrossFormats(t *testing.T) {
	// every accepted rendering of the same date yields one canonical value
	inputs := []string{
		"2024-03-15",
		"15/03/2024",
		"15-03-2024",
		"15.03.2024",
		"15 March 2024",
		"15 Mar 2024",
		"Mar 15, 2024",
		"March 15, 2024",
	}
	for _, in := range inputs {
		got, ok := ParseDate(in, nil)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, "2024-03-15", got, "input %q", in)
	}
}

func TestParseDateDayFirstPreference(t *testing.T) {
	// ambiguous numeric dates resolve day-first
	got, ok := ParseDate("01/02/2024", nil)
	require.True(t, ok)
	assert.Equal(t, "2024-02-01", got)

	// month >12 forces the month-first layout
	got, ok = ParseDate("03/15/2024", nil)
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", got)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"99/99/9999", "not a date", "", "0000-00-00"} {
		_, ok := ParseDate(in, nil)
		assert.False(t, ok, "input %q", in)
	}
}

func TestParseDateYearBounds(t *testing.T) {
	_, ok := ParseDate("15/03/1889", nil)
	assert.False(t, ok)
}

func TestFindDateToken(t *testing.T) {
	tok, ok := FindDateToken("Invoice Date: 15/03/2024 Due: later")
	require.True(t, ok)
	assert.Equal(t, "15/03/2024", tok)

	tok, ok = FindDateToken("Dated this 5 April 2024")
	require.True(t, ok)
	assert.Equal(t, "5 April 2024", tok)

	_, ok = FindDateToken("no date here")
	assert.False(t, ok)
}
