package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	in := "ACME\tSDN BHD\r\nNo. 12   Jalan Ampang\r\n\r\n\r\n\r\nTotal   10.00   "
	got := Normalize(in)
	assert.Equal(t, "ACME SDN BHD\nNo. 12 Jalan Ampang\n\nTotal 10.00", got)
}

func TestNormalizePageBreaks(t *testing.T) {
	got := Normalize("page one\fpage two")
	assert.Equal(t, "page one\npage two", got)
}

func TestNormalizeStripsBoxNoise(t *testing.T) {
	got := Normalize("RECEIPT\n----------\nTotal 5.00")
	assert.NotContains(t, got, "---")
	assert.Contains(t, got, "RECEIPT")
	assert.Contains(t, got, "Total 5.00")
}

func TestNormalizeStripsControlChars(t *testing.T) {
	got := Normalize("Total\x00 \x0b10.00")
	assert.Equal(t, "Total 10.00", got)
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain line",
		"a\r\nb\f c\t\td   e\n\n\n\n\nf  ",
		"___\nreal content\n===",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestSplitLinesDropsBlanks(t *testing.T) {
	lines := SplitLines("a\n\n  \nb\n")
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestSplitLinesEmpty(t *testing.T) {
	assert.Nil(t, SplitLines("   \n \n"))
}
