package quote_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alejomeek/cotizaciones/internal/domain/quote"
)

func TestFormatPesos(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1.000"},
		{50000, "$50.000"},
		{1234567, "$1.234.567"},
		{1000000, "$1.000.000"},
		{-45500, "-$45.500"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, quote.FormatPesos(c.in))
	}
}

func TestFormatCurrencyTruncates(t *testing.T) {
	assert.Equal(t, "$1.999", quote.FormatCurrency(1999.99))
	assert.Equal(t, "$0", quote.FormatCurrency(0.7))
	assert.Equal(t, "-$12.345", quote.FormatCurrency(-12345.6))
}

func TestFormatCurrencyNonFinite(t *testing.T) {
	assert.Equal(t, "$0", quote.FormatCurrency(math.NaN()))
	assert.Equal(t, "$0", quote.FormatCurrency(math.Inf(1)))
	assert.Equal(t, "$0", quote.FormatCurrency(math.Inf(-1)))
}
