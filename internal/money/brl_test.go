package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"0":          "R$ 0,00",
		"5":          "R$ 5,00",
		"12.5":       "R$ 12,50",
		"999.999":    "R$ 1.000,00",
		"1234.56":    "R$ 1.234,56",
		"1234567.89": "R$ 1.234.567,89",
		"-42.1":      "-R$ 42,10",
		"-0.001":     "R$ 0,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBRL(decimal.RequireFromString(in)), in)
	}
}
