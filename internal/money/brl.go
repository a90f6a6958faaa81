// Package money formats amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount as Brazilian reais, e.g. "R$ 1.234,56".
// Amounts are rounded half away from zero to two places.
func FormatBRL(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.Round(2).IsNegative() {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
