// Package cep handles Brazilian postal codes (CEP).
package cep

import (
	"errors"
	"strings"
)

// Length is the number of digits in a CEP.
const Length = 8

var ErrInvalidLength = errors.New("CEP deve conter exatamente 8 dígitos")

// Normalize drops every non-digit rune.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate returns the normalized CEP or ErrInvalidLength.
func Validate(raw string) (string, error) {
	c := Normalize(raw)
	if len(c) != Length {
		return "", ErrInvalidLength
	}
	return c, nil
}

// Format renders 00000-000. Anything that is not eight digits is returned as is.
func Format(c string) string {
	if len(c) != Length || Normalize(c) != c {
		return c
	}
	return c[:5] + "-" + c[5:]
}
