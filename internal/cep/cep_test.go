package cep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		err  error
	}{
		{name: "digits", in: "01001000", want: "01001000"},
		{name: "masked", in: "01001-000", want: "01001000"},
		{name: "spaces and dots", in: " 01.001-000 ", want: "01001000"},
		{name: "too short", in: "0100100", err: ErrInvalidLength},
		{name: "too long", in: "010010001", err: ErrInvalidLength},
		{name: "letters only", in: "abcdefgh", err: ErrInvalidLength},
		{name: "empty", in: "", err: ErrInvalidLength},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Validate(tc.in)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "01001-000", Format("01001000"))
	assert.Equal(t, "0100100", Format("0100100"))
	assert.Equal(t, "01001-000", Format("01001-000"))
}
