package view_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/dealboard/cmd/tui/internal/view"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"999", "$999"},
		{"1000", "$1,000"},
		{"1250000.49", "$1,250,000"},
		{"1250000.5", "$1,250,001"},
		{"-45000", "-$45,000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, view.FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatRange(t *testing.T) {
	lo := decimal.NewNullDecimal(decimal.NewFromInt(3_000_000))

	assert.Equal(t, "-", view.FormatRange(decimal.NullDecimal{}, decimal.NullDecimal{}))
	assert.Equal(t, "$3,000,000 - ?", view.FormatRange(lo, decimal.NullDecimal{}))
}
