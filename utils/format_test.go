package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"12.5", "$12.50"},
		{"999.999", "$1,000.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-1234.5", "$1,234.50"},
		{"-0.01", "$0.01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "-")
		})
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, DirectionDebit, Direction(decimal.NewFromInt(12)))
	assert.Equal(t, DirectionCredit, Direction(decimal.NewFromInt(-12)))
	assert.Equal(t, "", Direction(decimal.Zero))
}
