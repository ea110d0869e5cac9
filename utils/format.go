package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DirectionDebit  = "debit"
	DirectionCredit = "credit"
)

// FormatAmount renders the absolute value of an amount as "$1,234.50".
// The sign is never part of the numeral; callers convey it with Direction.
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString("$")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Direction maps the transaction sign convention (positive = outflow) to a
// display direction.
func Direction(amount decimal.Decimal) string {
	switch {
	case amount.IsPositive():
		return DirectionDebit
	case amount.IsNegative():
		return DirectionCredit
	default:
		return ""
	}
}
