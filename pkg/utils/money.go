package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinorToDecimal converts commerce backend amounts, which are stored in
// hundredths of the currency unit.
func MinorToDecimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

func FormatRupiah(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().StringFixed(0)

	var b strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}

	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}
