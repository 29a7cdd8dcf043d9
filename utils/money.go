package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice formats an amount as a string like "$12.500" or "$12.500,50".
// Uses dot as thousands separator and comma for cents (common in Colombia).
// Cents are only printed when the amount is not a whole number.
func FormatPrice(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	neg := amount.IsNegative()
	amount = amount.Abs().Round(2)

	whole := amount.Truncate(0)
	s := whole.String()

	var b strings.Builder
	// Pre-allocate: digits + separators + symbol + cents
	b.Grow(len(s) + len(s)/3 + len(symbol) + 4)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}

	if frac := amount.Sub(whole); !frac.IsZero() {
		b.WriteByte(',')
		cents := strconv.FormatInt(frac.Shift(2).IntPart(), 10)
		if len(cents) == 1 {
			b.WriteByte('0')
		}
		b.WriteString(cents)
	}

	return b.String()
}
