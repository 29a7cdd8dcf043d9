package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount string
		symbol string
		want   string
	}{
		{amount: "0", symbol: "$", want: "$0"},
		{amount: "950", symbol: "$", want: "$950"},
		{amount: "14000", symbol: "$", want: "$14.000"},
		{amount: "11000", symbol: "", want: "$11.000"},
		{amount: "1234567", symbol: "$", want: "$1.234.567"},
		{amount: "12500.5", symbol: "$", want: "$12.500,50"},
		{amount: "9.05", symbol: "€", want: "€9,05"},
		{amount: "-2500", symbol: "$", want: "-$2.500"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.amount), tt.symbol))
		})
	}
}
