// Package format renders storefront amounts for display.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the symbol appended to every amount.
const Currency = "₿"

// Prices are shown to satoshi precision.
const priceScale = 8

// Total sums prices without accumulating float error.
func Total(prices []float64) decimal.Decimal {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(decimal.NewFromFloat(p))
	}
	return total
}

// Price renders an amount with grouped thousands, e.g. "1,000 ₿" or "0.008 ₿".
func Price(amount decimal.Decimal) string {
	return Number(amount) + " " + Currency
}

// PriceFloat is Price for wire values.
func PriceFloat(amount float64) string {
	return Price(decimal.NewFromFloat(amount))
}

// Number renders an amount with grouped thousands and no trailing zeros.
func Number(amount decimal.Decimal) string {
	amount = amount.Round(priceScale)
	if amount.IsNegative() {
		return "-" + Number(amount.Neg())
	}

	whole := amount.Truncate(0)
	p := message.NewPrinter(language.English)
	out := p.Sprintf("%d", whole.IntPart())

	if frac := amount.Sub(whole); !frac.IsZero() {
		// frac.String() is "0.xxx"
		out += frac.String()[1:]
	}
	return out
}
