package pricing

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatPercentage renders a ratio as a percentage rounded to two decimals.
// Values are clamped to [-1, 1] unless override is set.
func FormatPercentage(value float64, override bool) string {
	if math.IsNaN(value) {
		value = 0
	}
	if !override {
		value = math.Max(-1, math.Min(1, value))
	}
	pct := round2(value * 100)
	// drop negative zero
	if pct == 0 {
		pct = 0
	}
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// FormatAmountCurrency renders amount with thousands grouping and exactly two
// fraction digits, prefixed by the currency code.
func FormatAmountCurrency(amount float64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	if amount == 0 || math.IsNaN(amount) {
		return currency + " 0.00"
	}
	return currency + " " + amountPrinter.Sprintf("%.2f", amount)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
