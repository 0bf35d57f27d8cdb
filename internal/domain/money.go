package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var supportedCurrencies = []string{"TRY", "USD", "EUR", "GBP"}

// SupportedCurrencies returns the payout currency whitelist.
func SupportedCurrencies() []string {
	return slices.Clone(supportedCurrencies)
}

// IsSupportedCurrency reports whether payouts can be made in the given code.
func IsSupportedCurrency(code string) bool {
	return slices.Contains(supportedCurrencies, strings.ToUpper(strings.TrimSpace(code)))
}

// Round2 rounds a money amount to two decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatMoney renders an amount for display, e.g. "1234.50 TRY".
func FormatMoney(v float64, currency string) string {
	return decimal.NewFromFloat(v).StringFixed(2) + " " + currency
}
