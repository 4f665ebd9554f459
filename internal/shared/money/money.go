// Package money renders amounts the way the console shows them.
package money

import "github.com/shopspring/decimal"

// Format renders an amount in reais with exactly two decimals, e.g. "R$ 10.00".
func Format(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}
