// Package display formats amounts for dashboards, reports and the digest.
// Formatting is layered on top of the valuation results and never feeds back into them.
package display

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// Currency is the single reporting currency. Multi-currency conversion is not supported.
const Currency = money.USD

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// FormatMoney renders the long form, e.g. "$1,234,567.00".
func FormatMoney(amount decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), Currency).Display()
}

// FormatMoneyShort renders the compact form used on cards: "$1.2M", "$950K", "$1.0B".
// Amounts below a thousand are shown whole and zero is "$0".
func FormatMoneyShort(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "$0"
	}
	if amount.IsNegative() {
		return "-" + FormatMoneyShort(amount.Neg())
	}

	switch {
	case amount.GreaterThanOrEqual(billion):
		return "$" + amount.Div(billion).StringFixed(1) + "B"
	case amount.GreaterThanOrEqual(million):
		return "$" + amount.Div(million).StringFixed(1) + "M"
	case amount.GreaterThanOrEqual(thousand):
		return "$" + amount.Div(thousand).StringFixed(0) + "K"
	default:
		return "$" + amount.Round(0).String()
	}
}

// FormatPercent renders a percentage ratio with one decimal, e.g. "125.0%".
func FormatPercent(r valuation.Ratio) string {
	v, ok := r.Value()
	if !ok {
		return valuation.UndefinedDisplay
	}
	return v.StringFixed(1) + "%"
}

// FormatMultiple renders a ratio as "1.71x".
func FormatMultiple(r valuation.Ratio) string {
	return r.Multiple()
}
