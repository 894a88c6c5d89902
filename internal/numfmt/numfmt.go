// Package numfmt converts raw on-chain integer amounts into human-scaled
// values and renders the display strings used across the portfolio view.
// Everything here is pure and total: bad input yields nil, never an error.
package numfmt

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Thousands grouping follows en-US formatting throughout the UI.
var printer = message.NewPrinter(language.English)

// ScaleAmount parses a raw integer amount string and scales it down by
// 10^decimals. The intermediate math is decimal, not float, so large token
// amounts do not lose precision before scaling. Returns nil when the raw
// value is absent or non-numeric, or decimals is absent or negative.
func ScaleAmount(raw string, decimals *int32) *float64 {
	if raw == "" || decimals == nil || *decimals < 0 {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	v := d.Shift(-*decimals).InexactFloat64()
	return &v
}

// FormatUSD renders a dollar value with thousands separators and two fraction
// digits, e.g. 1234.5 -> "$1,234.50". Nil passes through.
func FormatUSD(value *float64) *string {
	if value == nil {
		return nil
	}
	s := "$" + printer.Sprintf("%.2f", *value)
	return &s
}

// FormatShort renders a quantity with a magnitude suffix, numbro-style:
// 1234 -> "1.23K", 1000000 -> "1.00M". Values at or above 100 after scaling
// drop the fraction digits. Nil passes through.
func FormatShort(value *float64) *string {
	if value == nil {
		return nil
	}
	n := *value
	abs := math.Abs(n)

	suffix := ""
	div := 1.0
	switch {
	case abs >= 1_000_000_000:
		suffix, div = "B", 1_000_000_000
	case abs >= 1_000_000:
		suffix, div = "M", 1_000_000
	case abs >= 1_000:
		suffix, div = "K", 1_000
	}

	base := n / div
	var s string
	if math.Abs(base) >= 100 {
		s = printer.Sprintf("%.0f", base)
	} else {
		s = printer.Sprintf("%.2f", base)
	}
	s += suffix
	return &s
}

// FormatSignedUSD renders a dollar delta with an explicit sign, e.g.
// "+$12.00" / "-$3.50". Zero renders unsigned. Nil passes through.
func FormatSignedUSD(value *float64) *string {
	if value == nil {
		return nil
	}
	if *value == 0 {
		return FormatUSD(value)
	}
	sign := "+"
	if *value < 0 {
		sign = "-"
	}
	abs := math.Abs(*value)
	s := sign + *FormatUSD(&abs)
	return &s
}
