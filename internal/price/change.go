// Package price computes percentage price changes from the historical-price
// series the data source attaches to balance records.
package price

import (
	"fmt"

	"github.com/krissemmy/onchain-portfolio-tracker/internal/entity"
)

// PctChange returns the percent change from past to current, or nil when
// either input is unknown or past is zero.
func PctChange(current, past *float64) *float64 {
	if current == nil || past == nil || *past == 0 {
		return nil
	}
	v := (*current - *past) / *past * 100.0
	return &v
}

// PriceAt returns the price at the given hour offset in the series, or nil
// when no entry matches. Series carry at most a handful of offsets, so a
// linear scan is fine.
func PriceAt(history []entity.HistoricalPrice, hours int) *float64 {
	for _, p := range history {
		if p.OffsetHours == hours {
			v := p.PriceUSD
			return &v
		}
	}
	return nil
}

// Change1h returns the 1-hour percent change of current against the series.
func Change1h(current *float64, history []entity.HistoricalPrice) *float64 {
	return PctChange(current, PriceAt(history, 1))
}

// Change6h returns the 6-hour percent change of current against the series.
func Change6h(current *float64, history []entity.HistoricalPrice) *float64 {
	return PctChange(current, PriceAt(history, 6))
}

// Change24h returns the 24-hour percent change of current against the series.
func Change24h(current *float64, history []entity.HistoricalPrice) *float64 {
	return PctChange(current, PriceAt(history, 24))
}

// FormatSignedPercent renders a percent change with an explicit plus for
// non-negative values, e.g. "+2.41%". Unknown values render as an em dash.
func FormatSignedPercent(x *float64) string {
	if x == nil {
		return "—"
	}
	sign := ""
	if *x >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, *x)
}
