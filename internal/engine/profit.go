package engine

import (
	"fmt"

	"sedori-engine/internal/apperr"
)

// ComputeProfit derives profit, margin, and ROI for one (cost, price) pair.
// It never fails: a negative-profit pair still produces a report so a
// live-typing UI can show the running number, and the zero cases
// (price == 0 for margin, cost == 0 for ROI) report 0 instead of dividing.
func ComputeProfit(cost, price Money) ProfitReport {
	profit := price.Amount - cost.Amount

	var marginPct float64
	if price.Amount > 0 {
		marginPct = profit / price.Amount * 100
	}

	var roiPct float64
	if cost.Amount > 0 {
		roiPct = profit / cost.Amount * 100
	}

	currency := price.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	return ProfitReport{
		Profit:        profit,
		MarginPercent: sanitizeFloat(marginPct),
		ROIPercent:    sanitizeFloat(roiPct),
		IsProfitable:  profit > 0,
		Currency:      currency,
	}
}

// AssertProfitable is the submission gate: it fails iff cost >= price and
// both are positive. ComputeProfit stays total so the two can disagree on
// purpose (report shown, submission blocked).
func AssertProfitable(cost, price Money) *apperr.Error {
	if cost.Amount > 0 && price.Amount > 0 && cost.Amount >= price.Amount {
		return apperr.NewProfit(
			apperr.KindCostGreaterThanPrice,
			fmt.Sprintf("cost %.2f >= price %.2f", cost.Amount, price.Amount),
			map[string]apperr.CtxValue{
				"cost":  apperr.Num(cost.Amount),
				"price": apperr.Num(price.Amount),
			},
		)
	}
	return nil
}

// FormatAmount renders a monetary value to two decimal places.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatPercent renders a margin/ROI value to one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
