package engine

import (
	"fmt"
	"math"
	"time"

	"sedori-engine/internal/apperr"
)

// TrendConfig holds the tunable thresholds of the analyzer. Defaults
// reproduce the product behavior; internal/config can override them.
type TrendConfig struct {
	// WindowSize caps the number of trailing points used for the slope.
	WindowSize int
	// VolatileCutoffPct classifies the series as volatile above this value,
	// regardless of slope.
	VolatileCutoffPct float64
	// SlopeCutoff separates rising/falling from stable.
	SlopeCutoff float64
	// PredictionSteps is how many time-unit steps ahead the single
	// prediction targets.
	PredictionSteps int
	// PredictionDamping discounts the observed slope when projecting.
	PredictionDamping float64
	// IntervalSpread is the +/- fraction around the current price used for
	// the confidence interval.
	IntervalSpread float64
	// PredictionProbability is the fixed probability attached to the
	// prediction.
	PredictionProbability float64
}

// DefaultTrendConfig returns the production thresholds.
func DefaultTrendConfig() TrendConfig {
	return TrendConfig{
		WindowSize:            10,
		VolatileCutoffPct:     15,
		SlopeCutoff:           0.05,
		PredictionSteps:       30,
		PredictionDamping:     0.5,
		IntervalSpread:        0.10,
		PredictionProbability: 0.75,
	}
}

// Analyze runs the trend analyzer with default thresholds.
func Analyze(series []PriceDataPoint) (*TrendAnalysis, *apperr.Error) {
	return AnalyzeWithConfig(series, DefaultTrendConfig())
}

// AnalyzeWithConfig classifies a price series into a trend, emits a single
// bounded-horizon prediction, and derives one primary recommendation.
//
// Preconditions: at least 2 points, sorted ascending by timestamp, and no
// zero price among the mean, the current price, or the window start (a zero
// there makes slope and volatility meaningless; see KindDegenerateSeries).
func AnalyzeWithConfig(series []PriceDataPoint, cfg TrendConfig) (*TrendAnalysis, *apperr.Error) {
	n := len(series)
	if n < 2 {
		return nil, apperr.NewProfit(
			apperr.KindInsufficientData,
			fmt.Sprintf("need at least 2 price points, got %d", n),
			map[string]apperr.CtxValue{"points": apperr.Int(n)},
		)
	}
	for i := 1; i < n; i++ {
		if series[i].Timestamp.Before(series[i-1].Timestamp) {
			return nil, apperr.NewProfit(
				apperr.KindInsufficientData,
				"price series is not sorted ascending by timestamp",
				map[string]apperr.CtxValue{
					"points":   apperr.Int(n),
					"unsorted": apperr.Bool(true),
				},
			)
		}
	}

	prices := make([]float64, n)
	for i, p := range series {
		prices[i] = p.Price.Amount
	}

	// Windowed slope over the last min(WindowSize, n) points.
	windowSize := cfg.WindowSize
	if windowSize < 2 {
		windowSize = 2
	}
	if windowSize > n {
		windowSize = n
	}
	window := prices[n-windowSize:]

	avg := mean(prices)
	current := prices[n-1]
	windowFirst := window[0]
	if avg == 0 || current == 0 || windowFirst == 0 {
		return nil, apperr.NewProfit(
			apperr.KindDegenerateSeries,
			"series contains zero prices, slope and volatility are undefined",
			map[string]apperr.CtxValue{
				"mean":    apperr.Num(avg),
				"current": apperr.Num(current),
			},
		)
	}

	volatilityPct := stdDev(prices) / avg * 100
	slope := (window[len(window)-1] - windowFirst) / windowFirst

	trend := TrendStable
	switch {
	case volatilityPct > cfg.VolatileCutoffPct:
		// Volatility dominates direction.
		trend = TrendVolatile
	case slope > cfg.SlopeCutoff:
		trend = TrendRising
	case slope < -cfg.SlopeCutoff:
		trend = TrendFalling
	}

	analysis := &TrendAnalysis{
		Trend:         trend,
		TrendStrength: clampRange(math.Abs(slope), 0, 1),
		VolatilityPct: sanitizeFloat(volatilityPct),
	}
	analysis.Predictions = []PricePrediction{buildPrediction(series, current, slope, cfg)}
	analysis.Recommendations = buildRecommendations(current, avg, trend)
	analysis.Insights = buildInsights(current, avg, volatilityPct, trend, slope, windowSize)
	return analysis, nil
}

// buildPrediction projects one point PredictionSteps ahead with a fixed
// confidence interval around the current price. The projection is clamped
// into the interval so lower <= predicted <= upper holds by construction.
func buildPrediction(series []PriceDataPoint, current, slope float64, cfg TrendConfig) PricePrediction {
	n := len(series)
	step := series[n-1].Timestamp.Sub(series[0].Timestamp) / time.Duration(n-1)
	if step <= 0 {
		step = 24 * time.Hour
	}

	lower := current * (1 - cfg.IntervalSpread)
	upper := current * (1 + cfg.IntervalSpread)
	predicted := clampRange(current*(1+slope*cfg.PredictionDamping), lower, upper)

	currency := series[n-1].Price.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	return PricePrediction{
		TargetTimestamp: series[n-1].Timestamp.Add(time.Duration(cfg.PredictionSteps) * step),
		PredictedPrice:  Money{Amount: predicted, Currency: currency},
		Interval:        ConfidenceInterval{Lower: lower, Upper: upper},
		Probability:     cfg.PredictionProbability,
	}
}

// buildRecommendations derives the primary recommendation from the
// current-vs-mean ratio. A secondary watch entry is appended on volatile
// series so the caller can surface the extra caution.
func buildRecommendations(current, avg float64, trend Trend) []Recommendation {
	var primary Recommendation
	switch {
	case current < avg*0.9:
		primary = Recommendation{
			Action:     ActionBuy,
			Reason:     "price below average by >10%",
			Risk:       RiskLow,
			Timeframe:  "1-2 weeks",
			Confidence: 0.8,
		}
	case current > avg*1.1:
		primary = Recommendation{
			Action:     ActionSell,
			Reason:     "price above average by >10%",
			Risk:       RiskMedium,
			Timeframe:  "within 1 week",
			Confidence: 0.7,
		}
	default:
		primary = Recommendation{
			Action:     ActionHold,
			Reason:     "price near average",
			Risk:       RiskLow,
			Timeframe:  "30 days",
			Confidence: 0.6,
		}
	}

	recs := []Recommendation{primary}
	if trend == TrendVolatile {
		recs = append(recs, Recommendation{
			Action:     ActionWatch,
			Reason:     "high volatility, price may swing either way",
			Risk:       RiskHigh,
			Timeframe:  "ongoing",
			Confidence: 0.5,
		})
	}
	return recs
}

// buildInsights renders the computed numbers as display strings. They carry
// no information beyond the structured fields and must never be parsed.
func buildInsights(current, avg, volatilityPct float64, trend Trend, slope float64, windowSize int) []string {
	insights := make([]string, 0, 3)

	deviation := (current - avg) / avg * 100
	switch {
	case deviation < -10:
		insights = append(insights, fmt.Sprintf("current price is %.1f%% below the period average", -deviation))
	case deviation > 10:
		insights = append(insights, fmt.Sprintf("current price is %.1f%% above the period average", deviation))
	default:
		insights = append(insights, "current price is close to the period average")
	}

	switch {
	case volatilityPct < 5:
		insights = append(insights, fmt.Sprintf("price has been very stable (volatility %.1f%%)", volatilityPct))
	case volatilityPct < 15:
		insights = append(insights, fmt.Sprintf("price shows moderate movement (volatility %.1f%%)", volatilityPct))
	default:
		insights = append(insights, fmt.Sprintf("price is highly volatile (volatility %.1f%%)", volatilityPct))
	}

	switch trend {
	case TrendRising:
		insights = append(insights, fmt.Sprintf("price rose %.1f%% over the last %d points", slope*100, windowSize))
	case TrendFalling:
		insights = append(insights, fmt.Sprintf("price fell %.1f%% over the last %d points", -slope*100, windowSize))
	case TrendVolatile:
		insights = append(insights, "no clear direction, volatility dominates the recent window")
	default:
		insights = append(insights, "price has moved sideways over the recent window")
	}

	return insights
}
