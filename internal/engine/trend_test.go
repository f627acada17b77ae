package engine

import (
	"math"
	"testing"
	"time"

	"sedori-engine/internal/apperr"
)

func dailySeries(prices ...float64) []PriceDataPoint {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	series := make([]PriceDataPoint, len(prices))
	for i, p := range prices {
		series[i] = PriceDataPoint{
			Timestamp: base.AddDate(0, 0, i),
			Price:     NewMoney(p),
			Source:    "test",
		}
	}
	return series
}

// --- preconditions: length >= 2, sorted, no zero prices ---

func TestAnalyze_InsufficientData(t *testing.T) {
	if _, err := Analyze(nil); err == nil || err.Kind != apperr.KindInsufficientData {
		t.Errorf("Analyze(nil) err = %v, want insufficient_data", err)
	}
	if _, err := Analyze(dailySeries(100)); err == nil || err.Kind != apperr.KindInsufficientData {
		t.Errorf("Analyze(1 point) err = %v, want insufficient_data", err)
	}
	// Exactly 2 points is the boundary: it must succeed.
	analysis, err := Analyze(dailySeries(100, 102))
	if err != nil {
		t.Fatalf("Analyze(2 points) err = %v, want nil", err)
	}
	if analysis.VolatilityPct == 0 {
		t.Error("volatility must be computable with 2 points")
	}
}

func TestAnalyze_UnsortedFailsFast(t *testing.T) {
	series := dailySeries(100, 110, 120)
	series[0], series[2] = series[2], series[0]
	_, err := Analyze(series)
	if err == nil || err.Kind != apperr.KindInsufficientData {
		t.Fatalf("err = %v, want insufficient_data", err)
	}
	if v, ok := err.Context["unsorted"].AsBool(); !ok || !v {
		t.Error("unsorted context flag not set")
	}
}

func TestAnalyze_ZeroPriceIsDegenerate(t *testing.T) {
	// A zero current price makes the slope denominator meaningless.
	if _, err := Analyze(dailySeries(100, 0)); err == nil || err.Kind != apperr.KindDegenerateSeries {
		t.Errorf("zero current err = %v, want degenerate_series", err)
	}
	if _, err := Analyze(dailySeries(0, 100)); err == nil || err.Kind != apperr.KindDegenerateSeries {
		t.Errorf("zero window start err = %v, want degenerate_series", err)
	}
}

// --- classification over the trailing window ---

func TestAnalyze_RisingSeries(t *testing.T) {
	// 10 evenly spaced points 100 -> 150. slope = (150-100)/100 = 0.5.
	// Arithmetic sequence, step d = 50/9: population variance = d^2*(n^2-1)/12
	// = (50/9)^2 * 99/12 ≈ 254.6, std ≈ 15.96, mean = 125,
	// volatility ≈ 12.77% < 15 so the slope decides: Rising.
	prices := make([]float64, 10)
	for i := range prices {
		prices[i] = 100 + 50*float64(i)/9
	}
	analysis, err := Analyze(dailySeries(prices...))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if analysis.Trend != TrendRising {
		t.Errorf("Trend = %s, want rising", analysis.Trend)
	}
	if math.Abs(analysis.TrendStrength-0.5) > 1e-9 {
		t.Errorf("TrendStrength = %v, want 0.5", analysis.TrendStrength)
	}
	if analysis.VolatilityPct > 15 {
		t.Errorf("VolatilityPct = %v, expected < 15 for this fixture", analysis.VolatilityPct)
	}

	// current = 150, mean = 125: 150 > 125*1.1 = 137.5, so the primary
	// recommendation is Sell at medium risk.
	if len(analysis.Recommendations) == 0 {
		t.Fatal("no recommendations")
	}
	primary := analysis.Recommendations[0]
	if primary.Action != ActionSell {
		t.Errorf("primary action = %s, want sell", primary.Action)
	}
	if primary.Risk != RiskMedium || primary.Confidence != 0.7 {
		t.Errorf("primary = %+v, want medium risk, confidence 0.7", primary)
	}
}

func TestAnalyze_FallingSeries(t *testing.T) {
	// slope = (100-150)/150 = -0.333 < -0.05 -> Falling.
	prices := make([]float64, 10)
	for i := range prices {
		prices[i] = 150 - 50*float64(i)/9
	}
	analysis, err := Analyze(dailySeries(prices...))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if analysis.Trend != TrendFalling {
		t.Errorf("Trend = %s, want falling", analysis.Trend)
	}
	// current = 100 < mean 125 * 0.9 = 112.5 -> Buy, low risk, 0.8.
	primary := analysis.Recommendations[0]
	if primary.Action != ActionBuy || primary.Risk != RiskLow || primary.Confidence != 0.8 {
		t.Errorf("primary = %+v, want buy/low/0.8", primary)
	}
}

func TestAnalyze_StableSeries(t *testing.T) {
	analysis, err := Analyze(dailySeries(100, 100, 100, 100))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if analysis.Trend != TrendStable {
		t.Errorf("Trend = %s, want stable", analysis.Trend)
	}
	if analysis.VolatilityPct != 0 || analysis.TrendStrength != 0 {
		t.Errorf("flat series: volatility = %v, strength = %v, want 0, 0", analysis.VolatilityPct, analysis.TrendStrength)
	}
	primary := analysis.Recommendations[0]
	if primary.Action != ActionHold || primary.Confidence != 0.6 {
		t.Errorf("primary = %+v, want hold/0.6", primary)
	}
}

func TestAnalyze_VolatilityDominatesSlope(t *testing.T) {
	// Alternating 100/200: mean = 150, std = 50, volatility = 33.3% > 15.
	// The windowed slope is irrelevant; classification is Volatile.
	analysis, err := Analyze(dailySeries(100, 200, 100, 200, 100, 200))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if analysis.Trend != TrendVolatile {
		t.Errorf("Trend = %s, want volatile", analysis.Trend)
	}
	if math.Abs(analysis.VolatilityPct-100.0/3) > 1e-9 {
		t.Errorf("VolatilityPct = %v, want 33.333...", analysis.VolatilityPct)
	}
	// Volatile series carry a secondary watch recommendation.
	if len(analysis.Recommendations) != 2 {
		t.Fatalf("recommendations = %d, want primary + watch", len(analysis.Recommendations))
	}
	watch := analysis.Recommendations[1]
	if watch.Action != ActionWatch || watch.Risk != RiskHigh {
		t.Errorf("secondary = %+v, want watch/high", watch)
	}
}

func TestAnalyze_WindowLimitsSlope(t *testing.T) {
	// With WindowSize 2 only the last two points feed the slope:
	// (121 - 110) / 110 = 0.1 > 0.05 -> Rising, even though the run-up from
	// 100 is steeper.
	cfg := DefaultTrendConfig()
	cfg.WindowSize = 2
	analysis, err := AnalyzeWithConfig(dailySeries(100, 110, 121), cfg)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if analysis.Trend != TrendRising {
		t.Errorf("Trend = %s, want rising", analysis.Trend)
	}
	if math.Abs(analysis.TrendStrength-0.1) > 1e-9 {
		t.Errorf("TrendStrength = %v, want 0.1", analysis.TrendStrength)
	}
}

// --- prediction: 30 steps ahead, CI around current, probability fixed ---

func TestAnalyze_PredictionBounds(t *testing.T) {
	prices := make([]float64, 10)
	for i := range prices {
		prices[i] = 100 + 50*float64(i)/9
	}
	series := dailySeries(prices...)
	analysis, err := Analyze(series)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(analysis.Predictions) != 1 {
		t.Fatalf("predictions = %d, want 1", len(analysis.Predictions))
	}
	p := analysis.Predictions[0]

	// CI = [150*0.9, 150*1.1] = [135, 165]. The raw projection
	// 150*(1+0.5*0.5) = 187.5 exceeds the upper bound and is clamped to it.
	if math.Abs(p.Interval.Lower-135) > 1e-9 || math.Abs(p.Interval.Upper-165) > 1e-9 {
		t.Errorf("interval = [%v, %v], want [135, 165]", p.Interval.Lower, p.Interval.Upper)
	}
	if p.PredictedPrice.Amount < p.Interval.Lower || p.PredictedPrice.Amount > p.Interval.Upper {
		t.Errorf("predicted %v escapes interval [%v, %v]", p.PredictedPrice.Amount, p.Interval.Lower, p.Interval.Upper)
	}
	if math.Abs(p.PredictedPrice.Amount-165) > 1e-9 {
		t.Errorf("predicted = %v, want clamped 165", p.PredictedPrice.Amount)
	}
	if p.Probability != 0.75 {
		t.Errorf("probability = %v, want 0.75", p.Probability)
	}

	// Daily spacing: target is 30 days after the last sample.
	wantTarget := series[len(series)-1].Timestamp.AddDate(0, 0, 30)
	if !p.TargetTimestamp.Equal(wantTarget) {
		t.Errorf("target = %v, want %v", p.TargetTimestamp, wantTarget)
	}
}

func TestAnalyze_MildSlopePredictionInsideInterval(t *testing.T) {
	// slope = (104-100)/100 = 0.04, current = 104:
	// projected = 104*(1+0.04*0.5) = 106.08, inside [93.6, 114.4], no clamp.
	analysis, err := Analyze(dailySeries(100, 101, 102, 103, 104))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	p := analysis.Predictions[0]
	if math.Abs(p.PredictedPrice.Amount-104*1.02) > 1e-9 {
		t.Errorf("predicted = %v, want 106.08", p.PredictedPrice.Amount)
	}
}

// --- insights are display-only renderings of the structured fields ---

func TestAnalyze_InsightsPresent(t *testing.T) {
	analysis, err := Analyze(dailySeries(100, 100, 100))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(analysis.Insights) != 3 {
		t.Errorf("insights = %d, want 3 (position, volatility, trend)", len(analysis.Insights))
	}
	for _, s := range analysis.Insights {
		if s == "" {
			t.Error("empty insight string")
		}
	}
}
