package engine

import "time"

// DefaultCurrency tags amounts when the caller does not specify one.
const DefaultCurrency = "JPY"

// Money is a non-negative monetary amount with a currency tag. Negative
// amounts are rejected by validation upstream, not clamped here.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// NewMoney builds a Money in the default currency.
func NewMoney(amount float64) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

// ProfitReport holds the derived profitability metrics for one (cost, price)
// pair. Margin and ROI are stored at full precision; rounding happens only
// at format time.
type ProfitReport struct {
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"` // 0 when price == 0
	ROIPercent    float64 `json:"roi_percent"`    // 0 when cost == 0
	IsProfitable  bool    `json:"is_profitable"`
	Currency      string  `json:"currency"`
}

// PriceDataPoint is one observed price sample. Series handed to Analyze
// must be sorted ascending by timestamp.
type PriceDataPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     Money     `json:"price"`
	Source    string    `json:"source"`
}

// Trend classifies the direction of a price series.
type Trend string

const (
	TrendRising   Trend = "rising"
	TrendFalling  Trend = "falling"
	TrendStable   Trend = "stable"
	TrendVolatile Trend = "volatile"
)

// Action is the suggestion attached to a recommendation.
type Action string

const (
	ActionBuy   Action = "buy"
	ActionSell  Action = "sell"
	ActionHold  Action = "hold"
	ActionWatch Action = "watch"
)

// RiskLevel is a coarse three-point ordinal.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// MaxScore maps a risk level to the highest risk score it admits when used
// as a ranking filter. Unknown levels admit everything.
func (r RiskLevel) MaxScore() float64 {
	switch r {
	case RiskLow:
		return 30
	case RiskMedium:
		return 60
	default:
		return 100
	}
}

// ConfidenceInterval bounds a prediction.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// PricePrediction is one forward-looking estimate.
// Invariant: Interval.Lower <= PredictedPrice.Amount <= Interval.Upper.
type PricePrediction struct {
	TargetTimestamp time.Time          `json:"target_timestamp"`
	PredictedPrice  Money              `json:"predicted_price"`
	Interval        ConfidenceInterval `json:"confidence_interval"`
	Probability     float64            `json:"probability"` // 0..1
}

// Recommendation is one actionable suggestion. The first recommendation in
// a TrendAnalysis is the primary one.
type Recommendation struct {
	Action     Action    `json:"action"`
	Reason     string    `json:"reason"`
	Risk       RiskLevel `json:"risk_level"`
	Timeframe  string    `json:"timeframe"`
	Confidence float64   `json:"confidence"` // 0..1
}

// TrendAnalysis is the full output of Analyze for one series.
type TrendAnalysis struct {
	Trend           Trend             `json:"trend"`
	TrendStrength   float64           `json:"trend_strength"` // 0..1
	VolatilityPct   float64           `json:"volatility_pct"`
	Predictions     []PricePrediction `json:"predictions"`
	Insights        []string          `json:"insights"` // display only, never parsed
	Recommendations []Recommendation  `json:"recommendations"`
}

// Candidate is a product to be ranked for a search query. The three base
// feature scores are externally supplied, each on a 0-100 scale.
type Candidate struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Category           string  `json:"category"`
	Price              float64 `json:"price"`
	ProfitabilityScore float64 `json:"profitability_score"`
	RiskScore          float64 `json:"risk_score"`
	Competitiveness    float64 `json:"competitiveness"`
	DemandTrend        Trend   `json:"demand_trend"`
}

// ScoredCandidate is a candidate with its computed scores. FinalScore is
// always clamped to [0, 100] after all boosts.
type ScoredCandidate struct {
	Candidate    Candidate `json:"candidate"`
	BaseScore    float64   `json:"base_score"`
	IntentBoost  float64   `json:"intent_boost"`
	OverlapBoost float64   `json:"overlap_boost"`
	FinalScore   int       `json:"final_score"`
}

// PriceRange filters candidates by listing price.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchOptions holds caller-supplied ranking filters and limits.
type SearchOptions struct {
	MinProfitabilityScore float64     `json:"min_profitability_score"`
	MaxRiskLevel          RiskLevel   `json:"max_risk_level"` // "" = no filter
	Category              string      `json:"category"`       // "" = no filter
	PriceRange            *PriceRange `json:"price_range"`
	Limit                 int         `json:"limit"` // 0 = DefaultResultLimit
}
