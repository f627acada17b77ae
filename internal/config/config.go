// Package config holds the engine tuning knobs. Defaults reproduce the
// production constants; a config file or SEDORI_-prefixed environment
// variables can override them.
package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"

	"sedori-engine/internal/engine"
	"sedori-engine/internal/validate"
)

// Config is the in-memory representation of all tunables.
type Config struct {
	// Ranking base-score weights; must sum to 1.0.
	ProfitWeight          float64 `mapstructure:"profit_weight"`
	RiskWeight            float64 `mapstructure:"risk_weight"`
	CompetitivenessWeight float64 `mapstructure:"competitiveness_weight"`

	// Query-intent boosts.
	TrendBoost   float64 `mapstructure:"trend_boost"`
	SafeBoost    float64 `mapstructure:"safe_boost"`
	ProfitBoost  float64 `mapstructure:"profit_boost"`
	OverlapBoost float64 `mapstructure:"overlap_boost"`
	SafeRiskMax  float64 `mapstructure:"safe_risk_max"`
	ProfitMin    float64 `mapstructure:"profit_min"`

	// Trend analyzer thresholds.
	TrendWindow           int     `mapstructure:"trend_window"`
	VolatileCutoffPct     float64 `mapstructure:"volatile_cutoff_pct"`
	SlopeCutoff           float64 `mapstructure:"slope_cutoff"`
	PredictionSteps       int     `mapstructure:"prediction_steps"`
	PredictionDamping     float64 `mapstructure:"prediction_damping"`
	IntervalSpread        float64 `mapstructure:"interval_spread"`
	PredictionProbability float64 `mapstructure:"prediction_probability"`

	// Form validation advisory thresholds.
	LowMarginPct      float64 `mapstructure:"low_margin_pct"`
	HighMarginPct     float64 `mapstructure:"high_margin_pct"`
	MaxDescriptionLen int     `mapstructure:"max_description_len"`
	LargeQuantity     int     `mapstructure:"large_quantity"`

	// Result paging.
	ResultLimit int `mapstructure:"result_limit"`
}

// Default returns a Config with the production values.
func Default() *Config {
	return &Config{
		ProfitWeight:          0.4,
		RiskWeight:            0.3,
		CompetitivenessWeight: 0.3,
		TrendBoost:            15,
		SafeBoost:             10,
		ProfitBoost:           12,
		OverlapBoost:          20,
		SafeRiskMax:           30,
		ProfitMin:             80,
		TrendWindow:           10,
		VolatileCutoffPct:     15,
		SlopeCutoff:           0.05,
		PredictionSteps:       30,
		PredictionDamping:     0.5,
		IntervalSpread:        0.10,
		PredictionProbability: 0.75,
		LowMarginPct:          10,
		HighMarginPct:         80,
		MaxDescriptionLen:     1000,
		LargeQuantity:         99,
		ResultLimit:           engine.DefaultResultLimit,
	}
}

// Load reads configuration from an optional file and the environment.
// An empty path skips the file and uses defaults plus env overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SEDORI")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("profit_weight", d.ProfitWeight)
	v.SetDefault("risk_weight", d.RiskWeight)
	v.SetDefault("competitiveness_weight", d.CompetitivenessWeight)
	v.SetDefault("trend_boost", d.TrendBoost)
	v.SetDefault("safe_boost", d.SafeBoost)
	v.SetDefault("profit_boost", d.ProfitBoost)
	v.SetDefault("overlap_boost", d.OverlapBoost)
	v.SetDefault("safe_risk_max", d.SafeRiskMax)
	v.SetDefault("profit_min", d.ProfitMin)
	v.SetDefault("trend_window", d.TrendWindow)
	v.SetDefault("volatile_cutoff_pct", d.VolatileCutoffPct)
	v.SetDefault("slope_cutoff", d.SlopeCutoff)
	v.SetDefault("prediction_steps", d.PredictionSteps)
	v.SetDefault("prediction_damping", d.PredictionDamping)
	v.SetDefault("interval_spread", d.IntervalSpread)
	v.SetDefault("prediction_probability", d.PredictionProbability)
	v.SetDefault("low_margin_pct", d.LowMarginPct)
	v.SetDefault("high_margin_pct", d.HighMarginPct)
	v.SetDefault("max_description_len", d.MaxDescriptionLen)
	v.SetDefault("large_quantity", d.LargeQuantity)
	v.SetDefault("result_limit", d.ResultLimit)
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	sum := c.ProfitWeight + c.RiskWeight + c.CompetitivenessWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("ranking weights must sum to 1.0, got %v", sum)
	}
	if c.TrendWindow < 2 {
		return fmt.Errorf("trend_window must be at least 2, got %d", c.TrendWindow)
	}
	if c.PredictionProbability < 0 || c.PredictionProbability > 1 {
		return fmt.Errorf("prediction_probability must be in [0, 1], got %v", c.PredictionProbability)
	}
	if c.ResultLimit <= 0 {
		return fmt.Errorf("result_limit must be positive, got %d", c.ResultLimit)
	}
	return nil
}

// Ranker builds a ranking engine from the configured weights and boosts.
func (c *Config) Ranker() *engine.Ranker {
	return &engine.Ranker{
		Weights: engine.RankWeights{
			Profitability:   c.ProfitWeight,
			Risk:            c.RiskWeight,
			Competitiveness: c.CompetitivenessWeight,
		},
		Boosts: engine.BoostConfig{
			TrendBoost:  c.TrendBoost,
			SafeBoost:   c.SafeBoost,
			ProfitBoost: c.ProfitBoost,
			OverlapMax:  c.OverlapBoost,
			SafeRiskMax: c.SafeRiskMax,
			ProfitMin:   c.ProfitMin,
		},
	}
}

// TrendConfig builds the analyzer thresholds.
func (c *Config) TrendConfig() engine.TrendConfig {
	return engine.TrendConfig{
		WindowSize:            c.TrendWindow,
		VolatileCutoffPct:     c.VolatileCutoffPct,
		SlopeCutoff:           c.SlopeCutoff,
		PredictionSteps:       c.PredictionSteps,
		PredictionDamping:     c.PredictionDamping,
		IntervalSpread:        c.IntervalSpread,
		PredictionProbability: c.PredictionProbability,
	}
}

// Limits builds the form validation thresholds.
func (c *Config) Limits() validate.Limits {
	return validate.Limits{
		LowMarginPct:      c.LowMarginPct,
		HighMarginPct:     c.HighMarginPct,
		MaxDescriptionLen: c.MaxDescriptionLen,
		LargeQuantity:     c.LargeQuantity,
	}
}
