package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"sedori-engine/internal/config"
	"sedori-engine/internal/engine"
	"sedori-engine/internal/logger"
	"sedori-engine/internal/validate"
)

var version = "dev"

// seriesPoint is the flat on-disk shape of one price sample.
type seriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Source    string    `json:"source"`
}

func main() {
	configPath := flag.String("config", "", "optional engine config file (yaml)")
	productsPath := flag.String("products", "", "JSON file with ranking candidates")
	seriesPath := flag.String("series", "", "JSON file with a price series")
	query := flag.String("query", "", "search query for ranking")
	cost := flag.String("cost", "", "cost input for the product form demo")
	price := flag.String("price", "", "price input for the product form demo")
	limit := flag.Int("limit", 0, "max ranking results (0 = configured default)")
	flag.Parse()

	logger.Banner(version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("CONFIG", fmt.Sprintf("failed to load config: %v", err))
		os.Exit(1)
	}

	ran := false
	if *cost != "" || *price != "" {
		runProductForm(cfg, *cost, *price)
		ran = true
	}
	if *seriesPath != "" {
		runTrend(cfg, *seriesPath)
		ran = true
	}
	if *productsPath != "" {
		runRanking(cfg, *productsPath, *query, *limit)
		ran = true
	}
	if !ran {
		logger.Warn("MAIN", "nothing to do; pass -series, -products, or -cost/-price")
		flag.Usage()
		os.Exit(2)
	}
}

func runProductForm(cfg *config.Config, cost, price string) {
	logger.Section("Product Form")
	record := map[string]string{
		"name":  "demo product",
		"cost":  cost,
		"price": price,
	}
	outcome := validate.ValidateFormWithLimits(record, validate.FormProduct, cfg.Limits())
	for _, e := range outcome.Errors {
		logger.Error(e.LogTag(), fmt.Sprintf("%s (%s)", e.UserMessage.EN, e.UserMessage.JA))
	}
	for _, w := range outcome.Warnings {
		logger.Warn("VALID", w)
	}
	if !outcome.Valid {
		return
	}

	report := engine.ComputeProfit(
		engine.NewMoney(validate.SanitizeNumber(cost)),
		engine.NewMoney(validate.SanitizeNumber(price)),
	)
	logger.Stats("profit", engine.FormatAmount(report.Profit)+" "+report.Currency)
	logger.Stats("margin", engine.FormatPercent(report.MarginPercent))
	logger.Stats("roi", engine.FormatPercent(report.ROIPercent))
	logger.Stats("profitable", report.IsProfitable)
}

func runTrend(cfg *config.Config, path string) {
	logger.Section("Trend Analysis")

	var points []seriesPoint
	if err := readJSON(path, &points); err != nil {
		logger.Error("TREND", fmt.Sprintf("failed to read series: %v", err))
		os.Exit(1)
	}
	series := make([]engine.PriceDataPoint, len(points))
	for i, p := range points {
		series[i] = engine.PriceDataPoint{
			Timestamp: p.Timestamp,
			Price:     engine.NewMoney(p.Price),
			Source:    p.Source,
		}
	}

	analysis, aerr := engine.AnalyzeWithConfig(series, cfg.TrendConfig())
	if aerr != nil {
		logger.Error(aerr.LogTag(), aerr.Error())
		logger.Info("TREND", aerr.UserMessage.JA)
		os.Exit(1)
	}

	logger.Stats("trend", string(analysis.Trend))
	logger.Stats("strength", fmt.Sprintf("%.2f", analysis.TrendStrength))
	logger.Stats("volatility", engine.FormatPercent(analysis.VolatilityPct))
	for _, p := range analysis.Predictions {
		logger.Stats("prediction", fmt.Sprintf("%s %s in [%s, %s] by %s (p=%.2f)",
			engine.FormatAmount(p.PredictedPrice.Amount), p.PredictedPrice.Currency,
			engine.FormatAmount(p.Interval.Lower), engine.FormatAmount(p.Interval.Upper),
			p.TargetTimestamp.Format("2006-01-02"), p.Probability))
	}
	for _, insight := range analysis.Insights {
		logger.Info("TREND", insight)
	}
	for i, rec := range analysis.Recommendations {
		tag := "RECO"
		if i == 0 {
			tag = "PRIMARY"
		}
		logger.Success(tag, fmt.Sprintf("%s (%s risk, %.0f%% confidence, %s): %s",
			rec.Action, rec.Risk, rec.Confidence*100, rec.Timeframe, rec.Reason))
	}
}

func runRanking(cfg *config.Config, path, query string, limit int) {
	logger.Section("Ranking")

	var candidates []engine.Candidate
	if err := readJSON(path, &candidates); err != nil {
		logger.Error("RANK", fmt.Sprintf("failed to read candidates: %v", err))
		os.Exit(1)
	}

	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	results := cfg.Ranker().Rank(candidates, query, engine.SearchOptions{Limit: limit})
	logger.Info("RANK", fmt.Sprintf("scored %d of %d candidates for %q", len(results), len(candidates), query))
	for i, sc := range results {
		logger.Stats(fmt.Sprintf("#%d %s", i+1, sc.Candidate.Title),
			fmt.Sprintf("score %d (base %.1f, boosts +%.1f)",
				sc.FinalScore, sc.BaseScore, sc.IntentBoost+sc.OverlapBoost))
	}
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
