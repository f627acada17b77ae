package engine

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultResultLimit is the page size used when SearchOptions.Limit <= 0.
const DefaultResultLimit = 20

// scoreConcurrency bounds the per-candidate scoring fan-out. Scores are
// independent of each other, so only the final sort is a sync point.
const scoreConcurrency = 8

// RankWeights are the base-score weights. They should sum to 1.0.
type RankWeights struct {
	Profitability   float64
	Risk            float64
	Competitiveness float64
}

// BoostConfig holds the additive query-intent boosts and the cap of the
// keyword-overlap boost.
type BoostConfig struct {
	TrendBoost  float64 // trend/popular terms + improving demand
	SafeBoost   float64 // safe/low-risk terms + risk score below SafeRiskMax
	ProfitBoost float64 // profit terms + profitability above ProfitMin
	OverlapMax  float64 // full-overlap keyword boost

	SafeRiskMax float64
	ProfitMin   float64
}

// DefaultRankWeights returns the production base-score weights.
func DefaultRankWeights() RankWeights {
	return RankWeights{Profitability: 0.4, Risk: 0.3, Competitiveness: 0.3}
}

// DefaultBoostConfig returns the production boost values.
func DefaultBoostConfig() BoostConfig {
	return BoostConfig{
		TrendBoost:  15,
		SafeBoost:   10,
		ProfitBoost: 12,
		OverlapMax:  20,
		SafeRiskMax: 30,
		ProfitMin:   80,
	}
}

// Query-intent keyword sets. Matching is a case-insensitive substring check
// against the whole query.
var (
	trendTerms  = []string{"trend", "trending", "popular", "hot", "トレンド", "人気"}
	safeTerms   = []string{"safe", "low risk", "low-risk", "stable", "安全", "安定"}
	profitTerms = []string{"profit", "profitable", "margin", "利益", "高利益"}
)

// Ranker scores and orders candidates for a search query.
type Ranker struct {
	Weights RankWeights
	Boosts  BoostConfig
}

// NewRanker returns a Ranker with production weights.
func NewRanker() *Ranker {
	return &Ranker{Weights: DefaultRankWeights(), Boosts: DefaultBoostConfig()}
}

// Rank filters, scores, sorts, and truncates candidates. Filters run before
// scoring; the sort is stable so equal scores keep their input order, and
// the result is capped at opts.Limit (DefaultResultLimit when unset).
func (r *Ranker) Rank(candidates []Candidate, query string, opts SearchOptions) []ScoredCandidate {
	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !passesFilters(c, opts) {
			continue
		}
		filtered = append(filtered, c)
	}
	if len(filtered) == 0 {
		return nil
	}

	loweredQuery := strings.ToLower(strings.TrimSpace(query))
	queryTerms := strings.Fields(loweredQuery)

	scored := make([]ScoredCandidate, len(filtered))
	g := new(errgroup.Group)
	g.SetLimit(scoreConcurrency)
	for i := range filtered {
		i := i
		g.Go(func() error {
			scored[i] = r.score(filtered[i], loweredQuery, queryTerms)
			return nil
		})
	}
	// Scoring never fails; the group is only used for the bounded fan-out.
	_ = g.Wait()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func passesFilters(c Candidate, opts SearchOptions) bool {
	if c.ProfitabilityScore < opts.MinProfitabilityScore {
		return false
	}
	if opts.MaxRiskLevel != "" && c.RiskScore > opts.MaxRiskLevel.MaxScore() {
		return false
	}
	if opts.Category != "" && c.Category != opts.Category {
		return false
	}
	if pr := opts.PriceRange; pr != nil {
		if c.Price < pr.Min {
			return false
		}
		if pr.Max > 0 && c.Price > pr.Max {
			return false
		}
	}
	return true
}

// score computes one candidate's final score. Depends only on the candidate
// and the query, never on other candidates.
func (r *Ranker) score(c Candidate, loweredQuery string, queryTerms []string) ScoredCandidate {
	base := c.ProfitabilityScore*r.Weights.Profitability +
		(100-c.RiskScore)*r.Weights.Risk +
		c.Competitiveness*r.Weights.Competitiveness

	intent := r.intentBoost(c, loweredQuery)
	overlap := r.overlapBoost(c.Title, queryTerms)

	final := clampRange(base+intent+overlap, 0, 100)
	return ScoredCandidate{
		Candidate:    c,
		BaseScore:    sanitizeFloat(base),
		IntentBoost:  intent,
		OverlapBoost: overlap,
		FinalScore:   int(math.Round(final)),
	}
}

// intentBoost applies the additive query-intent boosts. All applicable
// boosts stack.
func (r *Ranker) intentBoost(c Candidate, loweredQuery string) float64 {
	if loweredQuery == "" {
		return 0
	}
	var boost float64
	if containsAny(loweredQuery, trendTerms) && c.DemandTrend == TrendRising {
		boost += r.Boosts.TrendBoost
	}
	if containsAny(loweredQuery, safeTerms) && c.RiskScore < r.Boosts.SafeRiskMax {
		boost += r.Boosts.SafeBoost
	}
	if containsAny(loweredQuery, profitTerms) && c.ProfitabilityScore > r.Boosts.ProfitMin {
		boost += r.Boosts.ProfitBoost
	}
	return boost
}

// overlapBoost scales with the fraction of query terms found in the title.
func (r *Ranker) overlapBoost(title string, queryTerms []string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}
	loweredTitle := strings.ToLower(title)
	matched := 0
	for _, term := range queryTerms {
		if strings.Contains(loweredTitle, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTerms)) * r.Boosts.OverlapMax
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
