// internal/engine/scorer.go
package engine

import (
	"math"
	"strconv"
	"strings"

	apperrors "veriportal-engine/internal/common/errors"
)

// ScoringContext carries the per-evaluation modifiers the scorer needs.
type ScoringContext struct {
	Profile  CulturalProfile
	Industry string
}

// Scorer computes a single category score from a baseline plus capped evidence points.
type Scorer struct {
	tables *Tables
}

func NewScorer(tables *Tables) *Scorer {
	return &Scorer{tables: tables}
}

// Score returns the CategoryScore for category. It fails with INVALID_CATEGORY for a category
// that has no table and panics with OUT_OF_RANGE_SCORE if the clamp invariant is ever broken.
func (s *Scorer) Score(category Category, sc ScoringContext, ev Evidence) (CategoryScore, error) {
	ct, err := s.tables.categoryTable(category)
	if err != nil {
		return CategoryScore{}, err
	}

	raw := ct.Baseline
	provided := false
	for _, item := range ct.Items {
		credit, ok := itemCredit(item, ev)
		if !ok {
			continue
		}
		provided = true
		raw += math.Min(credit, s.tables.ItemCap)
	}

	raw *= s.industryModifier(sc.Industry, category)
	raw *= multiplierOr(sc.Profile.ScoreMultipliers, category, 1)

	value := roundInt(clampFloat(raw, 0, 100))
	assertScoreInRange(category, value)

	return CategoryScore{
		Category:         category,
		Value:            value,
		Baseline:         roundInt(ct.Baseline),
		Trend:            s.trend(value, ev.PreviousScore),
		RiskLevel:        ClassifyTier(value),
		EvidenceProvided: provided,
	}, nil
}

func (s *Scorer) industryModifier(industry string, category Category) float64 {
	mods, ok := s.tables.IndustryModifiers[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		return 1
	}
	return multiplierOr(mods, category, 1)
}

func (s *Scorer) trend(value int, previous *int) Trend {
	if previous == nil {
		return TrendStable
	}
	delta := value - *previous
	switch {
	case delta > s.tables.TrendTolerance:
		return TrendImproving
	case delta < -s.tables.TrendTolerance:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// itemCredit reports the points an item earns and whether the item counts as evidenced.
func itemCredit(item EvidenceItem, ev Evidence) (float64, bool) {
	if containsString(ev.CompletedItems, item.ID) {
		return item.Points, true
	}
	answer, ok := ev.Answers[item.ID]
	if !ok {
		return 0, false
	}
	// A graded item answered with a plain yes counts as fully done.
	if item.Graded {
		if grade, ok := parseNumber(answer); ok {
			if grade <= 0 {
				return 0, false
			}
			return item.Points * clampFloat(grade, 0, 100) / 100, true
		}
	}
	if isTruthy(answer) {
		return item.Points, true
	}
	return 0, false
}

// evidenced reports whether itemID is present in ev, by completion or a truthy answer.
func evidenced(itemID string, ev Evidence) bool {
	if containsString(ev.CompletedItems, itemID) {
		return true
	}
	answer, ok := ev.Answers[itemID]
	return ok && isTruthy(answer)
}

func isTruthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "yes", "true", "co", "có":
			return true
		}
		return false
	default:
		n, ok := parseNumber(v)
		return ok && n > 0
	}
}

func parseNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func assertScoreInRange(category Category, value int) {
	if value < 0 || value > 100 {
		panic(apperrors.NewOutOfRangeScoreError(string(category), float64(value)))
	}
}

func multiplierOr(m map[Category]float64, c Category, def float64) float64 {
	if v, ok := m[c]; ok && v > 0 {
		return v
	}
	return def
}

func clampFloat(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// roundInt rounds half away from zero. The value is first snapped to six decimals so that
// products like 70*0.95 round as 66.5 and not as 66.49999999999999. NaN maps to -1 so the range
// assertion catches it.
func roundInt(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(math.Round(math.Round(v*1e6) / 1e6))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var categoryOrder = func() map[Category]int {
	order := make(map[Category]int)
	for i, c := range ComplianceCategories {
		order[c] = i
	}
	for i, c := range TrainingCategories {
		order[c] = len(ComplianceCategories) + i
	}
	return order
}()
