// internal/engine/aggregator.go
package engine

import (
	"fmt"
	"math"

	apperrors "veriportal-engine/internal/common/errors"
)

// Aggregator combines category scores into an OverallScore.
type Aggregator struct {
	clock Clock
}

func NewAggregator(clock Clock) *Aggregator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Aggregator{clock: clock}
}

// Aggregate computes the weighted mean of scores. A nil or empty weight map means equal weights.
// Categories missing from a non-empty map receive the mean of the supplied weights.
func (a *Aggregator) Aggregate(scores []CategoryScore, weights map[Category]float64) (OverallScore, error) {
	resolved, err := resolveWeights(scores, weights)
	if err != nil {
		return OverallScore{}, err
	}

	var total, sum float64
	evidencedCount := 0
	for i, s := range scores {
		total += resolved[i]
		sum += resolved[i] * float64(s.Value)
		if s.EvidenceProvided {
			evidencedCount++
		}
	}
	if total <= 0 {
		return OverallScore{}, apperrors.NewInvalidWeightError("total weight must be greater than zero")
	}

	value := clampInt(roundInt(sum/total), 0, 100)
	confidence := roundInt(100 * float64(evidencedCount) / float64(len(scores)))

	return OverallScore{
		Value:          value,
		Confidence:     confidence,
		Tier:           ClassifyTier(value),
		LastCalculated: a.clock.Now().UTC(),
	}, nil
}

func resolveWeights(scores []CategoryScore, weights map[Category]float64) ([]float64, error) {
	for c, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, apperrors.NewInvalidWeightError(fmt.Sprintf("category %s has invalid weight %g", c, w))
		}
	}

	fallback := 1.0
	if len(weights) > 0 {
		var supplied float64
		n := 0
		for _, s := range scores {
			if w, ok := weights[s.Category]; ok {
				supplied += w
				n++
			}
		}
		if n > 0 {
			fallback = supplied / float64(n)
		}
	}

	out := make([]float64, len(scores))
	for i, s := range scores {
		if w, ok := weights[s.Category]; ok {
			out[i] = w
		} else {
			out[i] = fallback
		}
	}
	return out, nil
}

// ClassifyTier maps a 0..100 score to its risk tier.
func ClassifyTier(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMedium
	case score >= 40:
		return RiskHigh
	default:
		return RiskCritical
	}
}
