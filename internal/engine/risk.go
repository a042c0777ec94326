// internal/engine/risk.go
package engine

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// idNamespace roots every deterministic identifier the engine emits.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://veriportal.vn/engine"))

func deterministicID(parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "|"))).String()
}

// RiskContext holds what the assessor needs beyond the scores themselves.
type RiskContext struct {
	SubjectID string
	Size      SizeClass
	Profile   CulturalProfile
}

// RiskAssessor turns category scores below their danger threshold into risk factors.
type RiskAssessor struct {
	tables *Tables
}

func NewRiskAssessor(tables *Tables) *RiskAssessor {
	return &RiskAssessor{tables: tables}
}

// Threshold returns the danger threshold for category under profile.
func (r *RiskAssessor) Threshold(category Category, profile CulturalProfile) int {
	ct := r.tables.Categories[category]
	return clampInt(roundInt(ct.DangerThreshold*thresholdMultiplier(profile)), 0, 100)
}

// Assess returns one RiskFactor per category strictly below its threshold, ordered by impact
// then likelihood, both descending, with canonical category order breaking ties.
func (r *RiskAssessor) Assess(scores []CategoryScore, rc RiskContext) []RiskFactor {
	sizeFactor := 1.0
	if f, ok := r.tables.Risk.SizeFactors[rc.Size]; ok && f > 0 {
		sizeFactor = f
	}

	risks := make([]RiskFactor, 0, len(scores))
	for _, s := range scores {
		ct, ok := r.tables.Categories[s.Category]
		if !ok {
			continue
		}
		threshold := r.Threshold(s.Category, rc.Profile)
		if s.Value >= threshold {
			continue
		}

		raw := (r.tables.Risk.LikelihoodFloor + r.tables.Risk.LikelihoodSlope*float64(threshold-s.Value)) * sizeFactor
		risks = append(risks, RiskFactor{
			ID:         deterministicID(rc.SubjectID, "risk", ct.Risk.Key),
			Key:        ct.Risk.Key,
			Category:   s.Category,
			Title:      ct.Risk.Title,
			Impact:     ClassifyTier(s.Value),
			Likelihood: clampInt(roundInt(raw), 0, 100),
			Mitigation: ct.Risk.Mitigation,
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		a, b := risks[i], risks[j]
		if riskRank[a.Impact] != riskRank[b.Impact] {
			return riskRank[a.Impact] > riskRank[b.Impact]
		}
		if a.Likelihood != b.Likelihood {
			return a.Likelihood > b.Likelihood
		}
		return categoryOrder[a.Category] < categoryOrder[b.Category]
	})
	return risks
}

func thresholdMultiplier(profile CulturalProfile) float64 {
	if profile.ThresholdMultiplier > 0 {
		return profile.ThresholdMultiplier
	}
	return 1
}
