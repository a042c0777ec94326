// internal/engine/recommend.go
package engine

import (
	"sort"
	"strings"
)

// RecommendationContext is the subject-specific input to the generator.
type RecommendationContext struct {
	SubjectID  string
	Maturity   Maturity
	Evidence   EvidenceMap
	Objectives []string
}

// Generator builds prioritized recommendations for categories below target.
type Generator struct {
	tables *Tables
}

func NewGenerator(tables *Tables) *Generator {
	return &Generator{tables: tables}
}

// PriorityForGap maps a target gap to a priority band.
func PriorityForGap(gap int) Priority {
	switch {
	case gap >= 25:
		return PriorityHigh
	case gap >= 10:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// RegisterFor picks the phrasing register for a communication style.
func RegisterFor(style CommunicationStyle) Register {
	if style == StyleCollaborative {
		return RegisterCollaborative
	}
	return RegisterFormal
}

// Target returns the per-category goal under profile.
func (g *Generator) Target(category Category, profile CulturalProfile) int {
	return clampInt(roundInt(g.tables.target(category)*thresholdMultiplier(profile)), 0, 100)
}

// Generate emits one recommendation per category scoring below its target, sorted by priority
// descending, then score ascending, then canonical category order.
func (g *Generator) Generate(scores []CategoryScore, rc RecommendationContext, profile CulturalProfile) []Recommendation {
	register := RegisterFor(profile.CommunicationStyle)

	recs := make([]Recommendation, 0, len(scores))
	for _, s := range scores {
		ct, ok := g.tables.Categories[s.Category]
		if !ok {
			continue
		}
		target := g.Target(s.Category, profile)
		if s.Value >= target {
			continue
		}
		gap := target - s.Value

		actions := g.actionsFor(ct, rc.Evidence[s.Category], rc.Maturity)
		effort, gain := 0, 0
		for _, a := range actions {
			effort += a.EffortHours
			gain += a.ScoreGain
		}
		if gain > gap {
			gain = gap
		}

		recs = append(recs, Recommendation{
			ID:                   deterministicID(rc.SubjectID, "recommendation", string(s.Category)),
			Category:             s.Category,
			Priority:             PriorityForGap(gap),
			CurrentScore:         s.Value,
			TargetScore:          target,
			Gap:                  gap,
			Title:                ct.Title.Pick(register),
			Description:          ct.Description.Pick(register),
			TitlePhrasing:        ct.Title,
			DescriptionPhrasing:  ct.Description,
			Register:             register,
			ActionItems:          actions,
			VisibleActions:       len(actions),
			EstimatedEffortHours: effort,
			EstimatedImpact:      gain,
			AlignedObjectives:    alignedObjectives(rc.Objectives, ct.Keywords),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] > priorityRank[b.Priority]
		}
		if a.CurrentScore != b.CurrentScore {
			return a.CurrentScore < b.CurrentScore
		}
		return categoryOrder[a.Category] < categoryOrder[b.Category]
	})
	return recs
}

func (g *Generator) actionsFor(ct CategoryTable, ev Evidence, maturity Maturity) []ActionItem {
	actions := make([]ActionItem, 0, len(ct.Playlist))
	for _, tpl := range ct.Playlist {
		if satisfied(tpl, ev, maturity) {
			continue
		}
		actions = append(actions, ActionItem{
			ID:          tpl.ID,
			Text:        tpl.Text,
			EffortHours: tpl.EffortHours,
			ScoreGain:   tpl.ScoreGain,
		})
	}
	return actions
}

func satisfied(tpl ActionTemplate, ev Evidence, maturity Maturity) bool {
	for _, id := range tpl.SatisfiedBy {
		if evidenced(id, ev) {
			return true
		}
	}
	if tpl.SatisfiedAtMaturity == "" || maturity == "" {
		return false
	}
	return maturityRank[maturity] >= maturityRank[tpl.SatisfiedAtMaturity]
}

func alignedObjectives(objectives, keywords []string) []string {
	var out []string
	for _, obj := range objectives {
		lower := strings.ToLower(obj)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				out = append(out, obj)
				break
			}
		}
	}
	return out
}
