// internal/engine/cultural.go
package engine

import (
	"math"

	apperrors "veriportal-engine/internal/common/errors"
)

// CulturalAdapter derives cultural profiles and applies them to engine output. Every Adapt
// method is a pure function of its arguments and is idempotent.
type CulturalAdapter struct {
	tables *Tables
}

func NewCulturalAdapter(tables *Tables) *CulturalAdapter {
	return &CulturalAdapter{tables: tables}
}

// DefaultBusinessType infers the organizational type from company size.
func DefaultBusinessType(size SizeClass) BusinessType {
	switch size {
	case SizeLarge, SizeEnterprise:
		return BusinessEnterprise
	default:
		return BusinessSME
	}
}

// DeriveBusinessProfile builds the profile for a business from its region, business type and
// decision style. A missing region is INCOMPLETE_CONTEXT; the region is never guessed.
func (a *CulturalAdapter) DeriveBusinessProfile(ctx BusinessContext) (CulturalProfile, error) {
	profile, rt, err := a.regionProfile(ctx.Region)
	if err != nil {
		return CulturalProfile{}, err
	}

	businessType := ctx.BusinessType
	if businessType == "" {
		businessType = DefaultBusinessType(ctx.Size)
	}
	norms, ok := a.tables.BusinessTypes[businessType]
	if !ok {
		return CulturalProfile{}, apperrors.NewInvalidContextError("businessType", string(businessType))
	}
	if norms.Style != "" {
		profile.CommunicationStyle = norms.Style
	}
	profile.HierarchyTolerance = math.Max(profile.HierarchyTolerance, norms.MinHierarchy)
	if norms.ThresholdMultiplier > 0 {
		profile.ThresholdMultiplier *= norms.ThresholdMultiplier
	}

	if ctx.DecisionStyle != "" && ctx.DecisionStyle == rt.AlignedDecisionStyle && a.tables.AlignmentBoost > 0 {
		current := multiplierOr(profile.ScoreMultipliers, CategoryCulturalAlignment, 1)
		profile.ScoreMultipliers[CategoryCulturalAlignment] = current * a.tables.AlignmentBoost
	}
	return profile, nil
}

// DeriveLearnerProfile builds the profile for a learner from region and role.
func (a *CulturalAdapter) DeriveLearnerProfile(ctx LearnerContext) (CulturalProfile, error) {
	profile, _, err := a.regionProfile(ctx.Region)
	if err != nil {
		return CulturalProfile{}, err
	}
	if role, ok := a.tables.Roles[ctx.Role]; ok && role.Style != "" {
		profile.CommunicationStyle = role.Style
	}
	return profile, nil
}

func (a *CulturalAdapter) regionProfile(region Region) (CulturalProfile, RegionTable, error) {
	if region == "" {
		return CulturalProfile{}, RegionTable{}, apperrors.NewIncompleteContextError("region")
	}
	rt, ok := a.tables.Regions[region]
	if !ok {
		return CulturalProfile{}, RegionTable{}, apperrors.NewInvalidContextError("region", string(region))
	}

	multipliers := make(map[Category]float64, len(rt.ScoreMultipliers))
	for c, m := range rt.ScoreMultipliers {
		multipliers[c] = m
	}
	return CulturalProfile{
		Region:              region,
		CommunicationStyle:  rt.Style,
		HierarchyTolerance:  rt.HierarchyTolerance,
		ThresholdMultiplier: rt.ThresholdMultiplier,
		ScoreMultipliers:    multipliers,
		ValidationLevel:     rt.ValidationLevel,
		ContentDepth:        rt.ContentDepth,
	}, rt, nil
}

// signOffHierarchy is the hierarchy tolerance at which results go to leadership first.
const signOffHierarchy = 0.8

// PresentationFor stamps the presentation block for a profile.
func PresentationFor(profile CulturalProfile) Presentation {
	return Presentation{
		Region:           profile.Region,
		Tone:             RegisterFor(profile.CommunicationStyle),
		ValidationLevel:  profile.ValidationLevel,
		ContentDepth:     profile.ContentDepth,
		ExecutiveSignOff: profile.HierarchyTolerance >= signOffHierarchy,
	}
}

// AdaptRecommendations re-resolves every presentation field of recs for profile. Priorities,
// targets and action items are left untouched.
func (a *CulturalAdapter) AdaptRecommendations(profile CulturalProfile, recs []Recommendation) []Recommendation {
	if recs == nil {
		return nil
	}
	register := RegisterFor(profile.CommunicationStyle)
	limit := a.tables.DepthLimits[profile.ContentDepth]

	out := make([]Recommendation, len(recs))
	for i, r := range recs {
		r.Register = register
		r.Title = r.TitlePhrasing.Pick(register)
		r.Description = r.DescriptionPhrasing.Pick(register)
		r.VisibleActions = len(r.ActionItems)
		if limit > 0 && limit < r.VisibleActions {
			r.VisibleActions = limit
		}
		out[i] = r
	}
	return out
}

// AdaptEvaluation applies profile to a compliance evaluation.
func (a *CulturalAdapter) AdaptEvaluation(profile CulturalProfile, eval ComplianceEvaluation) ComplianceEvaluation {
	eval.Profile = profile
	eval.Recommendations = a.AdaptRecommendations(profile, eval.Recommendations)
	eval.Presentation = PresentationFor(profile)
	return eval
}

// AdaptLearnerEvaluation applies profile to a learner evaluation.
func (a *CulturalAdapter) AdaptLearnerEvaluation(profile CulturalProfile, eval LearnerEvaluation) LearnerEvaluation {
	eval.ComplianceEvaluation = a.AdaptEvaluation(profile, eval.ComplianceEvaluation)
	return eval
}
