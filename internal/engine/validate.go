// internal/engine/validate.go
package engine

import (
	"math"
	"strconv"

	apperrors "veriportal-engine/internal/common/errors"
)

func validateBusinessContext(ctx BusinessContext) error {
	if ctx.Region == "" {
		return apperrors.NewIncompleteContextError("region")
	}
	checks := []struct {
		field string
		value string
		ok    bool
	}{
		{"region", string(ctx.Region), oneOf(ctx.Region, RegionNorth, RegionCentral, RegionSouth)},
		{"size", string(ctx.Size), ctx.Size == "" || oneOf(ctx.Size, SizeSmall, SizeMedium, SizeLarge, SizeEnterprise)},
		{"maturity", string(ctx.Maturity), ctx.Maturity == "" || oneOf(ctx.Maturity, MaturityBeginner, MaturityDeveloping, MaturityIntermediate, MaturityAdvanced)},
		{"businessType", string(ctx.BusinessType), ctx.BusinessType == "" || oneOf(ctx.BusinessType, BusinessSME, BusinessStartup, BusinessEnterprise, BusinessGovernment)},
		{"decisionStyle", string(ctx.DecisionStyle), ctx.DecisionStyle == "" || oneOf(ctx.DecisionStyle, DecisionHierarchical, DecisionConsensus, DecisionAgile)},
	}
	for _, c := range checks {
		if !c.ok {
			return apperrors.NewInvalidContextError(c.field, c.value)
		}
	}
	return nil
}

func validateLearnerContext(ctx LearnerContext) error {
	switch {
	case ctx.Region == "":
		return apperrors.NewIncompleteContextError("region")
	case ctx.Role == "":
		return apperrors.NewIncompleteContextError("role")
	case ctx.Experience == "":
		return apperrors.NewIncompleteContextError("experience")
	}
	if !oneOf(ctx.Region, RegionNorth, RegionCentral, RegionSouth) {
		return apperrors.NewInvalidContextError("region", string(ctx.Region))
	}
	if !oneOf(ctx.Role, RoleExecutive, RoleManager, RoleStaff, RoleDPO, RoleITAdmin, RoleLegalCounsel) {
		return apperrors.NewInvalidContextError("role", string(ctx.Role))
	}
	if !oneOf(ctx.Experience, ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert) {
		return apperrors.NewInvalidContextError("experience", string(ctx.Experience))
	}
	if p := ctx.Preferences.Pacing; p != "" && !oneOf(p, PacingAccelerated, PacingStandard, PacingRelaxed) {
		return apperrors.NewInvalidContextError("preferences.pacing", string(p))
	}
	if ctx.WeeklyMinutes < 0 {
		return apperrors.NewInvalidContextError("weeklyMinutes", "negative")
	}
	return nil
}

// maxThresholdMultiplier bounds caller-supplied profile overrides; derived profiles stay well below it.
const maxThresholdMultiplier = 2.0

// validateProfile checks a caller-supplied profile override the way derived profiles are built.
func validateProfile(p CulturalProfile) error {
	if p.Region == "" {
		return apperrors.NewIncompleteContextError("profile.region")
	}
	checks := []struct {
		field string
		value string
		ok    bool
	}{
		{"profile.region", string(p.Region), oneOf(p.Region, RegionNorth, RegionCentral, RegionSouth)},
		{"profile.communicationStyle", string(p.CommunicationStyle), oneOf(p.CommunicationStyle, StyleFormal, StyleConsultative, StyleCollaborative)},
		{"profile.contentDepth", string(p.ContentDepth), oneOf(p.ContentDepth, DepthComprehensive, DepthBalanced, DepthConcise)},
		{"profile.validationLevel", string(p.ValidationLevel), oneOf(p.ValidationLevel, ValidationStrict, ValidationStandard, ValidationLenient)},
		{"profile.hierarchyTolerance", formatFloat(p.HierarchyTolerance), p.HierarchyTolerance >= 0 && p.HierarchyTolerance <= 1},
		{"profile.thresholdMultiplier", formatFloat(p.ThresholdMultiplier), p.ThresholdMultiplier > 0 && p.ThresholdMultiplier <= maxThresholdMultiplier},
	}
	for _, c := range checks {
		if !c.ok {
			return apperrors.NewInvalidContextError(c.field, c.value)
		}
	}
	for c, m := range p.ScoreMultipliers {
		if !oneOf(c, ComplianceCategories...) && !oneOf(c, TrainingCategories...) {
			return apperrors.NewInvalidCategoryError(string(c))
		}
		if !(m > 0) || math.IsInf(m, 0) {
			return apperrors.NewInvalidContextError("profile.scoreMultipliers."+string(c), formatFloat(m))
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func validateEvidenceKeys(evidence EvidenceMap, allowed []Category) error {
	for c := range evidence {
		if !oneOf(c, allowed...) {
			return apperrors.NewInvalidCategoryError(string(c))
		}
	}
	return nil
}

func validateWeightKeys(weights map[Category]float64, allowed []Category) error {
	for c := range weights {
		if !oneOf(c, allowed...) {
			return apperrors.NewInvalidCategoryError(string(c))
		}
	}
	return nil
}

func validateHistoryKeys(h LearningHistory) error {
	for c := range h.AssessmentScores {
		if !oneOf(c, TrainingCategories...) {
			return apperrors.NewInvalidCategoryError(string(c))
		}
	}
	for c := range h.PreviousScores {
		if !oneOf(c, TrainingCategories...) {
			return apperrors.NewInvalidCategoryError(string(c))
		}
	}
	return nil
}

func oneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
