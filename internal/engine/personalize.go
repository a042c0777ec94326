// internal/engine/personalize.go
package engine

import (
	"math"

	apperrors "veriportal-engine/internal/common/errors"
)

// Personalizer derives a training plan from a learner context.
type Personalizer struct {
	tables *Tables
}

func NewPersonalizer(tables *Tables) *Personalizer {
	return &Personalizer{tables: tables}
}

// ProgramFor returns the explicit program or the role default.
func (p *Personalizer) ProgramFor(ctx LearnerContext) string {
	if ctx.Program != "" {
		return ctx.Program
	}
	if role, ok := p.tables.Roles[ctx.Role]; ok && role.Program != "" {
		return role.Program
	}
	return p.tables.Training.DefaultProgram
}

func (p *Personalizer) Personalize(ctx LearnerContext) (Personalization, error) {
	program := p.ProgramFor(ctx)
	base, ok := p.tables.Training.Programs[program]
	if !ok {
		return Personalization{}, apperrors.NewInvalidContextError("program", program)
	}

	expMult, ok := p.tables.Training.ExperienceMultipliers[ctx.Experience]
	if !ok {
		return Personalization{}, apperrors.NewInvalidContextError("experience", string(ctx.Experience))
	}

	pacing := ctx.Preferences.Pacing
	if pacing == "" {
		pacing = PacingStandard
	}
	paceMult, ok := p.tables.Training.PacingMultipliers[pacing]
	if !ok {
		return Personalization{}, apperrors.NewInvalidContextError("preferences.pacing", string(pacing))
	}

	duration := roundInt(float64(base) * expMult * paceMult)

	weeks := 0
	if ctx.WeeklyMinutes > 0 {
		weeks = int(math.Ceil(float64(duration) / float64(ctx.WeeklyMinutes)))
	}

	return Personalization{
		Program:         program,
		DurationMinutes: duration,
		Difficulty:      Difficulty(ctx.Role, ctx.Experience),
		ModuleSequence:  p.moduleSequence(ctx.Role),
		EstimatedWeeks:  weeks,
		Formats:         p.formats(ctx.Preferences.Media),
	}, nil
}

// Difficulty is expert only for an expert DPO. Other experts are capped at advanced.
func Difficulty(role Role, experience Experience) Experience {
	if experience != ExperienceExpert {
		return experience
	}
	if role == RoleDPO {
		return ExperienceExpert
	}
	return ExperienceAdvanced
}

// moduleSequence inserts role modules before the final canonical module.
func (p *Personalizer) moduleSequence(role Role) []string {
	canonical := p.tables.Training.CanonicalModules
	last := len(canonical) - 1

	seq := make([]string, 0, len(canonical)+2)
	seq = append(seq, canonical[:last]...)
	if rt, ok := p.tables.Roles[role]; ok {
		seq = append(seq, rt.Modules...)
	}
	return append(seq, canonical[last])
}

func (p *Personalizer) formats(media []string) []string {
	var out []string
	for _, m := range media {
		if containsString(p.tables.Training.SupportedFormats, m) && !containsString(out, m) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), p.tables.Training.DefaultFormats...)
	}
	return out
}
