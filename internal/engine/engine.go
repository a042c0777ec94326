// Package engine implements the VeriPortal PDPL-2025 scoring and recommendation engine. It is a
// deterministic, in-process rule engine: no I/O, no randomness, no shared mutable state.
package engine

import (
	"time"

	apperrors "veriportal-engine/internal/common/errors"
	"veriportal-engine/internal/common/logger"
)

// Clock supplies the LastCalculated timestamp.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T. Useful for reproducible output.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Engine is the stateless evaluation service. Build one with New and share it freely; all
// methods are safe for concurrent use.
type Engine struct {
	tables       *Tables
	scorer       *Scorer
	aggregator   *Aggregator
	risks        *RiskAssessor
	generator    *Generator
	adapter      *CulturalAdapter
	personalizer *Personalizer
	weights      map[Category]float64
	log          logger.Logger
}

// Option configures an Engine at construction.
type Option func(*engineOptions)

type engineOptions struct {
	clock   Clock
	log     logger.Logger
	weights map[Category]float64
}

func WithClock(c Clock) Option {
	return func(o *engineOptions) { o.clock = c }
}

func WithLogger(l logger.Logger) Option {
	return func(o *engineOptions) { o.log = l }
}

// WithDefaultWeights sets the weights used when a call does not pass WithWeights.
func WithDefaultWeights(w map[Category]float64) Option {
	return func(o *engineOptions) { o.weights = w }
}

// New validates tables and builds an Engine. A nil tables value selects DefaultTables.
func New(tables *Tables, opts ...Option) (*Engine, error) {
	if tables == nil {
		tables = DefaultTables()
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}

	o := engineOptions{clock: SystemClock{}, log: logger.NewNoOpLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	for c, w := range o.weights {
		if _, ok := tables.Categories[c]; !ok {
			return nil, apperrors.NewInvalidCategoryError(string(c))
		}
		if w < 0 {
			return nil, apperrors.NewInvalidWeightError("default weights must not be negative")
		}
	}

	return &Engine{
		tables:       tables,
		scorer:       NewScorer(tables),
		aggregator:   NewAggregator(o.clock),
		risks:        NewRiskAssessor(tables),
		generator:    NewGenerator(tables),
		adapter:      NewCulturalAdapter(tables),
		personalizer: NewPersonalizer(tables),
		weights:      o.weights,
		log:          o.log.WithFields(map[string]interface{}{"component": "engine"}),
	}, nil
}

// Tables exposes the read-only tables the engine was built with.
func (e *Engine) Tables() *Tables { return e.tables }

// Adapter exposes the cultural adaptation layer so callers can re-adapt a stored evaluation.
func (e *Engine) Adapter() *CulturalAdapter { return e.adapter }

// EvaluateOption customizes a single evaluation.
type EvaluateOption func(*evaluateOptions)

type evaluateOptions struct {
	profile *CulturalProfile
	weights map[Category]float64
}

// WithProfile replaces the derived cultural profile.
func WithProfile(p CulturalProfile) EvaluateOption {
	return func(o *evaluateOptions) { o.profile = &p }
}

// WithWeights sets per-category aggregation weights for one call.
func WithWeights(w map[Category]float64) EvaluateOption {
	return func(o *evaluateOptions) { o.weights = w }
}

// EvaluateBusiness runs the full pipeline over the compliance category set.
func (e *Engine) EvaluateBusiness(ctx BusinessContext, evidence EvidenceMap, opts ...EvaluateOption) (*ComplianceEvaluation, error) {
	if err := validateBusinessContext(ctx); err != nil {
		return nil, err
	}
	if err := validateEvidenceKeys(evidence, ComplianceCategories); err != nil {
		return nil, err
	}
	o, err := e.resolveOptions(opts, ComplianceCategories)
	if err != nil {
		return nil, err
	}

	profile, err := e.profileFor(o, func() (CulturalProfile, error) { return e.adapter.DeriveBusinessProfile(ctx) })
	if err != nil {
		return nil, err
	}

	eval, err := e.run(runInput{
		subjectID:  ctx.BusinessID,
		categories: ComplianceCategories,
		industry:   ctx.Industry,
		size:       ctx.Size,
		maturity:   ctx.Maturity,
		objectives: ctx.Objectives,
		evidence:   evidence,
		weights:    o.weights,
		profile:    profile,
	})
	if err != nil {
		return nil, err
	}

	e.log.Debug("business evaluated", map[string]interface{}{
		"businessId": ctx.BusinessID,
		"region":     ctx.Region,
		"overall":    eval.Overall.Value,
		"tier":       eval.Overall.Tier,
		"risks":      len(eval.Risks),
	})
	return eval, nil
}

// EvaluateLearner runs the full pipeline over the training category set and appends the
// personalization plan.
func (e *Engine) EvaluateLearner(ctx LearnerContext, history LearningHistory, opts ...EvaluateOption) (*LearnerEvaluation, error) {
	if err := validateLearnerContext(ctx); err != nil {
		return nil, err
	}
	if err := validateHistoryKeys(history); err != nil {
		return nil, err
	}
	o, err := e.resolveOptions(opts, TrainingCategories)
	if err != nil {
		return nil, err
	}

	profile, err := e.profileFor(o, func() (CulturalProfile, error) { return e.adapter.DeriveLearnerProfile(ctx) })
	if err != nil {
		return nil, err
	}

	plan, err := e.personalizer.Personalize(ctx)
	if err != nil {
		return nil, err
	}

	eval, err := e.run(runInput{
		subjectID:  ctx.LearnerID,
		categories: TrainingCategories,
		maturity:   LearnerMaturity(ctx.Experience),
		objectives: ctx.Goals,
		evidence:   HistoryToEvidence(history),
		weights:    o.weights,
		profile:    profile,
	})
	if err != nil {
		return nil, err
	}

	e.log.Debug("learner evaluated", map[string]interface{}{
		"learnerId":  ctx.LearnerID,
		"role":       ctx.Role,
		"overall":    eval.Overall.Value,
		"difficulty": plan.Difficulty,
		"program":    plan.Program,
	})
	return &LearnerEvaluation{ComplianceEvaluation: *eval, Personalization: plan}, nil
}

// resolveOptions applies per-call options. Explicit weights must name categories of the
// evaluated set; engine defaults are shared by both sets and are not checked here.
func (e *Engine) resolveOptions(opts []EvaluateOption, categories []Category) (evaluateOptions, error) {
	o := evaluateOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.weights == nil {
		o.weights = e.weights
		return o, nil
	}
	if err := validateWeightKeys(o.weights, categories); err != nil {
		return evaluateOptions{}, err
	}
	return o, nil
}

func (e *Engine) profileFor(o evaluateOptions, derive func() (CulturalProfile, error)) (CulturalProfile, error) {
	if o.profile == nil {
		return derive()
	}
	p := *o.profile
	if err := validateProfile(p); err != nil {
		return CulturalProfile{}, err
	}
	return p, nil
}

type runInput struct {
	subjectID  string
	categories []Category
	industry   string
	size       SizeClass
	maturity   Maturity
	objectives []string
	evidence   EvidenceMap
	weights    map[Category]float64
	profile    CulturalProfile
}

func (e *Engine) run(in runInput) (*ComplianceEvaluation, error) {
	p := &pipeline{}

	sc := ScoringContext{Profile: in.profile, Industry: in.industry}
	scores := make([]CategoryScore, 0, len(in.categories))
	for _, c := range in.categories {
		s, err := e.scorer.Score(c, sc, in.evidence[c])
		if err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	p.advance(StageScored)

	overall, err := e.aggregator.Aggregate(scores, in.weights)
	if err != nil {
		return nil, err
	}
	p.advance(StageAggregated)

	risks := e.risks.Assess(scores, RiskContext{SubjectID: in.subjectID, Size: in.size, Profile: in.profile})
	p.advance(StageAssessed)

	recs := e.generator.Generate(scores, RecommendationContext{
		SubjectID:  in.subjectID,
		Maturity:   in.maturity,
		Evidence:   in.evidence,
		Objectives: in.objectives,
	}, in.profile)
	p.advance(StageRecommended)

	eval := e.adapter.AdaptEvaluation(in.profile, ComplianceEvaluation{
		SubjectID:       in.subjectID,
		Overall:         overall,
		Categories:      scores,
		Risks:           risks,
		Recommendations: recs,
	})
	p.advance(StageAdapted)

	return &eval, nil
}

// LearnerMaturity maps learner experience onto the maturity scale used by action filtering.
func LearnerMaturity(exp Experience) Maturity {
	switch exp {
	case ExperienceIntermediate:
		return MaturityIntermediate
	case ExperienceAdvanced, ExperienceExpert:
		return MaturityAdvanced
	default:
		return MaturityBeginner
	}
}

// HistoryToEvidence converts a learning history into training evidence. Completed modules
// become "module:<id>" items, assessment scores feed the graded "assessment" item.
func HistoryToEvidence(h LearningHistory) EvidenceMap {
	items := make([]string, 0, len(h.CompletedModules))
	for _, m := range h.CompletedModules {
		items = append(items, "module:"+m)
	}

	out := make(EvidenceMap, len(TrainingCategories))
	for _, c := range TrainingCategories {
		ev := Evidence{CompletedItems: items}
		if score, ok := h.AssessmentScores[c]; ok {
			ev.Answers = map[string]interface{}{"assessment": score}
		}
		if prev, ok := h.PreviousScores[c]; ok {
			v := prev
			ev.PreviousScore = &v
		}
		out[c] = ev
	}
	return out
}
