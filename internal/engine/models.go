// internal/engine/models.go
package engine

import "time"

// Category identifies one evaluation dimension.
type Category string

const (
	CategoryLegalFramework    Category = "legal-framework"
	CategoryDataGovernance    Category = "data-governance"
	CategorySecurityPosture   Category = "security-posture"
	CategoryPolicyMaturity    Category = "policy-maturity"
	CategoryCulturalAlignment Category = "cultural-alignment"
	CategoryRegulatoryFit     Category = "regulatory-fit"

	CategoryPDPLFundamentals  Category = "pdpl-fundamentals"
	CategoryDataSubjectRights Category = "data-subject-rights"
	CategoryBreachResponse    Category = "breach-response"
	CategoryRoleApplication   Category = "role-application"
)

// ComplianceCategories is the category set scored by EvaluateBusiness, in canonical order.
var ComplianceCategories = []Category{
	CategoryLegalFramework,
	CategoryDataGovernance,
	CategorySecurityPosture,
	CategoryPolicyMaturity,
	CategoryCulturalAlignment,
	CategoryRegulatoryFit,
}

// TrainingCategories is the category set scored by EvaluateLearner, in canonical order.
var TrainingCategories = []Category{
	CategoryPDPLFundamentals,
	CategoryDataSubjectRights,
	CategoryBreachResponse,
	CategoryRoleApplication,
}

type Region string

const (
	RegionNorth   Region = "north"
	RegionCentral Region = "central"
	RegionSouth   Region = "south"
)

type SizeClass string

const (
	SizeSmall      SizeClass = "small"
	SizeMedium     SizeClass = "medium"
	SizeLarge      SizeClass = "large"
	SizeEnterprise SizeClass = "enterprise"
)

type Maturity string

const (
	MaturityBeginner     Maturity = "beginner"
	MaturityDeveloping   Maturity = "developing"
	MaturityIntermediate Maturity = "intermediate"
	MaturityAdvanced     Maturity = "advanced"
)

var maturityRank = map[Maturity]int{
	MaturityBeginner:     1,
	MaturityDeveloping:   2,
	MaturityIntermediate: 3,
	MaturityAdvanced:     4,
}

type BusinessType string

const (
	BusinessSME        BusinessType = "sme"
	BusinessStartup    BusinessType = "startup"
	BusinessEnterprise BusinessType = "enterprise"
	BusinessGovernment BusinessType = "government"
)

type DecisionStyle string

const (
	DecisionHierarchical DecisionStyle = "hierarchical"
	DecisionConsensus    DecisionStyle = "consensus"
	DecisionAgile        DecisionStyle = "agile"
)

type Role string

const (
	RoleExecutive    Role = "executive"
	RoleManager      Role = "manager"
	RoleStaff        Role = "staff"
	RoleDPO          Role = "dpo"
	RoleITAdmin      Role = "it-admin"
	RoleLegalCounsel Role = "legal-counsel"
)

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
	ExperienceExpert       Experience = "expert"
)

type Pacing string

const (
	PacingAccelerated Pacing = "accelerated"
	PacingStandard    Pacing = "standard"
	PacingRelaxed     Pacing = "relaxed"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// RiskLevel is shared by category classification, overall tier and risk impact.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var riskRank = map[RiskLevel]int{
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var priorityRank = map[Priority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

type CommunicationStyle string

const (
	StyleFormal        CommunicationStyle = "formal"
	StyleConsultative  CommunicationStyle = "consultative"
	StyleCollaborative CommunicationStyle = "collaborative"
)

// Register is the phrasing register a recommendation is rendered in.
type Register string

const (
	RegisterFormal        Register = "formal"
	RegisterCollaborative Register = "collaborative"
)

type ValidationLevel string

const (
	ValidationStrict   ValidationLevel = "strict"
	ValidationStandard ValidationLevel = "standard"
	ValidationLenient  ValidationLevel = "lenient"
)

type ContentDepth string

const (
	DepthComprehensive ContentDepth = "comprehensive"
	DepthBalanced      ContentDepth = "balanced"
	DepthConcise       ContentDepth = "concise"
)

// BilingualText carries a Vietnamese and an English rendering of the same string.
type BilingualText struct {
	VI string `json:"vi" mapstructure:"vi"`
	EN string `json:"en" mapstructure:"en"`
}

// BusinessContext is the caller-supplied snapshot of a business under evaluation.
type BusinessContext struct {
	BusinessID    string        `json:"businessId,omitempty"`
	Industry      string        `json:"industry,omitempty"`
	Size          SizeClass     `json:"size,omitempty"`
	Region        Region        `json:"region"`
	Maturity      Maturity      `json:"maturity,omitempty"`
	BusinessType  BusinessType  `json:"businessType,omitempty"`
	DecisionStyle DecisionStyle `json:"decisionStyle,omitempty"`
	Objectives    []string      `json:"objectives,omitempty"`
}

// LearnerPreferences describes how a learner likes to consume training.
type LearnerPreferences struct {
	Media       []string `json:"media,omitempty"`
	Pacing      Pacing   `json:"pacing,omitempty"`
	Interaction string   `json:"interaction,omitempty"`
}

// LearnerContext is the caller-supplied snapshot of a learner under evaluation.
type LearnerContext struct {
	LearnerID     string             `json:"learnerId,omitempty"`
	Role          Role               `json:"role"`
	Experience    Experience         `json:"experience"`
	Region        Region             `json:"region"`
	Preferences   LearnerPreferences `json:"preferences"`
	WeeklyMinutes int                `json:"weeklyMinutes,omitempty"`
	Goals         []string           `json:"goals,omitempty"`
	Program       string             `json:"program,omitempty"`
}

// Evidence is the category-scoped bag of completed onboarding or training data.
type Evidence struct {
	CompletedItems []string               `json:"completedItems,omitempty"`
	Answers        map[string]interface{} `json:"answers,omitempty"`
	PreviousScore  *int                   `json:"previousScore,omitempty"`
}

// EvidenceMap keys evidence by category. Missing categories score from their baseline.
type EvidenceMap map[Category]Evidence

// LearningHistory is the training-side evidence source.
type LearningHistory struct {
	CompletedModules []string         `json:"completedModules,omitempty"`
	AssessmentScores map[Category]int `json:"assessmentScores,omitempty"`
	PreviousScores   map[Category]int `json:"previousScores,omitempty"`
}

// CategoryScore is the result of scoring a single category.
type CategoryScore struct {
	Category         Category  `json:"category"`
	Value            int       `json:"value"`
	Baseline         int       `json:"baseline"`
	Trend            Trend     `json:"trend"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	EvidenceProvided bool      `json:"evidenceProvided"`
}

// OverallScore aggregates category scores.
type OverallScore struct {
	Value          int       `json:"value"`
	Confidence     int       `json:"confidence"`
	Tier           RiskLevel `json:"tier"`
	LastCalculated time.Time `json:"lastCalculated"`
}

// RiskFactor is a discrete risk derived from a category under its danger threshold.
type RiskFactor struct {
	ID         string        `json:"id"`
	Key        string        `json:"key"`
	Category   Category      `json:"category"`
	Title      BilingualText `json:"title"`
	Impact     RiskLevel     `json:"impact"`
	Likelihood int           `json:"likelihood"`
	Mitigation BilingualText `json:"mitigation"`
}

// Phrasing holds both registers of a string so presentation can be re-derived.
type Phrasing struct {
	Formal        BilingualText `json:"formal" mapstructure:"formal"`
	Collaborative BilingualText `json:"collaborative" mapstructure:"collaborative"`
}

// Pick returns the rendering for the given register.
func (p Phrasing) Pick(r Register) BilingualText {
	if r == RegisterCollaborative {
		return p.Collaborative
	}
	return p.Formal
}

// ActionItem is one step of a recommendation.
type ActionItem struct {
	ID          string        `json:"id"`
	Text        BilingualText `json:"text"`
	EffortHours int           `json:"effortHours"`
	ScoreGain   int           `json:"scoreGain"`
}

// Recommendation is an ephemeral, prioritized improvement suggestion for one category.
type Recommendation struct {
	ID                   string        `json:"id"`
	Category             Category      `json:"category"`
	Priority             Priority      `json:"priority"`
	CurrentScore         int           `json:"currentScore"`
	TargetScore          int           `json:"targetScore"`
	Gap                  int           `json:"gap"`
	Title                BilingualText `json:"title"`
	Description          BilingualText `json:"description"`
	TitlePhrasing        Phrasing      `json:"titlePhrasing"`
	DescriptionPhrasing  Phrasing      `json:"descriptionPhrasing"`
	Register             Register      `json:"register"`
	ActionItems          []ActionItem  `json:"actionItems"`
	VisibleActions       int           `json:"visibleActions"`
	EstimatedEffortHours int           `json:"estimatedEffortHours"`
	EstimatedImpact      int           `json:"estimatedImpact"`
	AlignedObjectives    []string      `json:"alignedObjectives,omitempty"`
}

// CulturalProfile bundles the regional and organizational modifiers for one evaluation.
type CulturalProfile struct {
	Region              Region               `json:"region" mapstructure:"region"`
	CommunicationStyle  CommunicationStyle   `json:"communicationStyle" mapstructure:"communication_style"`
	HierarchyTolerance  float64              `json:"hierarchyTolerance" mapstructure:"hierarchy_tolerance"`
	ThresholdMultiplier float64              `json:"thresholdMultiplier" mapstructure:"threshold_multiplier"`
	ScoreMultipliers    map[Category]float64 `json:"scoreMultipliers,omitempty" mapstructure:"score_multipliers"`
	ValidationLevel     ValidationLevel      `json:"validationLevel" mapstructure:"validation_level"`
	ContentDepth        ContentDepth         `json:"contentDepth" mapstructure:"content_depth"`
}

// Presentation is stamped by the cultural adaptation layer.
type Presentation struct {
	Region           Region          `json:"region"`
	Tone             Register        `json:"tone"`
	ValidationLevel  ValidationLevel `json:"validationLevel"`
	ContentDepth     ContentDepth    `json:"contentDepth"`
	ExecutiveSignOff bool            `json:"executiveSignOff"` // route through leadership before acting
}

// ComplianceEvaluation is the complete result of EvaluateBusiness.
type ComplianceEvaluation struct {
	SubjectID       string           `json:"subjectId,omitempty"`
	Overall         OverallScore     `json:"overall"`
	Categories      []CategoryScore  `json:"categories"`
	Risks           []RiskFactor     `json:"risks"`
	Recommendations []Recommendation `json:"recommendations"`
	Profile         CulturalProfile  `json:"profile"`
	Presentation    Presentation     `json:"presentation"`
}

// Personalization is the training plan derived from a learner context.
type Personalization struct {
	Program         string     `json:"program"`
	DurationMinutes int        `json:"durationMinutes"`
	Difficulty      Experience `json:"difficulty"`
	ModuleSequence  []string   `json:"moduleSequence"`
	EstimatedWeeks  int        `json:"estimatedWeeks,omitempty"`
	Formats         []string   `json:"formats"`
}

// LearnerEvaluation is the complete result of EvaluateLearner.
type LearnerEvaluation struct {
	ComplianceEvaluation
	Personalization Personalization `json:"personalization"`
}
