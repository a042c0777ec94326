// internal/engine/tables.go
package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	apperrors "veriportal-engine/internal/common/errors"

	"github.com/spf13/viper"
)

// Tables holds every tunable constant of the engine. A Tables value is built once at process
// start and only read afterwards.
type Tables struct {
	ItemCap           float64                            `json:"item_cap" mapstructure:"item_cap"`
	TrendTolerance    int                                `json:"trend_tolerance" mapstructure:"trend_tolerance"`
	DefaultTarget     float64                            `json:"default_target" mapstructure:"default_target"`
	AlignmentBoost    float64                            `json:"alignment_boost" mapstructure:"alignment_boost"`
	Categories        map[Category]CategoryTable         `json:"categories" mapstructure:"categories"`
	Regions           map[Region]RegionTable             `json:"regions" mapstructure:"regions"`
	BusinessTypes     map[BusinessType]BusinessTypeTable `json:"business_types" mapstructure:"business_types"`
	Roles             map[Role]RoleTable                 `json:"roles" mapstructure:"roles"`
	IndustryModifiers map[string]map[Category]float64    `json:"industry_modifiers" mapstructure:"industry_modifiers"`
	Risk              RiskTable                          `json:"risk" mapstructure:"risk"`
	DepthLimits       map[ContentDepth]int               `json:"depth_limits" mapstructure:"depth_limits"`
	Training          TrainingTable                      `json:"training" mapstructure:"training"`
}

// CategoryTable configures a single category end to end.
type CategoryTable struct {
	Baseline        float64          `json:"baseline" mapstructure:"baseline"`
	DangerThreshold float64          `json:"danger_threshold" mapstructure:"danger_threshold"`
	Target          float64          `json:"target" mapstructure:"target"`
	Items           []EvidenceItem   `json:"items" mapstructure:"items"`
	Playlist        []ActionTemplate `json:"playlist" mapstructure:"playlist"`
	Risk            RiskTemplate     `json:"risk" mapstructure:"risk"`
	Title           Phrasing         `json:"title" mapstructure:"title"`
	Description     Phrasing         `json:"description" mapstructure:"description"`
	Keywords        []string         `json:"keywords" mapstructure:"keywords"`
}

// numeric answer in [0,100]; a non-numeric truthy answer gives full credit.
// numeric answer in [0,100].
type EvidenceItem struct {
	ID     string  `json:"id" mapstructure:"id"`
	Points float64 `json:"points" mapstructure:"points"`
	Graded bool    `json:"graded" mapstructure:"graded"`
}

// ActionTemplate is one playlist entry.
type ActionTemplate struct {
	ID                  string        `json:"id" mapstructure:"id"`
	Text                BilingualText `json:"text" mapstructure:"text"`
	EffortHours         int           `json:"effort_hours" mapstructure:"effort_hours"`
	ScoreGain           int           `json:"score_gain" mapstructure:"score_gain"`
	SatisfiedBy         []string      `json:"satisfied_by" mapstructure:"satisfied_by"`
	SatisfiedAtMaturity Maturity      `json:"satisfied_at_maturity" mapstructure:"satisfied_at_maturity"`
}

// RiskTemplate names the risk a category raises below its danger threshold.
type RiskTemplate struct {
	Key        string        `json:"key" mapstructure:"key"`
	Title      BilingualText `json:"title" mapstructure:"title"`
	Mitigation BilingualText `json:"mitigation" mapstructure:"mitigation"`
}

// RegionTable is the regional row of the cultural behavior table.
type RegionTable struct {
	Style                CommunicationStyle   `json:"style" mapstructure:"style"`
	HierarchyTolerance   float64              `json:"hierarchy_tolerance" mapstructure:"hierarchy_tolerance"`
	ThresholdMultiplier  float64              `json:"threshold_multiplier" mapstructure:"threshold_multiplier"`
	ValidationLevel      ValidationLevel      `json:"validation_level" mapstructure:"validation_level"`
	ContentDepth         ContentDepth         `json:"content_depth" mapstructure:"content_depth"`
	AlignedDecisionStyle DecisionStyle        `json:"aligned_decision_style" mapstructure:"aligned_decision_style"`
	ScoreMultipliers     map[Category]float64 `json:"score_multipliers" mapstructure:"score_multipliers"`
}

// BusinessTypeTable holds organizational norms layered over the region.
type BusinessTypeTable struct {
	Style               CommunicationStyle `json:"style" mapstructure:"style"`
	MinHierarchy        float64            `json:"min_hierarchy" mapstructure:"min_hierarchy"`
	ThresholdMultiplier float64            `json:"threshold_multiplier" mapstructure:"threshold_multiplier"`
}

// RoleTable holds learner role norms.
type RoleTable struct {
	Style   CommunicationStyle `json:"style" mapstructure:"style"`
	Program string             `json:"program" mapstructure:"program"`
	Modules []string           `json:"modules" mapstructure:"modules"`
}

// RiskTable configures likelihood scaling.
type RiskTable struct {
	LikelihoodFloor float64               `json:"likelihood_floor" mapstructure:"likelihood_floor"`
	LikelihoodSlope float64               `json:"likelihood_slope" mapstructure:"likelihood_slope"`
	SizeFactors     map[SizeClass]float64 `json:"size_factors" mapstructure:"size_factors"`
}

// TrainingTable configures the personalization engine.
type TrainingTable struct {
	DefaultProgram        string                 `json:"default_program" mapstructure:"default_program"`
	Programs              map[string]int         `json:"programs" mapstructure:"programs"`
	ExperienceMultipliers map[Experience]float64 `json:"experience_multipliers" mapstructure:"experience_multipliers"`
	PacingMultipliers     map[Pacing]float64     `json:"pacing_multipliers" mapstructure:"pacing_multipliers"`
	CanonicalModules      []string               `json:"canonical_modules" mapstructure:"canonical_modules"`
	SupportedFormats      []string               `json:"supported_formats" mapstructure:"supported_formats"`
	DefaultFormats        []string               `json:"default_formats" mapstructure:"default_formats"`
}

// LoadTables reads a YAML (or JSON/TOML) tables file and deep-merges it over DefaultTables.
// Lists in the file replace the default lists; maps are merged key by key.
func LoadTables(path string) (*Tables, error) {
	defaults, err := tablesAsMap(DefaultTables())
	if err != nil {
		return nil, apperrors.NewInvalidTablesError(err.Error())
	}

	v := viper.New()
	if err := v.MergeConfigMap(defaults); err != nil {
		return nil, apperrors.NewInvalidTablesError(fmt.Sprintf("seed defaults: %v", err))
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return nil, apperrors.NewInvalidTablesError(fmt.Sprintf("read %s: %v", path, err))
	}

	var tables Tables
	if err := v.Unmarshal(&tables); err != nil {
		return nil, apperrors.NewInvalidTablesError(fmt.Sprintf("decode %s: %v", path, err))
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &tables, nil
}

func tablesAsMap(t *Tables) (map[string]interface{}, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{})
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks the invariants the engine relies on.
func (t *Tables) Validate() error {
	var problems []string

	if t.ItemCap <= 0 {
		problems = append(problems, "item_cap must be positive")
	}
	if t.DefaultTarget <= 0 || t.DefaultTarget > 100 {
		problems = append(problems, "default_target must be in (0,100]")
	}

	for _, set := range [][]Category{ComplianceCategories, TrainingCategories} {
		for _, c := range set {
			ct, ok := t.Categories[c]
			if !ok {
				problems = append(problems, fmt.Sprintf("category %s missing", c))
				continue
			}
			if math.IsNaN(ct.Baseline) || ct.Baseline < 0 || ct.Baseline > 100 {
				problems = append(problems, fmt.Sprintf("category %s baseline out of range", c))
			}
			if ct.DangerThreshold < 0 || ct.DangerThreshold > 100 {
				problems = append(problems, fmt.Sprintf("category %s danger_threshold out of range", c))
			}
			if ct.Target < 0 || ct.Target > 100 {
				problems = append(problems, fmt.Sprintf("category %s target out of range", c))
			}
			if ct.Risk.Key == "" {
				problems = append(problems, fmt.Sprintf("category %s risk key missing", c))
			}
		}
	}

	for _, r := range []Region{RegionNorth, RegionCentral, RegionSouth} {
		rt, ok := t.Regions[r]
		if !ok {
			problems = append(problems, fmt.Sprintf("region %s missing", r))
			continue
		}
		if rt.ThresholdMultiplier <= 0 {
			problems = append(problems, fmt.Sprintf("region %s threshold_multiplier must be positive", r))
		}
		for c, m := range rt.ScoreMultipliers {
			if m <= 0 {
				problems = append(problems, fmt.Sprintf("region %s multiplier for %s must be positive", r, c))
			}
		}
	}

	for _, e := range []Experience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert} {
		if t.Training.ExperienceMultipliers[e] <= 0 {
			problems = append(problems, fmt.Sprintf("experience multiplier %s must be positive", e))
		}
	}
	if t.Training.Programs[t.Training.DefaultProgram] <= 0 {
		problems = append(problems, "training default_program must name a program with positive minutes")
	}
	if len(t.Training.CanonicalModules) == 0 {
		problems = append(problems, "training canonical_modules must not be empty")
	}

	if len(problems) > 0 {
		return apperrors.NewInvalidTablesError(strings.Join(problems, "; "))
	}
	return nil
}

// categoryTable looks up a category and fails with INVALID_CATEGORY when it is not configured.
func (t *Tables) categoryTable(c Category) (CategoryTable, error) {
	ct, ok := t.Categories[c]
	if !ok {
		return CategoryTable{}, apperrors.NewInvalidCategoryError(string(c))
	}
	return ct, nil
}

func (t *Tables) target(c Category) float64 {
	if ct, ok := t.Categories[c]; ok && ct.Target > 0 {
		return ct.Target
	}
	return t.DefaultTarget
}

func bt(vi, en string) BilingualText { return BilingualText{VI: vi, EN: en} }

func phrasing(formalVI, formalEN, collabVI, collabEN string) Phrasing {
	return Phrasing{Formal: bt(formalVI, formalEN), Collaborative: bt(collabVI, collabEN)}
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() *Tables {
	return &Tables{
		ItemCap:        15,
		TrendTolerance: 2,
		DefaultTarget:  85,
		AlignmentBoost: 1.10,
		Categories:     defaultCategories(),
		Regions: map[Region]RegionTable{
			RegionNorth: {
				Style:                StyleFormal,
				HierarchyTolerance:   0.9,
				ThresholdMultiplier:  1.05,
				ValidationLevel:      ValidationStrict,
				ContentDepth:         DepthComprehensive,
				AlignedDecisionStyle: DecisionHierarchical,
				ScoreMultipliers: map[Category]float64{
					CategoryPolicyMaturity: 0.95,
				},
			},
			RegionCentral: {
				Style:                StyleConsultative,
				HierarchyTolerance:   0.7,
				ThresholdMultiplier:  1.0,
				ValidationLevel:      ValidationStandard,
				ContentDepth:         DepthBalanced,
				AlignedDecisionStyle: DecisionConsensus,
				ScoreMultipliers:     map[Category]float64{},
			},
			RegionSouth: {
				Style:                StyleCollaborative,
				HierarchyTolerance:   0.5,
				ThresholdMultiplier:  0.95,
				ValidationLevel:      ValidationLenient,
				ContentDepth:         DepthConcise,
				AlignedDecisionStyle: DecisionAgile,
				ScoreMultipliers: map[Category]float64{
					CategoryLegalFramework: 0.95,
					CategoryRegulatoryFit:  0.95,
					CategoryPolicyMaturity: 1.05,
				},
			},
		},
		BusinessTypes: map[BusinessType]BusinessTypeTable{
			BusinessSME:        {ThresholdMultiplier: 1.0},
			BusinessStartup:    {Style: StyleCollaborative, ThresholdMultiplier: 0.95},
			BusinessEnterprise: {ThresholdMultiplier: 1.05},
			BusinessGovernment: {Style: StyleFormal, MinHierarchy: 0.9, ThresholdMultiplier: 1.05},
		},
		Roles: map[Role]RoleTable{
			RoleExecutive:    {Style: StyleFormal, Program: "executive-briefing"},
			RoleManager:      {},
			RoleStaff:        {},
			RoleDPO:          {Style: StyleFormal, Program: "dpo-certification", Modules: []string{"certification-prep"}},
			RoleITAdmin:      {Program: "it-security", Modules: []string{"technical-safeguards"}},
			RoleLegalCounsel: {Style: StyleFormal, Modules: []string{"regulatory-deep-dive"}},
		},
		IndustryModifiers: map[string]map[Category]float64{
			"finance":    {CategoryRegulatoryFit: 0.9, CategorySecurityPosture: 0.95},
			"healthcare": {CategoryRegulatoryFit: 0.9, CategoryDataGovernance: 0.95},
			"technology": {CategorySecurityPosture: 1.05},
		},
		Risk: RiskTable{
			LikelihoodFloor: 20,
			LikelihoodSlope: 2,
			SizeFactors: map[SizeClass]float64{
				SizeSmall:      0.9,
				SizeMedium:     1.0,
				SizeLarge:      1.1,
				SizeEnterprise: 1.2,
			},
		},
		DepthLimits: map[ContentDepth]int{
			DepthComprehensive: 0,
			DepthBalanced:      5,
			DepthConcise:       3,
		},
		Training: TrainingTable{
			DefaultProgram: "pdpl-foundation",
			Programs: map[string]int{
				"pdpl-foundation":    240,
				"dpo-certification":  480,
				"executive-briefing": 90,
				"it-security":        300,
			},
			ExperienceMultipliers: map[Experience]float64{
				ExperienceBeginner:     1.3,
				ExperienceIntermediate: 1.0,
				ExperienceAdvanced:     0.8,
				ExperienceExpert:       0.6,
			},
			PacingMultipliers: map[Pacing]float64{
				PacingAccelerated: 0.8,
				PacingStandard:    1.0,
				PacingRelaxed:     1.2,
			},
			CanonicalModules: []string{"foundation", "application", "mastery"},
			SupportedFormats: []string{"video", "interactive", "reading", "workshop"},
			DefaultFormats:   []string{"interactive", "reading"},
		},
	}
}

func defaultCategories() map[Category]CategoryTable {
	return map[Category]CategoryTable{
		CategoryLegalFramework: {
			Baseline:        55,
			DangerThreshold: 70,
			Items: []EvidenceItem{
				{ID: "pdpl-gap-assessment", Points: 10},
				{ID: "privacy-notice-published", Points: 8},
				{ID: "consent-mechanism", Points: 10},
				{ID: "dpo-appointed", Points: 12},
				{ID: "processing-register", Points: 10},
				{ID: "legal-review", Points: 15, Graded: true},
			},
			Playlist: []ActionTemplate{
				{ID: "lf-gap-assessment", Text: bt("Thực hiện đánh giá khoảng cách tuân thủ PDPL", "Run a PDPL compliance gap assessment"), EffortHours: 16, ScoreGain: 10, SatisfiedBy: []string{"pdpl-gap-assessment"}},
				{ID: "lf-dpo", Text: bt("Chỉ định cán bộ bảo vệ dữ liệu cá nhân (DPO)", "Appoint a data protection officer (DPO)"), EffortHours: 8, ScoreGain: 12, SatisfiedBy: []string{"dpo-appointed"}},
				{ID: "lf-consent", Text: bt("Triển khai cơ chế thu thập sự đồng ý của chủ thể dữ liệu", "Implement a data subject consent mechanism"), EffortHours: 24, ScoreGain: 10, SatisfiedBy: []string{"consent-mechanism"}},
				{ID: "lf-privacy-notice", Text: bt("Công bố thông báo xử lý dữ liệu cá nhân", "Publish a personal data processing notice"), EffortHours: 8, ScoreGain: 8, SatisfiedBy: []string{"privacy-notice-published"}},
				{ID: "lf-processing-register", Text: bt("Lập hồ sơ hoạt động xử lý dữ liệu", "Maintain a record of processing activities"), EffortHours: 16, ScoreGain: 10, SatisfiedBy: []string{"processing-register"}, SatisfiedAtMaturity: MaturityAdvanced},
			},
			Risk: RiskTemplate{
				Key:        "legal-noncompliance",
				Title:      bt("Rủi ro vi phạm quy định bảo vệ dữ liệu cá nhân", "Data protection non-compliance risk"),
				Mitigation: bt("Ưu tiên hoàn thiện bộ hồ sơ pháp lý theo PDPL 2025", "Prioritize the PDPL 2025 legal documentation set"),
			},
			Title: phrasing(
				"Hoàn thiện khung pháp lý PDPL", "Complete the PDPL legal framework",
				"Cùng hoàn thiện khung pháp lý PDPL", "Let's complete the PDPL legal framework together",
			),
			Description: phrasing(
				"Doanh nghiệp cần hoàn tất các nghĩa vụ pháp lý bắt buộc theo Luật Bảo vệ dữ liệu cá nhân.",
				"The organization must complete the mandatory obligations of the Personal Data Protection Law.",
				"Hãy cùng đội ngũ rà soát và hoàn tất các nghĩa vụ pháp lý theo Luật Bảo vệ dữ liệu cá nhân.",
				"Work with your team to review and close out the obligations of the Personal Data Protection Law.",
			),
			Keywords: []string{"legal", "law", "pdpl", "pháp lý", "luật"},
		},
		CategoryDataGovernance: {
			Baseline:        60,
			DangerThreshold: 65,
			Items: []EvidenceItem{
				{ID: "data-inventory", Points: 12},
				{ID: "data-classification", Points: 10},
				{ID: "retention-policy", Points: 8},
				{ID: "data-owner-assigned", Points: 8},
				{ID: "cross-border-assessment", Points: 10},
			},
			Playlist: []ActionTemplate{
				{ID: "dg-inventory", Text: bt("Lập danh mục dữ liệu cá nhân đang xử lý", "Build an inventory of personal data in use"), EffortHours: 24, ScoreGain: 12, SatisfiedBy: []string{"data-inventory"}},
				{ID: "dg-classification", Text: bt("Phân loại dữ liệu cơ bản và dữ liệu nhạy cảm", "Classify basic and sensitive personal data"), EffortHours: 16, ScoreGain: 10, SatisfiedBy: []string{"data-classification"}},
				{ID: "dg-cross-border", Text: bt("Đánh giá tác động chuyển dữ liệu ra nước ngoài", "Assess cross-border data transfer impact"), EffortHours: 20, ScoreGain: 10, SatisfiedBy: []string{"cross-border-assessment"}},
				{ID: "dg-retention", Text: bt("Ban hành chính sách lưu trữ và xóa dữ liệu", "Issue a data retention and deletion policy"), EffortHours: 8, ScoreGain: 8, SatisfiedBy: []string{"retention-policy"}},
				{ID: "dg-ownership", Text: bt("Phân công người chịu trách nhiệm cho từng nhóm dữ liệu", "Assign an owner to each data domain"), EffortHours: 4, ScoreGain: 8, SatisfiedBy: []string{"data-owner-assigned"}, SatisfiedAtMaturity: MaturityIntermediate},
			},
			Risk: RiskTemplate{
				Key:        "data-mishandling",
				Title:      bt("Rủi ro xử lý dữ liệu sai mục đích", "Data mishandling risk"),
				Mitigation: bt("Xác lập danh mục và chủ sở hữu dữ liệu trước khi mở rộng xử lý", "Establish the data inventory and owners before expanding processing"),
			},
			Title: phrasing(
				"Tăng cường quản trị dữ liệu", "Strengthen data governance",
				"Cùng xây dựng nền tảng quản trị dữ liệu", "Let's build a data governance foundation together",
			),
			Description: phrasing(
				"Doanh nghiệp cần xác định rõ dữ liệu đang xử lý, mục đích và thời hạn lưu trữ.",
				"The organization must identify the data it processes, the purpose and the retention period.",
				"Hãy cùng các phòng ban xác định dữ liệu đang dùng, mục đích và thời gian lưu trữ.",
				"Map together with each department which data you use, why and for how long.",
			),
			Keywords: []string{"data", "governance", "dữ liệu", "quản trị"},
		},
		CategorySecurityPosture: {
			Baseline:        65,
			DangerThreshold: 65,
			Items: []EvidenceItem{
				{ID: "access-control", Points: 10},
				{ID: "encryption-at-rest", Points: 10},
				{ID: "incident-response-plan", Points: 12},
				{ID: "security-audit", Points: 15, Graded: true},
				{ID: "staff-security-training", Points: 8},
			},
			Playlist: []ActionTemplate{
				{ID: "sp-incident-plan", Text: bt("Xây dựng quy trình ứng phó sự cố và thông báo trong 72 giờ", "Define an incident response and 72-hour notification procedure"), EffortHours: 16, ScoreGain: 12, SatisfiedBy: []string{"incident-response-plan"}},
				{ID: "sp-encryption", Text: bt("Mã hóa dữ liệu cá nhân khi lưu trữ", "Encrypt personal data at rest"), EffortHours: 24, ScoreGain: 10, SatisfiedBy: []string{"encryption-at-rest"}},
				{ID: "sp-access-control", Text: bt("Áp dụng phân quyền truy cập theo vai trò", "Enforce role-based access control"), EffortHours: 16, ScoreGain: 10, SatisfiedBy: []string{"access-control"}},
				{ID: "sp-audit", Text: bt("Thực hiện kiểm tra an ninh định kỳ", "Run a periodic security audit"), EffortHours: 32, ScoreGain: 10, SatisfiedBy: []string{"security-audit"}, SatisfiedAtMaturity: MaturityAdvanced},
				{ID: "sp-training", Text: bt("Đào tạo nhận thức bảo mật cho nhân viên", "Deliver security awareness training to staff"), EffortHours: 8, ScoreGain: 8, SatisfiedBy: []string{"staff-security-training"}},
			},
			Risk: RiskTemplate{
				Key:        "data-breach",
				Title:      bt("Rủi ro lộ lọt dữ liệu", "Data breach risk"),
				Mitigation: bt("Ưu tiên kiểm soát truy cập và quy trình ứng phó sự cố", "Prioritize access control and the incident response procedure"),
			},
			Title: phrasing(
				"Nâng cao mức độ an ninh dữ liệu", "Raise the data security posture",
				"Cùng nâng cao an toàn cho dữ liệu", "Let's make your data safer together",
			),
			Description: phrasing(
				"Doanh nghiệp cần áp dụng các biện pháp kỹ thuật bảo vệ dữ liệu cá nhân theo quy định.",
				"The organization must apply the technical safeguards required for personal data.",
				"Hãy cùng bộ phận kỹ thuật triển khai các lớp bảo vệ cho dữ liệu cá nhân.",
				"Partner with your technical team to roll out protection layers for personal data.",
			),
			Keywords: []string{"security", "breach", "bảo mật", "an ninh"},
		},
		CategoryPolicyMaturity: {
			Baseline:        50,
			DangerThreshold: 60,
			Items: []EvidenceItem{
				{ID: "privacy-policy-approved", Points: 12},
				{ID: "policy-review-cycle", Points: 8},
				{ID: "vendor-policy", Points: 8},
				{ID: "employee-acknowledgement", Points: 8},
				{ID: "board-oversight", Points: 10},
			},
			Playlist: []ActionTemplate{
				{ID: "pm-privacy-policy", Text: bt("Phê duyệt chính sách bảo vệ dữ liệu cá nhân", "Approve a personal data protection policy"), EffortHours: 12, ScoreGain: 12, SatisfiedBy: []string{"privacy-policy-approved"}},
				{ID: "pm-board", Text: bt("Báo cáo định kỳ tình hình tuân thủ cho ban lãnh đạo", "Report compliance status to leadership on a fixed cadence"), EffortHours: 4, ScoreGain: 10, SatisfiedBy: []string{"board-oversight"}},
				{ID: "pm-vendor", Text: bt("Bổ sung điều khoản bảo vệ dữ liệu trong hợp đồng với đối tác", "Add data protection clauses to vendor contracts"), EffortHours: 16, ScoreGain: 8, SatisfiedBy: []string{"vendor-policy"}},
				{ID: "pm-acknowledgement", Text: bt("Lấy xác nhận của nhân viên về chính sách", "Collect employee policy acknowledgements"), EffortHours: 4, ScoreGain: 8, SatisfiedBy: []string{"employee-acknowledgement"}},
				{ID: "pm-review-cycle", Text: bt("Thiết lập chu kỳ rà soát chính sách hằng năm", "Set an annual policy review cycle"), EffortHours: 4, ScoreGain: 8, SatisfiedBy: []string{"policy-review-cycle"}, SatisfiedAtMaturity: MaturityIntermediate},
			},
			Risk: RiskTemplate{
				Key:        "policy-gap",
				Title:      bt("Rủi ro thiếu chính sách nội bộ", "Internal policy gap risk"),
				Mitigation: bt("Ban hành và phổ biến chính sách bảo vệ dữ liệu đã được phê duyệt", "Issue and circulate an approved data protection policy"),
			},
			Title: phrasing(
				"Hoàn thiện hệ thống chính sách", "Mature the policy framework",
				"Cùng xây dựng bộ chính sách rõ ràng", "Let's shape a clear policy set together",
			),
			Description: phrasing(
				"Doanh nghiệp cần ban hành, phê duyệt và duy trì các chính sách bảo vệ dữ liệu.",
				"The organization must issue, approve and maintain its data protection policies.",
				"Hãy cùng ban lãnh đạo thống nhất và phổ biến các chính sách bảo vệ dữ liệu.",
				"Agree with leadership on the data protection policies and share them with everyone.",
			),
			Keywords: []string{"policy", "chính sách"},
		},
		CategoryCulturalAlignment: {
			Baseline:        70,
			DangerThreshold: 50,
			Items: []EvidenceItem{
				{ID: "leadership-sponsorship", Points: 10},
				{ID: "internal-communication-plan", Points: 8},
				{ID: "change-champions", Points: 8},
				{ID: "localized-training", Points: 8},
			},
			Playlist: []ActionTemplate{
				{ID: "ca-sponsorship", Text: bt("Cử một lãnh đạo cấp cao bảo trợ chương trình tuân thủ", "Name an executive sponsor for the compliance program"), EffortHours: 2, ScoreGain: 10, SatisfiedBy: []string{"leadership-sponsorship"}},
				{ID: "ca-communication", Text: bt("Lập kế hoạch truyền thông nội bộ về PDPL", "Plan internal communication about PDPL"), EffortHours: 8, ScoreGain: 8, SatisfiedBy: []string{"internal-communication-plan"}},
				{ID: "ca-champions", Text: bt("Chọn đại diện tuân thủ tại từng phòng ban", "Select compliance champions in each department"), EffortHours: 4, ScoreGain: 8, SatisfiedBy: []string{"change-champions"}},
				{ID: "ca-localized-training", Text: bt("Bản địa hóa tài liệu đào tạo theo vùng miền", "Localize training material for each region"), EffortHours: 16, ScoreGain: 8, SatisfiedBy: []string{"localized-training"}},
			},
			Risk: RiskTemplate{
				Key:        "adoption-resistance",
				Title:      bt("Rủi ro cản trở khi triển khai", "Adoption resistance risk"),
				Mitigation: bt("Tăng cường sự bảo trợ của lãnh đạo và truyền thông nội bộ", "Increase leadership sponsorship and internal communication"),
			},
			Title: phrasing(
				"Gắn kết văn hóa tổ chức với tuân thủ", "Align organizational culture with compliance",
				"Cùng lan tỏa văn hóa tuân thủ", "Let's grow a compliance culture together",
			),
			Description: phrasing(
				"Doanh nghiệp cần bảo đảm lãnh đạo và nhân viên thống nhất về trách nhiệm bảo vệ dữ liệu.",
				"The organization must ensure leaders and staff share responsibility for data protection.",
				"Hãy cùng mọi người hiểu vì sao bảo vệ dữ liệu là việc chung của cả tổ chức.",
				"Help everyone see why data protection is a shared job across the organization.",
			),
			Keywords: []string{"culture", "adoption", "change", "văn hóa"},
		},
		CategoryRegulatoryFit: {
			Baseline:        60,
			DangerThreshold: 65,
			Items: []EvidenceItem{
				{ID: "sector-requirements-mapped", Points: 12},
				{ID: "regulator-contact", Points: 6},
				{ID: "breach-notification-procedure", Points: 12},
				{ID: "compliance-calendar", Points: 8},
			},
			Playlist: []ActionTemplate{
				{ID: "rf-sector", Text: bt("Đối chiếu yêu cầu chuyên ngành với PDPL", "Map sector-specific requirements against PDPL"), EffortHours: 16, ScoreGain: 12, SatisfiedBy: []string{"sector-requirements-mapped"}},
				{ID: "rf-notification", Text: bt("Chuẩn bị mẫu thông báo vi phạm gửi cơ quan chức năng", "Prepare the breach notification template for the authority"), EffortHours: 8, ScoreGain: 12, SatisfiedBy: []string{"breach-notification-procedure"}},
				{ID: "rf-calendar", Text: bt("Lập lịch các mốc báo cáo tuân thủ", "Keep a calendar of compliance reporting deadlines"), EffortHours: 4, ScoreGain: 8, SatisfiedBy: []string{"compliance-calendar"}},
				{ID: "rf-regulator", Text: bt("Xác định đầu mối liên hệ với Bộ Công an (A05)", "Identify the contact point at the Ministry of Public Security (A05)"), EffortHours: 2, ScoreGain: 6, SatisfiedBy: []string{"regulator-contact"}, SatisfiedAtMaturity: MaturityIntermediate},
			},
			Risk: RiskTemplate{
				Key:        "regulatory-penalty",
				Title:      bt("Rủi ro bị xử phạt hành chính", "Regulatory penalty risk"),
				Mitigation: bt("Chuẩn bị sẵn quy trình thông báo và hồ sơ cho cơ quan quản lý", "Have the notification procedure and dossiers ready for the regulator"),
			},
			Title: phrasing(
				"Đáp ứng yêu cầu của cơ quan quản lý", "Meet regulator expectations",
				"Cùng sẵn sàng làm việc với cơ quan quản lý", "Let's get ready for the regulator together",
			),
			Description: phrasing(
				"Doanh nghiệp cần đáp ứng đầy đủ yêu cầu chuyên ngành và nghĩa vụ báo cáo.",
				"The organization must satisfy sector requirements and reporting obligations.",
				"Hãy cùng chuẩn bị các quy trình để làm việc thuận lợi với cơ quan quản lý.",
				"Prepare the procedures together so working with the regulator goes smoothly.",
			),
			Keywords: []string{"regulator", "regulatory", "sector", "quy định"},
		},
		CategoryPDPLFundamentals: {
			Baseline:        50,
			DangerThreshold: 60,
			Items: []EvidenceItem{
				{ID: "module:pdpl-basics", Points: 15},
				{ID: "module:pdpl-principles", Points: 12},
				{ID: "assessment", Points: 15, Graded: true},
			},
			Playlist: []ActionTemplate{
				{ID: "tr-pdpl-basics", Text: bt("Hoàn thành học phần Kiến thức cơ bản về PDPL", "Complete the PDPL basics module"), EffortHours: 2, ScoreGain: 15, SatisfiedBy: []string{"module:pdpl-basics"}, SatisfiedAtMaturity: MaturityAdvanced},
				{ID: "tr-pdpl-principles", Text: bt("Hoàn thành học phần Nguyên tắc xử lý dữ liệu", "Complete the data processing principles module"), EffortHours: 2, ScoreGain: 12, SatisfiedBy: []string{"module:pdpl-principles"}},
				{ID: "tr-pdpl-quiz", Text: bt("Làm bài kiểm tra kiến thức PDPL", "Take the PDPL knowledge check"), EffortHours: 1, ScoreGain: 10, SatisfiedBy: []string{"assessment"}},
			},
			Risk: RiskTemplate{
				Key:        "knowledge-gap",
				Title:      bt("Rủi ro thiếu kiến thức nền tảng", "Foundational knowledge gap"),
				Mitigation: bt("Hoàn thành các học phần nền tảng trước khi xử lý dữ liệu", "Finish the foundation modules before handling personal data"),
			},
			Title: phrasing(
				"Củng cố kiến thức nền tảng PDPL", "Reinforce PDPL fundamentals",
				"Cùng ôn lại kiến thức PDPL", "Let's refresh PDPL fundamentals together",
			),
			Description: phrasing(
				"Học viên cần nắm vững các khái niệm và nguyên tắc cốt lõi của PDPL.",
				"The learner must master the core concepts and principles of PDPL.",
				"Cùng ôn lại các khái niệm chính của PDPL qua những học phần ngắn.",
				"Revisit the key PDPL concepts through short modules.",
			),
			Keywords: []string{"fundamentals", "basics", "pdpl", "cơ bản"},
		},
		CategoryDataSubjectRights: {
			Baseline:        50,
			DangerThreshold: 55,
			Items: []EvidenceItem{
				{ID: "module:dsr-handling", Points: 15},
				{ID: "module:consent-management", Points: 12},
				{ID: "assessment", Points: 15, Graded: true},
			},
			Playlist: []ActionTemplate{
				{ID: "tr-dsr-handling", Text: bt("Hoàn thành học phần Xử lý yêu cầu của chủ thể dữ liệu", "Complete the data subject request handling module"), EffortHours: 2, ScoreGain: 15, SatisfiedBy: []string{"module:dsr-handling"}},
				{ID: "tr-consent", Text: bt("Hoàn thành học phần Quản lý sự đồng ý", "Complete the consent management module"), EffortHours: 2, ScoreGain: 12, SatisfiedBy: []string{"module:consent-management"}},
				{ID: "tr-dsr-quiz", Text: bt("Làm bài kiểm tra về quyền của chủ thể dữ liệu", "Take the data subject rights knowledge check"), EffortHours: 1, ScoreGain: 10, SatisfiedBy: []string{"assessment"}},
			},
			Risk: RiskTemplate{
				Key:        "rights-mishandling",
				Title:      bt("Rủi ro xử lý sai yêu cầu của chủ thể dữ liệu", "Data subject request mishandling risk"),
				Mitigation: bt("Thực hành quy trình tiếp nhận và trả lời yêu cầu", "Practice the request intake and response procedure"),
			},
			Title: phrasing(
				"Nắm vững quyền của chủ thể dữ liệu", "Master data subject rights",
				"Cùng tìm hiểu quyền của chủ thể dữ liệu", "Let's explore data subject rights together",
			),
			Description: phrasing(
				"Học viên cần xử lý đúng hạn và đúng quy trình các yêu cầu của chủ thể dữ liệu.",
				"The learner must handle data subject requests on time and by the book.",
				"Cùng thực hành cách tiếp nhận và phản hồi yêu cầu của khách hàng về dữ liệu.",
				"Practice receiving and answering customer data requests together.",
			),
			Keywords: []string{"rights", "consent", "quyền", "đồng ý"},
		},
		CategoryBreachResponse: {
			Baseline:        45,
			DangerThreshold: 60,
			Items: []EvidenceItem{
				{ID: "module:breach-72h", Points: 15},
				{ID: "module:incident-drill", Points: 12},
				{ID: "assessment", Points: 15, Graded: true},
			},
			Playlist: []ActionTemplate{
				{ID: "tr-breach-72h", Text: bt("Hoàn thành học phần Thông báo vi phạm trong 72 giờ", "Complete the 72-hour breach notification module"), EffortHours: 2, ScoreGain: 15, SatisfiedBy: []string{"module:breach-72h"}},
				{ID: "tr-incident-drill", Text: bt("Tham gia diễn tập ứng phó sự cố", "Join an incident response drill"), EffortHours: 3, ScoreGain: 12, SatisfiedBy: []string{"module:incident-drill"}},
				{ID: "tr-breach-quiz", Text: bt("Làm bài kiểm tra ứng phó vi phạm", "Take the breach response knowledge check"), EffortHours: 1, ScoreGain: 10, SatisfiedBy: []string{"assessment"}},
			},
			Risk: RiskTemplate{
				Key:        "late-breach-notification",
				Title:      bt("Rủi ro chậm thông báo vi phạm", "Late breach notification risk"),
				Mitigation: bt("Diễn tập quy trình thông báo 72 giờ", "Rehearse the 72-hour notification procedure"),
			},
			Title: phrasing(
				"Sẵn sàng ứng phó vi phạm dữ liệu", "Be ready to respond to data breaches",
				"Cùng luyện tập ứng phó sự cố", "Let's practice incident response together",
			),
			Description: phrasing(
				"Học viên cần thực hiện đúng quy trình thông báo vi phạm trong thời hạn luật định.",
				"The learner must follow the breach notification procedure within the legal deadline.",
				"Cùng diễn tập để mọi người biết phải làm gì khi có sự cố dữ liệu.",
				"Run drills together so everyone knows what to do when a data incident happens.",
			),
			Keywords: []string{"breach", "incident", "sự cố", "vi phạm"},
		},
		CategoryRoleApplication: {
			Baseline:        55,
			DangerThreshold: 50,
			Items: []EvidenceItem{
				{ID: "module:role-casework", Points: 15},
				{ID: "module:certification-prep", Points: 12},
				{ID: "assessment", Points: 15, Graded: true},
			},
			Playlist: []ActionTemplate{
				{ID: "tr-role-casework", Text: bt("Giải quyết bài tập tình huống theo vai trò", "Work through role-specific case studies"), EffortHours: 3, ScoreGain: 15, SatisfiedBy: []string{"module:role-casework"}},
				{ID: "tr-certification-prep", Text: bt("Ôn luyện cho kỳ thi chứng chỉ", "Prepare for the certification exam"), EffortHours: 6, ScoreGain: 12, SatisfiedBy: []string{"module:certification-prep"}, SatisfiedAtMaturity: MaturityAdvanced},
				{ID: "tr-role-quiz", Text: bt("Làm bài đánh giá năng lực theo vai trò", "Take the role competency assessment"), EffortHours: 1, ScoreGain: 10, SatisfiedBy: []string{"assessment"}},
			},
			Risk: RiskTemplate{
				Key:        "role-misapplication",
				Title:      bt("Rủi ro áp dụng sai trong công việc", "On-the-job misapplication risk"),
				Mitigation: bt("Thực hành các tình huống gắn với vai trò cụ thể", "Practice scenarios tied to the learner's role"),
			},
			Title: phrasing(
				"Vận dụng PDPL vào vai trò công việc", "Apply PDPL to the job role",
				"Cùng áp dụng PDPL vào công việc hằng ngày", "Let's bring PDPL into everyday work together",
			),
			Description: phrasing(
				"Học viên cần chứng minh khả năng áp dụng PDPL trong phạm vi trách nhiệm của mình.",
				"The learner must demonstrate applying PDPL within their responsibilities.",
				"Cùng thử sức với những tình huống thực tế trong công việc của bạn.",
				"Try realistic scenarios from your own daily work together.",
			),
			Keywords: []string{"role", "application", "certification", "vai trò"},
		},
	}
}
