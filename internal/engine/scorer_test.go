package engine

import (
	"math"
	"testing"

	apperrors "veriportal-engine/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func centralProfile(t *testing.T) CulturalProfile {
	t.Helper()
	p, err := NewCulturalAdapter(DefaultTables()).DeriveBusinessProfile(BusinessContext{Region: RegionCentral})
	require.NoError(t, err)
	return p
}

func intPtr(v int) *int { return &v }

func TestScorerScore(t *testing.T) {
	scorer := NewScorer(DefaultTables())
	central := ScoringContext{Profile: centralProfile(t)}

	tests := []struct {
		name         string
		category     Category
		ctx          ScoringContext
		evidence     Evidence
		wantValue    int
		wantProvided bool
		wantTrend    Trend
	}{
		{
			name:      "empty evidence scores the baseline",
			category:  CategoryLegalFramework,
			ctx:       central,
			wantValue: 55,
			wantTrend: TrendStable,
		},
		{
			name:         "completed items add their points",
			category:     CategoryLegalFramework,
			ctx:          central,
			evidence:     Evidence{CompletedItems: []string{"dpo-appointed", "consent-mechanism"}},
			wantValue:    77,
			wantProvided: true,
			wantTrend:    TrendStable,
		},
		{
			name:         "truthy answers count as evidence",
			category:     CategoryLegalFramework,
			ctx:          central,
			evidence:     Evidence{Answers: map[string]interface{}{"consent-mechanism": "Có", "dpo-appointed": false, "privacy-notice-published": 1.0}},
			wantValue:    73,
			wantProvided: true,
			wantTrend:    TrendStable,
		},
		{
			name:         "graded items take partial credit",
			category:     CategoryLegalFramework,
			ctx:          central,
			evidence:     Evidence{Answers: map[string]interface{}{"legal-review": 60.0}},
			wantValue:    64,
			wantProvided: true,
			wantTrend:    TrendStable,
		},
		{
			name:         "graded item answered yes takes full credit",
			category:     CategorySecurityPosture,
			ctx:          central,
			evidence:     Evidence{Answers: map[string]interface{}{"security-audit": true}},
			wantValue:    80,
			wantProvided: true,
			wantTrend:    TrendStable,
		},
		{
			name:      "graded item graded zero gives nothing",
			category:  CategorySecurityPosture,
			ctx:       central,
			evidence:  Evidence{Answers: map[string]interface{}{"security-audit": 0.0}},
			wantValue: 65,
			wantTrend: TrendStable,
		},
		{
			name:      "unknown items are ignored",
			category:  CategoryDataGovernance,
			ctx:       central,
			evidence:  Evidence{CompletedItems: []string{"not-a-real-item"}},
			wantValue: 60,
			wantTrend: TrendStable,
		},
		{
			name:     "clamped at 100",
			category: CategorySecurityPosture,
			ctx:      central,
			evidence: Evidence{
				CompletedItems: []string{"access-control", "encryption-at-rest", "incident-response-plan", "staff-security-training"},
				Answers:        map[string]interface{}{"security-audit": 100},
			},
			wantValue:    100,
			wantProvided: true,
			wantTrend:    TrendStable,
		},
		{
			name:      "industry modifier applies",
			category:  CategoryRegulatoryFit,
			ctx:       ScoringContext{Profile: central.Profile, Industry: "Finance"},
			wantValue: 54,
			wantTrend: TrendStable,
		},
		{
			name:      "improving beyond tolerance",
			category:  CategoryLegalFramework,
			ctx:       central,
			evidence:  Evidence{PreviousScore: intPtr(50)},
			wantValue: 55,
			wantTrend: TrendImproving,
		},
		{
			name:      "stable within tolerance",
			category:  CategoryLegalFramework,
			ctx:       central,
			evidence:  Evidence{PreviousScore: intPtr(53)},
			wantValue: 55,
			wantTrend: TrendStable,
		},
		{
			name:      "declining beyond tolerance",
			category:  CategoryLegalFramework,
			ctx:       central,
			evidence:  Evidence{PreviousScore: intPtr(60)},
			wantValue: 55,
			wantTrend: TrendDeclining,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(tt.category, tt.ctx, tt.evidence)
			require.NoError(t, err)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantProvided, got.EvidenceProvided)
			assert.Equal(t, tt.wantTrend, got.Trend)
			assert.Equal(t, ClassifyTier(tt.wantValue), got.RiskLevel)
		})
	}
}

// An item that drops a playlist action must also have earned credit, and the other way round.
func TestCreditAgreesWithEvidenced(t *testing.T) {
	audit := EvidenceItem{ID: "security-audit", Points: 15, Graded: true}
	notice := EvidenceItem{ID: "privacy-notice-published", Points: 8}

	answers := []interface{}{true, false, "yes", "Có", "no", 0.0, 40.0, "75", "0", 150, -5}
	for _, item := range []EvidenceItem{audit, notice} {
		for _, answer := range answers {
			ev := Evidence{Answers: map[string]interface{}{item.ID: answer}}
			points, ok := itemCredit(item, ev)
			assert.Equal(t, evidenced(item.ID, ev), ok, "%s=%v", item.ID, answer)
			assert.Equal(t, ok, points > 0, "%s=%v", item.ID, answer)
		}
	}
}

func TestScorerItemCap(t *testing.T) {
	tables := DefaultTables()
	tables.ItemCap = 5
	scorer := NewScorer(tables)

	got, err := scorer.Score(CategoryLegalFramework, ScoringContext{}, Evidence{CompletedItems: []string{"dpo-appointed"}})
	require.NoError(t, err)
	assert.Equal(t, 60, got.Value)
}

func TestScorerSouthMultipliers(t *testing.T) {
	south, err := NewCulturalAdapter(DefaultTables()).DeriveBusinessProfile(BusinessContext{Region: RegionSouth})
	require.NoError(t, err)
	scorer := NewScorer(DefaultTables())

	want := map[Category]int{
		CategoryLegalFramework:    52,
		CategoryDataGovernance:    60,
		CategorySecurityPosture:   65,
		CategoryPolicyMaturity:    53,
		CategoryCulturalAlignment: 70,
		CategoryRegulatoryFit:     57,
	}
	for c, v := range want {
		got, err := scorer.Score(c, ScoringContext{Profile: south}, Evidence{})
		require.NoError(t, err)
		assert.Equal(t, v, got.Value, "category %s", c)
	}
}

func TestScorerUnknownCategory(t *testing.T) {
	_, err := NewScorer(DefaultTables()).Score(Category("marketing"), ScoringContext{}, Evidence{})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidCategory))
}

func TestScorerPanicsOnBrokenInvariant(t *testing.T) {
	tables := DefaultTables()
	ct := tables.Categories[CategoryLegalFramework]
	ct.Baseline = math.NaN()
	tables.Categories[CategoryLegalFramework] = ct

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOutOfRangeScore))
	}()
	_, _ = NewScorer(tables).Score(CategoryLegalFramework, ScoringContext{}, Evidence{})
}

func TestScoreBoundsAcrossInputs(t *testing.T) {
	tables := DefaultTables()
	scorer := NewScorer(tables)
	adapter := NewCulturalAdapter(tables)

	allItems := func(c Category) Evidence {
		var ids []string
		for _, it := range tables.Categories[c].Items {
			ids = append(ids, it.ID)
		}
		return Evidence{CompletedItems: ids}
	}

	for _, region := range []Region{RegionNorth, RegionCentral, RegionSouth} {
		for _, style := range []DecisionStyle{"", DecisionHierarchical, DecisionConsensus, DecisionAgile} {
			profile, err := adapter.DeriveBusinessProfile(BusinessContext{Region: region, DecisionStyle: style})
			require.NoError(t, err)
			for _, industry := range []string{"", "finance", "technology"} {
				for _, c := range append(append([]Category{}, ComplianceCategories...), TrainingCategories...) {
					for _, ev := range []Evidence{{}, allItems(c)} {
						got, err := scorer.Score(c, ScoringContext{Profile: profile, Industry: industry}, ev)
						require.NoError(t, err)
						assert.GreaterOrEqual(t, got.Value, 0)
						assert.LessOrEqual(t, got.Value, 100)
					}
				}
			}
		}
	}
}

func TestRoundIntHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 67, roundInt(70*0.95))
	assert.Equal(t, 53, roundInt(50*1.05))
	assert.Equal(t, 60, roundInt(59.5))
	assert.Equal(t, 52, roundInt(52.25))
	assert.Equal(t, -1, roundInt(math.NaN()))
}
