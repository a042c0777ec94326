// internal/workers/compliance/evaluate-business/models.go
package evaluatebusiness

import "veriportal-engine/internal/engine"

type Input struct {
	Business engine.BusinessContext      `json:"business"`
	Evidence engine.EvidenceMap          `json:"evidence,omitempty"`
	Weights  map[engine.Category]float64 `json:"weights,omitempty"`
	Profile  *engine.CulturalProfile     `json:"profile,omitempty"`
}

type Output struct {
	Evaluation        *engine.ComplianceEvaluation `json:"evaluation"`
	OverallScore      int                          `json:"overallScore"`
	Tier              string                       `json:"tier"`
	RiskCount         int                          `json:"riskCount"`
	RequiresAttention bool                         `json:"requiresAttention"`
}
