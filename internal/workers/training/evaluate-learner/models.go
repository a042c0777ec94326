// internal/workers/training/evaluate-learner/models.go
package evaluatelearner

import "veriportal-engine/internal/engine"

type Input struct {
	Learner engine.LearnerContext       `json:"learner"`
	History engine.LearningHistory      `json:"history"`
	Weights map[engine.Category]float64 `json:"weights,omitempty"`
	Profile *engine.CulturalProfile     `json:"profile,omitempty"`
}

type Output struct {
	Evaluation      *engine.LearnerEvaluation `json:"evaluation"`
	OverallScore    int                       `json:"overallScore"`
	Tier            string                    `json:"tier"`
	Difficulty      string                    `json:"difficulty"`
	DurationMinutes int                       `json:"durationMinutes"`
	EstimatedWeeks  int                       `json:"estimatedWeeks,omitempty"`
}
