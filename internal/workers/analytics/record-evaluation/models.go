// internal/workers/analytics/record-evaluation/models.go
package recordevaluation

import "encoding/json"

type Input struct {
	SubjectType string          `json:"subjectType"`
	Evaluation  json.RawMessage `json:"evaluation"`
}

type Output struct {
	RecordID   string   `json:"recordId"`
	Sinks      []string `json:"sinks"`
	RecordedAt string   `json:"recordedAt"` // ISO 8601
}
