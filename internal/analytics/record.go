// Package analytics stores evaluation snapshots for dashboards and audit. The engine never
// reads them back.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"veriportal-engine/internal/engine"

	"github.com/google/uuid"
)

// Subject types.
const (
	SubjectBusiness = "business"
	SubjectLearner  = "learner"
)

var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://veriportal.vn/analytics"))

// Record is one evaluation snapshot.
type Record struct {
	ID           string          `json:"id"`
	SubjectID    string          `json:"subject_id"`
	SubjectType  string          `json:"subject_type"`
	OverallScore int             `json:"overall_score"`
	Tier         string          `json:"tier"`
	Confidence   int             `json:"confidence"`
	Payload      json.RawMessage `json:"payload"`
	RecordedAt   time.Time       `json:"recorded_at"`
}

// Sink persists records.
type Sink interface {
	Name() string
	Record(ctx context.Context, rec Record) error
}

// NewRecord builds a Record from a serialized ComplianceEvaluation or LearnerEvaluation. The
// ID is derived from the subject and calculation time, so re-recording the same evaluation
// overwrites rather than duplicates.
func NewRecord(subjectType string, payload json.RawMessage, now time.Time) (Record, error) {
	if subjectType != SubjectBusiness && subjectType != SubjectLearner {
		return Record{}, fmt.Errorf("unknown subject type %q", subjectType)
	}

	var eval engine.ComplianceEvaluation
	if err := json.Unmarshal(payload, &eval); err != nil {
		return Record{}, fmt.Errorf("decode evaluation: %w", err)
	}
	if eval.SubjectID == "" {
		return Record{}, fmt.Errorf("evaluation has no subjectId")
	}

	recordedAt := eval.Overall.LastCalculated.UTC()
	if recordedAt.IsZero() {
		recordedAt = now.UTC()
	}

	id := uuid.NewSHA1(recordNamespace, []byte(strings.Join([]string{
		subjectType,
		eval.SubjectID,
		strconv.FormatInt(recordedAt.UnixNano(), 10),
	}, "|")))

	return Record{
		ID:           id.String(),
		SubjectID:    eval.SubjectID,
		SubjectType:  subjectType,
		OverallScore: eval.Overall.Value,
		Tier:         string(eval.Overall.Tier),
		Confidence:   eval.Overall.Confidence,
		Payload:      payload,
		RecordedAt:   recordedAt,
	}, nil
}

// RecordEvaluation serializes eval and builds its Record.
func RecordEvaluation(subjectType string, eval interface{}, now time.Time) (Record, error) {
	payload, err := json.Marshal(eval)
	if err != nil {
		return Record{}, fmt.Errorf("encode evaluation: %w", err)
	}
	return NewRecord(subjectType, payload, now)
}
