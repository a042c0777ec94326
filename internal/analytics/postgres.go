package analytics

import (
	"context"
	"database/sql"
	"fmt"
)

const insertEvaluationQuery = `INSERT INTO compliance_evaluations
    (id, subject_id, subject_type, overall_score, tier, confidence, payload, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`

// PostgresSink appends records to the compliance_evaluations table.
type PostgresSink struct {
	db *sql.DB
}

func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Record(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, insertEvaluationQuery,
		rec.ID,
		rec.SubjectID,
		rec.SubjectType,
		rec.OverallScore,
		rec.Tier,
		rec.Confidence,
		string(rec.Payload),
		rec.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation %s: %w", rec.ID, err)
	}
	return nil
}
