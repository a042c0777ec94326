// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"veriportal-engine/internal/common/config"

	_ "github.com/lib/pq"
)

// EvaluationsSchema creates the table the analytics Postgres sink appends to.
const EvaluationsSchema = `
CREATE TABLE IF NOT EXISTS compliance_evaluations (
    id            UUID PRIMARY KEY,
    subject_id    TEXT        NOT NULL,
    subject_type  TEXT        NOT NULL,
    overall_score INTEGER     NOT NULL,
    tier          TEXT        NOT NULL,
    confidence    INTEGER     NOT NULL,
    payload       JSONB       NOT NULL,
    recorded_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_compliance_evaluations_subject
    ON compliance_evaluations (subject_type, subject_id, recorded_at DESC);`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// EnsureSchema creates the evaluations table when it does not exist yet.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, EvaluationsSchema); err != nil {
		return fmt.Errorf("failed to ensure evaluations schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
