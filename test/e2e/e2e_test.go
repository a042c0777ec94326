//go:build e2e

// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veriportal-engine/internal/analytics"
	"veriportal-engine/internal/common/camunda"
	"veriportal-engine/internal/common/config"
	"veriportal-engine/internal/common/database"
	"veriportal-engine/internal/common/logger"
	"veriportal-engine/internal/engine"
	"veriportal-engine/pkg/registry"

	recordevaluation "veriportal-engine/internal/workers/analytics/record-evaluation"
	evaluatebusiness "veriportal-engine/internal/workers/compliance/evaluate-business"
	evaluatelearner "veriportal-engine/internal/workers/training/evaluate-learner"
)

// Run with: go test -tags e2e ./test/e2e/ against the docker-compose stack.
func loadE2EConfig(t *testing.T) *config.Config {
	t.Helper()

	path := os.Getenv("VERIPORTAL_E2E_CONFIG")
	if path == "" {
		path = "../../configs/config.yaml"
	}
	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)

	// FORCE LOCALHOST FOR E2E TESTS
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	return cfg
}

func TestFullE2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := loadE2EConfig(t)
	log := logger.NewTestLogger(t)

	t.Log("Checking service connectivity...")

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer pg.Close()
	require.NoError(t, pg.Ping(ctx), "PostgreSQL ping failed")
	require.NoError(t, pg.EnsureSchema(ctx))

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx), "Redis ping failed")

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)
	require.NoError(t, es.Ping(), "Elasticsearch ping failed")
	require.NoError(t, es.EnsureIndex(ctx, cfg.Analytics.ElasticsearchIndex))

	zeebe, err := camunda.NewClientWithConfig(&camunda.ClientConfig{
		GatewayAddress:         "localhost:26500",
		UsePlaintextConnection: true,
	})
	require.NoError(t, err, "Zeebe topology request failed")
	defer zeebe.Close()

	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	eng, err := engine.New(nil, engine.WithLogger(log))
	require.NoError(t, err)

	sink := analytics.NewMultiSink(
		analytics.NewPostgresSink(pg.DB),
		analytics.NewRedisSink(rdb.Client, time.Minute),
		analytics.NewElasticsearchSink(es.Client, cfg.Analytics.ElasticsearchIndex),
	)
	recorder := recordevaluation.NewHandler(&recordevaluation.Config{
		Timeout:     30 * time.Second,
		InputSchema: reg.InputSchema(recordevaluation.TaskType),
	}, sink, nil, log)

	t.Run("business evaluation is recorded in every sink", func(t *testing.T) {
		businessID := "e2e-biz-" + time.Now().Format("150405.000")

		evaluator := evaluatebusiness.NewHandler(&evaluatebusiness.Config{
			Timeout:        10 * time.Second,
			InputSchema:    reg.InputSchema(evaluatebusiness.TaskType),
			AttentionTiers: []string{"high", "critical"},
		}, eng, nil, log)

		out, err := evaluator.Execute(ctx, &evaluatebusiness.Input{
			Business: engine.BusinessContext{
				BusinessID: businessID,
				Region:     engine.RegionSouth,
				Size:       engine.SizeSmall,
				Maturity:   engine.MaturityBeginner,
			},
		})
		require.NoError(t, err)

		payload, err := json.Marshal(out.Evaluation)
		require.NoError(t, err)

		recorded, err := recorder.Execute(ctx, &recordevaluation.Input{
			SubjectType: analytics.SubjectBusiness,
			Evaluation:  payload,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"postgres", "redis", "elasticsearch"}, recorded.Sinks)

		var score int
		require.NoError(t, pg.DB.QueryRowContext(ctx,
			"SELECT overall_score FROM compliance_evaluations WHERE id = $1", recorded.RecordID).Scan(&score))
		assert.Equal(t, out.OverallScore, score)

		cached, err := rdb.Client.Get(ctx, analytics.LatestKey(analytics.SubjectBusiness, businessID)).Result()
		require.NoError(t, err)
		assert.Contains(t, cached, recorded.RecordID)

		res, err := es.Client.Get(cfg.Analytics.ElasticsearchIndex, recorded.RecordID, es.Client.Get.WithContext(ctx))
		require.NoError(t, err)
		defer res.Body.Close()
		assert.False(t, res.IsError(), res.String())

		// Re-recording the same evaluation must not add a row.
		_, err = recorder.Execute(ctx, &recordevaluation.Input{
			SubjectType: analytics.SubjectBusiness,
			Evaluation:  payload,
		})
		require.NoError(t, err)

		var rows int
		require.NoError(t, pg.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM compliance_evaluations WHERE subject_id = $1", businessID).Scan(&rows))
		assert.Equal(t, 1, rows)
	})

	t.Run("learner evaluation is recorded", func(t *testing.T) {
		evaluator := evaluatelearner.NewHandler(&evaluatelearner.Config{
			Timeout:     10 * time.Second,
			InputSchema: reg.InputSchema(evaluatelearner.TaskType),
		}, eng, nil, log)

		out, err := evaluator.Execute(ctx, &evaluatelearner.Input{
			Learner: engine.LearnerContext{
				LearnerID:  "e2e-learner-" + time.Now().Format("150405.000"),
				Role:       engine.RoleStaff,
				Experience: engine.ExperienceBeginner,
				Region:     engine.RegionCentral,
			},
		})
		require.NoError(t, err)

		payload, err := json.Marshal(out.Evaluation)
		require.NoError(t, err)

		recorded, err := recorder.Execute(ctx, &recordevaluation.Input{
			SubjectType: analytics.SubjectLearner,
			Evaluation:  payload,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, recorded.RecordID)
	})
}
