package database

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"veriportal-engine/internal/common/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	client := &PostgresClient{DB: db}
	defer client.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS compliance_evaluations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, client.EnsureSchema(context.Background()))

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS compliance_evaluations")).
		WillReturnError(errors.New("permission denied for schema public"))
	err = client.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisPing(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))

	mr.Close()
	err = client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

type esCall struct {
	method, path, body string
}

func newElasticsearchServer(t *testing.T, existsStatus, createStatus int, createBody string) (*ElasticsearchClient, *[]esCall) {
	t.Helper()
	var calls []esCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, esCall{r.Method, r.URL.Path, string(body)})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(existsStatus)
		case http.MethodPut:
			w.WriteHeader(createStatus)
			_, _ = io.WriteString(w, createBody)
		default:
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, `{}`)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	return client, &calls
}

func TestElasticsearchEnsureIndex(t *testing.T) {
	tests := []struct {
		name         string
		existsStatus int
		createStatus int
		createBody   string
		wantCreate   bool
		wantErr      bool
	}{
		{"creates missing index", http.StatusNotFound, http.StatusOK, `{"acknowledged":true}`, true, false},
		{"keeps existing index", http.StatusOK, 0, "", false, false},
		{"tolerates concurrent create", http.StatusNotFound, http.StatusBadRequest,
			`{"error":{"type":"resource_already_exists_exception"},"status":400}`, true, false},
		{"reports other failures", http.StatusNotFound, http.StatusForbidden,
			`{"error":{"type":"security_exception"},"status":403}`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := newElasticsearchServer(t, tt.existsStatus, tt.createStatus, tt.createBody)

			err := client.EnsureIndex(context.Background(), "veriportal-evaluations")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			var created *esCall
			for i := range *calls {
				if (*calls)[i].method == http.MethodPut {
					created = &(*calls)[i]
				}
			}
			if !tt.wantCreate {
				assert.Nil(t, created)
				return
			}
			require.NotNil(t, created)
			assert.Equal(t, "/veriportal-evaluations", created.path)
			assert.Contains(t, created.body, `"subject_id"`)
		})
	}
}

func TestElasticsearchPing(t *testing.T) {
	client, _ := newElasticsearchServer(t, http.StatusOK, http.StatusOK, "")
	assert.NoError(t, client.Ping())
}
