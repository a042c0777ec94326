package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	apperrors "veriportal-engine/internal/common/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSink(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := sampleRecord(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO compliance_evaluations")).
		WithArgs(rec.ID, "biz-001", SubjectBusiness, 60, "medium", 0, sqlmock.AnyArg(), rec.RecordedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresSink(db).Record(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO compliance_evaluations")).
		WillReturnError(errors.New("connection reset"))

	err = NewPostgresSink(db).Record(context.Background(), sampleRecord(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRedisSink(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sink := NewRedisSink(client, time.Hour)

	rec := sampleRecord(t)
	require.NoError(t, sink.Record(context.Background(), rec))

	key := LatestKey(SubjectBusiness, "biz-001")
	assert.Equal(t, "veriportal:evaluation:business:biz-001", key)

	raw, err := mr.Get(key)
	require.NoError(t, err)

	var stored Record
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, rec.ID, stored.ID)
	assert.Equal(t, 60, stored.OverallScore)
	assert.Equal(t, time.Hour, mr.TTL(key))
}

func TestRedisSinkUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	err = NewRedisSink(client, time.Hour).Record(context.Background(), sampleRecord(t))
	assert.Error(t, err)
}

func newTestElasticsearch(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchSink(t *testing.T) {
	rec := sampleRecord(t)

	var gotMethod, gotPath string
	var gotBody Record
	client := newTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	require.NoError(t, NewElasticsearchSink(client, "veriportal-evaluations").Record(context.Background(), rec))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/veriportal-evaluations/_doc/"+rec.ID, gotPath)
	assert.Equal(t, "biz-001", gotBody.SubjectID)
	assert.Equal(t, "medium", gotBody.Tier)
}

func TestElasticsearchSinkError(t *testing.T) {
	client := newTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"mapper_parsing_exception"}`))
	})

	err := NewElasticsearchSink(client, "veriportal-evaluations").Record(context.Background(), sampleRecord(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

type fakeSink struct {
	name    string
	err     error
	records []Record
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Record(_ context.Context, rec Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func TestMultiSinkWritesEverySink(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}
	multi := NewMultiSink(a, b)

	require.NoError(t, multi.Record(context.Background(), sampleRecord(t)))
	assert.Len(t, a.records, 1)
	assert.Len(t, b.records, 1)
	assert.Equal(t, []string{"a", "b"}, multi.Names())
}

func TestMultiSinkJoinsFailures(t *testing.T) {
	failing := &fakeSink{name: "postgres", err: errors.New("down")}
	ok := &fakeSink{name: "redis"}

	err := NewMultiSink(failing, ok).Record(context.Background(), sampleRecord(t))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAnalyticsWriteFailed))
	assert.Contains(t, err.Error(), "sink: postgres")
	assert.Len(t, ok.records, 1)
}
