package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"veriportal-engine/internal/analytics"
	awsclients "veriportal-engine/internal/common/aws"
	"veriportal-engine/internal/common/camunda"
	"veriportal-engine/internal/common/config"
	"veriportal-engine/internal/common/database"
	"veriportal-engine/internal/common/logger"
	"veriportal-engine/internal/common/observability"
	"veriportal-engine/internal/engine"
	"veriportal-engine/pkg/registry"

	re "veriportal-engine/internal/workers/analytics/record-evaluation"
	nr "veriportal-engine/internal/workers/communication/notify-risk"
	eb "veriportal-engine/internal/workers/compliance/evaluate-business"
	el "veriportal-engine/internal/workers/training/evaluate-learner"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// ==========================
	// Analytics sinks
	// ==========================

	var sinks []analytics.Sink

	if cfg.Analytics.Enabled(config.SinkPostgres) {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		if err := pg.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("postgres schema setup failed", zap.Error(err))
		}
		sinks = append(sinks, analytics.NewPostgresSink(pg.DB))
		zapLog.Info("PostgreSQL connected successfully")
	}

	if cfg.Analytics.Enabled(config.SinkRedis) {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()

		ttl := time.Duration(cfg.Analytics.RedisTTLSeconds) * time.Second
		sinks = append(sinks, analytics.NewRedisSink(redis.Client, ttl))
		zapLog.Info("Redis connected successfully")
	}

	if cfg.Analytics.Enabled(config.SinkElasticsearch) {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}

		if err := esClient.EnsureIndex(ctx, cfg.Analytics.ElasticsearchIndex); err != nil {
			zapLog.Fatal("elasticsearch index setup failed", zap.Error(err))
		}
		sinks = append(sinks, analytics.NewElasticsearchSink(esClient.Client, cfg.Analytics.ElasticsearchIndex))
		zapLog.Info("Elasticsearch connected successfully")
	}

	// ==========================
	// Engine and registry
	// ==========================

	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	if err := reg.Validate(); err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}

	var tables *engine.Tables
	if cfg.Engine.TablesPath != "" {
		tables, err = engine.LoadTables(cfg.Engine.TablesPath)
		if err != nil {
			zapLog.Fatal("engine tables load failed", zap.Error(err), zap.String("path", cfg.Engine.TablesPath))
		}
	}

	engineOpts := []engine.Option{engine.WithLogger(log)}
	if len(cfg.Engine.DefaultWeights) > 0 {
		weights := make(map[engine.Category]float64, len(cfg.Engine.DefaultWeights))
		for c, w := range cfg.Engine.DefaultWeights {
			weights[engine.Category(c)] = w
		}
		engineOpts = append(engineOpts, engine.WithDefaultWeights(weights))
	}

	eng, err := engine.New(tables, engineOpts...)
	if err != nil {
		zapLog.Fatal("engine init failed", zap.Error(err))
	}

	// ==========================
	// Notification channels
	// ==========================

	var (
		sesClient awsclients.SESService
		snsClient awsclients.SNSService
	)
	if cfg.Notifications.Email.Enabled {
		client, err := awsclients.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		sesClient = client
	}
	if cfg.Notifications.SMS.Enabled {
		client, err := awsclients.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		snsClient = client
	}

	zapLog.Info("All external service clients initialized",
		zap.Int("analyticsSinks", len(sinks)),
		zap.Bool("email", sesClient != nil),
		zap.Bool("sms", snsClient != nil),
	)

	// ==========================
	// Workers
	// ==========================

	var workers []*camunda.Worker

	if wcfg := config.GetWorkerConfig(cfg, eb.TaskType); wcfg.Enabled {
		handler := eb.NewHandler(
			&eb.Config{
				Timeout:        config.GetDuration(wcfg.Timeout),
				InputSchema:    reg.InputSchema(eb.TaskType),
				AttentionTiers: cfg.Notifications.Email.Tiers,
			},
			eng, obs, log,
		)
		workers = append(workers, camunda.StartWorker(zeebe.GetClient(), eb.TaskType, wcfg, handler.Handle, zapLog))
	}

	if wcfg := config.GetWorkerConfig(cfg, el.TaskType); wcfg.Enabled {
		handler := el.NewHandler(
			&el.Config{
				Timeout:     config.GetDuration(wcfg.Timeout),
				InputSchema: reg.InputSchema(el.TaskType),
			},
			eng, obs, log,
		)
		workers = append(workers, camunda.StartWorker(zeebe.GetClient(), el.TaskType, wcfg, handler.Handle, zapLog))
	}

	if wcfg := config.GetWorkerConfig(cfg, re.TaskType); wcfg.Enabled {
		if len(sinks) == 0 {
			zapLog.Warn("no analytics sinks configured, record-evaluation not started")
		} else {
			handler := re.NewHandler(
				&re.Config{
					Timeout:     config.GetDuration(wcfg.Timeout),
					InputSchema: reg.InputSchema(re.TaskType),
				},
				analytics.NewMultiSink(sinks...), obs, log,
			)
			workers = append(workers, camunda.StartWorker(zeebe.GetClient(), re.TaskType, wcfg, handler.Handle, zapLog))
		}
	}

	if wcfg := config.GetWorkerConfig(cfg, nr.TaskType); wcfg.Enabled {
		handler := nr.NewHandler(
			&nr.Config{
				Timeout:      config.GetDuration(wcfg.Timeout),
				InputSchema:  reg.InputSchema(nr.TaskType),
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				Recipients:   cfg.Notifications.Email.Recipients,
				PhoneNumbers: cfg.Notifications.SMS.PhoneNumbers,
				EmailTiers:   cfg.Notifications.Email.Tiers,
				SenderID:     cfg.Notifications.SMS.SenderID,
			},
			sesClient, snsClient, obs, log,
		)
		workers = append(workers, camunda.StartWorker(zeebe.GetClient(), nr.TaskType, wcfg, handler.Handle, zapLog))
	}

	// ==========================
	// Health and metrics
	// ==========================

	var stopping atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if stopping.Load() {
			writeStatus(w, http.StatusServiceUnavailable, "stopping")
			return
		}
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "broker unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	stopping.Store(true)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
