package main

import (
	"context"
	"fmt"
	"time"

	"veriportal-engine/internal/analytics"
	"veriportal-engine/internal/common/config"
	"veriportal-engine/internal/common/database"
)

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// openSinks connects to every configured analytics sink. The returned func closes the
// connections that were opened.
func openSinks(ctx context.Context, configPath string) (analytics.Sink, func(), error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.Analytics.Sinks) == 0 {
		return nil, nil, fmt.Errorf("--record needs at least one entry in analytics.sinks")
	}

	var (
		sinks   []analytics.Sink
		closers []func() error
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	if cfg.Analytics.Enabled(config.SinkPostgres) {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, pg.Close)
		if err := pg.EnsureSchema(ctx); err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, analytics.NewPostgresSink(pg.DB))
	}

	if cfg.Analytics.Enabled(config.SinkRedis) {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, rdb.Close)
		ttl := time.Duration(cfg.Analytics.RedisTTLSeconds) * time.Second
		sinks = append(sinks, analytics.NewRedisSink(rdb.Client, ttl))
	}

	if cfg.Analytics.Enabled(config.SinkElasticsearch) {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		if err := es.EnsureIndex(ctx, cfg.Analytics.ElasticsearchIndex); err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, analytics.NewElasticsearchSink(es.Client, cfg.Analytics.ElasticsearchIndex))
	}

	return analytics.NewMultiSink(sinks...), closeAll, nil
}
