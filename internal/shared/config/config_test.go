package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Search.MaxPageSize != 24 {
		t.Errorf("expected max page size 24, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Search.InflationFactor != 2 {
		t.Errorf("expected inflation factor 2, got %d", cfg.Search.InflationFactor)
	}
	if cfg.Search.OffsetMode != "page" {
		t.Errorf("expected offset mode page, got %s", cfg.Search.OffsetMode)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected redis addr localhost:6379, got %s", cfg.Redis.Addr)
	}
	if cfg.Database.MaxOpenConns != 25 || cfg.Redis.PoolSize != 10 {
		t.Errorf("unexpected pool defaults: db %d redis %d", cfg.Database.MaxOpenConns, cfg.Redis.PoolSize)
	}
	if cfg.GetAPIBasePath() != "/api/v1" {
		t.Errorf("expected /api/v1, got %s", cfg.GetAPIBasePath())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SEARCH_INFLATION_FACTOR", "5")
	t.Setenv("SEARCH_OFFSET_MODE", "start")
	t.Setenv("REDIS_DETAIL_CACHE_TTL", "90s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("UPSTREAM_SEARCH_RADIUS", "not-a-number")

	cfg := Load()

	if cfg.Search.InflationFactor != 5 {
		t.Errorf("expected inflation factor 5, got %d", cfg.Search.InflationFactor)
	}
	if cfg.Search.OffsetMode != "start" {
		t.Errorf("expected offset mode start, got %s", cfg.Search.OffsetMode)
	}
	if cfg.Redis.DetailCacheTTL != 90*time.Second {
		t.Errorf("expected 90s ttl, got %v", cfg.Redis.DetailCacheTTL)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.Upstream.SearchRadius != 30 {
		t.Errorf("expected fallback radius 30 for bad input, got %d", cfg.Upstream.SearchRadius)
	}
}
