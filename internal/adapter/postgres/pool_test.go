package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/heartmarshall/timeline-backend/internal/config"
)

func TestPoolConfig_SetsApplicationName(t *testing.T) {
	t.Parallel()

	cfg := config.DatabaseConfig{
		DSN:             "postgres://u:p@localhost:5432/timeline",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
		ApplicationName: "timeline",
	}

	got, err := poolConfig(cfg)
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if name := got.ConnConfig.RuntimeParams[applicationNameParam]; name != "timeline" {
		t.Errorf("application_name: got %q, want timeline", name)
	}
	if got.MaxConns != 4 || got.MinConns != 1 {
		t.Errorf("conns: got max %d min %d, want 4 and 1", got.MaxConns, got.MinConns)
	}
	if got.MaxConnLifetime != time.Hour || got.MaxConnIdleTime != time.Minute {
		t.Errorf("lifetimes: got %v / %v", got.MaxConnLifetime, got.MaxConnIdleTime)
	}
}

func TestPoolConfig_DSNApplicationNameWins(t *testing.T) {
	t.Parallel()

	got, err := poolConfig(config.DatabaseConfig{
		DSN:             "postgres://u:p@localhost:5432/timeline?application_name=timeline-migrate",
		ApplicationName: "timeline",
	})
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if name := got.ConnConfig.RuntimeParams[applicationNameParam]; name != "timeline-migrate" {
		t.Errorf("application_name: got %q, want timeline-migrate", name)
	}
}

func TestPoolConfig_ZeroLimitsKeepDriverDefaults(t *testing.T) {
	t.Parallel()

	got, err := poolConfig(config.DatabaseConfig{DSN: "postgres://localhost/timeline"})
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if got.MaxConns <= 0 {
		t.Errorf("max conns: got %d, want driver default", got.MaxConns)
	}
	if _, ok := got.ConnConfig.RuntimeParams[applicationNameParam]; ok {
		t.Error("application_name set without a configured name")
	}
}

func TestNewPool_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := NewPool(context.Background(), config.DatabaseConfig{DSN: "postgres://:bad port"}); err == nil {
		t.Fatal("NewPool: got nil error for malformed DSN")
	}
}
