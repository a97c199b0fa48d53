package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/heartmarshall/timeline-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/timeline-backend/internal/config"
	"github.com/heartmarshall/timeline-backend/internal/timeline"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   sqlite.MemoryPath,
		},
		CORS:      config.CORSConfig{AllowedOrigins: "*"},
		RateLimit: config.RateLimitConfig{WritesPerMinute: 60, CleanupInterval: time.Minute},
		Timeline:  config.TimelineConfig{SeedOnEmpty: true},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "mysql"}, slog.Default())
	if err == nil {
		t.Fatal("OpenStore: got nil error, want unknown driver")
	}
}

func TestSeedOnStart_BuiltinOnce(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, testConfig())
	ctx := context.Background()

	if err := a.SeedOnStart(ctx); err != nil {
		t.Fatalf("SeedOnStart: %v", err)
	}
	if err := a.SeedOnStart(ctx); err != nil {
		t.Fatalf("SeedOnStart again: %v", err)
	}

	n, err := a.Store.Events.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 6 {
		t.Errorf("Count: got %d, want 6", n)
	}
}

func TestSeedOnStart_Disabled(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Timeline.SeedOnEmpty = false
	a := newTestApp(t, cfg)
	ctx := context.Background()

	if err := a.SeedOnStart(ctx); err != nil {
		t.Fatalf("SeedOnStart: %v", err)
	}
	if n, _ := a.Store.Events.Count(ctx); n != 0 {
		t.Errorf("Count: got %d, want 0", n)
	}
}

func TestSeedOnStart_ConfiguredFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := "events:\n  - category: Science\n    topic: Computing\n    name: ARPANET\n    date_start: \"1969-10-29\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	cfg := testConfig()
	cfg.Timeline.SeedFile = path
	a := newTestApp(t, cfg)
	ctx := context.Background()

	if err := a.SeedOnStart(ctx); err != nil {
		t.Fatalf("SeedOnStart: %v", err)
	}
	e, err := a.Store.Events.GetByTag(ctx, "Science_Computing_ARPANET_1969")
	if err != nil {
		t.Fatalf("GetByTag: %v", err)
	}
	if e.Name != "ARPANET" {
		t.Errorf("Name: got %q, want ARPANET", e.Name)
	}
}

func TestHandler_ServesTimeline(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, testConfig())
	if err := a.SeedOnStart(context.Background()); err != nil {
		t.Fatalf("SeedOnStart: %v", err)
	}

	h, stop := a.Handler()
	defer stop()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/timeline", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/timeline: got %d, want 200", rec.Code)
	}

	var c timeline.Chart
	if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if len(c.Bars) != 6 {
		t.Errorf("bars: got %d, want 6", len(c.Bars))
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
