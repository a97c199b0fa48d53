package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/timeline-backend/internal/config"
	"github.com/heartmarshall/timeline-backend/internal/domain"
	"github.com/heartmarshall/timeline-backend/internal/seed"
	"github.com/heartmarshall/timeline-backend/internal/service/event"
	tlsvc "github.com/heartmarshall/timeline-backend/internal/service/timeline"
	"github.com/heartmarshall/timeline-backend/internal/timeline"
	"github.com/heartmarshall/timeline-backend/internal/transport/middleware"
	"github.com/heartmarshall/timeline-backend/internal/transport/rest"
)

// App wires the store, services and transports for one configuration.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Store    *Store
	Events   *event.Service
	Timeline *tlsvc.Service
	Seeder   *seed.Loader
}

// New opens the configured store, migrates it and builds the services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	applied, err := store.Migrate(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	logger.Info("store ready",
		slog.String("driver", store.Driver),
		slog.Int("migrations_applied", applied),
	)

	return &App{
		Config:   cfg,
		Log:      logger,
		Store:    store,
		Events:   event.NewService(logger, store.Events, store.Tx),
		Timeline: tlsvc.NewService(logger, store.Events),
		Seeder:   seed.NewLoader(logger, store.Events, store.Tx),
	}, nil
}

// Close releases the store.
func (a *App) Close() {
	a.Store.Close()
}

// SeedEvents returns the configured seed set: the seed file when one is
// configured, the built-in events otherwise.
func (a *App) SeedEvents(file string) ([]domain.Event, error) {
	if file == "" {
		file = a.Config.Timeline.SeedFile
	}
	if file == "" {
		return seed.Builtin(), nil
	}
	return seed.ParseFile(file)
}

// SeedOnStart loads the seed set into an empty store when enabled.
func (a *App) SeedOnStart(ctx context.Context) error {
	if !a.Config.Timeline.SeedOnEmpty {
		return nil
	}
	events, err := a.SeedEvents("")
	if err != nil {
		return err
	}
	_, err = a.Seeder.SeedIfEmpty(ctx, events)
	return err
}

// Handler builds the HTTP handler. The returned stop func releases the
// rate limiter and must be called on shutdown.
func (a *App) Handler() (http.Handler, func()) {
	limiter := middleware.NewRateLimiter(a.Config.RateLimit.CleanupInterval)

	h := rest.NewRouter(rest.Handlers{
		Events:   rest.NewEventHandler(a.Events, a.Log),
		Timeline: rest.NewTimelineHandler(a.Timeline, timeline.SVGOptions{}, a.Log),
		Health:   rest.NewHealthHandler(a.Store.Events, a.Store.Driver, BuildVersion()),
	}, rest.RouterOptions{
		CORS:   a.Config.CORS,
		Writes: limiter.Limit(a.Config.RateLimit.WritesPerMinute),
	}, a.Log)

	return h, limiter.Stop
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests within Server.ShutdownTimeout.
func (a *App) Serve(ctx context.Context) error {
	handler, stop := a.Handler()
	defer stop()

	cfg := a.Config.Server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Run is the server entry point. It loads configuration, initializes the
// logger, opens and seeds the store, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg)

	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.SeedOnStart(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	return a.Serve(ctx)
}
