package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/timeline-backend/internal/adapter/postgres"
	pgevent "github.com/heartmarshall/timeline-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/timeline-backend/internal/adapter/sqlite"
	sqliteevent "github.com/heartmarshall/timeline-backend/internal/adapter/sqlite/event"
	"github.com/heartmarshall/timeline-backend/internal/config"
	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// EventStore is the full event store surface shared by both backends.
type EventStore interface {
	GetAll(ctx context.Context) ([]domain.Event, error)
	GetByTag(ctx context.Context, tag string) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetByTags(ctx context.Context, tags []string) ([]domain.Event, error)
	Find(ctx context.Context, q domain.EventQuery) ([]domain.Event, error)
	Facets(ctx context.Context) (domain.Facets, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Insert(ctx context.Context, ne domain.NewEvent) (*domain.Event, error)
	Update(ctx context.Context, id int64, u domain.EventUpdate) error
	Delete(ctx context.Context, id int64) error
	AddRelationTag(ctx context.Context, eventTag string, dir domain.Direction, relatedTag string) error
}

// TxRunner runs fn inside one store transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var (
	_ EventStore = (*sqliteevent.Repo)(nil)
	_ EventStore = (*pgevent.Repo)(nil)
)

// Store is an opened event store backend.
type Store struct {
	Events EventStore
	Tx     TxRunner
	Driver string

	migrate func(ctx context.Context) (int, error)
	close   func()
}

// OpenStore connects the backend selected by cfg.Driver. Call Close when done.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		tx := sqlite.NewTxManager(db)
		return &Store{
			Events:  sqliteevent.New(db, tx),
			Tx:      tx,
			Driver:  config.DriverSQLite,
			migrate: func(ctx context.Context) (int, error) { return sqlite.Migrate(ctx, db, log) },
			close:   func() { _ = db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		tx := postgres.NewTxManager(pool)
		return &Store{
			Events:  pgevent.New(pool, tx),
			Tx:      tx,
			Driver:  config.DriverPostgres,
			migrate: func(ctx context.Context) (int, error) { return postgres.Migrate(ctx, pool, log) },
			close:   pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Migrate applies pending schema migrations and returns how many ran.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	return s.migrate(ctx)
}

// Close releases the backend's connections.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
