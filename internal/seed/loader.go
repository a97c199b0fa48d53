package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

type eventStore interface {
	Count(ctx context.Context) (int, error)
	GetByTag(ctx context.Context, tag string) (*domain.Event, error)
	Insert(ctx context.Context, ne domain.NewEvent) (*domain.Event, error)
	AddRelationTag(ctx context.Context, eventTag string, dir domain.Direction, relatedTag string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Stats reports what a load did.
type Stats struct {
	Inserted  int
	Skipped   int
	Relations int
}

// Loader writes seed events into the store.
type Loader struct {
	store eventStore
	tx    txManager
	log   *slog.Logger
}

// NewLoader creates a new Loader.
func NewLoader(log *slog.Logger, store eventStore, tx txManager) *Loader {
	return &Loader{
		store: store,
		tx:    tx,
		log:   log.With("component", "seed"),
	}
}

// SeedIfEmpty loads events only when the store holds none.
func (l *Loader) SeedIfEmpty(ctx context.Context, events []domain.Event) (Stats, error) {
	n, err := l.store.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("seed: count events: %w", err)
	}
	if n > 0 {
		l.log.DebugContext(ctx, "store not empty, seed skipped", slog.Int("events", n))
		return Stats{}, nil
	}
	return l.Load(ctx, events)
}

// Load inserts every event, then links the relations once all nodes exist.
// Events whose tag is already stored are skipped, so Load is safe to repeat.
// Everything happens in one transaction.
func (l *Loader) Load(ctx context.Context, events []domain.Event) (Stats, error) {
	var stats Stats

	err := l.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, e := range events {
			_, err := l.store.GetByTag(txCtx, e.Tag)
			if err == nil {
				stats.Skipped++
				continue
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("seed: lookup %s: %w", e.Tag, err)
			}

			_, err = l.store.Insert(txCtx, domain.NewEvent{
				Tag:         e.Tag,
				Category:    e.Category,
				Topic:       e.Topic,
				Name:        e.Name,
				Country:     e.Country,
				DateStart:   e.DateStart,
				DateEnd:     e.DateEnd,
				Description: e.Description,
			})
			if err != nil {
				return fmt.Errorf("seed: insert %s: %w", e.Tag, err)
			}
			stats.Inserted++
		}

		for _, e := range events {
			for _, dir := range []domain.Direction{domain.DirectionAffectedBy, domain.DirectionAffects} {
				for _, related := range e.Relations(dir) {
					if err := l.store.AddRelationTag(txCtx, e.Tag, dir, related); err != nil {
						return fmt.Errorf("seed: link %s %s %s: %w", e.Tag, dir, related, err)
					}
					stats.Relations++
				}
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	l.log.InfoContext(ctx, "seed loaded",
		slog.Int("inserted", stats.Inserted),
		slog.Int("skipped", stats.Skipped),
		slog.Int("relations", stats.Relations),
	)
	return stats, nil
}
