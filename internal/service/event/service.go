// Package event holds the event mutation and lookup use cases: input
// validation, tag generation and transactional calls into the event store.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

type eventRepo interface {
	GetByTag(ctx context.Context, tag string) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetByTags(ctx context.Context, tags []string) ([]domain.Event, error)
	Find(ctx context.Context, q domain.EventQuery) ([]domain.Event, error)

	Insert(ctx context.Context, ne domain.NewEvent) (*domain.Event, error)
	Update(ctx context.Context, id int64, u domain.EventUpdate) error
	Delete(ctx context.Context, id int64) error
	AddRelationTag(ctx context.Context, eventTag string, dir domain.Direction, relatedTag string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides event management operations.
type Service struct {
	events eventRepo
	tx     txManager
	log    *slog.Logger
}

// NewService creates a new Event service.
func NewService(log *slog.Logger, events eventRepo, tx txManager) *Service {
	return &Service{
		events: events,
		tx:     tx,
		log:    log.With("service", "event"),
	}
}

// trimOrNil trims whitespace. Returns nil if v is nil.
func trimOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}

// cleanOrNil applies domain.CleanLabel. Returns nil if v is nil.
func cleanOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	s := domain.CleanLabel(*v)
	return &s
}

func tagsOrNil(v *[]string) []string {
	if v == nil {
		return nil
	}
	return *v
}

// unknownTagErrors reports relation tags that name no stored event.
func (s *Service) unknownTagErrors(ctx context.Context, affectedBy, affects []string) ([]domain.FieldError, error) {
	if len(affectedBy) == 0 && len(affects) == 0 {
		return nil, nil
	}

	found, err := s.events.GetByTags(ctx, append(append([]string{}, affectedBy...), affects...))
	if err != nil {
		return nil, fmt.Errorf("resolve relation tags: %w", err)
	}
	known := make(map[string]bool, len(found))
	for _, e := range found {
		known[e.Tag] = true
	}

	var errs []domain.FieldError
	for _, f := range []struct {
		name string
		tags []string
	}{
		{"affected_by", affectedBy},
		{"affects", affects},
	} {
		for _, tag := range f.tags {
			if !known[tag] {
				errs = append(errs, domain.FieldError{Field: f.name, Message: fmt.Sprintf("unknown event tag %q", tag)})
			}
		}
	}
	return errs, nil
}
