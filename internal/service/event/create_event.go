package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// CreateEvent validates the input, derives the tag and stores the event with
// its relations. Every relation tag must name a stored event. Returns
// *domain.DuplicateTagError if the tag is already used.
func (s *Service) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	ne, err := input.parse()
	if err != nil {
		return nil, err
	}

	ne.Tag = domain.MakeTag(ne.Category, ne.Topic, ne.Name, ne.DateStart)

	if errs := selfLoopErrors(ne.Tag, ne.AffectedBy, ne.Affects); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	var created *domain.Event
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		unknown, lookupErr := s.unknownTagErrors(txCtx, ne.AffectedBy, ne.Affects)
		if lookupErr != nil {
			return lookupErr
		}
		if len(unknown) > 0 {
			return domain.NewValidationErrors(unknown)
		}

		var insertErr error
		created, insertErr = s.events.Insert(txCtx, ne)
		if insertErr != nil {
			return fmt.Errorf("insert event: %w", insertErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "event created",
		slog.Int64("event_id", created.ID),
		slog.String("tag", created.Tag),
		slog.Int("affected_by", len(created.AffectedBy)),
		slog.Int("affects", len(created.Affects)),
	)

	return created, nil
}
