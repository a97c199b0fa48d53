package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// UpdateEvent applies a partial update and returns the stored result.
// Returns domain.ErrNotFound if the event does not exist. The tag never
// changes, even when the fields it was derived from do.
func (s *Service) UpdateEvent(ctx context.Context, input UpdateEventInput) (*domain.Event, error) {
	u, err := input.toUpdate()
	if err != nil {
		return nil, err
	}

	var updated *domain.Event
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, getErr := s.events.GetByID(txCtx, input.ID)
		if getErr != nil {
			return fmt.Errorf("get event: %w", getErr)
		}

		if u.IsEmpty() {
			updated = current
			return nil
		}

		next := u.Apply(*current)
		var errs []domain.FieldError
		if next.DateEnd != nil && next.DateEnd.Before(next.DateStart) {
			errs = append(errs, domain.FieldError{Field: "date_end", Message: "must not precede date_start"})
		}
		errs = append(errs, selfLoopErrors(current.Tag, next.AffectedBy, next.Affects)...)
		if len(errs) == 0 {
			unknown, lookupErr := s.unknownTagErrors(txCtx, tagsOrNil(u.AffectedBy), tagsOrNil(u.Affects))
			if lookupErr != nil {
				return lookupErr
			}
			errs = unknown
		}
		if len(errs) > 0 {
			return domain.NewValidationErrors(errs)
		}

		if updateErr := s.events.Update(txCtx, input.ID, u); updateErr != nil {
			return fmt.Errorf("update event: %w", updateErr)
		}

		var reloadErr error
		updated, reloadErr = s.events.GetByID(txCtx, input.ID)
		if reloadErr != nil {
			return fmt.Errorf("reload event: %w", reloadErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "event updated",
		slog.Int64("event_id", updated.ID),
		slog.String("tag", updated.Tag),
	)

	return updated, nil
}
