package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// DeleteEvent removes the event and all relations touching it.
// Deleting an unknown id succeeds without doing anything.
func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("id", "required")
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.InfoContext(ctx, "event deleted", slog.Int64("event_id", id))
	return nil
}
