package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// LinkEvents adds a relation edge between two events. Repeating a link is
// harmless, and linking to an unknown tag does nothing.
func (s *Service) LinkEvents(ctx context.Context, input LinkInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	tag := strings.TrimSpace(input.Tag)
	related := strings.TrimSpace(input.RelatedTag)
	dir := domain.Direction(strings.TrimSpace(input.Direction))

	if err := s.events.AddRelationTag(ctx, tag, dir, related); err != nil {
		return fmt.Errorf("add relation: %w", err)
	}

	s.log.InfoContext(ctx, "events linked",
		slog.String("tag", tag),
		slog.String("direction", string(dir)),
		slog.String("related_tag", related),
	)
	return nil
}
