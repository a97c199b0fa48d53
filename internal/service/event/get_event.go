package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// RelatedEvent is the summary of a linked event shown on the detail view.
type RelatedEvent struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

// EventDetail is an event together with its resolved relations.
// Tags that no longer resolve to an event are omitted.
type EventDetail struct {
	Event      domain.Event   `json:"event"`
	AffectedBy []RelatedEvent `json:"affected_by"`
	Affects    []RelatedEvent `json:"affects"`
}

// GetEvent returns the event with the given tag.
func (s *Service) GetEvent(ctx context.Context, tag string) (*domain.Event, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, domain.NewValidationError("tag", "required")
	}

	e, err := s.events.GetByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// GetEventByID returns the event with the given id.
func (s *Service) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "required")
	}

	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// GetEventDetail returns the event and the names of the events it relates to.
func (s *Service) GetEventDetail(ctx context.Context, tag string) (*EventDetail, error) {
	e, err := s.GetEvent(ctx, tag)
	if err != nil {
		return nil, err
	}

	related, err := s.events.GetByTags(ctx, append(append([]string{}, e.AffectedBy...), e.Affects...))
	if err != nil {
		return nil, fmt.Errorf("resolve relations: %w", err)
	}

	names := make(map[string]string, len(related))
	for _, r := range related {
		names[r.Tag] = r.Name
	}

	return &EventDetail{
		Event:      *e,
		AffectedBy: summarize(e.AffectedBy, names),
		Affects:    summarize(e.Affects, names),
	}, nil
}

func summarize(tags []string, names map[string]string) []RelatedEvent {
	out := make([]RelatedEvent, 0, len(tags))
	for _, tag := range tags {
		if name, ok := names[tag]; ok {
			out = append(out, RelatedEvent{Tag: tag, Name: name})
		}
	}
	return out
}

// ListEvents returns the events matching the input, in insertion order.
func (s *Service) ListEvents(ctx context.Context, input ListEventsInput) ([]domain.Event, error) {
	q, err := input.toQuery()
	if err != nil {
		return nil, err
	}

	events, err := s.events.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
