// Package timeline runs the read → filter → assign → build pipeline that turns
// the stored events into a chart, and exposes the filter facets.
package timeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/timeline-backend/internal/domain"
	"github.com/heartmarshall/timeline-backend/internal/timeline"
)

type eventReader interface {
	GetAll(ctx context.Context) ([]domain.Event, error)
	Facets(ctx context.Context) (domain.Facets, error)
}

// Service builds timeline charts from the event store.
type Service struct {
	events eventReader
	log    *slog.Logger
}

// NewService creates a new Timeline service.
func NewService(log *slog.Logger, events eventReader) *Service {
	return &Service{
		events: events,
		log:    log.With("service", "timeline"),
	}
}

// ChartInput selects the events to chart.
// Nil Categories or Countries mean no filter; a non-nil empty slice shows nothing.
type ChartInput struct {
	Categories []string
	Countries  []string
	Start      string
	End        string
	ShowArrows bool
}

// Validate checks all fields and collects all errors.
func (i ChartInput) Validate() error {
	_, err := i.criteria()
	return err
}

func (i ChartInput) criteria() (timeline.Criteria, error) {
	var errs []domain.FieldError

	start, err := timeline.ParseBound(i.Start)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "start", Message: err.Error()})
	}
	end, err := timeline.ParseBound(i.End)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "end", Message: err.Error()})
	}

	if len(errs) > 0 {
		return timeline.Criteria{}, &domain.ValidationError{Errors: errs}
	}

	return timeline.Criteria{
		Categories: i.Categories,
		Countries:  i.Countries,
		Start:      start,
		End:        end,
	}, nil
}

// Chart reads every event and builds the chart for the input selection.
func (s *Service) Chart(ctx context.Context, input ChartInput) (timeline.Chart, error) {
	c, err := input.criteria()
	if err != nil {
		return timeline.Chart{}, err
	}

	events, err := s.events.GetAll(ctx)
	if err != nil {
		return timeline.Chart{}, fmt.Errorf("load events: %w", err)
	}

	chart := timeline.Build(events, c, timeline.ChartOptions{ShowArrows: input.ShowArrows})

	s.log.DebugContext(ctx, "chart built",
		slog.Int("events", len(events)),
		slog.Int("bars", len(chart.Bars)),
		slog.Int("rows", len(chart.Rows)),
	)

	return chart, nil
}

// Facets returns the distinct categories, topics and countries with the
// overall date bounds.
func (s *Service) Facets(ctx context.Context) (domain.Facets, error) {
	f, err := s.events.Facets(ctx)
	if err != nil {
		return domain.Facets{}, fmt.Errorf("facets: %w", err)
	}
	return f, nil
}
