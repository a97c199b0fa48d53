package timeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

type eventReaderMock struct {
	events []domain.Event
	facets domain.Facets
	err    error
}

func (m *eventReaderMock) GetAll(context.Context) ([]domain.Event, error) { return m.events, m.err }

func (m *eventReaderMock) Facets(context.Context) (domain.Facets, error) { return m.facets, m.err }

func sampleEvents() []domain.Event {
	wwiEnd := domain.MustParseDate("1918-11-11")
	wwiiEnd := domain.MustParseDate("1945-09-02")
	return []domain.Event{
		{
			ID: 1, Tag: "War_World_War_WWI_1914", Category: "War", Country: "Global", Name: "WWI",
			DateStart: domain.MustParseDate("1914-07-28"), DateEnd: &wwiEnd,
			Affects: []string{"War_World_War_WWII_1939"},
		},
		{
			ID: 2, Tag: "War_World_War_WWII_1939", Category: "War", Country: "Global", Name: "WWII",
			DateStart: domain.MustParseDate("1939-09-01"), DateEnd: &wwiiEnd,
			AffectedBy: []string{"War_World_War_WWI_1914"},
		},
		{
			ID: 3, Tag: "Science_Space_Moon_Landing_1969", Category: "Science", Country: "USA", Name: "Moon Landing",
			DateStart: domain.MustParseDate("1969-07-20"),
		},
	}
}

func TestChart_AllEvents(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &eventReaderMock{events: sampleEvents()})

	chart, err := svc.Chart(context.Background(), ChartInput{ShowArrows: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chart.Bars) != 3 {
		t.Errorf("bars: got %d, want 3", len(chart.Bars))
	}
	if len(chart.Markers) != 1 {
		t.Errorf("markers: got %d, want 1", len(chart.Markers))
	}
	if len(chart.Arrows) != 1 {
		t.Errorf("arrows: got %d, want 1", len(chart.Arrows))
	}
}

func TestChart_Filtered(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &eventReaderMock{events: sampleEvents()})

	chart, err := svc.Chart(context.Background(), ChartInput{Categories: []string{"Science"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Bars) != 1 || chart.Bars[0].Name != "Moon Landing" {
		t.Errorf("bars: got %+v, want only Moon Landing", chart.Bars)
	}
	if len(chart.Arrows) != 0 {
		t.Errorf("arrows: got %d, want 0 without ShowArrows", len(chart.Arrows))
	}

	empty, err := svc.Chart(context.Background(), ChartInput{Countries: []string{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !empty.IsEmpty() || empty.Message == "" {
		t.Errorf("explicit empty country set: got %d bars, message %q", len(empty.Bars), empty.Message)
	}
}

func TestChart_MalformedBound(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &eventReaderMock{events: sampleEvents()})

	_, err := svc.Chart(context.Background(), ChartInput{Start: "1914-13-01"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestChart_StoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")
	svc := NewService(slog.Default(), &eventReaderMock{err: boom})

	if _, err := svc.Chart(context.Background(), ChartInput{}); !errors.Is(err, boom) {
		t.Fatalf("Chart: got %v, want %v", err, boom)
	}
	if _, err := svc.Facets(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Facets: got %v, want %v", err, boom)
	}
}
