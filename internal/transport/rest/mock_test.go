package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/timeline-backend/internal/domain"
	"github.com/heartmarshall/timeline-backend/internal/service/event"
	tlsvc "github.com/heartmarshall/timeline-backend/internal/service/timeline"
	"github.com/heartmarshall/timeline-backend/internal/timeline"
)

// eventServiceMock is a mock implementation of eventService.
type eventServiceMock struct {
	ListEventsFunc     func(ctx context.Context, input event.ListEventsInput) ([]domain.Event, error)
	GetEventDetailFunc func(ctx context.Context, tag string) (*event.EventDetail, error)
	CreateEventFunc    func(ctx context.Context, input event.CreateEventInput) (*domain.Event, error)
	UpdateEventFunc    func(ctx context.Context, input event.UpdateEventInput) (*domain.Event, error)
	DeleteEventFunc    func(ctx context.Context, id int64) error
	LinkEventsFunc     func(ctx context.Context, input event.LinkInput) error

	calls struct {
		ListEvents  []event.ListEventsInput
		CreateEvent []event.CreateEventInput
		UpdateEvent []event.UpdateEventInput
		DeleteEvent []int64
		LinkEvents  []event.LinkInput
	}
	mu sync.Mutex
}

func (m *eventServiceMock) ListEvents(ctx context.Context, input event.ListEventsInput) ([]domain.Event, error) {
	if m.ListEventsFunc == nil {
		panic("eventServiceMock.ListEventsFunc: method is nil but eventService.ListEvents was just called")
	}
	m.mu.Lock()
	m.calls.ListEvents = append(m.calls.ListEvents, input)
	m.mu.Unlock()
	return m.ListEventsFunc(ctx, input)
}

func (m *eventServiceMock) ListEventsCalls() []event.ListEventsInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.ListEvents
}

func (m *eventServiceMock) GetEventDetail(ctx context.Context, tag string) (*event.EventDetail, error) {
	if m.GetEventDetailFunc == nil {
		panic("eventServiceMock.GetEventDetailFunc: method is nil but eventService.GetEventDetail was just called")
	}
	return m.GetEventDetailFunc(ctx, tag)
}

func (m *eventServiceMock) CreateEvent(ctx context.Context, input event.CreateEventInput) (*domain.Event, error) {
	if m.CreateEventFunc == nil {
		panic("eventServiceMock.CreateEventFunc: method is nil but eventService.CreateEvent was just called")
	}
	m.mu.Lock()
	m.calls.CreateEvent = append(m.calls.CreateEvent, input)
	m.mu.Unlock()
	return m.CreateEventFunc(ctx, input)
}

func (m *eventServiceMock) CreateEventCalls() []event.CreateEventInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.CreateEvent
}

func (m *eventServiceMock) UpdateEvent(ctx context.Context, input event.UpdateEventInput) (*domain.Event, error) {
	if m.UpdateEventFunc == nil {
		panic("eventServiceMock.UpdateEventFunc: method is nil but eventService.UpdateEvent was just called")
	}
	m.mu.Lock()
	m.calls.UpdateEvent = append(m.calls.UpdateEvent, input)
	m.mu.Unlock()
	return m.UpdateEventFunc(ctx, input)
}

func (m *eventServiceMock) UpdateEventCalls() []event.UpdateEventInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateEvent
}

func (m *eventServiceMock) DeleteEvent(ctx context.Context, id int64) error {
	if m.DeleteEventFunc == nil {
		panic("eventServiceMock.DeleteEventFunc: method is nil but eventService.DeleteEvent was just called")
	}
	m.mu.Lock()
	m.calls.DeleteEvent = append(m.calls.DeleteEvent, id)
	m.mu.Unlock()
	return m.DeleteEventFunc(ctx, id)
}

func (m *eventServiceMock) DeleteEventCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.DeleteEvent
}

func (m *eventServiceMock) LinkEvents(ctx context.Context, input event.LinkInput) error {
	if m.LinkEventsFunc == nil {
		panic("eventServiceMock.LinkEventsFunc: method is nil but eventService.LinkEvents was just called")
	}
	m.mu.Lock()
	m.calls.LinkEvents = append(m.calls.LinkEvents, input)
	m.mu.Unlock()
	return m.LinkEventsFunc(ctx, input)
}

func (m *eventServiceMock) LinkEventsCalls() []event.LinkInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.LinkEvents
}

// timelineServiceMock is a mock implementation of timelineService.
type timelineServiceMock struct {
	ChartFunc  func(ctx context.Context, input tlsvc.ChartInput) (timeline.Chart, error)
	FacetsFunc func(ctx context.Context) (domain.Facets, error)

	calls struct {
		Chart []tlsvc.ChartInput
	}
	mu sync.Mutex
}

func (m *timelineServiceMock) Chart(ctx context.Context, input tlsvc.ChartInput) (timeline.Chart, error) {
	if m.ChartFunc == nil {
		panic("timelineServiceMock.ChartFunc: method is nil but timelineService.Chart was just called")
	}
	m.mu.Lock()
	m.calls.Chart = append(m.calls.Chart, input)
	m.mu.Unlock()
	return m.ChartFunc(ctx, input)
}

func (m *timelineServiceMock) ChartCalls() []tlsvc.ChartInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Chart
}

func (m *timelineServiceMock) Facets(ctx context.Context) (domain.Facets, error) {
	if m.FacetsFunc == nil {
		panic("timelineServiceMock.FacetsFunc: method is nil but timelineService.Facets was just called")
	}
	return m.FacetsFunc(ctx)
}
