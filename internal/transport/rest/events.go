package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/timeline-backend/internal/domain"
	"github.com/heartmarshall/timeline-backend/internal/service/event"
)

// eventService defines the minimal interface needed by EventHandler.
type eventService interface {
	ListEvents(ctx context.Context, input event.ListEventsInput) ([]domain.Event, error)
	GetEventDetail(ctx context.Context, tag string) (*event.EventDetail, error)
	CreateEvent(ctx context.Context, input event.CreateEventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, input event.UpdateEventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	LinkEvents(ctx context.Context, input event.LinkInput) error
}

// EventHandler serves the event CRUD endpoints.
type EventHandler struct {
	svc eventService
	log *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: logger.With("handler", "events")}
}

type createEventRequest struct {
	Category    string   `json:"category"`
	Topic       string   `json:"topic"`
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	DateStart   string   `json:"date_start"`
	DateEnd     string   `json:"date_end"`
	Description string   `json:"description"`
	AffectedBy  []string `json:"affected_by"`
	Affects     []string `json:"affects"`
}

type updateEventRequest struct {
	Category    *string   `json:"category"`
	Topic       *string   `json:"topic"`
	Name        *string   `json:"name"`
	Country     *string   `json:"country"`
	DateStart   *string   `json:"date_start"`
	DateEnd     *string   `json:"date_end"`
	Description *string   `json:"description"`
	AffectedBy  *[]string `json:"affected_by"`
	Affects     *[]string `json:"affects"`
}

type linkRequest struct {
	Direction string `json:"direction"`
	Tag       string `json:"tag"`
}

type eventListResponse struct {
	Events []domain.Event `json:"events"`
	Total  int            `json:"total"`
}

// List handles GET /api/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := h.svc.ListEvents(r.Context(), event.ListEventsInput{
		Text:       q.Get("q"),
		Categories: queryList(q, "category"),
		Countries:  queryList(q, "country"),
		Start:      q.Get("start"),
		End:        q.Get("end"),
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, eventListResponse{Events: events, Total: len(events)})
}

// Detail handles GET /api/events/{tag}.
func (h *EventHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetEventDetail(r.Context(), r.PathValue("tag"))
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// DetailByQuery handles GET /event_detail?tag=..., the link target of a chart bar.
func (h *EventHandler) DetailByQuery(w http.ResponseWriter, r *http.Request) {
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))
	if tag == "" {
		writeError(r.Context(), h.log, w, domain.NewValidationError("tag", "required"))
		return
	}
	detail, err := h.svc.GetEventDetail(r.Context(), tag)
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Create handles POST /api/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	created, err := h.svc.CreateEvent(r.Context(), event.CreateEventInput{
		Category:    req.Category,
		Topic:       req.Topic,
		Name:        req.Name,
		Country:     req.Country,
		DateStart:   req.DateStart,
		DateEnd:     req.DateEnd,
		Description: req.Description,
		AffectedBy:  req.AffectedBy,
		Affects:     req.Affects,
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PATCH /api/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateEvent(r.Context(), event.UpdateEventInput{
		ID:          id,
		Category:    req.Category,
		Topic:       req.Topic,
		Name:        req.Name,
		Country:     req.Country,
		DateStart:   req.DateStart,
		DateEnd:     req.DateEnd,
		Description: req.Description,
		AffectedBy:  req.AffectedBy,
		Affects:     req.Affects,
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/events/{id}. Deleting a missing id succeeds.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteEvent(r.Context(), id); err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Link handles POST /api/events/{tag}/relations.
func (h *EventHandler) Link(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.svc.LinkEvents(r.Context(), event.LinkInput{
		Tag:        r.PathValue("tag"),
		Direction:  req.Direction,
		RelatedTag: req.Tag,
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
