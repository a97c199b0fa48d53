package rest

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/heartmarshall/timeline-backend/internal/domain"
	tlsvc "github.com/heartmarshall/timeline-backend/internal/service/timeline"
	"github.com/heartmarshall/timeline-backend/internal/timeline"
)

// timelineService defines the minimal interface needed by TimelineHandler.
type timelineService interface {
	Chart(ctx context.Context, input tlsvc.ChartInput) (timeline.Chart, error)
	Facets(ctx context.Context) (domain.Facets, error)
}

// TimelineHandler serves the chart and facet endpoints.
type TimelineHandler struct {
	svc timelineService
	svg timeline.SVGOptions
	log *slog.Logger
}

// NewTimelineHandler creates a TimelineHandler.
func NewTimelineHandler(svc timelineService, svg timeline.SVGOptions, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{svc: svc, svg: svg, log: logger.With("handler", "timeline")}
}

// Chart handles GET /api/timeline.
func (h *TimelineHandler) Chart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.chart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// SVG handles GET /api/timeline.svg.
func (h *TimelineHandler) SVG(w http.ResponseWriter, r *http.Request) {
	c, ok := h.chart(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := timeline.RenderSVG(&buf, c, h.svg); err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// Facets handles GET /api/facets.
func (h *TimelineHandler) Facets(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Facets(r.Context())
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *TimelineHandler) chart(w http.ResponseWriter, r *http.Request) (timeline.Chart, bool) {
	q := r.URL.Query()

	arrows := false
	if v := strings.TrimSpace(q.Get("arrows")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(r.Context(), h.log, w, domain.NewValidationError("arrows", "must be a boolean"))
			return timeline.Chart{}, false
		}
		arrows = b
	}

	c, err := h.svc.Chart(r.Context(), tlsvc.ChartInput{
		Categories: queryList(q, "category"),
		Countries:  queryList(q, "country"),
		Start:      q.Get("start"),
		End:        q.Get("end"),
		ShowArrows: arrows,
	})
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return timeline.Chart{}, false
	}
	return c, true
}

// queryList returns the non-empty values of a repeated parameter.
// An absent parameter yields nil (no filter); a parameter present with
// only empty values yields an empty, non-nil slice (match nothing).
func queryList(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
