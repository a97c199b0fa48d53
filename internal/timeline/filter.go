// Package timeline holds the pure layout core: filtering, row assignment and
// chart construction, plus SVG and terminal renderers for the resulting chart.
package timeline

import (
	"slices"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// Criteria selects events for display.
//
// Categories and Countries distinguish "omitted" (nil) from an explicit empty
// selection (non-nil, zero length), which matches nothing.
type Criteria struct {
	Categories []string
	Countries  []string
	Start      *domain.Date
	End        *domain.Date
}

// Only returns a non-nil selection, so that Only() is the explicit empty set.
func Only(values ...string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// FilterEvents returns the events matching c, preserving input order.
func FilterEvents(events []domain.Event, c Criteria) []domain.Event {
	if c.Categories != nil && len(c.Categories) == 0 {
		return []domain.Event{}
	}
	if c.Countries != nil && len(c.Countries) == 0 {
		return []domain.Event{}
	}

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if c.Categories != nil && !slices.Contains(c.Categories, e.Category) {
			continue
		}
		if c.Countries != nil && !slices.Contains(c.Countries, e.Country) {
			continue
		}
		if !e.Overlaps(c.Start, c.End) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ParseBound parses an optional ISO date bound. An empty string means unbounded.
func ParseBound(s string) (*domain.Date, error) {
	return domain.ParseOptionalDate(s)
}
