package timeline

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// Placement is an event together with the row it was assigned to.
type Placement struct {
	Event domain.Event
	Row   string
}

// Assignment is the output of AssignRows.
type Assignment struct {
	// Order lists row ids top to bottom: groups lexicographically, then slots.
	Order []string
	// Labels is parallel to Order.
	Labels []string
	// Placements are in group order, then by start date within a group.
	Placements []Placement

	byTag map[string]string
}

// RowOf returns the row assigned to the event with the given tag.
func (a Assignment) RowOf(tag string) (string, bool) {
	row, ok := a.byTag[tag]
	return row, ok
}

// Len returns the number of placed events.
func (a Assignment) Len() int { return len(a.Placements) }

type groupKey struct {
	category string
	country  string
}

func (k groupKey) label() string {
	return k.category + "\n" + k.country
}

func (k groupKey) rowID(slot int) string {
	return fmt.Sprintf("%s|%s_%d", k.category, k.country, slot)
}

// AssignRows packs events into non-overlapping rows per (category, country)
// group. Within a group an event takes the first slot whose last event ended
// on or before its start; instantaneous events occupy only their start day.
func AssignRows(events []domain.Event) Assignment {
	groups := make(map[groupKey][]domain.Event)
	var keys []groupKey
	for _, e := range events {
		k := groupKey{category: e.Category, country: e.Country}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], e)
	}

	slices.SortFunc(keys, func(a, b groupKey) int {
		if c := cmp.Compare(a.category, b.category); c != 0 {
			return c
		}
		return cmp.Compare(a.country, b.country)
	})

	a := Assignment{
		Order:      []string{},
		Labels:     []string{},
		Placements: make([]Placement, 0, len(events)),
		byTag:      make(map[string]string, len(events)),
	}

	for _, k := range keys {
		members := groups[k]
		slices.SortStableFunc(members, func(x, y domain.Event) int {
			return x.DateStart.Compare(y.DateStart)
		})

		var slotEnds []domain.Date
		for _, e := range members {
			slot := -1
			for i, end := range slotEnds {
				if !end.After(e.DateStart) {
					slot = i
					break
				}
			}
			if slot < 0 {
				slot = len(slotEnds)
				slotEnds = append(slotEnds, e.EffectiveEnd())
				a.Order = append(a.Order, k.rowID(slot))
				a.Labels = append(a.Labels, k.label())
			} else {
				slotEnds[slot] = e.EffectiveEnd()
			}

			row := k.rowID(slot)
			a.Placements = append(a.Placements, Placement{Event: e, Row: row})
			a.byTag[e.Tag] = row
		}
	}

	return a
}
