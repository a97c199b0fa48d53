package timeline

import (
	"net/url"
	"time"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// EmptyMessage is shown in place of a chart with no bars.
const EmptyMessage = "No events to display"

// DetailPath is the navigation target prefix for a clicked bar.
const DetailPath = "/event_detail"

// ChartOptions toggles optional chart layers.
type ChartOptions struct {
	ShowArrows bool
}

// Chart is a renderer-independent description of the timeline.
type Chart struct {
	Rows        []AxisRow     `json:"rows"`
	Reversed    bool          `json:"reversed"`
	Bars        []Bar         `json:"bars"`
	Markers     []Marker      `json:"markers"`
	Annotations []Annotation  `json:"annotations"`
	Arrows      []Arrow       `json:"arrows"`
	Legend      []LegendEntry `json:"legend"`
	Message     string        `json:"message,omitempty"`
}

// IsEmpty reports whether there is nothing to draw.
func (c Chart) IsEmpty() bool { return len(c.Bars) == 0 }

// Span returns the earliest start and latest end over all bars.
func (c Chart) Span() (domain.Date, domain.Date) {
	if len(c.Bars) == 0 {
		return domain.Date{}, domain.Date{}
	}
	lo, hi := c.Bars[0].Start, c.Bars[0].End
	for _, b := range c.Bars[1:] {
		if b.Start.Before(lo) {
			lo = b.Start
		}
		if b.End.After(hi) {
			hi = b.End
		}
	}
	return lo, hi
}

// RowIndex returns the position of a row id in Rows, or -1.
func (c Chart) RowIndex(id string) int {
	for i, r := range c.Rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// AxisRow is one categorical axis entry.
type AxisRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Bar spans an event's effective interval on its row.
type Bar struct {
	Tag      string      `json:"tag"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Country  string      `json:"country"`
	Row      string      `json:"row"`
	Start    domain.Date `json:"start"`
	End      domain.Date `json:"end"`
	Color    string      `json:"color"`
	Pattern  string      `json:"pattern"`
	Link     string      `json:"link"`
}

// Marker is a point symbol for an instantaneous event.
type Marker struct {
	Tag    string      `json:"tag"`
	Row    string      `json:"row"`
	At     domain.Date `json:"at"`
	Symbol string      `json:"symbol"`
	Color  string      `json:"color"`
	Group  string      `json:"group"`
}

// Annotation is a small text label, a country flag, at a bar's midpoint.
type Annotation struct {
	Tag  string    `json:"tag"`
	Row  string    `json:"row"`
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Point is a position in chart space: a date on the x axis and a row on the y axis.
type Point struct {
	At  domain.Date `json:"at"`
	Row string      `json:"row"`
}

// Segment is one straight piece of an arrow. Head marks the arrowhead end at To.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
	Head bool  `json:"head"`
}

// Arrow connects a source event to an event it affects.
type Arrow struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	Segments []Segment `json:"segments"`
}

// LegendEntry describes the styling of one category.
type LegendEntry struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Pattern  string `json:"pattern"`
}

// DetailLink returns the navigation target for an event tag.
func DetailLink(tag string) string {
	return DetailPath + "?tag=" + url.QueryEscape(tag)
}

// BuildChart composes an assignment into a chart description.
func BuildChart(a Assignment, opts ChartOptions) Chart {
	c := Chart{
		Rows:        make([]AxisRow, len(a.Order)),
		Reversed:    true,
		Bars:        make([]Bar, 0, a.Len()),
		Markers:     []Marker{},
		Annotations: []Annotation{},
		Arrows:      []Arrow{},
		Legend:      []LegendEntry{},
	}
	for i, id := range a.Order {
		c.Rows[i] = AxisRow{ID: id, Label: a.Labels[i]}
	}

	if a.Len() == 0 {
		c.Message = EmptyMessage
		return c
	}

	colors := make(map[string]string)
	colorOf := func(category string) string {
		if col, ok := colors[category]; ok {
			return col
		}
		col := palette[len(colors)%len(palette)]
		colors[category] = col
		c.Legend = append(c.Legend, LegendEntry{Category: category, Color: col, Pattern: Pattern(category)})
		return col
	}

	for _, p := range a.Placements {
		e := p.Event
		col := colorOf(e.Category)
		end := e.EffectiveEnd()

		c.Bars = append(c.Bars, Bar{
			Tag:      e.Tag,
			Name:     e.Name,
			Category: e.Category,
			Country:  e.Country,
			Row:      p.Row,
			Start:    e.DateStart,
			End:      end,
			Color:    col,
			Pattern:  Pattern(e.Category),
			Link:     DetailLink(e.Tag),
		})

		if e.IsInstant() {
			c.Markers = append(c.Markers, Marker{
				Tag:    e.Tag,
				Row:    p.Row,
				At:     e.DateStart,
				Symbol: "diamond",
				Color:  col,
				Group:  e.Category,
			})
		}

		if flag := Flag(e.Country); flag != "" {
			c.Annotations = append(c.Annotations, Annotation{
				Tag:  e.Tag,
				Row:  p.Row,
				At:   e.DateStart.Midpoint(end),
				Text: flag,
			})
		}
	}

	if opts.ShowArrows {
		c.Arrows = buildArrows(a)
	}

	return c
}

// buildArrows emits one arrow per affects edge whose both ends are placed.
// Edges to events outside the assignment are skipped.
func buildArrows(a Assignment) []Arrow {
	starts := make(map[string]domain.Date, a.Len())
	for _, p := range a.Placements {
		starts[p.Event.Tag] = p.Event.DateStart
	}

	arrows := []Arrow{}
	for _, p := range a.Placements {
		src := p.Event
		for _, target := range src.Affects {
			targetRow, ok := a.RowOf(target)
			if !ok {
				continue
			}
			targetStart := starts[target]

			tail := src.EffectiveEnd()
			if tail.After(targetStart) {
				tail = targetStart
			}

			var segs []Segment
			if tail.Before(targetStart) {
				segs = append(segs, Segment{
					From: Point{At: tail, Row: p.Row},
					To:   Point{At: targetStart, Row: p.Row},
				})
			}
			segs = append(segs, Segment{
				From: Point{At: targetStart, Row: p.Row},
				To:   Point{At: targetStart, Row: targetRow},
				Head: true,
			})

			arrows = append(arrows, Arrow{From: src.Tag, To: target, Segments: segs})
		}
	}
	return arrows
}

// Build runs the full pipeline: filter, assign rows, build the chart.
func Build(events []domain.Event, c Criteria, opts ChartOptions) Chart {
	return BuildChart(AssignRows(FilterEvents(events, c)), opts)
}
