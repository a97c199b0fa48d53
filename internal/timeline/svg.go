package timeline

import (
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// SVGOptions controls the geometry of RenderSVG output. Zero fields take defaults.
type SVGOptions struct {
	Width      int
	RowHeight  int
	LabelWidth int
	Padding    int
	FontFamily string
	Background string
}

func (o SVGOptions) withDefaults() SVGOptions {
	if o.Width <= 0 {
		o.Width = 1200
	}
	if o.RowHeight <= 0 {
		o.RowHeight = 36
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = 160
	}
	if o.Padding <= 0 {
		o.Padding = 20
	}
	if o.FontFamily == "" {
		o.FontFamily = "Arial, sans-serif"
	}
	if o.Background == "" {
		o.Background = "#ffffff"
	}
	return o
}

const axisHeight = 30

// svgScale maps dates and rows onto pixel coordinates.
type svgScale struct {
	x0, x1 float64
	t0, t1 time.Time
	top    int
	rowH   int
	rows   map[string]int
}

func newSVGScale(c Chart, o SVGOptions) svgScale {
	lo, hi := c.Span()
	t0, t1 := lo.Time(), hi.Time()
	if !t1.After(t0) {
		t0 = t0.AddDate(0, 0, -1)
		t1 = t1.AddDate(0, 0, 1)
	}
	pad := t1.Sub(t0) / 50
	t0, t1 = t0.Add(-pad), t1.Add(pad)

	rows := make(map[string]int, len(c.Rows))
	for i, r := range c.Rows {
		idx := i
		if !c.Reversed {
			idx = len(c.Rows) - 1 - i
		}
		rows[r.ID] = idx
	}

	return svgScale{
		x0:   float64(o.Padding + o.LabelWidth),
		x1:   float64(o.Width - o.Padding),
		t0:   t0,
		t1:   t1,
		top:  o.Padding,
		rowH: o.RowHeight,
		rows: rows,
	}
}

func (s svgScale) x(t time.Time) float64 {
	span := s.t1.Sub(s.t0).Seconds()
	return s.x0 + (s.x1-s.x0)*t.Sub(s.t0).Seconds()/span
}

func (s svgScale) xd(d domain.Date) float64 { return s.x(d.Time()) }

// yMid returns the vertical center of a row.
func (s svgScale) yMid(row string) float64 {
	return float64(s.top) + float64(s.rows[row])*float64(s.rowH) + float64(s.rowH)/2
}

// RenderSVG writes the chart as a standalone SVG document.
func RenderSVG(w io.Writer, c Chart, opts SVGOptions) error {
	o := opts.withDefaults()
	var b strings.Builder

	height := o.Padding*2 + len(c.Rows)*o.RowHeight + axisHeight
	if c.IsEmpty() {
		height = o.Padding*2 + 3*o.RowHeight
	}

	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" font-family="%s">`+"\n",
		o.Width, height, html.EscapeString(o.FontFamily))
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", o.Background)

	if c.IsEmpty() {
		msg := c.Message
		if msg == "" {
			msg = EmptyMessage
		}
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="16" fill="#666">%s</text>`+"\n",
			o.Width/2, height/2, html.EscapeString(msg))
		b.WriteString("</svg>\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	s := newSVGScale(c, o)
	writeDefs(&b, c)
	writeLanes(&b, c, s, o)
	writeAxis(&b, s, o, len(c.Rows))

	for _, bar := range c.Bars {
		writeBar(&b, bar, s, o)
	}
	for _, m := range c.Markers {
		writeDiamond(&b, s.xd(m.At), s.yMid(m.Row), float64(o.RowHeight)/4, m.Color)
	}
	for _, a := range c.Annotations {
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="14">%s</text>`+"\n",
			s.x(a.At), s.yMid(a.Row)-float64(o.RowHeight)/3, html.EscapeString(a.Text))
	}
	for _, a := range c.Arrows {
		for _, seg := range a.Segments {
			marker := ""
			if seg.Head {
				marker = ` marker-end="url(#arrowhead)"`
			}
			fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444" stroke-width="1.5"%s/>`+"\n",
				s.xd(seg.From.At), s.yMid(seg.From.Row), s.xd(seg.To.At), s.yMid(seg.To.Row), marker)
		}
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDefs(b *strings.Builder, c Chart) {
	b.WriteString("<defs>\n")
	b.WriteString(`<marker id="arrowhead" markerWidth="8" markerHeight="8" refX="7" refY="4" orient="auto">` +
		`<path d="M0,0 L8,4 L0,8 z" fill="#444"/></marker>` + "\n")
	for _, l := range c.Legend {
		if l.Pattern == "" {
			continue
		}
		fmt.Fprintf(b, `<pattern id="%s" width="8" height="8" patternUnits="userSpaceOnUse">`, patternID(l.Category))
		for _, d := range patternPaths(l.Pattern) {
			fmt.Fprintf(b, `<path d="%s" stroke="#000" stroke-opacity="0.45" stroke-width="1"/>`, d)
		}
		b.WriteString("</pattern>\n")
	}
	b.WriteString("</defs>\n")
}

func patternID(category string) string {
	var id strings.Builder
	id.WriteString("pat-")
	for _, r := range category {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			id.WriteRune(r)
		} else {
			id.WriteByte('_')
		}
	}
	return id.String()
}

func patternPaths(shape string) []string {
	switch shape {
	case "-":
		return []string{"M0,4 L8,4"}
	case "+":
		return []string{"M0,4 L8,4", "M4,0 L4,8"}
	case "x":
		return []string{"M0,0 L8,8", "M8,0 L0,8"}
	case `\`:
		return []string{"M0,0 L8,8"}
	case "/":
		return []string{"M8,0 L0,8"}
	}
	return nil
}

func writeLanes(b *strings.Builder, c Chart, s svgScale, o SVGOptions) {
	for _, r := range c.Rows {
		y := s.yMid(r.ID)
		top := y - float64(o.RowHeight)/2
		if s.rows[r.ID]%2 == 1 {
			fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%d" fill="#f5f5f5"/>`+"\n",
				s.x0, top, s.x1-s.x0, o.RowHeight)
		}
		lines := strings.Split(r.Label, "\n")
		for i, line := range lines {
			dy := (float64(i) - float64(len(lines)-1)/2) * 13
			fmt.Fprintf(b, `<text x="%d" y="%.1f" font-size="11" fill="#333" dominant-baseline="middle">%s</text>`+"\n",
				o.Padding, y+dy, html.EscapeString(line))
		}
	}
}

func writeAxis(b *strings.Builder, s svgScale, o SVGOptions, rows int) {
	y := float64(s.top + rows*s.rowH)
	fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1"/>`+"\n",
		s.x0, y, s.x1, y)

	first, last := s.t0.Year(), s.t1.Year()
	step := yearStep(last - first)
	for year := (first/step + 1) * step; year <= last; year += step {
		x := s.x(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		if x < s.x0 || x > s.x1 {
			continue
		}
		fmt.Fprintf(b, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%.1f" stroke="#ddd" stroke-width="1"/>`+"\n",
			x, s.top, x, y)
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="11" fill="#333">%d</text>`+"\n",
			x, y+16, year)
	}
}

// yearStep picks a tick interval yielding at most about ten ticks.
func yearStep(span int) int {
	for _, step := range []int{1, 2, 5, 10, 20, 25, 50, 100, 200, 500, 1000} {
		if span/step <= 10 {
			return step
		}
	}
	return 1000
}

func writeBar(b *strings.Builder, bar Bar, s svgScale, o SVGOptions) {
	x := s.xd(bar.Start)
	width := s.xd(bar.End) - x
	if width < 2 {
		width = 2
	}
	h := float64(o.RowHeight) * 0.6
	y := s.yMid(bar.Row) - h/2

	fmt.Fprintf(b, `<a href="%s">`, html.EscapeString(bar.Link))
	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill="%s">`, x, y, width, h, bar.Color)
	fmt.Fprintf(b, `<title>%s (%s to %s)</title></rect>`, html.EscapeString(bar.Name), bar.Start, bar.End)
	if bar.Pattern != "" {
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill="url(#%s)" pointer-events="none"/>`,
			x, y, width, h, patternID(bar.Category))
	}
	b.WriteString("</a>\n")
}

func writeDiamond(b *strings.Builder, x, y, size float64, color string) {
	fmt.Fprintf(b, `<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="#222" stroke-width="1"/>`+"\n",
		x, y-size, x+size, y, x, y+size, x-size, y, color)
}
