package timeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TextOptions controls RenderText. Width is the number of columns used by the
// time axis, excluding the label column.
type TextOptions struct {
	Width   int
	NoColor bool
}

const (
	barGlyph     = '█'
	instantGlyph = '◆'
)

type textCell struct {
	r     rune
	color string
}

// RenderText draws the chart as terminal lanes, one line per row.
func RenderText(w io.Writer, c Chart, opts TextOptions) error {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if c.IsEmpty() {
		msg := c.Message
		if msg == "" {
			msg = EmptyMessage
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	lo, hi := c.Span()
	t0, t1 := lo.Time(), hi.Time()
	span := t1.Sub(t0).Seconds()
	col := func(s float64) int {
		if span <= 0 {
			return 0
		}
		i := int(s / span * float64(opts.Width-1))
		return min(max(i, 0), opts.Width-1)
	}

	labels := make([]string, len(c.Rows))
	labelW := 0
	for i, r := range c.Rows {
		labels[i] = strings.ReplaceAll(r.Label, "\n", " / ")
		labelW = max(labelW, lipgloss.Width(labels[i]))
	}

	lanes := make(map[string][]textCell, len(c.Rows))
	for _, r := range c.Rows {
		cells := make([]textCell, opts.Width)
		for i := range cells {
			cells[i] = textCell{r: ' '}
		}
		lanes[r.ID] = cells
	}
	for _, bar := range c.Bars {
		cells := lanes[bar.Row]
		from := col(bar.Start.Time().Sub(t0).Seconds())
		to := col(bar.End.Time().Sub(t0).Seconds())
		for i := from; i <= to; i++ {
			cells[i] = textCell{r: barGlyph, color: bar.Color}
		}
	}
	for _, m := range c.Markers {
		i := col(m.At.Time().Sub(t0).Seconds())
		lanes[m.Row][i] = textCell{r: instantGlyph, color: m.Color}
	}

	label := lipgloss.NewStyle().Width(labelW).Bold(!opts.NoColor)
	var b strings.Builder
	for i, r := range c.Rows {
		b.WriteString(label.Render(labels[i]))
		b.WriteString(" │")
		b.WriteString(renderCells(lanes[r.ID], opts.NoColor))
		b.WriteByte('\n')
	}

	axis := fmt.Sprintf("%s%s", lo, strings.Repeat(" ", max(opts.Width-2*len(lo.String()), 1)))
	fmt.Fprintf(&b, "%s └%s\n", strings.Repeat(" ", labelW), strings.Repeat("─", opts.Width))
	fmt.Fprintf(&b, "%s  %s%s\n", strings.Repeat(" ", labelW), axis, hi)

	if len(c.Legend) > 0 {
		parts := make([]string, 0, len(c.Legend))
		for _, l := range c.Legend {
			parts = append(parts, colorize(string(barGlyph), l.Color, opts.NoColor)+" "+l.Category)
		}
		fmt.Fprintf(&b, "\n%s\n", strings.Join(parts, "  "))
	}
	for _, a := range c.Arrows {
		fmt.Fprintf(&b, "%s → %s\n", a.From, a.To)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// renderCells styles runs of cells that share a color.
func renderCells(cells []textCell, noColor bool) string {
	var out strings.Builder
	var run strings.Builder
	cur := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(colorize(run.String(), cur, noColor))
		run.Reset()
	}
	for _, c := range cells {
		if c.color != cur {
			flush()
			cur = c.color
		}
		run.WriteRune(c.r)
	}
	flush()
	return out.String()
}

func colorize(s, color string, noColor bool) string {
	if noColor || color == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}
