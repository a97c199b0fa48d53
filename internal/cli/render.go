package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	tlsvc "github.com/heartmarshall/timeline-backend/internal/service/timeline"
	"github.com/heartmarshall/timeline-backend/internal/timeline"
)

// Render output formats.
const (
	formatSVG  = "svg"
	formatText = "text"
	formatJSON = "json"
)

func newRenderCmd(c *CLI) *cobra.Command {
	var (
		in      tlsvc.ChartInput
		format  string
		out     string
		width   int
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the timeline chart as SVG, terminal text or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			switch format {
			case formatSVG, formatText, formatJSON:
			default:
				return writeErr(cmd, fmt.Errorf("unknown format %q: want svg, text or json", format))
			}

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			chart, err := a.Timeline.Chart(ctx, in)
			if err != nil {
				return writeErr(cmd, err)
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				w = f
			}

			if err := renderChart(w, c, chart, format, width, noColor || out != ""); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format: svg, text or json")
	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&in.ShowArrows, "arrows", false, "Draw relation arrows")
	cmd.Flags().StringSliceVar(&in.Categories, "category", nil, "Only these categories (repeatable)")
	cmd.Flags().StringSliceVar(&in.Countries, "country", nil, "Only these countries (repeatable)")
	cmd.Flags().StringVar(&in.Start, "start", "", "Lower date bound YYYY-MM-DD")
	cmd.Flags().StringVar(&in.End, "end", "", "Upper date bound YYYY-MM-DD")
	cmd.Flags().IntVar(&width, "width", 0, "Chart width: pixels for svg, columns for text")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable terminal colours in text output")
	return cmd
}

func renderChart(w io.Writer, c *CLI, chart timeline.Chart, format string, width int, noColor bool) error {
	switch format {
	case formatSVG:
		return timeline.RenderSVG(w, chart, timeline.SVGOptions{Width: width})
	case formatText:
		return timeline.RenderText(w, chart, timeline.TextOptions{Width: width, NoColor: noColor})
	default:
		enc := newEncoder(w, c.Pretty)
		return enc.Encode(chart)
	}
}
