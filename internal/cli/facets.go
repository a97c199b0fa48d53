package cli

import (
	"github.com/spf13/cobra"
)

func newFacetsCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Show the distinct categories, topics, countries and date bounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			f, err := a.Timeline.Facets(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, c, f)
		},
	}
}
