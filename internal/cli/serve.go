package cli

import (
	"github.com/spf13/cobra"
)

func newServeCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			if err := a.SeedOnStart(ctx); err != nil {
				return writeErr(cmd, err)
			}
			if err := a.Serve(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}
