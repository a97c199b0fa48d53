package cli

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/timeline-backend/internal/app"
)

func newMigrateCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}

			store, err := app.OpenStore(ctx, cfg.Database, app.NewLogger(cfg))
			if err != nil {
				return writeErr(cmd, err)
			}
			defer store.Close()

			applied, err := store.Migrate(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, c, map[string]any{
				"driver":  store.Driver,
				"applied": applied,
			})
		},
	}
}
