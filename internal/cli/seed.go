package cli

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/timeline-backend/internal/seed"
)

func newSeedCmd(c *CLI) *cobra.Command {
	var (
		file  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load seed events (built-in set unless --file is given)",
		Long: "Load seed events into the store. Without --force nothing happens when the store\n" +
			"already holds events; with --force events whose tag exists are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := c.open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			events, err := a.SeedEvents(file)
			if err != nil {
				return writeErr(cmd, err)
			}

			var stats seed.Stats
			if force {
				stats, err = a.Seeder.Load(ctx, events)
			} else {
				stats, err = a.Seeder.SeedIfEmpty(ctx, events)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, c, map[string]any{
				"inserted":  stats.Inserted,
				"skipped":   stats.Skipped,
				"relations": stats.Relations,
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML seed document")
	cmd.Flags().BoolVar(&force, "force", false, "Load even when the store is not empty")
	return cmd
}
