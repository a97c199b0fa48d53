// Package cli implements the timeline command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/timeline-backend/internal/app"
	"github.com/heartmarshall/timeline-backend/internal/config"
)

// CLI holds the global flags shared by every subcommand.
type CLI struct {
	ConfigPath string
	DBPath     string
	Pretty     bool
}

// NewRootCmd builds the timeline command tree.
func NewRootCmd() *cobra.Command {
	c := &CLI{}

	cmd := &cobra.Command{
		Use:          "timeline",
		Short:        "Historical event timeline: store, API server and renderer",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Run the HTTP API
  timeline serve

  # Add an event that WWII affected
  timeline events add --category Science --topic Space --name "Moon Landing" \
      --country USA --start 1969-07-20 --affected-by Politics_War_World_War_II_1939

  # Render the chart with relation arrows
  timeline render --format svg --arrows --out timeline.svg
`),
	}

	cmd.PersistentFlags().StringVar(&c.ConfigPath, "config", os.Getenv("CONFIG_PATH"), "Path to config.yaml (default ./config.yaml)")
	cmd.PersistentFlags().StringVar(&c.DBPath, "db", "", "SQLite database file (overrides the configured store)")
	cmd.PersistentFlags().BoolVar(&c.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newServeCmd(c))
	cmd.AddCommand(newMigrateCmd(c))
	cmd.AddCommand(newSeedCmd(c))
	cmd.AddCommand(newEventsCmd(c))
	cmd.AddCommand(newFacetsCmd(c))
	cmd.AddCommand(newRenderCmd(c))
	cmd.AddCommand(newVersionCmd(c))

	return cmd
}

func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.DBPath != "" {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = c.DBPath
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config: validate: %w", err)
		}
	}
	return cfg, nil
}

// open loads configuration and builds the application. The caller must Close it.
func (c *CLI) open(ctx context.Context) (*app.App, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, app.NewLogger(cfg))
}

func writeOut(cmd *cobra.Command, c *CLI, v any) error {
	return newEncoder(cmd.OutOrStdout(), c.Pretty).Encode(v)
}

func newEncoder(w io.Writer, pretty bool) *json.Encoder {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
