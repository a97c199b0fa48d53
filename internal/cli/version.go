package cli

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/timeline-backend/internal/app"
)

func newVersionCmd(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, c, app.Build())
		},
	}
}
