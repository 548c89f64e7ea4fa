package cli

import (
	"github.com/spf13/cobra"

	"github.com/taintinfo-labs/taintinfo/internal/taint"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all known taint flags and their descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.renderList(taint.List())
		},
	}
}
