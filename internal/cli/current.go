package cli

import (
	"github.com/spf13/cobra"

	"github.com/taintinfo-labs/taintinfo/internal/taint"
)

func (c *CLI) newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Display the current taint status of the running kernel",
		Long: `Read the kernel taint word and decode it.

The taint word is read from /proc/sys/kernel/tainted unless another
source file is configured via --source, the TAINTINFO_SOURCE environment
variable, or the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCurrent()
		},
	}
}

func (c *CLI) runCurrent() error {
	c.debugf("reading taint word from %s\n", c.cfg.Source)
	mask, err := taint.LoadMask(c.cfg.Source)
	if err != nil {
		return err
	}
	return c.renderReport(taint.Decode(mask))
}
