// Package cli provides the command-line interface for taintinfo.
// The CLI decodes the running kernel's taint word, lists the known
// taint flags, and analyzes user-supplied flag letter combinations.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/taintinfo-labs/taintinfo/internal/config"
	"github.com/taintinfo-labs/taintinfo/internal/errors"
)

// Exit codes. ExitMemAlloc is applied by the entrypoint when an
// allocation failure surfaces; everything else a command can fail
// with maps to ExitGeneric.
const (
	ExitSuccess  = 0
	ExitGeneric  = 1
	ExitMemAlloc = 2
)

// taintArgPrefix marks the single positional argument form that
// analyzes a user-supplied flag combination.
const taintArgPrefix = "taint="

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config

	out    io.Writer
	errOut io.Writer

	// Global flags
	configPath string
	sourcePath string
	format     string
	noColor    bool
	quiet      bool
	debug      bool
}

// New creates a new CLI instance writing to stdout and stderr.
func New() *CLI {
	cli := &CLI{out: os.Stdout, errOut: os.Stderr}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the CLI on os.Args and returns the process exit code.
func (c *CLI) Execute() int {
	return c.ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the CLI on an explicit argument list.
func (c *CLI) ExecuteArgs(args []string) int {
	c.rootCmd.SetArgs(args)
	if err := c.rootCmd.Execute(); err != nil {
		alertColor.Fprintf(c.errOut, "%v\n", err)
		return errors.ExitCode(err)
	}
	return ExitSuccess
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taintinfo { current | list | taint=<flags> }",
		Short: "Kernel taint status query utility",
		Long: `taintinfo decodes the kernel's taint word into a human-readable report.

It reads /proc/sys/kernel/tainted (or another source file), matches each
bit against the table of known taint flags, and prints the flag letters,
the numeric representation, and a description of every relevant flag.

  current       Display information about the current taint status of the running kernel
  list          List all known taint flags and their descriptions
  taint=flags   Display information about the specified taint flags`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && strings.HasPrefix(args[0], taintArgPrefix) {
				return c.runQuery(strings.TrimPrefix(args[0], taintArgPrefix))
			}
			_ = cmd.Usage()
			if len(args) == 0 {
				return errors.NewUsage("no command given")
			}
			return errors.NewUsage(fmt.Sprintf("unknown command %q", args[0]))
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.taintinfo/config.yaml)")
	cmd.PersistentFlags().StringVar(&c.sourcePath, "source", "", "taint word source file (overrides config)")
	cmd.PersistentFlags().StringVar(&c.format, "format", "", "output format: text, json, yaml")
	cmd.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVar(&c.quiet, "quiet", false, "suppress result output, exit status only")
	cmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "verbose debug diagnostics")

	cmd.SetOut(c.out)
	cmd.SetErr(c.errOut)

	cmd.AddCommand(c.newCurrentCmd())
	cmd.AddCommand(c.newListCmd())
	cmd.AddCommand(c.newVersionCmd())

	return cmd
}

func (c *CLI) initConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// Override with flags
	if c.sourcePath != "" {
		c.cfg.Source = c.sourcePath
	}
	if c.format != "" {
		c.cfg.Format = c.format
	}

	switch c.cfg.Format {
	case "text", "json", "yaml":
	default:
		return errors.NewUsage(fmt.Sprintf("unknown output format %q", c.cfg.Format))
	}

	switch {
	case c.noColor || c.cfg.Color == "never":
		color.NoColor = true
	case c.cfg.Color == "always":
		color.NoColor = false
	}

	return nil
}

// Helper functions for output

func (c *CLI) printf(format string, args ...interface{}) {
	if !c.quiet {
		fmt.Fprintf(c.out, format, args...)
	}
}

func (c *CLI) println(args ...interface{}) {
	if !c.quiet {
		fmt.Fprintln(c.out, args...)
	}
}

func (c *CLI) debugf(format string, args ...interface{}) {
	if c.debug {
		fmt.Fprintf(c.errOut, "[DEBUG] "+format, args...)
	}
}
