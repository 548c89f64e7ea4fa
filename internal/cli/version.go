package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// VersionInfo represents version information for machine output.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVersion()
		},
	}
}

func (c *CLI) runVersion() error {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	switch c.cfg.Format {
	case "json":
		return c.outputJSON(info)
	case "yaml":
		return c.outputYAML(info)
	}

	c.println("taintinfo")
	c.printf("  Version:    %s\n", info.Version)
	c.printf("  Git Commit: %s\n", info.GitCommit)
	c.printf("  Build Date: %s\n", info.BuildDate)
	c.printf("  Go Version: %s\n", info.GoVersion)
	c.printf("  OS/Arch:    %s/%s\n", info.OS, info.Arch)
	return nil
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		GitCommit = commit
	}
	if date != "" {
		BuildDate = date
	}
}
