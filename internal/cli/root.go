// Package cli wires the cobra command tree: the root command runs the
// dashboard, subcommands cover config bootstrap, diagnostics, and version
// info.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rdeckard/sysmon/internal/ui"
)

// Global flags.
var (
	configFlag  string
	noColorFlag bool
)

// rootCmd runs the dashboard directly; sysmon is a single-purpose tool and
// shouldn't need a subcommand for its main job.
var rootCmd = &cobra.Command{
	Use:   "sysmon",
	Short: "Terminal system resource monitor",
	Long: `sysmon is a full-screen terminal dashboard for local system metrics.

It samples CPU, memory, and network usage on a fixed interval and renders
color-coded usage bars, with an optional top-processes panel.

Examples:
  sysmon                  # all metrics, 1s refresh
  sysmon -c -m            # CPU and memory only
  sysmon -r 5 -t          # 5s refresh with top processes
  sysmon --config ./alt.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// NO_COLOR convention plus an explicit flag.
		if noColorFlag || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: .sysmon.yaml discovery)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Config returns the --config flag value.
func Config() string {
	return configFlag
}

// Execute runs the root command. Errors are already formatted with
// suggestions, so they print as-is.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
