package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rdeckard/sysmon/internal/errors"
)

// Command-specific flags
var (
	cpuFlag     bool
	memoryFlag  bool
	networkFlag bool
	refreshFlag int
	topFlag     bool
	initForce   bool
)

// doctorCmd diagnoses environment issues
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose environment issues",
	Long: `Run diagnostic checks against the local environment.

Checks:
  - Platform support
  - Availability of the system tools metrics are read from
  - Readability of /proc files (Linux)

Examples:
  sysmon doctor
  sysmon doctor --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand()
	},
}

// initCmd creates a new .sysmon.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sysmon.yaml configuration",
	Long: `Initialize a sysmon configuration file in the current directory.

Guides you through the monitor defaults with interactive prompts.

Examples:
  sysmon init
  sysmon init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for sysmon.

Examples:
  # Bash
  sysmon completion bash > /etc/bash_completion.d/sysmon

  # Zsh
  sysmon completion zsh > "${fpath[1]}/_sysmon"

  # Fish
  sysmon completion fish > ~/.config/fish/completions/sysmon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// monitor flags live on the root command since that's what it runs
	rootCmd.Flags().BoolVarP(&cpuFlag, "cpu", "c", false, "show CPU metrics")
	rootCmd.Flags().BoolVarP(&memoryFlag, "memory", "m", false, "show memory metrics")
	rootCmd.Flags().BoolVarP(&networkFlag, "network", "n", false, "show network metrics")
	rootCmd.Flags().IntVarP(&refreshFlag, "refresh", "r", 0, "refresh interval in seconds (default 1)")
	rootCmd.Flags().BoolVarP(&topFlag, "top", "t", false, "show top-5 processes panel")

	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config without asking")

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(completionCmd)
}
