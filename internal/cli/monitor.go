package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rdeckard/sysmon/internal/config"
	"github.com/rdeckard/sysmon/internal/errors"
	"github.com/rdeckard/sysmon/internal/logger"
	"github.com/rdeckard/sysmon/internal/monitor"
)

// monitorCommand starts the full-screen dashboard.
func monitorCommand(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrRender,
			"stdout is not a terminal",
			"sysmon needs an interactive terminal to draw its dashboard")
	}

	cfg, err := config.LoadOrDefault(Config())
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	opts, err := resolveOptions(cmd, cfg)
	if err != nil {
		return err
	}

	log := logger.NewEnvLogger("monitor")
	source, err := monitor.NewSource(log)
	if err != nil {
		return err
	}

	model := monitor.NewModel(monitor.NewCollector(source, log), opts)

	// Alt screen gives us the full-screen draw, and Bubble Tea owns raw
	// mode for the duration: the terminal comes back even on a panic.
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Dashboard terminated unexpectedly", "")
	}

	return nil
}

// resolveOptions merges config-file defaults with command-line flags.
// Flags win where given; passing any of -c/-m/-n selects exactly that
// subset.
func resolveOptions(cmd *cobra.Command, cfg *config.Config) (monitor.Options, error) {
	opts := monitor.Options{
		Refresh: time.Duration(cfg.Monitor.Refresh) * time.Second,
		CPU:     cfg.Monitor.CPU,
		Memory:  cfg.Monitor.Memory,
		Network: cfg.Monitor.Network,
		Top:     cfg.Monitor.Top,
	}

	flags := cmd.Flags()

	if flags.Changed("cpu") || flags.Changed("memory") || flags.Changed("network") {
		opts.CPU = cpuFlag
		opts.Memory = memoryFlag
		opts.Network = networkFlag
	}
	if flags.Changed("top") {
		opts.Top = topFlag
	}
	if flags.Changed("refresh") {
		if refreshFlag < 1 {
			return monitor.Options{}, errors.New(errors.ErrConfig,
				fmt.Sprintf("Invalid refresh interval: %d", refreshFlag),
				"Use a whole number of seconds, 1 or more")
		}
		opts.Refresh = time.Duration(refreshFlag) * time.Second
	}

	if !opts.CPU && !opts.Memory && !opts.Network && !opts.Top {
		return monitor.Options{}, errors.New(errors.ErrConfig,
			"Nothing to display",
			"Enable at least one of --cpu, --memory, --network, or --top")
	}

	return opts, nil
}
