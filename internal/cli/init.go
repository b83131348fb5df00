package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/rdeckard/sysmon/internal/config"
	"github.com/rdeckard/sysmon/internal/errors"
	"github.com/rdeckard/sysmon/internal/ui"
)

// initCommand creates a .sysmon.yaml in the current directory, prompting
// for the monitor defaults.
func initCommand(force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.Default()

	refreshStr := strconv.Itoa(cfg.Monitor.Refresh)
	var sections []string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Placeholder("1").
				Value(&refreshStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a whole number of seconds, 1 or more")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Metric sections").
				Options(
					huh.NewOption("CPU", "cpu").Selected(true),
					huh.NewOption("Memory", "memory").Selected(true),
					huh.NewOption("Network", "network").Selected(true),
					huh.NewOption("Top processes", "top"),
				).
				Value(&sections),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}

	cfg.Monitor.Refresh, _ = strconv.Atoi(strings.TrimSpace(refreshStr))
	cfg.Monitor.CPU = false
	cfg.Monitor.Memory = false
	cfg.Monitor.Network = false
	cfg.Monitor.Top = false
	for _, s := range sections {
		switch s {
		case "cpu":
			cfg.Monitor.CPU = true
		case "memory":
			cfg.Monitor.Memory = true
		case "network":
			cfg.Monitor.Network = true
		case "top":
			cfg.Monitor.Top = true
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n", ui.SuccessStyle.Render(ui.SymbolSuccess), configPath)
	return nil
}
