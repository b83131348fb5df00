package config

import (
	"fmt"

	"github.com/rdeckard/sysmon/internal/errors"
)

// Validate checks a loaded config for values the monitor cannot run with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"No configuration provided",
			"This is a bug - please report it")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config version %d is newer than this build supports (%d)", cfg.Version, CurrentConfigVersion),
			"Update sysmon, or regenerate the config with 'sysmon init'")
	}

	if cfg.Monitor.Refresh < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh interval must be at least 1 second (got %d)", cfg.Monitor.Refresh),
			"Set monitor.refresh to 1 or higher")
	}

	return nil
}
