package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// DefaultRefreshSeconds is the refresh interval used when the config and
// flags are silent.
const DefaultRefreshSeconds = 1

// Config represents the complete .sysmon.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Monitor MonitorConfig `yaml:"monitor" mapstructure:"monitor"`
}

// MonitorConfig holds the default monitor settings. Command-line flags
// override these per invocation.
type MonitorConfig struct {
	// Refresh is the sampling interval in seconds (minimum 1).
	Refresh int `yaml:"refresh" mapstructure:"refresh"`

	// CPU, Memory, and Network select which metric sections to show.
	CPU     bool `yaml:"cpu" mapstructure:"cpu"`
	Memory  bool `yaml:"memory" mapstructure:"memory"`
	Network bool `yaml:"network" mapstructure:"network"`

	// Top enables the top-processes panel.
	Top bool `yaml:"top" mapstructure:"top"`
}

// Default returns the configuration used when no config file exists:
// all metric sections enabled, 1 second refresh, no process panel.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Monitor: MonitorConfig{
			Refresh: DefaultRefreshSeconds,
			CPU:     true,
			Memory:  true,
			Network: true,
			Top:     false,
		},
	}
}
