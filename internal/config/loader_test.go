package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdeckard/sysmon/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
version: 1
monitor:
  refresh: 5
  cpu: true
  memory: false
  network: true
  top: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 5, cfg.Monitor.Refresh)
	assert.True(t, cfg.Monitor.CPU)
	assert.False(t, cfg.Monitor.Memory)
	assert.True(t, cfg.Monitor.Top)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ConfigFileName))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "monitor: [not: a: map\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadOrDefaultWithoutConfig(t *testing.T) {
	// An explicit empty path with no config anywhere nearby falls back to
	// defaults; run from a temp dir so no real config is picked up.
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)

	assert.Equal(t, DefaultRefreshSeconds, cfg.Monitor.Refresh)
	assert.True(t, cfg.Monitor.CPU)
	assert.True(t, cfg.Monitor.Memory)
	assert.True(t, cfg.Monitor.Network)
	assert.False(t, cfg.Monitor.Top)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"refresh zero", func(c *Config) { c.Monitor.Refresh = 0 }, true},
		{"refresh negative", func(c *Config) { c.Monitor.Refresh = -2 }, true},
		{"future version", func(c *Config) { c.Version = CurrentConfigVersion + 1 }, true},
		{"large refresh ok", func(c *Config) { c.Monitor.Refresh = 3600 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
