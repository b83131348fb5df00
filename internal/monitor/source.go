package monitor

import (
	"context"
	"runtime"

	"github.com/rdeckard/sysmon/internal/errors"
	"github.com/rdeckard/sysmon/internal/logger"
)

// Source is the capability interface for querying host metrics. Platform
// implementations are selected once at startup; methods return an error only
// when no reading could be obtained at all, after exhausting their fallback
// queries. The Collector decides what to display in that case.
type Source interface {
	CPU(ctx context.Context) (CPUStats, error)
	Memory(ctx context.Context) (MemoryStats, error)
	Network(ctx context.Context) (NetworkStats, error)
	Processes(ctx context.Context) ([]ProcessInfo, error)
}

// NewSource returns the metrics source for the current platform.
// Untested platforms get an error rather than guessed output.
func NewSource(log logger.Logger) (Source, error) {
	switch runtime.GOOS {
	case "darwin":
		return newDarwinSource(log), nil
	case "linux":
		return newLinuxSource(log), nil
	default:
		return nil, errors.New(errors.ErrCollect,
			"Unsupported platform: "+runtime.GOOS,
			"sysmon currently supports macOS and Linux.")
	}
}
