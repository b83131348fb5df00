package monitor

import "time"

// Sample is one tick's full metrics snapshot. It is assembled fresh on every
// tick and discarded after rendering; only the network counters survive the
// tick, as the baseline for the next rate calculation.
type Sample struct {
	Timestamp time.Time
	CPU       CPUStats
	Memory    MemoryStats
	Network   NetworkStats
	Processes []ProcessInfo
}

// CPUStats contains processor identity and instantaneous utilization.
type CPUStats struct {
	Percent float64
	Model   string
	Cores   int
}

// MemoryStats contains memory usage in megabytes.
type MemoryStats struct {
	TotalMB int
	UsedMB  int
	FreeMB  int
}

// NetworkStats holds cumulative byte counters summed across all
// non-loopback interfaces.
type NetworkStats struct {
	ReceivedBytes uint64
	SentBytes     uint64
}

// ProcessInfo describes one row of the top-processes panel.
type ProcessInfo struct {
	PID     int
	CPU     float64
	Memory  float64
	Command string
}

// Baseline is the previous tick's cumulative network counters, used to
// derive per-second rates.
type Baseline struct {
	Network NetworkStats
	Time    time.Time
}

// Options selects which metric groups the monitor samples and displays.
// Immutable after the CLI resolves flags and config.
type Options struct {
	Refresh time.Duration
	CPU     bool
	Memory  bool
	Network bool
	Top     bool
}

// TopProcessLimit caps the top-processes panel.
const TopProcessLimit = 5

// Fallback values used when a collector cannot obtain a real reading.
// They are plausible placeholders that keep the display alive, not
// measurements.
const (
	FallbackCPUPercent = 50.0
	FallbackMemTotalMB = 8192
	FallbackMemUsedMB  = 4096
	FallbackMemFreeMB  = 4096
)

// Rate converts a pair of cumulative counters into a per-second rate.
// Counter resets show up as cur < prev; the delta is clamped to zero so a
// reset never reports a negative rate.
func Rate(prev, cur uint64, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	if cur < prev {
		return 0
	}
	return float64(cur-prev) / seconds
}
