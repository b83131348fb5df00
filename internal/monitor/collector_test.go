package monitor

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdeckard/sysmon/internal/logger"
)

// stubSource returns canned values, or errors on everything when failing
// is set.
type stubSource struct {
	failing bool
	cpu     CPUStats
	mem     MemoryStats
	net     NetworkStats
	procs   []ProcessInfo

	cpuCalls  int
	procCalls int
}

func (s *stubSource) CPU(context.Context) (CPUStats, error) {
	s.cpuCalls++
	if s.failing {
		return CPUStats{}, fmt.Errorf("no cpu")
	}
	return s.cpu, nil
}

func (s *stubSource) Memory(context.Context) (MemoryStats, error) {
	if s.failing {
		return MemoryStats{}, fmt.Errorf("no memory")
	}
	return s.mem, nil
}

func (s *stubSource) Network(context.Context) (NetworkStats, error) {
	if s.failing {
		return NetworkStats{}, fmt.Errorf("no network")
	}
	return s.net, nil
}

func (s *stubSource) Processes(context.Context) ([]ProcessInfo, error) {
	s.procCalls++
	if s.failing {
		return nil, fmt.Errorf("no processes")
	}
	return s.procs, nil
}

func allOptions() Options {
	return Options{CPU: true, Memory: true, Network: true, Top: true}
}

func TestCollectHappyPath(t *testing.T) {
	src := &stubSource{
		cpu:   CPUStats{Percent: 42.5, Model: "test-cpu", Cores: 8},
		mem:   MemoryStats{TotalMB: 16000, UsedMB: 9000, FreeMB: 7000},
		net:   NetworkStats{ReceivedBytes: 1000, SentBytes: 2000},
		procs: []ProcessInfo{{PID: 1, CPU: 1.0, Command: "init"}},
	}
	c := NewCollector(src, logger.Noop())

	sample := c.Collect(context.Background(), allOptions())

	assert.False(t, sample.Timestamp.IsZero())
	assert.Equal(t, src.cpu, sample.CPU)
	assert.Equal(t, src.mem, sample.Memory)
	assert.Equal(t, src.net, sample.Network)
	assert.Equal(t, src.procs, sample.Processes)
}

func TestCollectSubstitutesPlaceholders(t *testing.T) {
	c := NewCollector(&stubSource{failing: true}, logger.Noop())

	sample := c.Collect(context.Background(), allOptions())

	assert.Equal(t, FallbackCPUPercent, sample.CPU.Percent)
	assert.Equal(t, runtime.NumCPU(), sample.CPU.Cores)
	assert.Equal(t, FallbackMemTotalMB, sample.Memory.TotalMB)
	assert.Equal(t, FallbackMemUsedMB, sample.Memory.UsedMB)
	assert.Equal(t, FallbackMemFreeMB, sample.Memory.FreeMB)
	assert.Zero(t, sample.Network.ReceivedBytes)
	assert.Zero(t, sample.Network.SentBytes)
	assert.Empty(t, sample.Processes)
}

func TestCollectLogsFailuresAtDebugOnly(t *testing.T) {
	// The dashboard owns the terminal while collecting; anything above
	// debug would write over the live alt-screen.
	log := logger.NewBufferLogger()
	c := NewCollector(&stubSource{failing: true}, log)

	c.Collect(context.Background(), allOptions())

	assert.True(t, log.HasLevel("debug"))
	assert.False(t, log.HasLevel("warn"))
	assert.False(t, log.HasLevel("error"))
}

func TestCollectSkipsDisabledMetrics(t *testing.T) {
	src := &stubSource{failing: true}
	c := NewCollector(src, logger.Noop())

	sample := c.Collect(context.Background(), Options{Memory: true})

	assert.Zero(t, src.cpuCalls)
	assert.Zero(t, src.procCalls)
	assert.Zero(t, sample.CPU.Percent)
	assert.Equal(t, FallbackMemTotalMB, sample.Memory.TotalMB)
}

func TestTopProcessesSortAndLimit(t *testing.T) {
	procs := []ProcessInfo{
		{PID: 1, CPU: 1.0},
		{PID: 2, CPU: 9.0},
		{PID: 3, CPU: 5.0},
		{PID: 4, CPU: 9.0},
		{PID: 5, CPU: 0.5},
		{PID: 6, CPU: 3.0},
		{PID: 7, CPU: 2.0},
	}

	top := topProcesses(procs)

	assert.Len(t, top, TopProcessLimit)
	// Descending by CPU; the two 9.0 rows keep their input order.
	assert.Equal(t, 2, top[0].PID)
	assert.Equal(t, 4, top[1].PID)
	assert.Equal(t, 3, top[2].PID)
	assert.Equal(t, 6, top[3].PID)
	assert.Equal(t, 7, top[4].PID)
}

func TestTopProcessesFewerThanLimit(t *testing.T) {
	procs := []ProcessInfo{
		{PID: 1, CPU: 1.0},
		{PID: 2, CPU: 2.0},
	}

	top := topProcesses(procs)

	assert.Len(t, top, 2)
	assert.Equal(t, 2, top[0].PID)
}

func TestTopProcessesEmpty(t *testing.T) {
	assert.Empty(t, topProcesses(nil))
}
