package monitor

import (
	"context"
	"os"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/rdeckard/sysmon/internal/errors"
	"github.com/rdeckard/sysmon/internal/exec"
	"github.com/rdeckard/sysmon/internal/logger"
	"github.com/rdeckard/sysmon/internal/monitor/parsers"
)

// linuxSource reads /proc directly and shells out only for the process
// list, falling back to gopsutil when /proc is unavailable (containers with
// restricted mounts, mostly).
//
// It keeps the previous /proc/stat reading so utilization reflects the
// delta since the last tick. A manual refresh can overlap an in-flight
// tick collect, so the reading is guarded by a mutex.
type linuxSource struct {
	log logger.Logger

	mu        sync.Mutex
	prevTicks parsers.CPUTicks
}

func newLinuxSource(log logger.Logger) *linuxSource {
	return &linuxSource{log: log}
}

func (s *linuxSource) CPU(ctx context.Context) (CPUStats, error) {
	var stats CPUStats

	if data, err := os.ReadFile("/proc/cpuinfo"); err == nil {
		if model, cores, perr := parsers.ParseCPUInfo(string(data)); perr == nil {
			stats.Model = model
			stats.Cores = cores
		}
	}

	data, err := os.ReadFile("/proc/stat")
	if err == nil {
		ticks, perr := parsers.ParseProcStat(string(data))
		if perr == nil {
			s.mu.Lock()
			stats.Percent = parsers.CPUPercentFromTicks(s.prevTicks, ticks)
			s.prevTicks = ticks
			s.mu.Unlock()
			return stats, nil
		}
		err = perr
	}
	s.log.Debug("/proc/stat reading failed, trying gopsutil: %v", err)

	pcts, gerr := cpu.PercentWithContext(ctx, 0, false)
	if gerr == nil && len(pcts) > 0 {
		stats.Percent = pcts[0]
		if stats.Model == "" {
			if infos, ierr := cpu.InfoWithContext(ctx); ierr == nil && len(infos) > 0 {
				stats.Model = infos[0].ModelName
			}
		}
		return stats, nil
	}

	return stats, errors.WrapWithCode(gerr, errors.ErrCollect,
		"No CPU reading available", "")
}

func (s *linuxSource) Memory(ctx context.Context) (MemoryStats, error) {
	data, err := os.ReadFile("/proc/meminfo")
	if err == nil {
		totalMB, usedMB, freeMB, perr := parsers.ParseMemInfo(string(data))
		if perr == nil {
			return MemoryStats{TotalMB: totalMB, UsedMB: usedMB, FreeMB: freeMB}, nil
		}
		err = perr
	}
	s.log.Debug("/proc/meminfo reading failed, trying gopsutil: %v", err)

	vm, gerr := mem.VirtualMemoryWithContext(ctx)
	if gerr == nil && vm != nil && vm.Total > 0 {
		totalMB := int(vm.Total / (1024 * 1024))
		usedMB := int(vm.Used / (1024 * 1024))
		return MemoryStats{TotalMB: totalMB, UsedMB: usedMB, FreeMB: totalMB - usedMB}, nil
	}

	return MemoryStats{}, errors.WrapWithCode(gerr, errors.ErrCollect,
		"No memory reading available", "")
}

func (s *linuxSource) Network(ctx context.Context) (NetworkStats, error) {
	data, err := os.ReadFile("/proc/net/dev")
	if err == nil {
		if rx, tx, perr := parsers.ParseNetDev(string(data)); perr == nil {
			return NetworkStats{ReceivedBytes: rx, SentBytes: tx}, nil
		} else {
			err = perr
		}
	}
	s.log.Debug("/proc/net/dev reading failed, trying gopsutil: %v", err)

	return networkFromGopsutil(ctx)
}

func (s *linuxSource) Processes(ctx context.Context) ([]ProcessInfo, error) {
	out, err := exec.Capture(ctx, "ps", "aux", "--sort=-%cpu")
	if err != nil {
		// BusyBox and friends don't support --sort; take the unsorted list,
		// the collector re-sorts anyway.
		out, err = exec.Capture(ctx, "ps", "aux")
		if err != nil {
			return nil, err
		}
	}

	procs, err := parsers.ParsePS(out)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCollect,
			"Couldn't parse ps output", "")
	}
	return toProcessInfo(procs), nil
}
