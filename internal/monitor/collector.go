package monitor

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/rdeckard/sysmon/internal/logger"
)

// Collector turns a Source into complete samples. It never fails: when a
// reading can't be obtained it substitutes documented placeholder values so
// the dashboard always has something to draw.
type Collector struct {
	source Source
	log    logger.Logger
}

func NewCollector(source Source, log logger.Logger) *Collector {
	return &Collector{source: source, log: log}
}

// Collect gathers one sample for the metrics enabled in opts. Disabled
// metrics are left zero and never queried.
func (c *Collector) Collect(ctx context.Context, opts Options) Sample {
	sample := Sample{Timestamp: time.Now()}

	if opts.CPU {
		cpu, err := c.source.CPU(ctx)
		if err != nil {
			c.log.Debug("CPU collection failed: %v", err)
			cpu.Percent = FallbackCPUPercent
			if cpu.Cores == 0 {
				cpu.Cores = runtime.NumCPU()
			}
		}
		sample.CPU = cpu
	}

	if opts.Memory {
		memStats, err := c.source.Memory(ctx)
		if err != nil {
			c.log.Debug("memory collection failed: %v", err)
			memStats = MemoryStats{
				TotalMB: FallbackMemTotalMB,
				UsedMB:  FallbackMemUsedMB,
				FreeMB:  FallbackMemFreeMB,
			}
		}
		sample.Memory = memStats
	}

	if opts.Network {
		netStats, err := c.source.Network(ctx)
		if err != nil {
			c.log.Debug("network collection failed: %v", err)
			netStats = NetworkStats{}
		}
		sample.Network = netStats
	}

	if opts.Top {
		procs, err := c.source.Processes(ctx)
		if err != nil {
			c.log.Debug("process collection failed: %v", err)
			procs = nil
		}
		sample.Processes = topProcesses(procs)
	}

	return sample
}

// topProcesses returns the highest-CPU processes, at most TopProcessLimit.
// The sort is stable so equal-CPU processes keep their ps ordering.
func topProcesses(procs []ProcessInfo) []ProcessInfo {
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].CPU > procs[j].CPU
	})
	if len(procs) > TopProcessLimit {
		procs = procs[:TopProcessLimit]
	}
	return procs
}
