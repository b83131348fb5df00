package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// CPUTicks holds the aggregate jiffy counters from /proc/stat. Utilization
// is computed from the delta between two readings.
type CPUTicks struct {
	Total uint64
	Idle  uint64
}

// ParseProcStat parses the aggregate "cpu " line of /proc/stat.
// Fields: cpu user nice system idle iowait irq softirq steal guest guest_nice.
// Idle counts both idle and iowait jiffies.
func ParseProcStat(procStat string) (CPUTicks, error) {
	var ticks CPUTicks
	scanner := bufio.NewScanner(strings.NewReader(procStat))

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return ticks, fmt.Errorf("invalid /proc/stat cpu line: %s", line)
		}

		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return ticks, fmt.Errorf("failed to parse cpu field %d: %w", i, err)
			}
			ticks.Total += val
			if i == 4 || i == 5 {
				ticks.Idle += val
			}
		}
		return ticks, nil
	}

	if err := scanner.Err(); err != nil {
		return ticks, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	return ticks, fmt.Errorf("no aggregate cpu line in /proc/stat")
}

// CPUPercentFromTicks computes utilization from two /proc/stat readings as
// 100 minus the idle share of the elapsed jiffies. A zero or negative total
// delta (first reading, counter wrap) yields zero.
func CPUPercentFromTicks(prev, cur CPUTicks) float64 {
	if cur.Total <= prev.Total {
		return 0
	}
	totalDelta := cur.Total - prev.Total
	var idleDelta uint64
	if cur.Idle > prev.Idle {
		idleDelta = cur.Idle - prev.Idle
	}
	if idleDelta > totalDelta {
		idleDelta = totalDelta
	}
	return float64(totalDelta-idleDelta) / float64(totalDelta) * 100
}

// ParseCPUInfo extracts the processor model name and logical core count
// from /proc/cpuinfo.
func ParseCPUInfo(procCPUInfo string) (model string, cores int, err error) {
	scanner := bufio.NewScanner(strings.NewReader(procCPUInfo))

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "processor") {
			cores++
			continue
		}
		if model == "" && strings.HasPrefix(line, "model name") {
			if idx := strings.Index(line, ":"); idx >= 0 {
				model = strings.TrimSpace(line[idx+1:])
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return "", 0, fmt.Errorf("error scanning /proc/cpuinfo: %w", err)
	}
	if cores == 0 {
		return "", 0, fmt.Errorf("no processor entries in /proc/cpuinfo")
	}
	return model, cores, nil
}

// ParseMemInfo parses /proc/meminfo into megabyte totals. Used memory is
// total minus MemAvailable when the kernel reports it, otherwise total
// minus free, buffers, and cache.
func ParseMemInfo(procMeminfo string) (totalMB, usedMB, freeMB int, err error) {
	scanner := bufio.NewScanner(strings.NewReader(procMeminfo))

	var memTotal, memFree, memAvailable, buffers, cached int64
	haveAvailable := false
	found := 0

	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		// Values are in kB.
		key := strings.TrimSuffix(parts[0], ":")
		val, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}

		switch key {
		case "MemTotal":
			memTotal = val
			found++
		case "MemFree":
			memFree = val
			found++
		case "MemAvailable":
			memAvailable = val
			haveAvailable = true
			found++
		case "Buffers":
			buffers = val
			found++
		case "Cached":
			cached = val
			found++
		}
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}
	if found < 2 || memTotal == 0 {
		return 0, 0, 0, fmt.Errorf("insufficient memory info in /proc/meminfo")
	}

	available := memAvailable
	if !haveAvailable {
		available = memFree + buffers + cached
	}
	if available > memTotal {
		available = memTotal
	}

	totalMB = int(memTotal / 1024)
	freeMB = int(available / 1024)
	usedMB = totalMB - freeMB
	return totalMB, usedMB, freeMB, nil
}

// ParseNetDev sums byte counters across all non-loopback interfaces from
// /proc/net/dev. Receive bytes are the first field after the interface
// name, transmit bytes the ninth.
func ParseNetDev(procNetDev string) (received, sent uint64, err error) {
	scanner := bufio.NewScanner(strings.NewReader(procNetDev))

	lineNum := 0
	matched := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// First two lines are headers.
		if lineNum <= 2 {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		name := strings.TrimSpace(parts[0])
		if name == "lo" {
			continue
		}

		fields := strings.Fields(parts[1])
		if len(fields) < 16 {
			continue
		}

		rx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to parse rx bytes for %s: %w", name, err)
		}
		tx, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to parse tx bytes for %s: %w", name, err)
		}

		received += rx
		sent += tx
		matched++
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("error scanning /proc/net/dev: %w", err)
	}
	if matched == 0 {
		return 0, 0, fmt.Errorf("no interface rows in /proc/net/dev")
	}

	return received, sent, nil
}
