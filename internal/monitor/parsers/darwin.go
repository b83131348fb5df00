// Package parsers contains pure functions that turn raw OS command output
// into metric values. Keeping them free of subprocess calls makes them
// testable against captured output.
package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ParseTopCPU extracts total CPU utilization from macOS 'top -l 1 -n 0'
// output as 100 minus the idle percentage.
// The relevant line looks like: "CPU usage: 5.26% user, 10.52% sys, 84.21% idle"
func ParseTopCPU(topOutput string) (float64, error) {
	scanner := bufio.NewScanner(strings.NewReader(topOutput))

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "CPU usage:") {
			continue
		}

		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if !strings.Contains(part, "idle") {
				continue
			}
			fields := strings.Fields(part)
			if len(fields) < 1 {
				continue
			}
			idle, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "%"), 64)
			if err != nil {
				return 0, fmt.Errorf("bad idle value in top output: %w", err)
			}
			return 100 - idle, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error scanning top output: %w", err)
	}

	return 0, fmt.Errorf("no CPU usage line in top output")
}

// darwinDefaultPageSize applies when vm_stat's header doesn't state one.
// 16KB on Apple Silicon; Intel Macs report 4096 in the header.
const darwinDefaultPageSize = int64(16384)

// VMStatPages holds the page counts parsed from vm_stat, scaled to bytes.
type VMStatPages struct {
	UsedBytes      int64
	AvailableBytes int64
}

// ParseVMStat parses macOS vm_stat output into used and available bytes.
// Used = active + wired + compressed + speculative pages; available = free +
// inactive + purgeable pages. vm_stat doesn't report total memory; callers
// combine this with 'sysctl hw.memsize'.
func ParseVMStat(vmStatOutput string) (VMStatPages, error) {
	var pages VMStatPages
	scanner := bufio.NewScanner(strings.NewReader(vmStatOutput))

	pageSize := darwinDefaultPageSize
	var active, wired, inactive, speculative, free, compressed, purgeable int64
	matched := 0

	for scanner.Scan() {
		line := scanner.Text()

		// Header: "Mach Virtual Memory Statistics: (page size of 16384 bytes)"
		if strings.Contains(line, "page size of") {
			rest := line[strings.Index(line, "page size of")+len("page size of"):]
			fields := strings.Fields(strings.TrimSpace(rest))
			if len(fields) >= 1 {
				if size, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
					pageSize = size
				}
			}
			continue
		}

		colonIdx := strings.Index(line, ":")
		if colonIdx < 0 {
			continue
		}

		key := strings.TrimSpace(line[:colonIdx])
		valStr := strings.TrimSuffix(strings.TrimSpace(line[colonIdx+1:]), ".")
		val, err := strconv.ParseInt(valStr, 10, 64)
		if err != nil {
			continue
		}

		switch key {
		case "Pages active":
			active = val
			matched++
		case "Pages wired down":
			wired = val
			matched++
		case "Pages inactive":
			inactive = val
			matched++
		case "Pages speculative":
			speculative = val
			matched++
		case "Pages free":
			free = val
			matched++
		case "Pages occupied by compressor":
			compressed = val
			matched++
		case "Pages purgeable":
			purgeable = val
			matched++
		}
	}

	if err := scanner.Err(); err != nil {
		return pages, fmt.Errorf("error scanning vm_stat output: %w", err)
	}
	if matched == 0 {
		return pages, fmt.Errorf("no page counts in vm_stat output")
	}

	pages.UsedBytes = (active + wired + compressed + speculative) * pageSize
	pages.AvailableBytes = (free + inactive + purgeable) * pageSize
	return pages, nil
}

// ParseNetstat sums link-level byte counters across all non-loopback
// interfaces from 'netstat -ib' output.
//
// netstat -ib format:
//
//	Name  Mtu   Network       Address            Ipkts Ierrs     Ibytes    Opkts Oerrs     Obytes  Coll
//	en0   1500  <Link#4>      xx:xx:xx:xx:xx:xx  12345     0   12345678    67890     0    9876543     0
//
// Only the <Link#...> row carries interface totals; per-protocol rows for
// the same interface are skipped, as are duplicate link rows.
func ParseNetstat(netstatOutput string) (received, sent uint64, err error) {
	scanner := bufio.NewScanner(strings.NewReader(netstatOutput))

	headerSkipped := false
	seen := make(map[string]bool)
	matched := 0

	for scanner.Scan() {
		line := scanner.Text()

		if !headerSkipped {
			if strings.HasPrefix(line, "Name") {
				headerSkipped = true
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 10 {
			continue
		}

		name := fields[0]
		if seen[name] || strings.HasPrefix(name, "lo") {
			continue
		}

		isLinkRow := false
		for _, f := range fields {
			if strings.HasPrefix(f, "<Link#") {
				isLinkRow = true
				break
			}
		}
		if !isLinkRow {
			continue
		}
		seen[name] = true

		// Numeric columns after the address field: mtu ipkts ierrs ibytes
		// opkts oerrs obytes coll. The address column is non-numeric, so
		// collecting every numeric field gives a stable layout.
		var numeric []uint64
		for i := 1; i < len(fields); i++ {
			if val, err := strconv.ParseUint(fields[i], 10, 64); err == nil {
				numeric = append(numeric, val)
			}
		}
		if len(numeric) >= 7 {
			received += numeric[3] // ibytes
			sent += numeric[6]     // obytes
			matched++
		}
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("error scanning netstat output: %w", err)
	}
	if matched == 0 {
		return 0, 0, fmt.Errorf("no interface rows in netstat output")
	}

	return received, sent, nil
}
