package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Process is one parsed row of ps output.
type Process struct {
	PID     int
	CPU     float64
	Memory  float64
	Command string
}

// maxCommandLen keeps process names from wrapping the panel.
const maxCommandLen = 50

// ParsePS parses 'ps aux' output into processes, preserving row order.
// Works for both Linux and macOS formats.
// Columns: USER PID %CPU %MEM VSZ RSS TTY STAT START TIME COMMAND
func ParsePS(output string) ([]Process, error) {
	var procs []Process
	scanner := bufio.NewScanner(strings.NewReader(output))

	// Header line.
	scanner.Scan()

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 11 {
			continue
		}

		pid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}

		cpu, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			cpu = 0
		}

		mem, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			mem = 0
		}

		command := strings.Join(fields[10:], " ")
		// Truncate on rune boundaries; command names can contain
		// multi-byte characters.
		if runes := []rune(command); len(runes) > maxCommandLen {
			command = string(runes[:maxCommandLen-3]) + "..."
		}

		procs = append(procs, Process{
			PID:     pid,
			CPU:     cpu,
			Memory:  mem,
			Command: command,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning ps output: %w", err)
	}

	return procs, nil
}
