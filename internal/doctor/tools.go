package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Swappable for tests.
var lookPath = exec.LookPath

// PlatformCheck verifies the current OS has a native metrics source.
type PlatformCheck struct{}

func (c *PlatformCheck) Name() string     { return "platform" }
func (c *PlatformCheck) Category() string { return "PLATFORM" }

func (c *PlatformCheck) Run() CheckResult {
	switch runtime.GOOS {
	case "darwin", "linux":
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("platform %s/%s supported", runtime.GOOS, runtime.GOARCH),
		}
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("platform %s not supported", runtime.GOOS),
			Suggestion: "sysmon supports macOS and Linux",
		}
	}
}

// ToolCheck verifies a command the collector shells out to is in PATH.
// Optional tools warn instead of failing; the collector has a fallback for
// them.
type ToolCheck struct {
	Tool     string
	Purpose  string
	Optional bool
}

func (c *ToolCheck) Name() string     { return fmt.Sprintf("tool_%s", c.Tool) }
func (c *ToolCheck) Category() string { return "TOOLS" }

func (c *ToolCheck) Run() CheckResult {
	path, err := lookPath(c.Tool)
	if err != nil {
		status := StatusFail
		suggestion := fmt.Sprintf("Install %s or check PATH", c.Tool)
		if c.Optional {
			status = StatusWarn
			suggestion = fmt.Sprintf("%s readings will use fallback values", c.Purpose)
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     status,
			Message:    fmt.Sprintf("%s not found (%s)", c.Tool, c.Purpose),
			Suggestion: suggestion,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s (%s)", path, c.Purpose),
	}
}

// ProcFileCheck verifies a /proc file the Linux source reads is readable.
type ProcFileCheck struct {
	Path    string
	Purpose string
}

func (c *ProcFileCheck) Name() string     { return fmt.Sprintf("procfs_%s", c.Path) }
func (c *ProcFileCheck) Category() string { return "PROCFS" }

func (c *ProcFileCheck) Run() CheckResult {
	f, err := os.Open(c.Path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s not readable (%s)", c.Path, c.Purpose),
			Suggestion: fmt.Sprintf("%s readings will use fallback values", c.Purpose),
		}
	}
	f.Close()

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s (%s)", c.Path, c.Purpose),
	}
}

// DefaultChecks returns the checks for the current platform.
func DefaultChecks() []Check {
	checks := []Check{&PlatformCheck{}}

	switch runtime.GOOS {
	case "darwin":
		checks = append(checks,
			&ToolCheck{Tool: "sysctl", Purpose: "CPU model and memory size"},
			&ToolCheck{Tool: "top", Purpose: "CPU utilization", Optional: true},
			&ToolCheck{Tool: "vm_stat", Purpose: "memory usage", Optional: true},
			&ToolCheck{Tool: "netstat", Purpose: "network counters", Optional: true},
			&ToolCheck{Tool: "ps", Purpose: "process list"},
		)
	case "linux":
		checks = append(checks,
			&ToolCheck{Tool: "ps", Purpose: "process list"},
			&ProcFileCheck{Path: "/proc/stat", Purpose: "CPU utilization"},
			&ProcFileCheck{Path: "/proc/meminfo", Purpose: "memory usage"},
			&ProcFileCheck{Path: "/proc/net/dev", Purpose: "network counters"},
		)
	}

	return checks
}
