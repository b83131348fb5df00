// Package exec runs the local OS utilities the metrics collectors depend on
// (top, vm_stat, netstat, ps, sysctl) and captures their output.
package exec

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rdeckard/sysmon/internal/errors"
)

// Capture runs a command with the given arguments and returns its stdout.
// The command is invoked directly (no shell); stderr is discarded because
// the collectors only care about parseable stdout. A non-zero exit or a
// missing binary both surface as an EXEC error.
func Capture(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't run '"+name+"'",
			"Make sure the command exists on this system.")
	}

	return stdout.String(), nil
}

// CaptureLine runs a command and returns the first line of its stdout with
// surrounding whitespace trimmed. Useful for single-value queries like
// 'sysctl -n hw.ncpu'.
func CaptureLine(ctx context.Context, name string, args ...string) (string, error) {
	out, err := Capture(ctx, name, args...)
	if err != nil {
		return "", err
	}
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	return strings.TrimSpace(out), nil
}
