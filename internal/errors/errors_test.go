package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrConfig, "Bad refresh interval", "Use a value of 1 or higher")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Contains(t, err.Error(), "✗ Bad refresh interval")
	assert.Contains(t, err.Error(), "Use a value of 1 or higher")
	assert.Nil(t, err.Cause)
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("exec: \"vm_stat\": executable file not found")
	err := Wrap(cause, "Couldn't read memory stats")

	assert.Equal(t, ErrExec, err.Code)
	assert.Contains(t, err.Error(), "Couldn't read memory stats")
	assert.Contains(t, err.Error(), "executable file not found")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWrapWithCode(t *testing.T) {
	cause := fmt.Errorf("unexpected output")
	err := WrapWithCode(cause, ErrCollect, "Couldn't parse netstat output", "Check that netstat is the BSD variant")

	assert.Equal(t, ErrCollect, err.Code)
	assert.True(t, IsCode(err, ErrCollect))
	assert.False(t, IsCode(err, ErrConfig))
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"nil error", nil, ErrConfig, false},
		{"plain error", fmt.Errorf("boom"), ErrConfig, false},
		{"matching code", New(ErrRender, "render failed", ""), ErrRender, true},
		{"different code", New(ErrRender, "render failed", ""), ErrExec, false},
		{"wrapped in fmt", fmt.Errorf("outer: %w", New(ErrCollect, "inner", "")), ErrCollect, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCode(tt.err, tt.code))
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := New(ErrConfig, "message only", "")
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	assert.Len(t, lines, 1, "error without cause or suggestion should be a single line")
}
