package jj

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced to MCP callers. Match with errors.Is.
var (
	ErrMalformedParameters = errors.New("malformed parameters")
	ErrToolNotFound        = errors.New("jj executable not found")
	ErrExecutionFailed     = errors.New("jj command failed")
	ErrUnknownTool         = errors.New("unknown tool")
)

// ExitError reports a jj process that started but exited non-zero.
// Stderr is kept exactly as jj wrote it.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s: exit status %d", ErrExecutionFailed, e.ExitCode)
	}
	return msg
}

func (e *ExitError) Unwrap() error { return ErrExecutionFailed }

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedParameters, fmt.Sprintf(format, args...))
}
