package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the any-notify CLI
const (
	// ExitSuccess indicates the notification was delivered (always in auto mode)
	ExitSuccess = 0

	// ExitBackendFailed indicates a forced backend did not deliver
	ExitBackendFailed = 1

	// ExitInvalidArguments indicates invalid arguments or configuration
	ExitInvalidArguments = 2
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitInvalidArguments
}
