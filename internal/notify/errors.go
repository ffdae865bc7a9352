package notify

import (
	"errors"
	"fmt"
)

// Kind classifies why a backend did not deliver.
type Kind int

const (
	// KindUnavailable means the backend's tool could not be located
	KindUnavailable Kind = iota + 1
	// KindFault means the tool could not be run or the attempt panicked
	KindFault
	// KindRejected means the tool ran and exited non-zero
	KindRejected
)

var (
	ErrUnavailable = errors.New("mechanism unavailable")
	ErrFault       = errors.New("invocation fault")
	ErrRejected    = errors.New("mechanism rejected notification")
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindFault:
		return "fault"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnavailable:
		return ErrUnavailable
	case KindFault:
		return ErrFault
	case KindRejected:
		return ErrRejected
	default:
		return nil
	}
}

// AttemptError is returned by Backend.Attempt when the notification was not
// delivered. It matches ErrUnavailable, ErrFault or ErrRejected with errors.Is
// according to Kind.
type AttemptError struct {
	Backend BackendName
	Kind    Kind
	// ExitCode is the tool's exit status, set for KindRejected.
	ExitCode int
	Err      error
}

func (e *AttemptError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Backend, e.Kind.sentinel())
	if e.Kind == KindRejected {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

func (e *AttemptError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}
