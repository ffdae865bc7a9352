package notify

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Runner locates and runs external tools. Backends depend only on this
// interface so they can be exercised without real notification daemons.
type Runner interface {
	// LookPath resolves an executable on the search path
	LookPath(name string) (string, error)

	// Run executes argv to completion and returns its exit status. The error
	// is non-nil only when the process could not be started or waited on.
	Run(argv []string) (int, error)
}

// ExecRunner runs tools with os/exec. Output of the child is discarded.
type ExecRunner struct{}

// LookPath implements Runner
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner
func (ExecRunner) Run(argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty command line")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// Backend is one notification mechanism.
type Backend interface {
	// Name identifies the backend
	Name() BackendName

	// Available reports whether the mechanism looks usable on this host.
	// Attempt performs the same check itself; this is for reporting.
	Available() bool

	// Attempt delivers req. A nil error means the notification was shown;
	// otherwise the error is an *AttemptError.
	Attempt(req Request) error
}

// DefaultBackends returns every backend wired to runner, with the text
// fallback writing to out.
func DefaultBackends(runner Runner, profile Profile, out io.Writer) []Backend {
	return []Backend{
		newNativeDaemon(runner),
		newMessageBus(runner),
		newCompatPopup(runner, profile),
		newTextFallback(out),
	}
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}

// requireTool returns a KindUnavailable error when tool cannot be located.
func requireTool(r Runner, backend BackendName, tool string) error {
	if _, err := r.LookPath(tool); err != nil {
		return &AttemptError{
			Backend: backend,
			Kind:    KindUnavailable,
			Err:     fmt.Errorf("%s not found: %w", tool, err),
		}
	}
	return nil
}

// runTool runs argv and maps the outcome onto an AttemptError.
func runTool(r Runner, backend BackendName, argv []string) error {
	code, err := r.Run(argv)
	if err != nil {
		return &AttemptError{Backend: backend, Kind: KindFault, Err: err}
	}
	if code != 0 {
		return &AttemptError{Backend: backend, Kind: KindRejected, ExitCode: code}
	}
	return nil
}
