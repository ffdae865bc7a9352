// Package notifytest provides a scripted notify.Runner for tests.
package notifytest

import (
	"os/exec"
	"sync"
)

// Runner records LookPath and Run calls and answers them from a script.
// Tools not installed with NewRunner or WithTool fail LookPath with
// exec.ErrNotFound; installed tools exit 0 unless configured otherwise.
type Runner struct {
	mu sync.Mutex

	tools     map[string]bool
	exitCodes map[string]int
	runErrs   map[string]error
	panics    map[string]any

	// Call tracking
	Lookups []string
	Calls   [][]string
}

// NewRunner creates a runner on which tools resolve.
func NewRunner(tools ...string) *Runner {
	r := &Runner{
		tools:     make(map[string]bool),
		exitCodes: make(map[string]int),
		runErrs:   make(map[string]error),
		panics:    make(map[string]any),
	}
	for _, t := range tools {
		r.tools[t] = true
	}
	return r
}

// WithTool makes tool resolvable
func (r *Runner) WithTool(tool string) *Runner {
	r.tools[tool] = true
	return r
}

// WithExitCode makes runs of tool exit with code
func (r *Runner) WithExitCode(tool string, code int) *Runner {
	r.exitCodes[tool] = code
	return r
}

// WithRunError makes runs of tool fail to start with err
func (r *Runner) WithRunError(tool string, err error) *Runner {
	r.runErrs[tool] = err
	return r
}

// WithPanic makes runs of tool panic with v
func (r *Runner) WithPanic(tool string, v any) *Runner {
	r.panics[tool] = v
	return r
}

// LookPath implements notify.Runner
func (r *Runner) LookPath(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Lookups = append(r.Lookups, name)
	if !r.tools[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

// Run implements notify.Runner
func (r *Runner) Run(argv []string) (int, error) {
	r.mu.Lock()
	r.Calls = append(r.Calls, append([]string(nil), argv...))
	tool := ""
	if len(argv) > 0 {
		tool = argv[0]
	}
	p, shouldPanic := r.panics[tool]
	code, err := r.exitCodes[tool], r.runErrs[tool]
	r.mu.Unlock()

	if shouldPanic {
		panic(p)
	}
	if err != nil {
		return -1, err
	}
	return code, nil
}

// CallsTo returns the argv of every Run of tool
func (r *Runner) CallsTo(tool string) [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out [][]string
	for _, c := range r.Calls {
		if len(c) > 0 && c[0] == tool {
			out = append(out, c)
		}
	}
	return out
}

// RanTools returns argv[0] of every Run, in order
func (r *Runner) RanTools() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		if len(c) > 0 {
			out = append(out, c[0])
		}
	}
	return out
}

// Reset clears recorded calls, keeping the script
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Lookups = nil
	r.Calls = nil
}
