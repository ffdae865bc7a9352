package notify

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrNoBackend is returned by automatic dispatch when no registered backend
// delivered. It cannot happen with DefaultBackends.
var ErrNoBackend = errors.New("no backend delivered the notification")

// Attempt records one backend call made during a dispatch.
type Attempt struct {
	Backend BackendName
	// Err is nil when this backend delivered.
	Err error
}

// Outcome describes a finished dispatch.
type Outcome struct {
	// Delivered is the backend that showed the notification, empty on failure.
	Delivered BackendName
	// Attempts lists every backend tried, in order.
	Attempts []Attempt
}

// Dispatcher picks and invokes backends for a Request. It holds no state
// between calls.
type Dispatcher struct {
	profile  Profile
	backends map[BackendName]Backend
	logger   zerolog.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the logger used for per-attempt diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger.With().Str("component", "dispatcher").Logger()
	}
}

// NewDispatcher creates a dispatcher for the host described by profile.
// Later backends replace earlier ones with the same name.
func NewDispatcher(profile Profile, backends []Backend, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		profile:  profile,
		backends: make(map[BackendName]Backend, len(backends)),
		logger:   zerolog.Nop(),
	}
	for _, b := range backends {
		d.backends[b.Name()] = b
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Order returns the automatic-mode priority list for profile. The popup only
// makes sense inside WSL, and the text fallback always comes last.
func Order(profile Profile) []BackendName {
	if profile.CompatLayer {
		return []BackendName{NativeDaemon, MessageBus, CompatPopup, TextFallback}
	}
	return []BackendName{NativeDaemon, MessageBus, TextFallback}
}

// Dispatch delivers req according to sel.
//
// A forced selector calls exactly that backend and returns its error. Auto
// walks Order(profile), ignoring failures, and stops at the first backend that
// delivers.
func (d *Dispatcher) Dispatch(req Request, sel Selector) (Outcome, error) {
	if name, forced := sel.Backend(); forced {
		return d.dispatchForced(req, name)
	}
	return d.dispatchAuto(req)
}

func (d *Dispatcher) dispatchForced(req Request, name BackendName) (Outcome, error) {
	err := d.attempt(name, req)
	out := Outcome{Attempts: []Attempt{{Backend: name, Err: err}}}
	if err != nil {
		return out, err
	}
	out.Delivered = name
	return out, nil
}

func (d *Dispatcher) dispatchAuto(req Request) (Outcome, error) {
	var out Outcome
	for _, name := range Order(d.profile) {
		err := d.attempt(name, req)
		out.Attempts = append(out.Attempts, Attempt{Backend: name, Err: err})
		if err == nil {
			out.Delivered = name
			return out, nil
		}
	}
	return out, ErrNoBackend
}

// attempt calls one backend and turns anything unexpected, including a
// panic, into an *AttemptError.
func (d *Dispatcher) attempt(name BackendName, req Request) (err error) {
	log := d.logger.With().Str("backend", string(name)).Logger()

	defer func() {
		if r := recover(); r != nil {
			err = &AttemptError{Backend: name, Kind: KindFault, Err: fmt.Errorf("panic: %v", r)}
		}
		logAttempt(log, err)
	}()

	b, ok := d.backends[name]
	if !ok {
		return &AttemptError{Backend: name, Kind: KindUnavailable, Err: errors.New("backend not registered")}
	}

	if e := b.Attempt(req); e != nil {
		var ae *AttemptError
		if errors.As(e, &ae) {
			return ae
		}
		return &AttemptError{Backend: name, Kind: KindFault, Err: e}
	}
	return nil
}

func logAttempt(log zerolog.Logger, err error) {
	if err == nil {
		log.Debug().Msg("notification delivered")
		return
	}
	ev := log.Debug().Err(err)
	var ae *AttemptError
	if errors.As(err, &ae) {
		ev = ev.Stringer("kind", ae.Kind)
	}
	ev.Msg("backend attempt failed")
}
