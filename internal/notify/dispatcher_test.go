package notify

import (
	"bytes"
	"testing"

	"github.com/ariel-frischer/any-notify/internal/notify/notifytest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend is a Backend with a fixed result that counts its calls
type stubBackend struct {
	name  BackendName
	err   error
	panic any
	calls int
}

func (s *stubBackend) Name() BackendName { return s.name }
func (s *stubBackend) Available() bool   { return s.err == nil }
func (s *stubBackend) Attempt(Request) error {
	s.calls++
	if s.panic != nil {
		panic(s.panic)
	}
	return s.err
}

func newDispatcherFixture(profile Profile, r *notifytest.Runner) (*Dispatcher, *bytes.Buffer) {
	var out bytes.Buffer
	return NewDispatcher(profile, DefaultBackends(r, profile, &out)), &out
}

func attemptedNames(out Outcome) []BackendName {
	names := make([]BackendName, 0, len(out.Attempts))
	for _, a := range out.Attempts {
		names = append(names, a.Backend)
	}
	return names
}

func TestOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]BackendName{NativeDaemon, MessageBus, TextFallback},
		Order(Profile{}))
	assert.Equal(t,
		[]BackendName{NativeDaemon, MessageBus, CompatPopup, TextFallback},
		Order(Profile{CompatLayer: true}))
}

func TestDispatch_AutoWalksOrder(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		profile       Profile
		runner        func() *notifytest.Runner
		wantDelivered BackendName
		wantAttempted []BackendName
		wantRan       []string
		wantStdout    string
	}{
		"native daemon first": {
			runner:        func() *notifytest.Runner { return notifytest.NewRunner("notify-send", "gdbus") },
			wantDelivered: NativeDaemon,
			wantAttempted: []BackendName{NativeDaemon},
			wantRan:       []string{"notify-send"},
		},
		"message bus when daemon client missing": {
			runner:        func() *notifytest.Runner { return notifytest.NewRunner("gdbus") },
			wantDelivered: MessageBus,
			wantAttempted: []BackendName{NativeDaemon, MessageBus},
			wantRan:       []string{"gdbus"},
		},
		"message bus when daemon rejects": {
			runner: func() *notifytest.Runner {
				return notifytest.NewRunner("notify-send", "gdbus").WithExitCode("notify-send", 1)
			},
			wantDelivered: MessageBus,
			wantAttempted: []BackendName{NativeDaemon, MessageBus},
			wantRan:       []string{"notify-send", "gdbus"},
		},
		"text fallback when nothing installed": {
			runner:        func() *notifytest.Runner { return notifytest.NewRunner() },
			wantDelivered: TextFallback,
			wantAttempted: []BackendName{NativeDaemon, MessageBus, TextFallback},
			wantRan:       []string{},
			wantStdout:    "[normal] any-notify: msg\n",
		},
		"popup never tried outside WSL": {
			runner:        func() *notifytest.Runner { return notifytest.NewRunner("powershell.exe") },
			wantDelivered: TextFallback,
			wantAttempted: []BackendName{NativeDaemon, MessageBus, TextFallback},
			wantRan:       []string{},
			wantStdout:    "[normal] any-notify: msg\n",
		},
		"popup under WSL": {
			profile:       Profile{CompatLayer: true},
			runner:        func() *notifytest.Runner { return notifytest.NewRunner("powershell.exe") },
			wantDelivered: CompatPopup,
			wantAttempted: []BackendName{NativeDaemon, MessageBus, CompatPopup},
			wantRan:       []string{"powershell.exe"},
		},
		"text fallback under WSL when popup fails": {
			profile: Profile{CompatLayer: true},
			runner: func() *notifytest.Runner {
				return notifytest.NewRunner("notify-send", "gdbus", "powershell.exe").
					WithExitCode("notify-send", 1).
					WithExitCode("gdbus", 1).
					WithExitCode("powershell.exe", 1)
			},
			wantDelivered: TextFallback,
			wantAttempted: []BackendName{NativeDaemon, MessageBus, CompatPopup, TextFallback},
			wantRan:       []string{"notify-send", "gdbus", "powershell.exe"},
			wantStdout:    "[normal] any-notify: msg\n",
		},
		"faults are swallowed": {
			runner: func() *notifytest.Runner {
				return notifytest.NewRunner("notify-send", "gdbus").
					WithPanic("notify-send", "boom").
					WithRunError("gdbus", assert.AnError)
			},
			wantDelivered: TextFallback,
			wantAttempted: []BackendName{NativeDaemon, MessageBus, TextFallback},
			wantRan:       []string{"notify-send", "gdbus"},
			wantStdout:    "[normal] any-notify: msg\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := tt.runner()
			d, stdout := newDispatcherFixture(tt.profile, r)

			out, err := d.Dispatch(mustRequest(t, "msg"), Auto)

			require.NoError(t, err)
			assert.Equal(t, tt.wantDelivered, out.Delivered)
			assert.Equal(t, tt.wantAttempted, attemptedNames(out))
			assert.Equal(t, tt.wantRan, r.RanTools())
			assert.Equal(t, tt.wantStdout, stdout.String())
		})
	}
}

func TestDispatch_AutoNeverFails(t *testing.T) {
	t.Parallel()

	urgencies := []Urgency{UrgencyLow, UrgencyNormal, UrgencyCritical}
	bodies := []string{"", "plain", "it's", "[x] y: z", "multi\nline"}

	for _, profile := range []Profile{{}, {CompatLayer: true}} {
		for _, u := range urgencies {
			for _, body := range bodies {
				r := notifytest.NewRunner("notify-send", "gdbus", "powershell.exe").
					WithExitCode("notify-send", 2).
					WithRunError("gdbus", assert.AnError).
					WithPanic("powershell.exe", "crash")
				d, _ := newDispatcherFixture(profile, r)

				out, err := d.Dispatch(mustRequest(t, body, WithUrgency(u)), Auto)
				require.NoError(t, err)
				assert.Equal(t, TextFallback, out.Delivered)
			}
		}
	}
}

func TestDispatch_Forced(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		profile  Profile
		sel      Selector
		runner   func() *notifytest.Runner
		wantErr  error
		wantRan  []string
		wantText string
	}{
		"native daemon succeeds": {
			sel:     Selector(NativeDaemon),
			runner:  func() *notifytest.Runner { return notifytest.NewRunner("notify-send") },
			wantRan: []string{"notify-send"},
		},
		"native daemon missing does not fall back": {
			sel:     Selector(NativeDaemon),
			runner:  func() *notifytest.Runner { return notifytest.NewRunner("gdbus") },
			wantErr: ErrUnavailable,
			wantRan: []string{},
		},
		"message bus rejected": {
			sel:     Selector(MessageBus),
			runner:  func() *notifytest.Runner { return notifytest.NewRunner("gdbus").WithExitCode("gdbus", 1) },
			wantErr: ErrRejected,
			wantRan: []string{"gdbus"},
		},
		"message bus panic becomes fault": {
			sel:     Selector(MessageBus),
			runner:  func() *notifytest.Runner { return notifytest.NewRunner("gdbus").WithPanic("gdbus", "boom") },
			wantErr: ErrFault,
			wantRan: []string{"gdbus"},
		},
		"compat popup outside WSL fails gracefully": {
			sel:     Selector(CompatPopup),
			runner:  func() *notifytest.Runner { return notifytest.NewRunner("notify-send", "gdbus", "powershell.exe") },
			wantErr: ErrUnavailable,
			wantRan: []string{},
		},
		"compat popup under WSL": {
			profile: Profile{CompatLayer: true},
			sel:     Selector(CompatPopup),
			runner:  func() *notifytest.Runner { return notifytest.NewRunner("powershell.exe") },
			wantRan: []string{"powershell.exe"},
		},
		"text fallback": {
			sel:      Selector(TextFallback),
			runner:   func() *notifytest.Runner { return notifytest.NewRunner("notify-send") },
			wantRan:  []string{},
			wantText: "[normal] any-notify: msg\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := tt.runner()
			d, stdout := newDispatcherFixture(tt.profile, r)

			out, err := d.Dispatch(mustRequest(t, "msg"), tt.sel)

			require.Len(t, out.Attempts, 1)
			assert.Equal(t, tt.wantRan, r.RanTools())
			assert.Equal(t, tt.wantText, stdout.String())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, out.Delivered)
				return
			}
			require.NoError(t, err)
			backend, _ := tt.sel.Backend()
			assert.Equal(t, backend, out.Delivered)
		})
	}
}

func TestDispatch_Idempotent(t *testing.T) {
	t.Parallel()

	for _, code := range []int{0, 1} {
		r := notifytest.NewRunner("gdbus").WithExitCode("gdbus", code)
		d, _ := newDispatcherFixture(Profile{}, r)
		req := mustRequest(t, "msg", WithTimeout(1000))

		_, first := d.Dispatch(req, Selector(MessageBus))
		_, second := d.Dispatch(req, Selector(MessageBus))

		assert.Equal(t, first == nil, second == nil)
		calls := r.CallsTo("gdbus")
		require.Len(t, calls, 2)
		assert.Equal(t, calls[0], calls[1])
	}
}

func TestDispatch_UnregisteredBackend(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(Profile{}, nil)

	_, err := d.Dispatch(mustRequest(t, "msg"), Selector(NativeDaemon))
	assert.ErrorIs(t, err, ErrUnavailable)

	out, err := d.Dispatch(mustRequest(t, "msg"), Auto)
	assert.ErrorIs(t, err, ErrNoBackend)
	assert.Len(t, out.Attempts, 3)
}

func TestDispatch_ForeignErrorBecomesFault(t *testing.T) {
	t.Parallel()

	stub := &stubBackend{name: NativeDaemon, err: assert.AnError}
	d := NewDispatcher(Profile{}, []Backend{stub})

	_, err := d.Dispatch(mustRequest(t, "msg"), Selector(NativeDaemon))

	var ae *AttemptError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindFault, ae.Kind)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, stub.calls)
}

func TestDispatch_EachBackendTriedOnce(t *testing.T) {
	t.Parallel()

	stubs := []*stubBackend{
		{name: NativeDaemon, err: &AttemptError{Backend: NativeDaemon, Kind: KindRejected, ExitCode: 1}},
		{name: MessageBus, panic: "bus exploded"},
		{name: CompatPopup, err: &AttemptError{Backend: CompatPopup, Kind: KindUnavailable}},
		{name: TextFallback},
	}
	backends := make([]Backend, 0, len(stubs))
	for _, s := range stubs {
		backends = append(backends, s)
	}
	d := NewDispatcher(Profile{CompatLayer: true}, backends)

	out, err := d.Dispatch(mustRequest(t, "msg"), Auto)

	require.NoError(t, err)
	assert.Equal(t, TextFallback, out.Delivered)
	for _, s := range stubs {
		assert.Equal(t, 1, s.calls, "backend %s", s.name)
	}
	assert.ErrorIs(t, out.Attempts[1].Err, ErrFault)
}

func TestDispatch_LogsAttempts(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	r := notifytest.NewRunner("notify-send").WithExitCode("notify-send", 4)
	var stdout bytes.Buffer
	d := NewDispatcher(Profile{}, DefaultBackends(r, Profile{}, &stdout), WithLogger(logger))

	_, err := d.Dispatch(mustRequest(t, "msg"), Auto)
	require.NoError(t, err)

	got := logs.String()
	assert.Contains(t, got, `"component":"dispatcher"`)
	assert.Contains(t, got, `"backend":"native-daemon"`)
	assert.Contains(t, got, `"kind":"rejected"`)
	assert.Contains(t, got, `"backend":"text-fallback"`)
	assert.Contains(t, got, "notification delivered")
}
