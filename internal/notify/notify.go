package notify

import (
	"fmt"
)

// AppName identifies this tool to notification servers and is the default title.
const AppName = "any-notify"

// Urgency is the notification priority hint passed to the backend.
type Urgency string

const (
	// UrgencyLow marks an unimportant notification
	UrgencyLow Urgency = "low"
	// UrgencyNormal is the default urgency
	UrgencyNormal Urgency = "normal"
	// UrgencyCritical marks a notification that should stay visible
	UrgencyCritical Urgency = "critical"
)

// ParseUrgency converts s into an Urgency.
func ParseUrgency(s string) (Urgency, error) {
	switch Urgency(s) {
	case UrgencyLow, UrgencyNormal, UrgencyCritical:
		return Urgency(s), nil
	default:
		return "", fmt.Errorf("invalid urgency %q (want low, normal or critical)", s)
	}
}

// BackendName identifies one notification mechanism.
type BackendName string

const (
	// NativeDaemon sends through the notify-send client of the desktop's notification daemon
	NativeDaemon BackendName = "native-daemon"
	// MessageBus calls the freedesktop Notifications service with the gdbus client
	MessageBus BackendName = "message-bus"
	// CompatPopup shows a Windows popup from inside WSL through powershell.exe
	CompatPopup BackendName = "compat-popup"
	// TextFallback prints the notification to stdout
	TextFallback BackendName = "text-fallback"
)

// AllBackends lists every backend in canonical order.
var AllBackends = []BackendName{NativeDaemon, MessageBus, CompatPopup, TextFallback}

// Selector chooses between automatic dispatch and one forced backend.
type Selector string

// Auto walks the host's priority order until a backend delivers.
const Auto Selector = "auto"

// ParseSelector converts s into a Selector. Accepted values are "auto" and
// every BackendName.
func ParseSelector(s string) (Selector, error) {
	if Selector(s) == Auto {
		return Auto, nil
	}
	for _, name := range AllBackends {
		if string(name) == s {
			return Selector(s), nil
		}
	}
	return "", fmt.Errorf("invalid backend %q (want auto, native-daemon, message-bus, compat-popup or text-fallback)", s)
}

// Backend returns the forced backend, or false for Auto.
func (s Selector) Backend() (BackendName, bool) {
	if s == Auto {
		return "", false
	}
	return BackendName(s), true
}

// Request is one notification to deliver. Build it with NewRequest and pass
// it by value; backends never modify it.
type Request struct {
	Title   string
	Body    string
	Urgency Urgency
	// Icon is an icon name or absolute path; empty means none.
	Icon string
	// Timeout is the display time in milliseconds; nil leaves it to the backend.
	Timeout *int
}

// RequestOption overrides a default field of a Request.
type RequestOption func(*Request)

// WithTitle sets the notification title
func WithTitle(title string) RequestOption {
	return func(r *Request) {
		r.Title = title
	}
}

// WithUrgency sets the urgency
func WithUrgency(u Urgency) RequestOption {
	return func(r *Request) {
		r.Urgency = u
	}
}

// WithIcon sets the icon name or path
func WithIcon(icon string) RequestOption {
	return func(r *Request) {
		r.Icon = icon
	}
}

// WithTimeout sets the display timeout in milliseconds
func WithTimeout(ms int) RequestOption {
	return func(r *Request) {
		r.Timeout = &ms
	}
}

// NewRequest builds a Request for body with the title AppName and normal
// urgency unless overridden by opts.
func NewRequest(body string, opts ...RequestOption) (Request, error) {
	req := Request{
		Title:   AppName,
		Body:    body,
		Urgency: UrgencyNormal,
	}
	for _, opt := range opts {
		opt(&req)
	}

	if _, err := ParseUrgency(string(req.Urgency)); err != nil {
		return Request{}, err
	}
	if req.Timeout != nil && *req.Timeout < 0 {
		return Request{}, fmt.Errorf("invalid timeout %dms: must not be negative", *req.Timeout)
	}

	return req, nil
}
