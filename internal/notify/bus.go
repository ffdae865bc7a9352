package notify

import (
	"strconv"
)

const (
	messageBusTool = "gdbus"

	busDestination = "org.freedesktop.Notifications"
	busObjectPath  = "/org/freedesktop/Notifications"
	busInterface   = "org.freedesktop.Notifications"
	callNotify     = busInterface + ".Notify"

	// expireDefault lets the server pick the expiration
	expireDefault = -1
)

// messageBus implements Backend by calling Notify on the session bus through gdbus
type messageBus struct {
	runner Runner
}

func newMessageBus(r Runner) Backend {
	return &messageBus{runner: r}
}

func (b *messageBus) Name() BackendName { return MessageBus }

func (b *messageBus) Available() bool {
	return toolAvailable(b.runner, messageBusTool)
}

func (b *messageBus) Attempt(req Request) error {
	if err := requireTool(b.runner, MessageBus, messageBusTool); err != nil {
		return err
	}
	return runTool(b.runner, MessageBus, messageBusArgs(req))
}

// messageBusArgs passes the Notify arguments positionally:
//
//	app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout
//
// Urgency is not sent; gdbus cannot express the byte-typed hint reliably.
func messageBusArgs(req Request) []string {
	expire := expireDefault
	if req.Timeout != nil {
		expire = *req.Timeout
	}

	return []string{
		messageBusTool,
		"call",
		"--session",
		"--dest", busDestination,
		"--object-path", busObjectPath,
		"--method", callNotify,
		AppName,
		"0",
		req.Icon,
		req.Title,
		req.Body,
		"[]",
		"{}",
		strconv.Itoa(expire),
	}
}
