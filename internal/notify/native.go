package notify

import (
	"strconv"
)

const nativeDaemonTool = "notify-send"

// nativeDaemon implements Backend with libnotify's notify-send
type nativeDaemon struct {
	runner Runner
}

func newNativeDaemon(r Runner) Backend {
	return &nativeDaemon{runner: r}
}

func (b *nativeDaemon) Name() BackendName { return NativeDaemon }

func (b *nativeDaemon) Available() bool {
	return toolAvailable(b.runner, nativeDaemonTool)
}

func (b *nativeDaemon) Attempt(req Request) error {
	if err := requireTool(b.runner, NativeDaemon, nativeDaemonTool); err != nil {
		return err
	}
	return runTool(b.runner, NativeDaemon, nativeDaemonArgs(req))
}

// nativeDaemonArgs builds:
//
//	notify-send --app-name any-notify --urgency U [--expire-time MS] [--icon I] TITLE BODY
func nativeDaemonArgs(req Request) []string {
	args := []string{
		nativeDaemonTool,
		"--app-name", AppName,
		"--urgency", string(req.Urgency),
	}
	if req.Timeout != nil {
		args = append(args, "--expire-time", strconv.Itoa(*req.Timeout))
	}
	if req.Icon != "" {
		args = append(args, "--icon", req.Icon)
	}
	return append(args, req.Title, req.Body)
}
