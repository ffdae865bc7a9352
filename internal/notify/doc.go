// Package notify delivers a single desktop notification through whichever
// mechanism the host provides.
//
// Delivery is attempted through a fixed set of backends, each of which wraps
// an external tool invoked through a Runner:
//
//   - native-daemon: notify-send (libnotify client)
//   - message-bus: gdbus calling org.freedesktop.Notifications.Notify
//   - compat-popup: powershell.exe WScript.Shell popup, only under WSL
//   - text-fallback: a "[urgency] title: body" line on stdout
//
// # Dispatch
//
// A Dispatcher either forces one backend and reports its failure, or walks
// the host's priority order until one backend delivers. The text fallback is
// always last in automatic mode, so automatic dispatch never fails.
//
// # Usage
//
//	profile := notify.Detect(notify.OSEnviron())
//	backends := notify.DefaultBackends(notify.ExecRunner{}, profile, os.Stdout)
//	d := notify.NewDispatcher(profile, backends)
//
//	req, err := notify.NewRequest("Build finished", notify.WithTitle("ci"))
//	if err != nil {
//		return err
//	}
//	_, err = d.Dispatch(req, notify.Auto)
package notify
