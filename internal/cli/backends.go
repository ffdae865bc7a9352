package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/any-notify/internal/notify"
)

// listBackends prints one "name<TAB>available|unavailable" line per backend.
// The message-bus line is followed by what the session bus notification
// server says about itself.
func listBackends(w io.Writer, rt runtimeEnv, backends []notify.Backend) error {
	for _, b := range backends {
		state := "unavailable"
		if b.Available() {
			state = "available"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", b.Name(), state); err != nil {
			return err
		}

		if b.Name() == notify.MessageBus {
			if _, err := fmt.Fprintf(w, "\tserver: %s\n", describeServer(rt)); err != nil {
				return err
			}
		}
	}
	return nil
}

func describeServer(rt runtimeEnv) string {
	if rt.queryServer == nil {
		return "unreachable"
	}
	info, err := rt.queryServer(rt.environ)
	if err != nil {
		return "unreachable"
	}
	return fmt.Sprintf("%s %s (%s, spec %s)", info.Name, info.Version, info.Vendor, info.SpecVersion)
}
