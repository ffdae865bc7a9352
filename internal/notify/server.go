package notify

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const callGetServerInformation = busInterface + ".GetServerInformation"

// ErrNoSessionBus is returned by QueryServer when the environment names no
// session bus.
var ErrNoSessionBus = errors.New("no D-Bus session bus address")

// ServerInfo is what the notification server reports about itself.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// QueryServer asks the session bus notification server to identify itself.
// It is used for reporting only and never takes part in dispatch.
//
// org.freedesktop.Notifications.GetServerInformation returns, in order, the
// product name, vendor, server version and spec version.
func QueryServer(env Environ) (*ServerInfo, error) {
	if addr, _ := env.Lookup("DBUS_SESSION_BUS_ADDRESS"); addr == "" {
		return nil, ErrNoSessionBus
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	defer conn.Close()

	call := conn.Object(busDestination, busObjectPath).Call(callGetServerInformation, 0)
	if call.Err != nil {
		return nil, fmt.Errorf("calling %s: %w", callGetServerInformation, call.Err)
	}

	var info ServerInfo
	if err := call.Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion); err != nil {
		return nil, fmt.Errorf("decoding server information: %w", err)
	}
	return &info, nil
}
