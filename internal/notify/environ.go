package notify

import (
	"os"
	"strings"
)

// compatLayerVars are set by WSL in every process it starts.
var compatLayerVars = []string{
	"WSL_DISTRO_NAME",
	"WSL_INTEROP",
	"WSLENV",
}

// Environ is a snapshot of process environment variables.
type Environ map[string]string

// OSEnviron snapshots the current process environment.
func OSEnviron() Environ {
	env := make(Environ)
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		env[key] = value
	}
	return env
}

// Lookup reports the value of key and whether it is set at all.
func (e Environ) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Profile describes the host as far as backend selection cares.
type Profile struct {
	// CompatLayer is true inside the Windows Subsystem for Linux.
	CompatLayer bool
}

// Detect builds the host profile from env. A marker variable counts when it
// is set, even to the empty string.
func Detect(env Environ) Profile {
	for _, v := range compatLayerVars {
		if _, ok := env.Lookup(v); ok {
			return Profile{CompatLayer: true}
		}
	}
	return Profile{}
}
