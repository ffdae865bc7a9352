package cli

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// versionTemplate is printed by --version
func versionTemplate() string {
	return fmt.Sprintf("any-notify version %s\nBuilt from commit: %s\nBuild date: %s\nGo version: %s\n",
		Version, Commit, BuildDate, runtime.Version())
}
