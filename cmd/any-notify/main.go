// any-notify - Portable desktop notifications
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/any-notify

package main

import (
	"os"

	"github.com/ariel-frischer/any-notify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
