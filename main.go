// Command testit is a command line client for the TestIT API.
package main

import (
	"github.com/s0up4200/testit/cmd"
)

// Set at build time with -ldflags "-X main.version=..."
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, buildTime)
	cmd.Execute()
}
