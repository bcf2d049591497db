// fileforge - file and folder manager with cloud uploads
package main

import (
	"os"

	"github.com/fileforge/fileforge/internal/cli"
	"github.com/fileforge/fileforge/internal/version"
)

// Version information, overridden at release time via LDFLAGS.
var (
	Version   = version.Version
	BuildTime = version.BuildTime
)

func main() {
	version.Version = Version
	version.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
