// Command portmerge merges nmap scan results and a port inventory into a
// deduplicated, risk-flagged survey table.
package main

import (
	"github.com/anstrom/portmerge/cmd/cli"
)

// Build information, set with -ldflags "-X main.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
