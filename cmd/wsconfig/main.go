// wsconfig CLI - resolve SOAP client configurations and inspect the handler
// chains they install.
package main

import "github.com/getmockd/wsconfig/pkg/cli"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.SetBuildInfo(Version, Commit, BuildDate)
	cli.Execute()
}
