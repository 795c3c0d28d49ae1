// Package version holds build metadata for the sarif2xccdf binary.
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"     // Default value if not built with LDFLAGS
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// String formats the build metadata as printed by the version command.
func String() string {
	return fmt.Sprintf("sarif2xccdf version %s\nCommit: %s\nBuilt: %s\n", Version, CommitHash, BuildDate)
}
