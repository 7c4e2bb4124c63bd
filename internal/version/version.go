// Package version exposes build information stamped in via ldflags.
package version

import "fmt"

// Build-time variables set by ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the raw version components.
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String renders the version line printed by the version command.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
