// Package version reports the build identity of the sprintdesk binary.
package version

import "fmt"

// Set at build time via -ldflags "-X github.com/example/sprintdesk/internal/version.Commit=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version line shown by --version.
func String() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("sprintdesk %s (commit: %s, built: %s)", Version, commit, BuildTime)
}
