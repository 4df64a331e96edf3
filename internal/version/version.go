// Package version provides build-time version information.
package version

import "fmt"

// Set at build time with -ldflags "-X fixthecolor/internal/version.GitCommit=..."
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line version banner for tool name.
func String(name string) string {
	return fmt.Sprintf("%s v%s (built %s, commit %s)", name, Version, BuildTime, GitCommit)
}
