// Package buildinfo holds build-time variables injected via ldflags.
package buildinfo

import "fmt"

// Populated by -ldflags at build time; defaults used for local dev.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// String renders the build metadata as a single line for `phonebook version`.
func String() string {
	return fmt.Sprintf("phonebook %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
