// Package buildinfo carries version metadata stamped in at link time.
package buildinfo

// Overridden with -ldflags "-X github.com/modoterra/seqcheck/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
