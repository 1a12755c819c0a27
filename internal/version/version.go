// Package version exposes build metadata set via -ldflags.
package version

// Build metadata, overridden at link time.
var (
	Version = "dev"
	Commit  = "unknown"
)
