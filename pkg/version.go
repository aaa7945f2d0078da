// Package fixgen carries build metadata shared by the fixgen CLI.
package fixgen

var (
	// Version of fixgen, set at build time with -ldflags.
	Version = "v0.1.0"
	// Build timestamp, set at build time with -ldflags.
	Build = "n/a"
)
