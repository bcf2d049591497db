// Package version is the single source of truth for the fileforge version.
// Release builds override these via LDFLAGS; the values here are the
// fallback for plain `go build`.
package version

var (
	// Version is the semantic version of this build.
	Version = "v1.2.0"

	// BuildTime is the build date in YYYY-MM-DD form.
	BuildTime = "2026-09-01"
)
