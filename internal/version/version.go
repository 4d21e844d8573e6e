// Package version holds build version information.
package version

// Version is the application version, overridable at build time with
// -ldflags "-X radar-scope/internal/version.Version=...".
var Version = "0.3.0"

// BuildTime and GitCommit are set at build time via -ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// AppName is the human-readable application name.
const AppName = "Radar Scope Annotator"
