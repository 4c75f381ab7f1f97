// Package version provides centralized version information for stackscan.
// This allows all packages to reference a single source of truth for version info.
package version

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X stackscan/internal/version.Version=1.0.0 -X stackscan/internal/version.Commit=abc123"
var (
	// Version is the semantic version of stackscan
	Version = "2.1.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// Schema is the analysis schema version. It is folded into every
// fingerprint and stamped on every cached payload; bumping the major
// component invalidates all previously cached results.
const Schema = "2.1.0"

// SchemaMajorPrefix returns the accepted major prefix for cached payloads,
// e.g. "2." for schema 2.1.0.
func SchemaMajorPrefix() string {
	for i := 0; i < len(Schema); i++ {
		if Schema[i] == '.' {
			return Schema[:i+1]
		}
	}
	return Schema
}

// Info returns a formatted version string
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns complete version information
func Full() string {
	return "stackscan version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate
}
