package app

import "fmt"

// Build information populated via -ldflags at build time, for example
// -X github.com/hyperifyio/quizextract/internal/app.BuildVersion=1.2.0.
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

// VersionString renders the build information for -version output.
func VersionString() string {
	return fmt.Sprintf("quizextract %s (commit %s, built %s)", BuildVersion, BuildCommit, BuildDate)
}
