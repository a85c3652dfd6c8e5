package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set via ldflags at build time:
//
//	go build -ldflags "-X github.com/soyeahso/jj-mcp-server/internal/version.Version=1.0.0
//	  -X github.com/soyeahso/jj-mcp-server/internal/version.Commit=abc123
//	  -X github.com/soyeahso/jj-mcp-server/internal/version.Date=2026-01-01"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns a formatted version string.
func Info() string {
	return fmt.Sprintf("jj-mcp-server %s (commit: %s, built: %s, %s/%s)",
		Version, short(Commit), Date, runtime.GOOS, runtime.GOARCH)
}

// Semver returns the version reported to MCP clients during initialize.
// Development builds report 0.0.0-dev.
func Semver() string {
	if Version == "" || Version == "dev" {
		return "0.0.0-dev"
	}
	return strings.TrimPrefix(Version, "v")
}

func short(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}
