// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/matzehuels/chileviz/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/chileviz/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/chileviz/pkg/buildinfo.Date=$(date -u +%Y-%m-%d)"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information as one line per field.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}

// CacheScope returns the prefix that keeps cache entries of different
// builds apart. Development builds share one scope.
func CacheScope() string {
	if Version == "dev" {
		return "dev"
	}
	return Version + "-" + Commit
}
