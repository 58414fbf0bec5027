// Package buildinfo holds the version stamped into owl2json binaries.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/tburdett/owl2json/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/tburdett/owl2json/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/tburdett/owl2json/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/owl2json
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
