// Package buildinfo carries the version stamped into ecoscout binaries.
//
// Set at link time:
//
//	go build -ldflags "-X github.com/matzehuels/ecoscout/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/ecoscout/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/ecoscout/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/ecoscout
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, Commit, Date)
}

// UserAgent identifies ecoscout to upstream APIs.
func UserAgent() string {
	return "ecoscout/" + Version
}
