// Package buildinfo reports the version stamped into inspectreport binaries.
//
// Release builds set the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/inspectreport/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/inspectreport/pkg/buildinfo.Commit=$(git rev-parse HEAD)" \
//	    ./cmd/inspectreport
//
// Binaries built without them fall back to the module version and VCS
// stamp the Go toolchain records.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Info is the build metadata of the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the build metadata, filling unset ldflags values from the
// embedded module build info.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	return info
}

// Template returns the version template string for cobra.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Date)
}

// Producer returns the name recorded as producer in generated PDFs.
func Producer() string {
	return "inspectreport " + Get().Version
}
