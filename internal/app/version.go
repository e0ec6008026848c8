// Package app wires the configuration, the service layer and the
// presentation modes of polyroots together.
package app

import (
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Build-time variables, set with -ldflags:
//
//	go build -ldflags="-X github.com/agbru/polyroots/internal/app.Version=v1.0.0 -X github.com/agbru/polyroots/internal/app.Commit=abc123"
var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"
	// Commit is the short Git commit hash.
	Commit = "unknown"
	// BuildDate is the ISO 8601 build timestamp.
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version, in any
// position ("polyroots -server --version").
func HasVersionFlag(args []string) bool {
	return slices.ContainsFunc(args, func(arg string) bool {
		return arg == "--version" || arg == "-version" || arg == "-V"
	})
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "polyroots %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", info.OS, info.Arch)
}

// VersionData is the version information in structured form.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns the build and runtime version information.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
