// Package version exposes build and runtime information for erdtree.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// These variables are set during build time
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// BuildInfo contains build and runtime information.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`

	GoVersion string `json:"go_version"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

// GetBuildInfo returns the build information for the current binary.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	// Prefer VCS metadata stamped by the toolchain when nothing was set at
	// build time.
	if bi, ok := debug.ReadBuildInfo(); ok && info.GitCommit == "unknown" {
		for _, setting := range bi.Settings {
			if setting.Key == "vcs.revision" {
				info.GitCommit = setting.Value
			}
		}
	}

	return info
}

// FullVersion returns a multi-line description of the build.
func FullVersion() string {
	info := GetBuildInfo()

	return fmt.Sprintf(
		"erdtree %s\n  commit:   %s\n  built:    %s\n  go:       %s (%s)\n  platform: %s",
		info.Version, info.GitCommit, info.BuildDate,
		info.GoVersion, info.Compiler, info.Platform,
	)
}
