// Package version reports the build's version information.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set at release time:
// go build -ldflags "-X github.com/jamesxoliver/jamesxoliver.github.io/internal/version.Version=v1.0.0".
var Version = "unknown"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by the CLI. Without ldflags the
// module version and VCS revision recorded by the toolchain are used.
func String() string {
	v, commit := Version, GitCommit
	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "unknown" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
		if commit == "unknown" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					commit = s.Value
				}
			}
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("essaysite %s (commit %s, built %s)", v, commit, BuildTime)
}
