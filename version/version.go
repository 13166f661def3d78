// Package version exposes build metadata. Values are injected at build
// time via -ldflags; when absent they fall back to module build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// GitRelease is the release tag, e.g. "v0.3.0".
	GitRelease = ""
	// GitCommit is the commit hash the binary was built from.
	GitCommit = ""
	// GitCommitDate is the commit timestamp.
	GitCommitDate = ""
	// GoInfo describes the Go toolchain and platform.
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		setUnknownDefaults()
		return
	}

	if GitRelease == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		GitRelease = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if GitCommit == "" {
				GitCommit = setting.Value
			}
		case "vcs.time":
			if GitCommitDate == "" {
				GitCommitDate = setting.Value
			}
		}
	}
	setUnknownDefaults()
}

func setUnknownDefaults() {
	if GitRelease == "" {
		GitRelease = "dev"
	}
	if GitCommit == "" {
		GitCommit = "unknown"
	}
	if GitCommitDate == "" {
		GitCommitDate = "unknown"
	}
}
