// Package version holds build metadata injected at link time.
package version

import "runtime/debug"

// Set via -ldflags "-X github.com/Sumatoshi-tech/heapkit/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const revisionKey = "vcs.revision"

// InitBinaryVersion fills unset fields from the embedded module build info,
// so `go install` builds report something better than "dev".
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Commit != "none" {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == revisionKey {
			Commit = setting.Value
		}
	}
}
