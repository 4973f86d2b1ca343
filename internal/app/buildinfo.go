package app

import "runtime/debug"

// Set with -ldflags "-X github.com/hyperifyio/amcextract/internal/app.BuildVersion=..."
var (
	BuildVersion = ""
	BuildCommit  = ""
)

// Version reports the binary version and VCS revision. Values missing from
// the ldflags fall back to the module build info; a plain test or `go run`
// build reports "devel" and "unknown".
func Version() (version, commit string) {
	version, commit = BuildVersion, BuildCommit
	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		for _, s := range info.Settings {
			if commit == "" && s.Key == "vcs.revision" {
				commit = s.Value
			}
		}
	}
	if version == "" {
		version = "devel"
	}
	if commit == "" {
		commit = "unknown"
	}
	return version, commit
}
