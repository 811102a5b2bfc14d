// Package buildinfo carries the version stamp reported by the banner and the
// shell's version command.
package buildinfo

import "runtime/debug"

// Version, Commit and Date are set at link time:
//
//	go build -ldflags "-X ember/internal/buildinfo.Version=v0.3.0"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the banner and window title.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	if rev := vcsRevision(); rev != "" {
		return rev
	}
	return "dev"
}

// vcsRevision falls back to the revision the go tool embeds for module builds.
func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
