// Package buildinfo reports how the running binary was built.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// Info describes the build of the running binary
type Info struct {
	Version    string
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

// String renders a single-line description suitable for --version
func (i Info) String() string {
	s := i.Version
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		s += fmt.Sprintf(" (commit %s", commit)
		if i.CommitTime != "" {
			s += " at " + i.CommitTime
		}
		if i.Modified {
			s += ", modified"
		}
		s += ")"
	}
	if i.GoVersion != "" {
		s += ", built with " + i.GoVersion
	}
	return s
}

// Get collects build information from the linker-injected Version and the
// module metadata embedded by the Go toolchain
func Get() Info {
	out := Info{Version: Version}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = bi.GoVersion
	out.Package = bi.Path
	if out.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		out.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}
