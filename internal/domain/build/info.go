// Package build describes the running lockbreak binary.
package build

import (
	"runtime/debug"
)

const (
	unknown    = "unknown"
	devVersion = "dev"
	// shortCommitLen matches `git rev-parse --short=12`.
	shortCommitLen = 12
)

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// Resolve fills the fields ldflags left empty from the module build info,
// which `go install` embeds.
func Resolve(info Info) Info {
	bi, _ := debug.ReadBuildInfo()
	return info.Complete(bi)
}

// Complete fills empty or placeholder fields from bi. Fields still unknown
// afterwards read "unknown". bi may be nil.
func (i Info) Complete(bi *debug.BuildInfo) Info {
	if bi != nil {
		if isPlaceholder(i.Version) || i.Version == devVersion {
			if v := bi.Main.Version; v != "" && v != "(devel)" {
				i.Version = v
			}
		}
		if isPlaceholder(i.GoVersion) {
			i.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if isPlaceholder(i.Commit) {
					i.Commit = shortCommit(s.Value)
				}
			case "vcs.time":
				if isPlaceholder(i.BuildDate) {
					i.BuildDate = s.Value
				}
			}
		}
	}

	i.Version = orUnknown(i.Version)
	i.Commit = orUnknown(i.Commit)
	i.BuildDate = orUnknown(i.BuildDate)
	i.GoVersion = orUnknown(i.GoVersion)
	return i
}

// Short renders "v1.2.0 (3f2a9c1d0b7e)" for one-line output.
func (i Info) Short() string {
	i = i.Complete(nil)
	if i.Commit == unknown {
		return i.Version
	}
	return i.Version + " (" + i.Commit + ")"
}

func isPlaceholder(s string) bool {
	return s == "" || s == unknown
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

func shortCommit(rev string) string {
	if len(rev) > shortCommitLen {
		return rev[:shortCommitLen]
	}
	return rev
}

// Contributors returns the list of project contributors.
func Contributors() []string {
	return []string{"bnema"}
}

// RepoURL returns the GitHub repository URL.
func RepoURL() string {
	return "https://github.com/bnema/lockbreak"
}
