/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulkstore

import (
	"runtime"
	"runtime/debug"
)

// Version, GitCommit and BuildDate can be set with -ldflags -X. Unset commit
// and date fall back to the VCS stamp of the binary.
var (
	Version   = "0.1.0"
	GitCommit = ""
	BuildDate = ""
)

// VersionInfo describes the running build, as printed by bulkctl -version.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo returns the version information
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}

	var settings []debug.BuildSetting
	if bi, ok := debug.ReadBuildInfo(); ok {
		settings = bi.Settings
	}
	return info.withBuildSettings(settings)
}

func (v VersionInfo) withBuildSettings(settings []debug.BuildSetting) VersionInfo {
	dirty, fromVCS := false, false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if v.GitCommit == "" {
				v.GitCommit = s.Value
				fromVCS = true
			}
		case "vcs.time":
			if v.BuildDate == "" {
				v.BuildDate = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if v.GitCommit == "" {
		v.GitCommit = "unknown"
	} else if dirty && fromVCS {
		v.GitCommit += "-dirty"
	}
	if v.BuildDate == "" {
		v.BuildDate = "unknown"
	}
	return v
}
