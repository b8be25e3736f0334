// Package version reports what build of autofax is running
package version

import (
	"runtime"
	"runtime/debug"
)

// ServiceName is the name the api reports in logs, metrics and /meta/version
const ServiceName = "autofax-api"

// stamped with -ldflags "-X autofax/internal/core/version.version=v0.3.0 -X ...commit=abc1234 -X ...date=2026-01-02"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// readBuildInfo is swapped in tests
var readBuildInfo = debug.ReadBuildInfo

// BuildInfo describes the running binary
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Modified  bool   `json:"modified,omitempty"`
}

// Info returns ldflags values, falling back to the vcs stamp go build embeds
func Info() BuildInfo {
	bi := BuildInfo{
		Service:   ServiceName,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
	if bi.Commit != "" && bi.Date != "" {
		return bi
	}
	info, ok := readBuildInfo()
	if !ok {
		return fill(bi)
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if bi.Commit == "" {
				bi.Commit = short(s.Value)
			}
		case "vcs.time":
			if bi.Date == "" {
				bi.Date = s.Value
			}
		case "vcs.modified":
			bi.Modified = s.Value == "true"
		}
	}
	return fill(bi)
}

func fill(bi BuildInfo) BuildInfo {
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}

func short(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
