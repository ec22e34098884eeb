package handler

import (
	"net/http"
	"runtime"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Injected with -ldflags "-X ...".
var (
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HandleVersion reports the running build. configured is the VERSION the
// process was started with and is used when no build-time version was set.
func HandleVersion(configured string) http.HandlerFunc {
	info := VersionInfo{
		Version:   configured,
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}
