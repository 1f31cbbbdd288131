// Package version exposes the installer's own release version. This is the
// version stamped into generated config headers; it is unrelated to the
// firmware version descriptors handled by internal/semver.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/railkit/exinstall/internal/version.Version=v1.2.3 \
//	                   -X github.com/railkit/exinstall/internal/version.Commit=abc123"
//
// If not set, they are populated from VCS build info at runtime when
// available, falling back to "dev" with a timestamp.
var (
	// Version is the semantic version of the installer
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo()
	}
	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo fills in whatever the Go toolchain recorded about the VCS
// state of the build. Release tags are not part of build info, so Version
// only ever gets a dated dev placeholder from here.
func fromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	var revision, modified, vcsTime string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	if Commit == "" && revision != "" {
		if len(revision) > 7 {
			Commit = revision[:7]
		} else {
			Commit = revision
		}
		if modified == "true" {
			Commit += "-dirty"
		}
	}

	if Version == "" && vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
