// Package version reports build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/rshade/dataexplorer/internal/version.version=1.2.3"
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Info is the full build description printed by `dataexplorer version`.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Release   bool   `json:"release"`
}

// GetVersion returns the version without a leading "v".
func GetVersion() string {
	return strings.TrimPrefix(version, "v")
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// Semver parses the build version.
func Semver() (*semver.Version, error) {
	return parse(version)
}

func parse(raw string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", raw, err)
	}
	return v, nil
}

// IsRelease reports whether the build version is a valid semver without a prerelease tag.
func IsRelease() bool {
	return isRelease(version)
}

func isRelease(raw string) bool {
	v, err := parse(raw)
	return err == nil && v.Prerelease() == ""
}

// UserAgent returns the User-Agent sent to the API for ver.
// Prerelease and malformed versions are marked as development builds.
func UserAgent(ver string) string {
	ua := "dataexplorer/" + strings.TrimPrefix(ver, "v")
	if !isRelease(ver) {
		ua += " (development build)"
	}
	return ua
}

// Get returns the build description.
func Get() Info {
	return Info{
		Version:   GetVersion(),
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Release:   IsRelease(),
	}
}

func (i Info) String() string {
	s := fmt.Sprintf("dataexplorer v%s (commit %s, built %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
	if !i.Release {
		s += " [development build]"
	}
	return s
}
