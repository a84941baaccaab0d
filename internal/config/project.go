package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvProjectDir points at a project directory, skipping the walk-up search.
const EnvProjectDir = "DATAEXPLORER_PROJECT_DIR"

// ResolveProjectDir determines the project-local .dataexplorer directory path.
// It checks (in order):
//  1. DATAEXPLORER_PROJECT_DIR, via lookup
//  2. a walk up from startDir to the filesystem root
//
// Returns the absolute path to the .dataexplorer directory or "" if none was
// found. The per-user directory returned by Dir is never a project directory.
func ResolveProjectDir(lookup func(string) (string, bool), startDir string) string {
	if v, ok := lookup(EnvProjectDir); ok && strings.TrimSpace(v) != "" {
		return toAbsProjectDir(strings.TrimSpace(v))
	}
	return FindProjectDir(startDir)
}

// FindProjectDir walks up from startDir and returns the first .dataexplorer
// directory that contains a config.yaml.
func FindProjectDir(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	userDir := Dir()

	for {
		candidate := filepath.Join(dir, dirName)
		if candidate != userDir {
			if info, statErr := os.Stat(filepath.Join(candidate, configFileName)); statErr == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ProjectConfigPath returns the config file inside a project directory.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, configFileName)
}

// toAbsProjectDir converts dir to an absolute path and appends ".dataexplorer"
// unless it already ends with it.
func toAbsProjectDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if filepath.Base(abs) == dirName {
		return abs
	}
	return filepath.Join(abs, dirName)
}
