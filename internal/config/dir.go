// Package config provides the configuration and data directories for
// scout, plus the optional config.yaml settings file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Dir returns the scout configuration directory.
//
// Resolution:
//   - $SCOUT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/scout if set (respects XDG on any platform)
//   - %AppData%/scout on Windows
//   - ~/.config/scout on macOS and Linux
func Dir() string {
	if dir := os.Getenv("SCOUT_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scout")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "scout")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "scout")
}

// DataDir returns the scout data directory, the root for all persisted
// JSON state.
//
// Resolution:
//   - $SCOUT_DATA_HOME if set (explicit override)
//   - $XDG_DATA_HOME/scout if set
//   - %LocalAppData%/scout on Windows
//   - ~/.local/share/scout on macOS and Linux
func DataDir() string {
	if dir := os.Getenv("SCOUT_DATA_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "scout")
	}

	if runtime.GOOS == "windows" {
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "scout")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "scout")
}

// ProjectsDir returns the directory holding per-project data subdirectories.
func ProjectsDir() string {
	return filepath.Join(DataDir(), "projects")
}

// ProjectDataDir returns the data directory for a project, derived from
// the project path's base name. Distinct projects with identical base
// names share a directory; last writer wins, which is acceptable for
// this advisory data.
func ProjectDataDir(projectPath string) string {
	return filepath.Join(ProjectsDir(), SanitizeName(filepath.Base(projectPath)))
}

// CurrentProjectFile returns the path of the global current-project pointer.
func CurrentProjectFile() string {
	return filepath.Join(DataDir(), "current-project.json")
}

// ErrorDBFile returns the path of the global error database.
func ErrorDBFile() string {
	return filepath.Join(DataDir(), "error-database.json")
}

// DebugLogFile returns the path of the hook debug log.
func DebugLogFile() string {
	return filepath.Join(DataDir(), "hook-debug.log")
}

// SanitizeName converts a project name into a safe directory name.
// Alphanumerics, '-' and '_' pass through; everything else becomes '_'.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
