// Package setup installs and removes scout's hook entries in the
// agent's settings.json.
//
// The settings file is owned by the agent and may carry configuration
// scout knows nothing about, so every edit is a read-modify-write on a
// generic map. Foreign hooks and unknown keys pass through untouched;
// scout only ever adds, replaces, or removes entries whose command is
// recognizably its own.
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// hookHandler is one command invocation inside a hook entry.
type hookHandler struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout"`
}

// hookEntry is one matcher group inside a settings.json hooks event.
type hookEntry struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []hookHandler `json:"hooks"`
}

// hookSubcommands are the `scout hook <event>` names, used both to
// build entries and to recognize ours during uninstall.
var hookSubcommands = map[string]bool{
	"session-start": true,
	"session-end":   true,
	"pre-bash":      true,
	"post-bash":     true,
}

// SettingsPath resolves the agent settings file, project-scoped
// (./.claude/settings.json) or user-scoped (~/.claude/settings.json).
func SettingsPath(projectScoped bool) (string, error) {
	if projectScoped {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return filepath.Join(wd, ".claude", "settings.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// Executable returns the command token used in installed hook entries:
// SCOUT_EXECUTABLE if set, else the resolved binary path quoted, else a
// bare "scout" fallback.
func Executable() string {
	if exe := os.Getenv("SCOUT_EXECUTABLE"); exe != "" {
		return exe
	}
	exe, err := os.Executable()
	if err != nil || strings.TrimSpace(exe) == "" {
		return "scout"
	}
	return fmt.Sprintf("%q", exe)
}

// scoutHooks builds the entries to install, keyed by event name.
// Prevention must finish before the agent runs the tool, so pre-bash
// gets the longest timeout.
func scoutHooks(executable string) map[string]hookEntry {
	command := func(sub string) string {
		return executable + " hook " + sub
	}
	return map[string]hookEntry{
		"SessionStart": {
			Matcher: "startup|resume|clear",
			Hooks:   []hookHandler{{Type: "command", Command: command("session-start"), Timeout: 10000}},
		},
		"SessionEnd": {
			Hooks: []hookHandler{{Type: "command", Command: command("session-end"), Timeout: 5000}},
		},
		"PreToolUse": {
			Matcher: "Bash",
			Hooks:   []hookHandler{{Type: "command", Command: command("pre-bash"), Timeout: 10000}},
		},
		"PostToolUse": {
			Matcher: "Bash",
			Hooks:   []hookHandler{{Type: "command", Command: command("post-bash"), Timeout: 5000}},
		},
	}
}

// EventNames returns the hook events scout manages, sorted.
func EventNames() []string {
	hooks := scoutHooks("scout")
	names := make([]string, 0, len(hooks))
	for name := range hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isScoutCommand reports whether a hook command string was installed
// by scout: "<exe> hook <known-subcommand>" where the exe, after
// unquoting, has the basename "scout" or matches the current
// Executable() token. The second case keeps entries installed under
// SCOUT_EXECUTABLE visible to uninstall and status.
func isScoutCommand(command string) bool {
	fields := strings.Fields(strings.TrimSpace(command))
	if len(fields) < 3 || fields[1] != "hook" {
		return false
	}
	if !hookSubcommands[fields[2]] {
		return false
	}
	exe := strings.Trim(fields[0], `"'`)
	if filepath.Base(exe) == "scout" {
		return true
	}
	return exe == strings.Trim(Executable(), `"'`)
}

// entryIsScout reports whether a parsed settings entry contains a
// scout hook command.
func entryIsScout(entry map[string]any) bool {
	hooks, ok := entry["hooks"].([]any)
	if !ok {
		return false
	}
	for _, h := range hooks {
		handler, ok := h.(map[string]any)
		if !ok {
			continue
		}
		if command, _ := handler["command"].(string); isScoutCommand(command) {
			return true
		}
	}
	return false
}

func readSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return settings, nil
}

func writeSettings(path string, settings map[string]any) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// entryToMap round-trips a typed entry through JSON so it compares and
// merges cleanly with entries parsed from the settings file.
func entryToMap(entry hookEntry) map[string]any {
	data, _ := json.Marshal(entry)
	var m map[string]any
	_ = json.Unmarshal(data, &m)
	return m
}

func entriesEqual(a, b map[string]any) bool {
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	return string(aj) == string(bj)
}
