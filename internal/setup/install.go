package setup

import "sort"

// InstallResult reports what Install changed, per event name.
type InstallResult struct {
	Path      string   `json:"path"`
	Installed []string `json:"installed"`
	Updated   []string `json:"updated,omitempty"`
	Unchanged []string `json:"unchanged,omitempty"`
}

// Install upserts scout's hook entries into the settings file at path,
// invoking the given executable (normally Executable()). Idempotent:
// an entry that already matches is left alone, a stale scout entry
// (old binary path, old timeout) is replaced, and foreign entries are
// preserved.
func Install(path, executable string) (*InstallResult, error) {
	settings, err := readSettings(path)
	if err != nil {
		return nil, err
	}

	hooksObj, _ := settings["hooks"].(map[string]any)
	if hooksObj == nil {
		hooksObj = map[string]any{}
	}

	result := &InstallResult{Path: path}
	for event, entry := range scoutHooks(executable) {
		existing, _ := hooksObj[event].([]any)
		want := entryToMap(entry)

		kept := make([]any, 0, len(existing)+1)
		hadScout := false
		unchanged := false
		for _, raw := range existing {
			entryObj, ok := raw.(map[string]any)
			if !ok || !entryIsScout(entryObj) {
				kept = append(kept, raw)
				continue
			}
			hadScout = true
			if entriesEqual(entryObj, want) {
				unchanged = true
			}
		}
		hooksObj[event] = append(kept, want)

		switch {
		case unchanged:
			result.Unchanged = append(result.Unchanged, event)
		case hadScout:
			result.Updated = append(result.Updated, event)
		default:
			result.Installed = append(result.Installed, event)
		}
	}

	settings["hooks"] = hooksObj
	if err := writeSettings(path, settings); err != nil {
		return nil, err
	}

	sort.Strings(result.Installed)
	sort.Strings(result.Updated)
	sort.Strings(result.Unchanged)
	return result, nil
}
