package setup

import "sort"

// UninstallResult reports which events had scout entries removed.
type UninstallResult struct {
	Path    string   `json:"path"`
	Removed []string `json:"removed"`
}

// Uninstall strips scout's hook entries from the settings file at
// path, leaving foreign entries and all other settings intact. Events
// left with no entries are deleted outright.
func Uninstall(path string) (*UninstallResult, error) {
	settings, err := readSettings(path)
	if err != nil {
		return nil, err
	}

	result := &UninstallResult{Path: path, Removed: []string{}}
	hooksObj, _ := settings["hooks"].(map[string]any)
	if hooksObj == nil {
		return result, nil
	}

	for _, event := range EventNames() {
		entries, ok := hooksObj[event].([]any)
		if !ok {
			continue
		}

		kept := make([]any, 0, len(entries))
		for _, raw := range entries {
			entryObj, ok := raw.(map[string]any)
			if ok && entryIsScout(entryObj) {
				continue
			}
			kept = append(kept, raw)
		}

		if len(kept) != len(entries) {
			result.Removed = append(result.Removed, event)
		}
		if len(kept) == 0 {
			delete(hooksObj, event)
		} else {
			hooksObj[event] = kept
		}
	}

	settings["hooks"] = hooksObj
	if err := writeSettings(path, settings); err != nil {
		return nil, err
	}

	sort.Strings(result.Removed)
	return result, nil
}

// EventStatus describes one managed event in a settings file.
type EventStatus struct {
	Event     string `json:"event"`
	Installed bool   `json:"installed"`
	Command   string `json:"command,omitempty"`
}

// Status inspects the settings file at path and reports, per managed
// event, whether a scout entry is present.
func Status(path string) ([]EventStatus, error) {
	settings, err := readSettings(path)
	if err != nil {
		return nil, err
	}
	hooksObj, _ := settings["hooks"].(map[string]any)

	statuses := make([]EventStatus, 0, len(EventNames()))
	for _, event := range EventNames() {
		status := EventStatus{Event: event}
		if entries, ok := hooksObj[event].([]any); ok {
			for _, raw := range entries {
				entryObj, ok := raw.(map[string]any)
				if !ok || !entryIsScout(entryObj) {
					continue
				}
				status.Installed = true
				if hooks, ok := entryObj["hooks"].([]any); ok && len(hooks) > 0 {
					if handler, ok := hooks[0].(map[string]any); ok {
						status.Command, _ = handler["command"].(string)
					}
				}
				break
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
