package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scouthq/scout/internal/tracker"
)

// Settings represents configuration loaded from config.yaml.
// Field names match snake_case YAML keys. All fields are optional;
// zero values fall back to the defaults below.
type Settings struct {
	Scan       ScanSettings       `yaml:"scan"`
	Prevention PreventionSettings `yaml:"prevention"`
}

// ScanSettings bound the discovery and dependency scanners.
type ScanSettings struct {
	MaxDepth    int      `yaml:"max_depth"`
	DetectDepth int      `yaml:"detect_depth"`
	SampleCap   int      `yaml:"sample_cap"`
	Exclude     []string `yaml:"exclude"`
	Collapse    []string `yaml:"collapse"`
}

// PreventionSettings extends the built-in dangerous-command table.
type PreventionSettings struct {
	ExtraPatterns []PreventionPattern `yaml:"extra_patterns"`
}

// PreventionPattern is a user-supplied dangerous-command pattern.
// Severity is "blocked" or "warning"; anything else is treated as warning.
type PreventionPattern struct {
	Pattern  string `yaml:"pattern"`
	Warning  string `yaml:"warning"`
	Severity string `yaml:"severity"`
}

// Rules converts the extra patterns into tracker rules.
func (p PreventionSettings) Rules() []tracker.Rule {
	rules := make([]tracker.Rule, 0, len(p.ExtraPatterns))
	for _, pattern := range p.ExtraPatterns {
		severity := tracker.SeverityWarning
		if strings.EqualFold(pattern.Severity, string(tracker.SeverityBlocked)) {
			severity = tracker.SeverityBlocked
		}
		rules = append(rules, tracker.Rule{
			Pattern:  pattern.Pattern,
			Warning:  pattern.Warning,
			Severity: severity,
		})
	}
	return rules
}

const (
	defaultMaxDepth    = 5
	defaultDetectDepth = 3
	defaultSampleCap   = 20
)

// defaultExclude names directories omitted from scans entirely.
func defaultExclude() []string {
	return []string{".git", ".hg", ".svn", "__pycache__", ".next", ".cache", ".venv", "venv"}
}

// defaultCollapse names large directories collapsed to a summary line.
func defaultCollapse() []string {
	return []string{"node_modules", "dist", "build", "target", "vendor"}
}

// DefaultSettings returns the settings used when no config.yaml exists.
func DefaultSettings() Settings {
	return Settings{
		Scan: ScanSettings{
			MaxDepth:    defaultMaxDepth,
			DetectDepth: defaultDetectDepth,
			SampleCap:   defaultSampleCap,
			Exclude:     defaultExclude(),
			Collapse:    defaultCollapse(),
		},
	}
}

// LoadSettings reads config.yaml from the config directory and applies
// defaults for any missing field. A missing or malformed file yields
// the defaults; settings must never fail a hook invocation.
func LoadSettings() Settings {
	return loadSettingsFrom(filepath.Join(Dir(), "config.yaml"))
}

func loadSettingsFrom(path string) Settings {
	settings := DefaultSettings()

	// Absent or unreadable config yields the defaults.
	data, err := os.ReadFile(path)
	if err != nil {
		return settings
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return settings
	}

	if loaded.Scan.MaxDepth > 0 {
		settings.Scan.MaxDepth = loaded.Scan.MaxDepth
	}
	if loaded.Scan.DetectDepth > 0 {
		settings.Scan.DetectDepth = loaded.Scan.DetectDepth
	}
	if loaded.Scan.SampleCap > 0 {
		settings.Scan.SampleCap = loaded.Scan.SampleCap
	}
	if len(loaded.Scan.Exclude) > 0 {
		settings.Scan.Exclude = loaded.Scan.Exclude
	}
	if len(loaded.Scan.Collapse) > 0 {
		settings.Scan.Collapse = loaded.Scan.Collapse
	}
	settings.Prevention.ExtraPatterns = loaded.Prevention.ExtraPatterns

	return settings
}
