package tracker

import "strings"

// Severity of a prevention match.
type Severity string

const (
	// SeverityBlocked denies the command outright.
	SeverityBlocked Severity = "BLOCKED"
	// SeverityWarning lets the command proceed with a printed warning.
	SeverityWarning Severity = "WARNING"
)

// Rule is one prevention pattern. Matching is case-insensitive
// substring containment: false positives are tolerated, the list errs
// toward safety.
type Rule struct {
	Pattern  string
	Warning  string
	Severity Severity
}

// builtinRules is the fixed dangerous-command table. Order is priority:
// the first containment match wins.
var builtinRules = []Rule{
	{"rm -rf /", "System destruction", SeverityBlocked},
	{"rm -rf ~", "Home directory deletion", SeverityBlocked},
	{"rm -rf *", "Mass file deletion", SeverityWarning},
	{"DROP DATABASE", "Database deletion", SeverityBlocked},
	{"DROP TABLE", "Table deletion", SeverityWarning},
	{"git push --force", "Force push", SeverityWarning},
	{"git reset --hard", "Hard reset", SeverityWarning},
	{"npm publish", "Package publish requires confirmation", SeverityWarning},
	{"chmod 777", "Insecure permissions", SeverityWarning},
	{"mkfs", "Filesystem format", SeverityBlocked},
	{"> /dev/sda", "Raw device overwrite", SeverityBlocked},
}

// Decision is the outcome of a prevention check.
type Decision struct {
	Matched  bool     `json:"shouldApplyPrevention"`
	Pattern  string   `json:"pattern,omitempty"`
	Warning  string   `json:"warning,omitempty"`
	Severity Severity `json:"severity,omitempty"`
}

// Blocked reports whether the decision denies execution.
func (d Decision) Blocked() bool {
	return d.Matched && d.Severity == SeverityBlocked
}

// CheckCommand matches a candidate command against the built-in rule
// table plus any extra rules, first match wins.
func CheckCommand(command string, extra []Rule) Decision {
	lower := strings.ToLower(command)

	for _, rule := range append(builtinRules[:len(builtinRules):len(builtinRules)], extra...) {
		if rule.Pattern == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(rule.Pattern)) {
			return Decision{
				Matched:  true,
				Pattern:  rule.Pattern,
				Warning:  rule.Warning,
				Severity: rule.Severity,
			}
		}
	}
	return Decision{}
}
