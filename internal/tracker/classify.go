package tracker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// UnknownType is the classification when no pattern matches.
const UnknownType = "UNKNOWN"

// errorPattern pairs a coarse error type with the output regex that
// identifies it. Order matters: first match wins.
type errorPattern struct {
	errType string
	re      *regexp.Regexp
}

var errorPatterns = []errorPattern{
	{"NPM_ERROR", regexp.MustCompile(`(?i)npm ERR!|ERESOLVE|E404|ENOENT`)},
	{"TypeScript", regexp.MustCompile(`(?i)TS\d+|type .+ is not assignable|Cannot find module`)},
	{"Build", regexp.MustCompile(`(?i)build failed|compilation error|webpack|vite.*error`)},
	{"Permission", regexp.MustCompile(`(?i)EACCES|permission denied|access denied`)},
	{"Network", regexp.MustCompile(`(?i)ECONNREFUSED|timeout|ETIMEDOUT|getaddrinfo|EADDRINUSE`)},
	{"Syntax", regexp.MustCompile(`(?i)SyntaxError|Unexpected token|ParseError`)},
	{"Runtime", regexp.MustCompile(`(?i)ReferenceError|TypeError|Cannot read property`)},
	{"Database", regexp.MustCompile(`(?i)connection refused|database.*error`)},
	{"Git", regexp.MustCompile(`(?i)fatal:|error: .+git`)},
}

// categories maps error types to broader categories for reporting.
var categories = map[string]string{
	"NPM_ERROR":  "NPM",
	"TypeScript": "TypeScript",
	"Build":      "Build",
	"Permission": "System",
	"Network":    "Network",
	"Syntax":     "Code",
	"Runtime":    "Code",
	"Database":   "Database",
	"Git":        "Git",
}

// suggestions maps error types to canned remediation hints.
var suggestions = map[string]string{
	"NPM_ERROR":  "npm cache clean --force && rm -rf node_modules && npm install",
	"TypeScript": "npx tsc --noEmit to check types",
	"Build":      "Check build configuration and dependencies",
	"Permission": "Run with elevated permissions or check file ownership",
	"Network":    "Check network connection and firewall settings",
	"Database":   "Ensure database server is running: docker-compose up -d",
}

// DetectErrorType classifies command output into a coarse error type.
func DetectErrorType(output string) string {
	for _, pattern := range errorPatterns {
		if pattern.re.MatchString(output) {
			return pattern.errType
		}
	}
	return UnknownType
}

// ErrorCategory maps an error type to its reporting category.
func ErrorCategory(errorType string) string {
	if category, ok := categories[errorType]; ok {
		return category
	}
	return "Unknown"
}

// Suggestion returns the canned remediation hint for an error type.
func Suggestion(errorType string) string {
	if suggestion, ok := suggestions[errorType]; ok {
		return suggestion
	}
	return "Review the error message and check documentation."
}

var messagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)error[:\s]+(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)ERR![:\s]+(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)failed[:\s]+(.+?)(?:\n|$)`),
}

// ExtractErrorMessage pulls the most error-looking line out of command
// output, falling back to the first 200 characters.
func ExtractErrorMessage(output string) string {
	for _, re := range messagePatterns {
		if m := re.FindStringSubmatch(output); m != nil {
			return truncate(strings.TrimSpace(m[1]), 200)
		}
	}

	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "Unknown error"
	}
	return truncate(trimmed, 200)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
