package tracker

import (
	"regexp"
	"strings"
)

// normalization rewrites variable command fragments (package names,
// branches, paths, ports, hosts) into placeholders so that different
// invocations of the same operation share one pattern.
type normalization struct {
	re          *regexp.Regexp
	replacement string
}

var normalizations = []normalization{
	{regexp.MustCompile(`npm install\s+[\w@/.-]+`), "npm install {package}"},
	{regexp.MustCompile(`npm i\s+[\w@/.-]+`), "npm install {package}"},
	{regexp.MustCompile(`yarn add\s+[\w@/.-]+`), "yarn add {package}"},
	{regexp.MustCompile(`pip install\s+[\w.-]+`), "pip install {package}"},
	{regexp.MustCompile(`go get\s+[\w@/.-]+`), "go get {package}"},
	{regexp.MustCompile(`git push\s+\S+\s+\S+`), "git push {remote} {branch}"},
	{regexp.MustCompile(`git checkout\s+[\w/.-]+`), "git checkout {branch}"},
	{regexp.MustCompile(`git merge\s+[\w/.-]+`), "git merge {branch}"},
	{regexp.MustCompile(`[A-Za-z]:\\[\w\\/.-]+`), "{path}"},
	{regexp.MustCompile(`/[\w/.-]+`), "{path}"},
	{regexp.MustCompile(`:\d{4,5}`), ":{port}"},
	{regexp.MustCompile(`port\s+\d+`), "port {port}"},
	{regexp.MustCompile(`localhost|127\.0\.0\.1`), "{host}"},
}

// NormalizeCommand rewrites a shell command into its matching pattern.
func NormalizeCommand(command string) string {
	normalized := command
	for _, n := range normalizations {
		normalized = n.re.ReplaceAllString(normalized, n.replacement)
	}
	return strings.TrimSpace(normalized)
}
