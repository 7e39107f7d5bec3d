// Package envfile loads environment variables from .env files, used to
// set SCOUT_* overrides in contexts where exporting variables is
// inconvenient. Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a .env file and sets any variables not already present in
// the environment. A missing file is not an error.
func Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	vars, err := Parse(file)
	if err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	Apply(vars)
	return nil
}

// Parse reads KEY=VALUE lines from r into a map. Blank lines and
// #-comments are skipped; an optional "export " prefix and matching
// single or double quotes around values are stripped.
func Parse(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
		if key == "" {
			continue
		}

		vars[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// Apply sets each variable that is not already in the environment.
func Apply(vars map[string]string) {
	for key, value := range vars {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}

// unquote strips one pair of matching single or double quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
