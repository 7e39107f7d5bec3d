// Package detect classifies a project directory by its manifest files.
//
// Detection is a bounded breadth-first search: the starting directory
// is probed first, then its children level by level, so the shallowest
// manifest always wins. Unreadable directories and malformed manifests
// are skipped, never surfaced as errors.
package detect

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// TypeUnknown is the result type when no manifest is found within the
// depth bound.
const TypeUnknown = "unknown"

// Result is the outcome of project detection.
type Result struct {
	Type       string `json:"projectType"`
	Framework  string `json:"framework"`
	Platform   string `json:"platform"`
	DetectedAt string `json:"detectedAt"`
}

// Unknown returns the sentinel result for undetected projects.
func Unknown() Result {
	return Result{Type: TypeUnknown}
}

// IsUnknown reports whether the result carries no detection.
func (r Result) IsUnknown() bool {
	return r.Type == "" || r.Type == TypeUnknown
}

// skipDirs are never descended into during detection.
// The depth bound already guards against symlink loops.
var skipDirs = map[string]bool{
	"node_modules": true,
	"venv":         true,
	".venv":        true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
	"target":       true,
}

// Detect searches root and its subdirectories (to maxDepth levels below
// root) for a known project manifest and returns the classification.
// It never returns an error: missing or unreadable paths yield Unknown.
func Detect(root string, maxDepth int) Result {
	level := []string{root}

	for depth := 0; depth <= maxDepth && len(level) > 0; depth++ {
		var next []string
		for _, dir := range level {
			if result, ok := classifyDir(dir); ok {
				return result
			}
			next = append(next, subdirs(dir)...)
		}
		level = next
	}

	return Unknown()
}

// classifyDir probes a single directory for manifests, in priority order.
func classifyDir(dir string) (Result, bool) {
	if result, ok := classifyNode(dir); ok {
		return result, true
	}
	if result, ok := classifyPython(dir); ok {
		return result, true
	}
	if fileExists(filepath.Join(dir, "Cargo.toml")) {
		return Result{Type: "rust", Framework: "rust", Platform: "general", DetectedAt: dir}, true
	}
	if fileExists(filepath.Join(dir, "go.mod")) {
		return Result{Type: "go", Framework: "go", Platform: "general", DetectedAt: dir}, true
	}
	if fileExists(filepath.Join(dir, "pubspec.yaml")) {
		return Result{Type: "dart", Framework: "flutter", Platform: "mobile", DetectedAt: dir}, true
	}
	return Result{}, false
}

// classifyNode detects a Node.js project from package.json and infers
// the framework from its dependency names.
func classifyNode(dir string) (Result, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil || !gjson.ValidBytes(data) {
		return Result{}, false
	}

	deps := make(map[string]bool)
	for _, section := range []string{"dependencies", "devDependencies"} {
		gjson.GetBytes(data, section).ForEach(func(key, _ gjson.Result) bool {
			deps[key.String()] = true
			return true
		})
	}

	result := Result{Type: "node", DetectedAt: dir}
	switch {
	case deps["react-native"] || deps["expo"]:
		result.Framework, result.Platform = "react-native", "mobile"
	case deps["next"]:
		result.Framework, result.Platform = "nextjs", "web"
	case deps["react"]:
		result.Framework, result.Platform = "react", "web"
	case deps["express"]:
		result.Framework, result.Platform = "express", "api"
	case deps["fastify"]:
		result.Framework, result.Platform = "fastify", "api"
	case deps["vue"]:
		result.Framework, result.Platform = "vue", "web"
	default:
		result.Framework, result.Platform = "node", "general"
	}
	return result, true
}

// classifyPython detects a Python project and distinguishes django from
// generic app entry points.
func classifyPython(dir string) (Result, bool) {
	if !fileExists(filepath.Join(dir, "requirements.txt")) &&
		!fileExists(filepath.Join(dir, "pyproject.toml")) {
		return Result{}, false
	}

	result := Result{Type: "python", Framework: "python", Platform: "general", DetectedAt: dir}
	switch {
	case fileExists(filepath.Join(dir, "manage.py")):
		result.Framework, result.Platform = "django", "web"
	case fileExists(filepath.Join(dir, "app.py")), fileExists(filepath.Join(dir, "main.py")):
		result.Framework, result.Platform = "flask-or-fastapi", "api"
	}
	return result, true
}

// subdirs lists the child directories eligible for descent, sorted by
// name for deterministic results.
func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || skipDirs[name] {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, name))
	}
	sort.Strings(dirs)
	return dirs
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
