// Package discover builds a structural summary of a project tree: a
// bounded-depth directory structure, detected tech-stack markers, and
// entry-point files.
//
// The scan is best-effort by contract: unreadable subtrees are marked
// and skipped, dependency caches are excluded or collapsed to summary
// lines, and the walk always completes rather than failing the hook
// that requested it.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Marker values used in the structure tree.
const (
	fileMarker       = "file"
	unreadableMarker = "[unreadable]"
)

// Report is the persisted output of a discovery scan.
type Report struct {
	Root        string         `json:"root"`
	TechStack   []string       `json:"techStack"`
	EntryPoints []string       `json:"entryPoints"`
	Deps        Dependencies   `json:"dependencies"`
	Structure   map[string]any `json:"structure"`
}

// Dependencies annotates the report with declared and scanned
// dependency information.
type Dependencies struct {
	// NPM lists dependency names declared in the root package.json.
	NPM []string `json:"npm,omitempty"`
	// ImportedBy maps a project-relative file to the files that import
	// it, as produced by the deps scanner.
	ImportedBy map[string][]string `json:"importedBy,omitempty"`
}

// Options bound the scan.
type Options struct {
	MaxDepth int
	Exclude  []string // directory names omitted entirely
	Collapse []string // directory names reduced to a summary line
}

// techMarkers maps marker filenames to tech-stack labels.
var techMarkers = map[string]string{
	"package.json":         "Node.js/NPM",
	"tsconfig.json":        "TypeScript",
	"requirements.txt":     "Python (pip)",
	"pyproject.toml":       "Python (pyproject)",
	"go.mod":               "Go",
	"Cargo.toml":           "Rust",
	"pubspec.yaml":         "Flutter/Dart",
	"next.config.js":       "Next.js",
	"next.config.mjs":      "Next.js",
	"tailwind.config.js":   "Tailwind CSS",
	"expo.json":            "Expo/React Native",
	"docker-compose.yml":   "Docker Compose",
	"Dockerfile":           "Docker",
	"CLAUDE.md":            "Agent Context",
	".env":                 "Environment Config",
	"prisma/schema.prisma": "Prisma ORM",
}

// entryPointCandidates are checked relative to the project root.
var entryPointCandidates = []string{
	"src/index.ts",
	"src/main.ts",
	"src/index.js",
	"src/main.js",
	"index.js",
	"index.ts",
	"app.js",
	"app.py",
	"main.py",
	"main.go",
}

// Scan walks the project tree rooted at root and returns the report.
// It returns an error only when the root itself cannot be read;
// everything below the root degrades to a partial report.
func Scan(root string, opts Options) (*Report, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, err
	}

	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 5
	}
	exclude := toSet(opts.Exclude)
	collapse := toSet(opts.Collapse)

	report := &Report{
		Root:        absRoot,
		TechStack:   []string{},
		EntryPoints: []string{},
	}

	report.Structure = buildTree(absRoot, 0, opts.MaxDepth, exclude, collapse)
	report.TechStack = detectTechStack(absRoot)
	report.EntryPoints = findEntryPoints(absRoot)
	report.Deps.NPM = npmDependencies(absRoot)

	return report, nil
}

// buildTree returns the nested structure map for dir. Directories map
// to nested maps, files to the file marker, collapsed directories to a
// summary string.
func buildTree(dir string, depth, maxDepth int, exclude, collapse map[string]bool) map[string]any {
	tree := make(map[string]any)

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directory: mark and move on.
		tree[unreadableMarker] = true
		return tree
	}

	sortEntries(entries)

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || exclude[name] {
			continue
		}

		if !entry.IsDir() {
			tree[name] = fileMarker
			continue
		}

		sub := filepath.Join(dir, name)
		switch {
		case collapse[name]:
			tree[name] = collapseSummary(sub)
		case depth+1 > maxDepth:
			tree[name] = "..."
		default:
			tree[name] = buildTree(sub, depth+1, maxDepth, exclude, collapse)
		}
	}

	return tree
}

// collapseSummary produces the "[N files: a, b, c, ...]" line for a
// collapsed directory. The count is recursive; the samples are the
// first few immediate children.
func collapseSummary(dir string) string {
	count := countFiles(dir)

	var samples []string
	if entries, err := os.ReadDir(dir); err == nil {
		for _, entry := range entries {
			if len(samples) == 3 {
				samples = append(samples, "...")
				break
			}
			samples = append(samples, entry.Name())
		}
	}

	if len(samples) == 0 {
		return "[0 files]"
	}
	return "[" + strconv.Itoa(count) + " files: " + strings.Join(samples, ", ") + "]"
}

// countFiles counts regular files under dir recursively, best-effort.
func countFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are simply not counted
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count
}

// detectTechStack probes for marker files within a few levels of root.
func detectTechStack(root string) []string {
	found := make(map[string]bool)

	// Markers containing a path separator are probed directly.
	for marker, label := range techMarkers {
		if strings.Contains(marker, "/") {
			if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(marker))); err == nil {
				found[label] = true
			}
		}
	}

	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if depth > 3 {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				if !strings.HasPrefix(name, ".") && !skipTechDirs[name] {
					walk(filepath.Join(dir, name), depth+1)
				}
				continue
			}
			if label, ok := techMarkers[name]; ok {
				found[label] = true
			}
		}
	}
	walk(root, 0)

	stack := make([]string, 0, len(found))
	for label := range found {
		stack = append(stack, label)
	}
	sort.Strings(stack)
	return stack
}

var skipTechDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"venv":         true,
	"__pycache__":  true,
}

// findEntryPoints checks the fixed candidate list plus cmd/*/main.go.
func findEntryPoints(root string) []string {
	var entries []string
	for _, candidate := range entryPointCandidates {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(candidate))); err == nil {
			entries = append(entries, candidate)
		}
	}

	// Go convention: cmd/<name>/main.go
	if matches, err := filepath.Glob(filepath.Join(root, "cmd", "*", "main.go")); err == nil {
		for _, match := range matches {
			if rel, err := filepath.Rel(root, match); err == nil {
				entries = append(entries, filepath.ToSlash(rel))
			}
		}
	}

	if entries == nil {
		entries = []string{}
	}
	return entries
}

// npmDependencies lists dependency names from the root package.json.
func npmDependencies(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil || !gjson.ValidBytes(data) {
		return nil
	}

	var names []string
	gjson.GetBytes(data, "dependencies").ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	sort.Strings(names)
	return names
}

// sortEntries orders directories before files, case-insensitively.
func sortEntries(entries []os.DirEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
