// Package deps builds an "imported by" map for a project via regex
// text scanning.
//
// This is a bounded, best-effort heuristic, not a module resolver:
// imports are matched with regular expressions over a capped sample of
// source files, and only specifiers that resolve to files inside the
// project are kept. Missed imports and matches inside comments or
// strings are accepted limitations.
package deps

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultSampleCap bounds how many source files are scanned.
const DefaultSampleCap = 20

// sourceExtensions are the file types the scanner samples.
var sourceExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
	".py":  true,
}

var (
	// import defaultExport from './x'; import './x'; import {a, b} from "./x"
	esImportRe = regexp.MustCompile(`(?m)import\s+(?:[\w{}\s,*$]+\s+from\s+)?['"]([^'"]+)['"]`)
	// require('./x') and dynamic import('./x')
	requireRe = regexp.MustCompile(`(?:require|import)\(\s*['"]([^'"]+)['"]\s*\)`)
	// fetch('/api/x') / axios.get('/api/x') — kept for parity with the
	// other patterns; non-file targets are dropped during resolution.
	httpCallRe = regexp.MustCompile(`(?:fetch|axios(?:\.\w+)?)\(\s*['"]([^'"]+)['"]`)
	// import a.b.c
	pyImportRe = regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`)
	// from a.b import c
	pyFromRe = regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import`)
)

// Scan samples up to sampleCap source files under root and returns a
// map from project-relative file path to the sorted list of files that
// import it. Directories named in exclude (and dotdirs) are skipped.
func Scan(root string, sampleCap int, exclude []string) map[string][]string {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return map[string][]string{}
	}

	files := sampleFiles(absRoot, sampleCap, toSet(exclude))

	importedBy := make(map[string]map[string]bool)
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}

		for _, spec := range extractSpecifiers(rel, string(data)) {
			target := resolve(absRoot, rel, spec)
			if target == "" || target == rel {
				continue
			}
			if importedBy[target] == nil {
				importedBy[target] = make(map[string]bool)
			}
			importedBy[target][rel] = true
		}
	}

	result := make(map[string][]string, len(importedBy))
	for target, importers := range importedBy {
		list := make([]string, 0, len(importers))
		for importer := range importers {
			list = append(list, importer)
		}
		sort.Strings(list)
		result[target] = list
	}
	return result
}

// sampleFiles walks the tree breadth-first and returns up to limit
// project-relative source file paths.
func sampleFiles(root string, limit int, exclude map[string]bool) []string {
	var files []string
	level := []string{root}

	for len(level) > 0 && len(files) < limit {
		var next []string
		for _, dir := range level {
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				name := entry.Name()
				if strings.HasPrefix(name, ".") {
					continue
				}
				full := filepath.Join(dir, name)
				if entry.IsDir() {
					if !exclude[name] {
						next = append(next, full)
					}
					continue
				}
				if !sourceExtensions[filepath.Ext(name)] {
					continue
				}
				if rel, err := filepath.Rel(root, full); err == nil {
					files = append(files, filepath.ToSlash(rel))
					if len(files) == limit {
						return files
					}
				}
			}
		}
		level = next
	}
	return files
}

// extractSpecifiers pulls raw import targets out of a file's text,
// choosing pattern sets by language.
func extractSpecifiers(rel, content string) []string {
	var specs []string

	if strings.HasSuffix(rel, ".py") {
		for _, m := range pyImportRe.FindAllStringSubmatch(content, -1) {
			specs = append(specs, m[1])
		}
		for _, m := range pyFromRe.FindAllStringSubmatch(content, -1) {
			specs = append(specs, m[1])
		}
		return specs
	}

	for _, re := range []*regexp.Regexp{esImportRe, requireRe, httpCallRe} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			specs = append(specs, m[1])
		}
	}
	return specs
}

// resolve maps a specifier to a project-relative file path, or ""
// when the specifier is external (a package, a URL) or unresolvable.
func resolve(root, importer, spec string) string {
	if strings.HasSuffix(importer, ".py") {
		return resolvePython(root, spec)
	}
	return resolveJS(root, importer, spec)
}

// resolveJS handles relative specifiers and the common "@/" src alias.
// Bare specifiers are package imports and are filtered out.
func resolveJS(root, importer, spec string) string {
	var base string
	switch {
	case strings.HasPrefix(spec, "./"), strings.HasPrefix(spec, "../"):
		base = filepath.Join(root, filepath.Dir(filepath.FromSlash(importer)), filepath.FromSlash(spec))
	case strings.HasPrefix(spec, "@/"):
		base = filepath.Join(root, "src", filepath.FromSlash(strings.TrimPrefix(spec, "@/")))
	default:
		return ""
	}

	candidates := []string{base}
	for _, ext := range []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"} {
		candidates = append(candidates, base+ext)
	}
	for _, index := range []string{"index.ts", "index.js"} {
		candidates = append(candidates, filepath.Join(base, index))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			if rel, err := filepath.Rel(root, candidate); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
	}
	return ""
}

// resolvePython maps a dotted module path to a file under root.
// Modules that do not exist in the project are external (stdlib or
// site-packages) and are filtered out.
func resolvePython(root, module string) string {
	base := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(module, ".", "/")))

	for _, candidate := range []string{base + ".py", filepath.Join(base, "__init__.py")} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			if rel, err := filepath.Rel(root, candidate); err == nil {
				return filepath.ToSlash(rel)
			}
		}
	}
	return ""
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
