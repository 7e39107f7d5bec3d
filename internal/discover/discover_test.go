package discover

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func defaultOptions() Options {
	return Options{
		MaxDepth: 5,
		Exclude:  []string{".git", "__pycache__"},
		Collapse: []string{"node_modules", "dist"},
	}
}

func TestScan_Structure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies": {"next": "14", "react": "18"}}`)
	writeFile(t, root, "src/index.ts", "export {}\n")
	writeFile(t, root, "src/util/helpers.ts", "export {}\n")

	report, err := Scan(root, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, fileMarker, report.Structure["package.json"])

	src, ok := report.Structure["src"].(map[string]any)
	require.True(t, ok, "src should be a nested map")
	assert.Equal(t, fileMarker, src["index.ts"])

	util, ok := src["util"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, fileMarker, util["helpers.ts"])
}

func TestScan_CollapsesDependencyCaches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "x"}`)
	writeFile(t, root, "node_modules/react/index.js", "module.exports = {}\n")
	writeFile(t, root, "node_modules/react/package.json", "{}\n")
	writeFile(t, root, "node_modules/lodash/index.js", "module.exports = {}\n")

	report, err := Scan(root, defaultOptions())
	require.NoError(t, err)

	summary, ok := report.Structure["node_modules"].(string)
	require.True(t, ok, "collapsed directory should be a summary string, got %T", report.Structure["node_modules"])
	assert.True(t, strings.HasPrefix(summary, "[3 files:"), "summary = %q", summary)
	assert.NotContains(t, summary, "index.js", "individual files must not be listed")
}

func TestScan_ExcludedDirsAreOmitted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "__pycache__/mod.pyc", "")
	writeFile(t, root, "main.py", "")

	report, err := Scan(root, defaultOptions())
	require.NoError(t, err)

	_, present := report.Structure["__pycache__"]
	assert.False(t, present)
	assert.Equal(t, fileMarker, report.Structure["main.py"])
}

func TestScan_DotDirsAreSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".hidden/secret.txt", "")

	report, err := Scan(root, defaultOptions())
	require.NoError(t, err)
	_, present := report.Structure[".hidden"]
	assert.False(t, present)
}

func TestScan_DepthBound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b/c/deep.txt", "")

	opts := defaultOptions()
	opts.MaxDepth = 2

	report, err := Scan(root, opts)
	require.NoError(t, err)

	a := report.Structure["a"].(map[string]any)
	b := a["b"].(map[string]any)
	assert.Equal(t, "...", b["c"], "directories past the depth bound collapse to ellipsis")
}

func TestScan_TechStackAndEntryPoints(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies": {"next": "14"}}`)
	writeFile(t, root, "tsconfig.json", "{}")
	writeFile(t, root, "next.config.js", "module.exports = {}\n")
	writeFile(t, root, "src/index.ts", "")
	writeFile(t, root, "prisma/schema.prisma", "")

	report, err := Scan(root, defaultOptions())
	require.NoError(t, err)

	assert.Contains(t, report.TechStack, "Node.js/NPM")
	assert.Contains(t, report.TechStack, "TypeScript")
	assert.Contains(t, report.TechStack, "Next.js")
	assert.Contains(t, report.TechStack, "Prisma ORM")
	assert.Contains(t, report.EntryPoints, "src/index.ts")
	assert.Equal(t, []string{"next"}, report.Deps.NPM)
}

func TestScan_GoEntryPoints(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/x\n")
	writeFile(t, root, "cmd/tool/main.go", "package main\n")

	report, err := Scan(root, defaultOptions())
	require.NoError(t, err)

	assert.Contains(t, report.TechStack, "Go")
	assert.Contains(t, report.EntryPoints, "cmd/tool/main.go")
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "absent"), defaultOptions())
	assert.Error(t, err)
}

func TestScan_ReportRoundTripsThroughJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.py", "")
	writeFile(t, root, "pkg/mod.py", "")

	report, err := Scan(root, defaultOptions())
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var loaded Report
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, report.Root, loaded.Root)
	assert.Equal(t, report.EntryPoints, loaded.EntryPoints)
	assert.Equal(t, fileMarker, loaded.Structure["main.py"])
}
