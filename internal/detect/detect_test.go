package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDetect_NodeFrameworks(t *testing.T) {
	tests := []struct {
		name          string
		packageJSON   string
		wantFramework string
		wantPlatform  string
	}{
		{"nextjs", `{"dependencies": {"next": "14.0.0", "react": "18.0.0"}}`, "nextjs", "web"},
		{"react", `{"dependencies": {"react": "18.0.0"}}`, "react", "web"},
		{"react-native", `{"dependencies": {"react-native": "0.73.0", "react": "18.0.0"}}`, "react-native", "mobile"},
		{"expo dev dep", `{"devDependencies": {"expo": "50.0.0"}}`, "react-native", "mobile"},
		{"express", `{"dependencies": {"express": "4.18.0"}}`, "express", "api"},
		{"fastify", `{"dependencies": {"fastify": "4.0.0"}}`, "fastify", "api"},
		{"vue", `{"dependencies": {"vue": "3.4.0"}}`, "vue", "web"},
		{"plain node", `{"name": "thing", "dependencies": {}}`, "node", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "package.json", tt.packageJSON)

			result := Detect(dir, 3)
			assert.Equal(t, "node", result.Type)
			assert.Equal(t, tt.wantFramework, result.Framework)
			assert.Equal(t, tt.wantPlatform, result.Platform)
			assert.Equal(t, dir, result.DetectedAt)
		})
	}
}

func TestDetect_Python(t *testing.T) {
	t.Run("django", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "requirements.txt", "django==5.0\n")
		writeFile(t, dir, "manage.py", "")

		result := Detect(dir, 3)
		assert.Equal(t, "python", result.Type)
		assert.Equal(t, "django", result.Framework)
		assert.Equal(t, "web", result.Platform)
	})

	t.Run("flask-or-fastapi", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "pyproject.toml", "[project]\nname = \"api\"\n")
		writeFile(t, dir, "main.py", "")

		result := Detect(dir, 3)
		assert.Equal(t, "flask-or-fastapi", result.Framework)
		assert.Equal(t, "api", result.Platform)
	})

	t.Run("generic", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "requirements.txt", "requests\n")

		result := Detect(dir, 3)
		assert.Equal(t, "python", result.Framework)
		assert.Equal(t, "general", result.Platform)
	})
}

func TestDetect_RustAndGo(t *testing.T) {
	rust := t.TempDir()
	writeFile(t, rust, "Cargo.toml", "[package]\nname = \"x\"\n")
	assert.Equal(t, "rust", Detect(rust, 3).Type)

	goDir := t.TempDir()
	writeFile(t, goDir, "go.mod", "module example.com/x\n")
	assert.Equal(t, "go", Detect(goDir, 3).Type)

	dart := t.TempDir()
	writeFile(t, dart, "pubspec.yaml", "name: app\n")
	assert.Equal(t, "dart", Detect(dart, 3).Type)
}

func TestDetect_Unknown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# nothing here\n")

	result := Detect(dir, 3)
	assert.True(t, result.IsUnknown())
	assert.Equal(t, TypeUnknown, result.Type)
}

func TestDetect_MissingRoot(t *testing.T) {
	result := Detect(filepath.Join(t.TempDir(), "does-not-exist"), 3)
	assert.True(t, result.IsUnknown())
}

func TestDetect_ShallowestMatchWins(t *testing.T) {
	dir := t.TempDir()
	// aaa/ sorts before bbb/ but its manifest is deeper than bbb's.
	writeFile(t, dir, filepath.Join("aaa", "nested", "Cargo.toml"), "[package]\n")
	writeFile(t, dir, filepath.Join("bbb", "go.mod"), "module example.com/b\n")

	result := Detect(dir, 3)
	assert.Equal(t, "go", result.Type, "depth-1 manifest must beat depth-2 manifest")
}

func TestDetect_DepthBound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("a", "b", "c", "d", "go.mod"), "module example.com/deep\n")

	assert.True(t, Detect(dir, 3).IsUnknown(), "manifest at depth 4 is out of bounds")
	assert.Equal(t, "go", Detect(dir, 4).Type)
}

func TestDetect_SkipsDependencyCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("node_modules", "pkg", "package.json"), `{"dependencies": {"react": "1"}}`)
	writeFile(t, dir, filepath.Join(".hidden", "go.mod"), "module example.com/h\n")

	assert.True(t, Detect(dir, 3).IsUnknown())
}

func TestDetect_MalformedPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{not json")
	writeFile(t, dir, "requirements.txt", "flask\n")

	// Malformed package.json is skipped; python detection still runs.
	result := Detect(dir, 3)
	assert.Equal(t, "python", result.Type)
}
