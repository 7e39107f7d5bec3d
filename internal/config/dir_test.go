package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("SCOUT_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}

	if runtime.GOOS != "windows" {
		if filepath.Base(dir) != "scout" {
			t.Errorf("Dir() = %q, want path ending in 'scout'", dir)
		}
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("SCOUT_CONFIG_HOME", "/custom/path")
	if got := Dir(); got != "/custom/path" {
		t.Errorf("Dir() = %q, want %q", got, "/custom/path")
	}
}

func TestDataDir_ExplicitOverride(t *testing.T) {
	t.Setenv("SCOUT_DATA_HOME", "/custom/data")
	if got := DataDir(); got != "/custom/data" {
		t.Errorf("DataDir() = %q, want %q", got, "/custom/data")
	}
}

func TestDataDir_XDGOverride(t *testing.T) {
	t.Setenv("SCOUT_DATA_HOME", "")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	if got := DataDir(); got != filepath.Join("/xdg/data", "scout") {
		t.Errorf("DataDir() = %q", got)
	}
}

func TestProjectDataDir(t *testing.T) {
	t.Setenv("SCOUT_DATA_HOME", "/data")

	tests := []struct {
		projectPath string
		wantBase    string
	}{
		{"/home/u/my-app", "my-app"},
		{"/home/u/my app!", "my_app_"},
		{"/home/u/proj.v2", "proj_v2"},
		{"/home/u/under_score", "under_score"},
	}

	for _, tt := range tests {
		t.Run(tt.projectPath, func(t *testing.T) {
			got := ProjectDataDir(tt.projectPath)
			want := filepath.Join("/data", "projects", tt.wantBase)
			if got != want {
				t.Errorf("ProjectDataDir(%q) = %q, want %q", tt.projectPath, got, want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"simple", "simple"},
		{"With Spaces", "With_Spaces"},
		{"dots.and/slashes", "dots_and_slashes"},
		{"ünïcödé", "_n_c_d_"},
		{"ok-name_1", "ok-name_1"},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
