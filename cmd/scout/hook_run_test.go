package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/scouthq/scout/internal/output"
)

// hookPayload builds the stdin JSON the agent host sends to hooks.
func hookPayload(t *testing.T, cwd, event, command string, exitCode int, cmdOutput string) string {
	t.Helper()
	payload := map[string]any{
		"cwd":             cwd,
		"session_id":      "test-session",
		"hook_event_name": event,
		"tool_name":       "Bash",
	}
	if command != "" {
		payload["tool_input"] = map[string]any{"command": command}
	}
	if event == "PostToolUse" {
		payload["tool_response"] = map[string]any{"exit_code": exitCode, "output": cmdOutput}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestHookSessionStartEmitsContext(t *testing.T) {
	setupEnv(t)
	project := newNextProject(t)

	stdin := hookPayload(t, project, "SessionStart", "", 0, "")
	out, err := runCommand(t, stdin, "hook", "session-start")
	if err != nil {
		t.Fatalf("hook session-start: %v", err)
	}

	var doc struct {
		HookSpecificOutput struct {
			HookEventName     string `json:"hookEventName"`
			AdditionalContext string `json:"additionalContext"`
		} `json:"hookSpecificOutput"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("parsing hook output %q: %v", out, err)
	}
	if doc.HookSpecificOutput.HookEventName != "SessionStart" {
		t.Errorf("event = %q", doc.HookSpecificOutput.HookEventName)
	}
	if !strings.Contains(doc.HookSpecificOutput.AdditionalContext, "nextjs") {
		t.Errorf("context missing framework: %q", doc.HookSpecificOutput.AdditionalContext)
	}
}

func TestHookSessionStartFailsOpen(t *testing.T) {
	setupEnv(t)

	// Unresolvable cwd must not produce an error exit.
	stdin := `{"cwd": "/does/not/exist", "hook_event_name": "SessionStart"}`
	if _, err := runCommand(t, stdin, "hook", "session-start"); err != nil {
		t.Fatalf("hook must fail open: %v", err)
	}
}

func TestHookPreBashBlocksDangerous(t *testing.T) {
	setupEnv(t)
	project := t.TempDir()

	stdin := hookPayload(t, project, "PreToolUse", "rm -rf /", 0, "")
	out, err := runCommand(t, stdin, "hook", "pre-bash")
	if err == nil {
		t.Fatal("expected blocked error")
	}
	if code := output.GetExitCode(err); code != output.ExitBlocked {
		t.Errorf("exit code = %d, want %d", code, output.ExitBlocked)
	}
	if !strings.Contains(out, "BLOCKED") {
		t.Errorf("output missing BLOCKED message:\n%s", out)
	}
}

func TestHookPreBashAllowsBenign(t *testing.T) {
	setupEnv(t)
	project := t.TempDir()

	stdin := hookPayload(t, project, "PreToolUse", "ls -la", 0, "")
	if _, err := runCommand(t, stdin, "hook", "pre-bash"); err != nil {
		t.Fatalf("benign command blocked: %v", err)
	}
}

func TestHookPreBashWarnsAboutPastFailure(t *testing.T) {
	setupEnv(t)
	project := t.TempDir()

	failure := hookPayload(t, project, "PostToolUse", "npm install broken-pkg", 1, "npm ERR! 404 Not Found")
	if _, err := runCommand(t, failure, "hook", "post-bash"); err != nil {
		t.Fatalf("hook post-bash: %v", err)
	}

	stdin := hookPayload(t, project, "PreToolUse", "npm install broken-pkg", 0, "")
	out, err := runCommand(t, stdin, "hook", "pre-bash")
	if err != nil {
		t.Fatalf("hook pre-bash: %v", err)
	}
	if !strings.Contains(out, "404 Not Found") {
		t.Errorf("warning missing past error:\n%s", out)
	}
}

func TestHookPostBashRecordsFailure(t *testing.T) {
	setupEnv(t)
	project := t.TempDir()

	stdin := hookPayload(t, project, "PostToolUse", "npm run build", 1, "build failed: out of memory")
	if _, err := runCommand(t, stdin, "hook", "post-bash"); err != nil {
		t.Fatalf("hook post-bash: %v", err)
	}

	out, err := runCommand(t, "", "errors", "list")
	if err != nil {
		t.Fatalf("errors list: %v", err)
	}
	if !strings.Contains(out, "npm run build") {
		t.Errorf("failure not recorded:\n%s", out)
	}
}

func TestHookPostBashIgnoresEmptyPayload(t *testing.T) {
	setupEnv(t)

	if _, err := runCommand(t, "", "hook", "post-bash"); err != nil {
		t.Fatalf("empty payload must be ignored: %v", err)
	}
}
