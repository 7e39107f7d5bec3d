package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/scouthq/scout/internal/output"
)

func TestTrackThenCheckWarnsWithPastError(t *testing.T) {
	setupEnv(t)
	project := t.TempDir()

	if _, err := runCommand(t, "", "track", "npm install broken-pkg", "1", "npm ERR! 404 Not Found", project); err != nil {
		t.Fatalf("track: %v", err)
	}

	out, err := runCommand(t, "", "check", "npm install broken-pkg", project)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "404 Not Found") {
		t.Errorf("check output missing past error message:\n%s", out)
	}
	if !strings.Contains(out, "npm install broken-pkg") {
		t.Errorf("check output missing failing command:\n%s", out)
	}
}

func TestCheckWithCleanHistory(t *testing.T) {
	setupEnv(t)

	out, err := runCommand(t, "", "check", "ls -la")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "No similar past failures") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestTrackThirdFailureIsRecurring(t *testing.T) {
	setupEnv(t)
	project := t.TempDir()

	for i := 0; i < 2; i++ {
		if _, err := runCommand(t, "", "track", "npm run build", "1", "build failed: out of memory", project); err != nil {
			t.Fatalf("track %d: %v", i, err)
		}
	}

	out, err := runCommand(t, "", "--json", "track", "npm run build", "1", "build failed: out of memory", project)
	if err != nil {
		t.Fatalf("track: %v", err)
	}

	var payload struct {
		Outcome string `json:"outcome"`
		Record  struct {
			Status      string `json:"status"`
			Occurrences int    `json:"occurrences"`
		} `json:"record"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parsing track output %q: %v", out, err)
	}
	if payload.Outcome != "recurring" {
		t.Errorf("outcome = %q, want recurring", payload.Outcome)
	}
	if payload.Record.Status != "recurring" {
		t.Errorf("status = %q, want recurring", payload.Record.Status)
	}
	if payload.Record.Occurrences != 3 {
		t.Errorf("occurrences = %d, want 3", payload.Record.Occurrences)
	}
}

func TestTrackSuccessSolvesError(t *testing.T) {
	setupEnv(t)
	project := t.TempDir()

	if _, err := runCommand(t, "", "track", "npm install broken-pkg", "1", "npm ERR! 404 Not Found", project); err != nil {
		t.Fatalf("track failure: %v", err)
	}

	out, err := runCommand(t, "", "--json", "track", "npm install broken-pkg", "0", "", project)
	if err != nil {
		t.Fatalf("track success: %v", err)
	}

	var payload struct {
		Outcome string `json:"outcome"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parsing track output: %v", err)
	}
	if payload.Outcome != "solved" {
		t.Errorf("outcome = %q, want solved", payload.Outcome)
	}
}

func TestTrackRejectsBadExitCode(t *testing.T) {
	setupEnv(t)

	_, err := runCommand(t, "", "track", "ls", "nope", "")
	if err == nil {
		t.Fatal("expected error for non-numeric exit code")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
}

func TestErrorsListAndClear(t *testing.T) {
	setupEnv(t)
	project := t.TempDir()

	if _, err := runCommand(t, "", "track", "npm run build", "1", "build failed", project); err != nil {
		t.Fatalf("track: %v", err)
	}

	out, err := runCommand(t, "", "errors", "list")
	if err != nil {
		t.Fatalf("errors list: %v", err)
	}
	if !strings.Contains(out, "npm run build") {
		t.Errorf("errors list missing record:\n%s", out)
	}

	if _, err := runCommand(t, "", "errors", "clear"); err != nil {
		t.Fatalf("errors clear: %v", err)
	}

	out, err = runCommand(t, "", "errors", "list")
	if err != nil {
		t.Fatalf("errors list after clear: %v", err)
	}
	if !strings.Contains(out, "No tracked errors") {
		t.Errorf("unexpected output after clear:\n%s", out)
	}
}
