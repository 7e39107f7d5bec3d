package hook

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	payload := `{
  "cwd": "/home/dev/web-app",
  "session_id": "abc-123",
  "hook_event_name": "PreToolUse",
  "tool_name": "Bash",
  "tool_input": {"command": "npm install left-pad"}
}`
	input := ReadInput(strings.NewReader(payload))

	assert.Equal(t, "/home/dev/web-app", input.CWD)
	assert.Equal(t, "abc-123", input.SessionID)
	assert.Equal(t, "PreToolUse", input.HookEventName)
	assert.Equal(t, "Bash", input.ToolName)
	assert.Equal(t, "npm install left-pad", input.Command())
}

func TestReadInputMalformed(t *testing.T) {
	assert.Equal(t, Input{}, ReadInput(strings.NewReader("not json")))
	assert.Equal(t, Input{}, ReadInput(strings.NewReader("")))
}

func TestReadInputCapsOversizedPayload(t *testing.T) {
	// Past the cap the JSON is truncated and parsing fails open.
	huge := `{"cwd": "` + strings.Repeat("x", maxStdinBytes) + `"}`
	assert.Equal(t, Input{}, ReadInput(strings.NewReader(huge)))
}

func TestToolResponseAccessors(t *testing.T) {
	payload := `{
  "tool_response": {"exit_code": 127, "output": "npm ERR! 404 Not Found"}
}`
	input := ReadInput(strings.NewReader(payload))

	assert.Equal(t, 127, input.ExitCode())
	assert.Equal(t, "npm ERR! 404 Not Found", input.Output())
}

func TestExitCodeDefaultsToZero(t *testing.T) {
	input := ReadInput(strings.NewReader(`{"tool_response": {}}`))
	assert.Equal(t, 0, input.ExitCode())
}

func TestOutputFallsBackToStdout(t *testing.T) {
	input := ReadInput(strings.NewReader(`{"tool_response": {"stdout": "done"}}`))
	assert.Equal(t, "done", input.Output())
}

func TestWriteContext(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContext(&buf, "SessionStart", "Project: web-app (nextjs)"))

	var out Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.NotNil(t, out.HookSpecificOutput)
	assert.Equal(t, "SessionStart", out.HookSpecificOutput.HookEventName)
	assert.Equal(t, "Project: web-app (nextjs)", out.HookSpecificOutput.AdditionalContext)
}
