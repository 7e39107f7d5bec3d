// Package hook implements the stdin/stdout protocol between the agent
// host and scout's hook entry points.
//
// The host writes one JSON payload to the hook's stdin and interprets
// the exit code; for session-start it additionally reads a JSON
// document from stdout whose hookSpecificOutput.additionalContext is
// injected into the model's context.
package hook

import (
	"encoding/json"
	"io"

	"github.com/tidwall/gjson"
)

// maxStdinBytes caps stdin reads. Payloads are small JSON objects; the
// cap bounds memory if a host misbehaves.
const maxStdinBytes = 1 << 20

// Input is the payload the agent host sends on stdin.
type Input struct {
	CWD           string          `json:"cwd"`
	SessionID     string          `json:"session_id"`
	HookEventName string          `json:"hook_event_name"`
	ToolName      string          `json:"tool_name"`
	ToolInput     json.RawMessage `json:"tool_input"`
	ToolResponse  json.RawMessage `json:"tool_response"`
	Source        string          `json:"source"`
}

// ReadInput parses a hook payload from r. A missing, truncated, or
// malformed payload yields a zero Input, never an error: hook entry
// points are fail-open and fall back to the process working directory.
func ReadInput(r io.Reader) Input {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinBytes))
	if err != nil {
		return Input{}
	}
	var input Input
	if err := json.Unmarshal(data, &input); err != nil {
		return Input{}
	}
	return input
}

// Command extracts the shell command from a Bash tool_input payload.
func (in Input) Command() string {
	return gjson.GetBytes(in.ToolInput, "command").String()
}

// ExitCode extracts the exit code from a Bash tool_response payload,
// treating an absent field as success.
func (in Input) ExitCode() int {
	return int(gjson.GetBytes(in.ToolResponse, "exit_code").Int())
}

// Output extracts combined stdout/stderr text from a Bash
// tool_response payload. Hosts differ on the field name.
func (in Input) Output() string {
	for _, field := range []string{"output", "stdout", "stderr"} {
		if value := gjson.GetBytes(in.ToolResponse, field); value.Exists() {
			return value.String()
		}
	}
	return ""
}

// Output is the stdout document for hooks that feed context back to
// the model.
type Output struct {
	HookSpecificOutput *Specific `json:"hookSpecificOutput,omitempty"`
}

// Specific carries the per-event payload the host understands.
type Specific struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext,omitempty"`
}

// WriteContext emits an Output document carrying additionalContext for
// the named event.
func WriteContext(w io.Writer, event, context string) error {
	out := Output{HookSpecificOutput: &Specific{
		HookEventName:     event,
		AdditionalContext: context,
	}}
	encoder := json.NewEncoder(w)
	return encoder.Encode(out)
}
