package output

import "errors"

// Exit codes. ExitBlocked is 2 because the hosting agent CLI interprets
// exit code 2 from a pre-tool hook as "deny the tool call"; any other
// non-zero code is reported but does not block.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitBlocked     = 2
	ExitSystemError = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, missing required fields, unknown subcommands.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewBlockedError creates the deny signal for the prevention gate
// (exit code 2). The message is shown to the user and fed back to the
// agent as the refusal reason.
func NewBlockedError(message string) *ExitError {
	return &ExitError{
		Code:    ExitBlocked,
		Message: message,
	}
}

// NewSystemError creates an error for system failures (exit code 3).
// Use for: I/O errors, unwritable data directories.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUserError
}
