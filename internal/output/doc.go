// Package output provides structured output and exit-code handling for
// the scout CLI.
//
// Every command writes through a Printer, which switches between JSON
// and human-readable rendering based on the --json flag. Human output
// is styled with lipgloss when the writer is a TTY and degrades to
// plain text when piped.
//
// Hook entry points depend on the exit-code contract defined here: the
// hosting agent CLI treats exit 0 as allow, and exit ExitBlocked from a
// pre-tool hook as deny. Everything else in scout is advisory, so
// errors in hook paths are downgraded rather than propagated.
package output
