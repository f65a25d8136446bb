// Package vsh holds the shared types the shell's layers exchange: the
// structured Output of one dispatched command line and the error taxonomy
// every failure is translated into.
package vsh

// Output is the result of submitting one command line. Exactly one of Text
// or Err is meaningful; Terminate tells the driving loop to stop after
// rendering.
type Output struct {
	// Text is the command's rendered payload. Empty output is valid (e.g.
	// ls on an empty directory).
	Text string
	// Err is the structured failure, nil on success. Drivers display it and
	// continue; it never aborts the session.
	Err error
	// Terminate signals a session-ending command (exit).
	Terminate bool
}

// TextOutput wraps a success payload.
func TextOutput(text string) Output { return Output{Text: text} }

// ErrOutput wraps a structured failure.
func ErrOutput(err error) Output { return Output{Err: err} }

// TerminateOutput signals the driver to stop the session.
func TerminateOutput() Output { return Output{Terminate: true} }
