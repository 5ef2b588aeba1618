// Package iconset: This file holds the outcome of a Save call. Every step
// records what it did so callers can report it without parsing log output.
package iconset

import "errors"

// Result describes what a Save call did.
type Result struct {
	// Skipped is set when no destination was given.
	Skipped bool
	// StagingDir is the temporary .iconset directory.
	StagingDir string
	// Output is the packaged file path, <destination>.icns.
	Output string
	// Staged lists the PNG files written to StagingDir.
	Staged []string
	// Packaged is set when the packager reported success.
	Packaged bool
	// ExitCode of the packaging tool, -1 when it did not run to completion.
	ExitCode int
	// Revealed is set when the destination folder was opened.
	Revealed bool
	// Warnings holds every failure in the order it happened.
	Warnings []error
}

// Err joins all warnings, or returns nil when there are none.
func (r *Result) Err() error {
	return errors.Join(r.Warnings...)
}

// setExitCode records 0 on success or the tool status from a *ToolError.
// Other failures keep -1, the tool did not finish.
func (r *Result) setExitCode(packErr error) {
	var toolErr *ToolError
	switch {
	case packErr == nil:
		r.ExitCode = 0
	case errors.As(packErr, &toolErr):
		r.ExitCode = toolErr.ExitCode
	}
}
