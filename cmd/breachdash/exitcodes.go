package main

import (
	"errors"
	"fmt"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// Exit codes for the breachdash CLI.
const (
	ExitOK            = 0 // Output written.
	ExitInvalidArgs   = 1 // Invalid flags, config or selection.
	ExitRenderFailure = 2 // Output could not be rendered or written.
	ExitLoadFailure   = 3 // Dataset could not be loaded, or holds no rows.
)

// exitCodeError carries a process exit code through cobra's error return.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. An empty message is replaced with a
// generic description of the code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitRenderFailure:
			msg = "breachdash: rendering failed"
		case ExitLoadFailure:
			msg = "breachdash: dataset could not be loaded"
		default:
			msg = "breachdash: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// computeError maps a pipeline.Compute failure to an exit code.
func computeError(err error) *exitCodeError {
	var invalid *pipeline.InvalidSelectionError
	if errors.As(err, &invalid) {
		return exitError(ExitLoadFailure, "breachdash: %v", err)
	}
	return exitError(ExitRenderFailure, "breachdash: %v", err)
}

// loadError maps a dataset load failure to ExitLoadFailure with a single-line
// message.
func loadError(err error) *exitCodeError {
	var le *dataset.LoadError
	var pe *dataset.ParseError
	if errors.As(err, &le) || errors.As(err, &pe) {
		return exitError(ExitLoadFailure, "breachdash: %v", err)
	}
	return exitError(ExitLoadFailure, "breachdash: load dataset: %v", err)
}
