package cli

import "errors"

// Exit codes for unfence, loosely following sysexits.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailures indicates the run completed but some files failed.
	ExitFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates malformed input or configuration.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFilesFailed signals that some files could not be written or updated.
// The failures are already logged when this is returned.
var ErrFilesFailed = errors.New("some files failed")

// ExitError carries an explicit exit code up to main.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrFilesFailed) {
		return ExitFailures
	}
	return ExitInternalError
}
