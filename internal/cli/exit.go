package cli

import (
	"errors"
	"fmt"
)

// Exit codes. Normal completion and a downstream consumer closing the
// default output early both exit 0; every configuration, pattern,
// file-creation, or write failure exits 1.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitError is an error carrying the process exit code. Commands
// return it instead of calling os.Exit; main performs the single
// terminal exit with the extracted code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. nil maps to
// ExitSuccess; a non-ExitError maps to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
