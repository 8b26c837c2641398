// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"errors"

	"github.com/z5labs/embedweave"
)

// Exit codes returned by the embedweave binary.
const (
	ExitSuccess       = 0
	ExitFailure       = 1
	ExitUsage         = 2
	ExitInvalidConfig = 3
)

// ExitError attaches a process exit code to an error. Its message is the
// message of Cause, unchanged.
type ExitError struct {
	Code  int
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ExitError) Error() string {
	return e.Cause.Error()
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ExitError) Unwrap() error {
	return e.Cause
}

// UsageError marks err as a command line usage mistake.
func UsageError(err error) error {
	return ExitError{Code: ExitUsage, Cause: err}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if isLoadError(err) {
		return ExitInvalidConfig
	}
	return ExitFailure
}

func isLoadError(err error) bool {
	var (
		fileErr   embedweave.FileNotFoundError
		parseErr  embedweave.DocumentParseError
		weaverErr embedweave.WeaverNotFoundError
		configErr embedweave.ConfigurationError
	)
	return errors.As(err, &fileErr) ||
		errors.As(err, &parseErr) ||
		errors.As(err, &weaverErr) ||
		errors.As(err, &configErr)
}
