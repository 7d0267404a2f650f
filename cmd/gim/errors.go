package gim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// UsageError is a mistake in how gim was invoked; main prints the usage
// text along with it
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ExitError ends the process with Code after its message has been printed
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// IsUsageError reports whether err should be followed by the usage text.
// Unknown subcommands come from cobra as plain errors.
func IsUsageError(err error) bool {
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return true
	}
	return err != nil && strings.HasPrefix(err.Error(), "unknown command")
}

// ExitCode returns the process exit status for err
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// exactArgs is cobra.ExactArgs reporting a UsageError
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}
