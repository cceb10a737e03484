// ABOUTME: CLI error type carrying exit codes, suggestions and reporting state
// ABOUTME: Maps any error returned by a command to the process exit code

package output

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI
const (
	ExitSuccess        = 0
	ExitGeneral        = 1
	ExitUsageError     = 2
	ExitSessionExpired = 3
)

// CLIError carries an exit code and an optional suggestion
type CLIError struct {
	Summary    string
	Suggestion string
	ExitCode   int
	Err        error
	// Reported is set when the message was already shown to the user
	Reported bool
}

func (e *CLIError) Error() string {
	return e.Summary
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err, ExitGeneral when err is not a CLIError
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode
	}
	return ExitGeneral
}

// FormatError prints err unless it was already reported
func (p *Printer) FormatError(err error) {
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		p.Error("%s", err)
		return
	}
	if !cliErr.Reported {
		p.Error("%s", cliErr.Summary)
	}
	if cliErr.Suggestion != "" {
		p.mu.Lock()
		fmt.Fprintf(p.err, "  Suggestion: %s\n", cliErr.Suggestion)
		p.mu.Unlock()
	}
}
