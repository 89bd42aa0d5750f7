// Package ports defines the interfaces the setup engine expects from the
// outside world: command execution, filesystem access, and logging.
package ports

import "context"

// CommandResult captures the observable output of one external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a single command invocation, mainly for test doubles.
type CommandCall struct {
	Command string
	Args    []string
}

// CommandRunner executes external commands. Implementations must capture
// stdout and stderr and report non-zero exits via CommandResult rather than
// an error; errors are reserved for "could not run at all".
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// LookPath reports whether an executable is resolvable on PATH.
	LookPath(name string) bool
}
