// Package command provides the real command execution adapter.
package command

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

// RealRunner executes actual external commands.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run executes a command and returns its captured result. A non-zero exit is
// reported through the result, not as an error.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ports.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// LookPath reports whether an executable is on PATH.
func (r *RealRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

var _ ports.CommandRunner = (*RealRunner)(nil)
