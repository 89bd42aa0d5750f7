// Package mocks provides in-memory test doubles for the ports interfaces.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

// CommandRunner is a scripted ports.CommandRunner. Results are keyed by the
// full command line; unscripted commands succeed with empty output.
type CommandRunner struct {
	mu        sync.Mutex
	results   map[string]ports.CommandResult
	errors    map[string]error
	pathable  map[string]bool
	calls     []ports.CommandCall
	callCount map[string]int
}

// NewCommandRunner creates an empty scripted runner.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results:   make(map[string]ports.CommandResult),
		errors:    make(map[string]error),
		pathable:  make(map[string]bool),
		callCount: make(map[string]int),
	}
}

func key(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}

// AddResult scripts the result for one exact command line.
func (m *CommandRunner) AddResult(commandLine string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[commandLine] = result
}

// AddError scripts a "could not run" error for one exact command line.
func (m *CommandRunner) AddError(commandLine string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[commandLine] = err
}

// SetOnPath scripts LookPath for an executable name.
func (m *CommandRunner) SetOnPath(name string, present bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pathable[name] = present
}

// Run returns the scripted result for the command line.
func (m *CommandRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.CommandResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, ports.CommandCall{Command: command, Args: args})
	k := key(command, args)
	m.callCount[k]++

	if err, ok := m.errors[k]; ok {
		return ports.CommandResult{}, err
	}
	if result, ok := m.results[k]; ok {
		return result, nil
	}
	return ports.CommandResult{ExitCode: 0}, nil
}

// LookPath returns the scripted PATH presence; unscripted names are absent.
func (m *CommandRunner) LookPath(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pathable[name]
}

// Calls returns every invocation in order.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.CommandCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times an exact command line ran.
func (m *CommandRunner) CallCount(commandLine string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount[commandLine]
}

// Ran reports whether an exact command line was invoked at least once.
func (m *CommandRunner) Ran(commandLine string) bool {
	return m.CallCount(commandLine) > 0
}

// Reset clears recorded calls, keeping the scripted results.
func (m *CommandRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.callCount = make(map[string]int)
}

// String lists the scripted command lines, which helps debugging failed
// expectations.
func (m *CommandRunner) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, 0, len(m.results))
	for k := range m.results {
		lines = append(lines, k)
	}
	return fmt.Sprintf("scripted: %s", strings.Join(lines, "; "))
}

var _ ports.CommandRunner = (*CommandRunner)(nil)
