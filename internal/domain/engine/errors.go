package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration failures. These are fatal at build time:
// the run never starts.
var (
	ErrDuplicateName     = errors.New("step with this name already registered")
	ErrUnknownDependency = errors.New("step depends on an unregistered step")
	ErrCyclicDependency  = errors.New("cyclic dependency detected")
)

// ConfigError describes an invalid step graph. It wraps one of the sentinel
// errors above so callers can branch with errors.Is.
type ConfigError struct {
	StepID    string   // offending step, when applicable
	DependsOn string   // missing dependency, for ErrUnknownDependency
	Cycle     []string // members of the cycle, for ErrCyclicDependency
	sentinel  error
}

// Error returns the formatted message.
func (e *ConfigError) Error() string {
	switch {
	case errors.Is(e.sentinel, ErrDuplicateName):
		return fmt.Sprintf("step %q: %s", e.StepID, e.sentinel)
	case errors.Is(e.sentinel, ErrUnknownDependency):
		return fmt.Sprintf("step %q depends on %q which is not registered", e.StepID, e.DependsOn)
	case errors.Is(e.sentinel, ErrCyclicDependency):
		return fmt.Sprintf("cyclic dependency among steps: %s", strings.Join(e.Cycle, ", "))
	default:
		return e.sentinel.Error()
	}
}

// Unwrap returns the sentinel for errors.Is support.
func (e *ConfigError) Unwrap() error { return e.sentinel }

// NewDuplicateNameError reports a step registered twice.
func NewDuplicateNameError(stepID StepID) *ConfigError {
	return &ConfigError{StepID: stepID.String(), sentinel: ErrDuplicateName}
}

// NewUnknownDependencyError reports a dependency on a step that was never
// registered.
func NewUnknownDependencyError(stepID, dependsOn StepID) *ConfigError {
	return &ConfigError{
		StepID:    stepID.String(),
		DependsOn: dependsOn.String(),
		sentinel:  ErrUnknownDependency,
	}
}

// NewCyclicDependencyError reports a dependency cycle, naming its members.
func NewCyclicDependencyError(members []string) *ConfigError {
	return &ConfigError{Cycle: members, sentinel: ErrCyclicDependency}
}
