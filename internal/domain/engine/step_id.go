// Package engine provides the declarative provisioning engine: a registry of
// idempotent steps, dependency-ordered scheduling, and a per-run outcome
// ledger.
package engine

import (
	"errors"
	"regexp"
	"strings"
)

// StepID uniquely identifies a step. Format: provider:action:resource
// (e.g. "pkgmgr:install:git").
type StepID struct {
	value string
}

// Errors for StepID validation.
var (
	ErrEmptyStepID   = errors.New("step ID cannot be empty")
	ErrInvalidStepID = errors.New("step ID must be alphanumeric segments joined by colons, hyphens, underscores, or slashes")
)

var stepIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_/.-]*(?::[a-zA-Z0-9][a-zA-Z0-9_/.-]*)*$`)

// NewStepID creates a validated StepID.
func NewStepID(value string) (StepID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return StepID{}, ErrEmptyStepID
	}
	if !stepIDPattern.MatchString(trimmed) {
		return StepID{}, ErrInvalidStepID
	}
	return StepID{value: trimmed}, nil
}

// MustNewStepID creates a StepID, panicking on invalid input. Use for
// compile-time known values.
func MustNewStepID(value string) StepID {
	id, err := NewStepID(value)
	if err != nil {
		panic("invalid step ID: " + value + ": " + err.Error())
	}
	return id
}

// String returns the string form.
func (id StepID) String() string { return id.value }

// Equals checks equality with another StepID.
func (id StepID) Equals(other StepID) bool { return id.value == other.value }

// Provider extracts the first segment.
func (id StepID) Provider() string {
	parts := strings.SplitN(id.value, ":", 2)
	return parts[0]
}

// IsZero reports whether this is the zero StepID.
func (id StepID) IsZero() bool { return id.value == "" }
