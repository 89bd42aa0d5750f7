package config

import "fmt"

// UserError is a configuration problem phrased for the person editing the
// manifest, with an optional suggestion and the underlying technical error.
type UserError struct {
	Message    string
	Context    string
	Suggestion string
	Underlying error
}

// Error returns the user-facing message.
func (e *UserError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error { return e.Underlying }

// NewNotFoundError reports a missing manifest file.
func NewNotFoundError(path string) *UserError {
	return &UserError{
		Message:    fmt.Sprintf("setup manifest not found: %s", path),
		Suggestion: "Create a setup.yaml, or point --config at an existing manifest.",
	}
}

// NewParseError reports an unparseable manifest.
func NewParseError(path string, err error) *UserError {
	return &UserError{
		Message:    fmt.Sprintf("could not parse %s", path),
		Suggestion: "Check the manifest for syntax errors.",
		Underlying: err,
	}
}

// NewUnsupportedFormatError reports a manifest extension the loader does not
// handle.
func NewUnsupportedFormatError(path string) *UserError {
	return &UserError{
		Message:    fmt.Sprintf("unsupported manifest format: %s", path),
		Suggestion: "Use a .yaml, .yml, or .toml manifest.",
	}
}

// NewValidationError reports a structurally invalid manifest.
func NewValidationError(context, message string) *UserError {
	return &UserError{
		Message: message,
		Context: context,
	}
}
