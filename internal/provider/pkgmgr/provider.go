package pkgmgr

import (
	"os"

	"github.com/ThiagoSantosOFC/starship/internal/domain/config"
	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

// LockPackageDB serializes steps that mutate the package database. Package
// managers hold their own global lock, so concurrent installs deadlock or
// fail outright.
const LockPackageDB = "pkg-db"

// Provider builds install steps from manifest tool declarations.
type Provider struct {
	runner ports.CommandRunner
	sudo   bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithSudo overrides the automatic root detection.
func WithSudo(sudo bool) Option {
	return func(p *Provider) { p.sudo = sudo }
}

// NewProvider creates a Provider. Sudo defaults to on for non-root users.
func NewProvider(runner ports.CommandRunner, opts ...Option) *Provider {
	p := &Provider{
		runner: runner,
		sudo:   os.Geteuid() != 0,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// StepIDFor returns the step identifier for a tool name. Exposed so other
// providers can depend on tool installs.
func StepIDFor(tool string) engine.StepID {
	return engine.MustNewStepID("pkgmgr:install:" + tool)
}

// Steps returns one install step per manifest tool, wired with the declared
// requirements as dependencies.
func (p *Provider) Steps(manifest *config.Manifest) []engine.Step {
	steps := make([]engine.Step, 0, len(manifest.Tools))
	for _, tool := range manifest.Tools {
		deps := make([]engine.StepID, 0, len(tool.Requires))
		for _, req := range tool.Requires {
			deps = append(deps, StepIDFor(req))
		}
		steps = append(steps, &installStep{
			id:       StepIDFor(tool.Name),
			deps:     deps,
			tool:     tool,
			runner:   p.runner,
			sudo:     p.sudo,
			critical: tool.Critical,
		})
	}
	return steps
}
