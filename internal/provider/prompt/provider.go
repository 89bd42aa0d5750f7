// Package prompt installs the starship prompt and writes its theme.
package prompt

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ThiagoSantosOFC/starship/internal/domain/config"
	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
	"github.com/ThiagoSantosOFC/starship/internal/domain/facts"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

// Step identifiers exposed so other providers can depend on the prompt.
var (
	InstallStepID = engine.MustNewStepID("prompt:install")
	ThemeStepID   = engine.MustNewStepID("prompt:theme")
)

// installerURL is the vendor install script, used when no package manager
// carries starship.
const installerURL = "https://starship.rs/install.sh"

// Provider builds the starship install and theme steps.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
	sudo   bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithSudo overrides the automatic root detection for manager installs.
func WithSudo(sudo bool) Option {
	return func(p *Provider) { p.sudo = sudo }
}

// NewProvider creates a Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem, opts ...Option) *Provider {
	p := &Provider{runner: runner, fs: fs, sudo: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Steps returns the install step and, when a theme is declared, the theme
// step depending on it. Returns nothing when the prompt is disabled.
func (p *Provider) Steps(manifest *config.Manifest) []engine.Step {
	if !manifest.Prompt.Enabled {
		return nil
	}

	steps := []engine.Step{&installStep{
		runner:   p.runner,
		sudo:     p.sudo,
		critical: manifest.Prompt.Critical,
	}}

	if len(manifest.Prompt.Theme) > 0 {
		steps = append(steps, &themeStep{
			fs:    p.fs,
			theme: manifest.Prompt.Theme,
		})
	}
	return steps
}

// installStep puts the starship binary on PATH, preferring the system
// package manager and falling back to the vendor installer.
type installStep struct {
	runner   ports.CommandRunner
	sudo     bool
	critical bool
}

func (s *installStep) ID() engine.StepID          { return InstallStepID }
func (s *installStep) DependsOn() []engine.StepID { return nil }
func (s *installStep) Critical() bool             { return s.critical }

func (s *installStep) Satisfied(_ engine.RunContext) bool {
	return s.runner.LookPath("starship")
}

func (s *installStep) Apply(ctx engine.RunContext) error {
	f := ctx.Facts()

	// brew and pacman carry starship; apt and the rest do not, so those
	// hosts go through the vendor installer.
	switch f.PackageManager() {
	case facts.ManagerBrew:
		return s.run(ctx, "brew", "install", "starship")
	case facts.ManagerPacman:
		if s.sudo {
			return s.run(ctx, "sudo", "pacman", "-S", "--noconfirm", "--needed", "starship")
		}
		return s.run(ctx, "pacman", "-S", "--noconfirm", "--needed", "starship")
	}

	if !s.runner.LookPath("curl") {
		return fmt.Errorf("install starship: curl is required for the vendor installer")
	}
	return s.run(ctx, "sh", "-c", fmt.Sprintf("curl -sS %s | sh -s -- --yes", installerURL))
}

func (s *installStep) run(ctx engine.RunContext, command string, args ...string) error {
	result, err := s.runner.Run(ctx.Context(), command, args...)
	if err != nil {
		return fmt.Errorf("install starship: %w", err)
	}
	if !result.Success() {
		return fmt.Errorf("install starship: exited %d: %s",
			result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// themeStep writes the declared theme to ~/.config/starship.toml.
type themeStep struct {
	fs    ports.FileSystem
	theme map[string]interface{}
}

func (s *themeStep) ID() engine.StepID          { return ThemeStepID }
func (s *themeStep) DependsOn() []engine.StepID { return []engine.StepID{InstallStepID} }
func (s *themeStep) Critical() bool             { return false }

// ConfigPath is where the theme is written.
func ConfigPath() string {
	return ports.ExpandPath("~/.config/starship.toml")
}

func (s *themeStep) Satisfied(_ engine.RunContext) bool {
	existing, err := s.fs.ReadFile(ConfigPath())
	if err != nil {
		return false
	}
	desired, err := toml.Marshal(s.theme)
	if err != nil {
		return false
	}
	return string(existing) == string(desired)
}

func (s *themeStep) Apply(_ engine.RunContext) error {
	data, err := toml.Marshal(s.theme)
	if err != nil {
		return fmt.Errorf("write starship theme: %w", err)
	}
	path := ConfigPath()
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write starship theme: %w", err)
	}
	if err := s.fs.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write starship theme: %w", err)
	}
	return nil
}

var (
	_ engine.Step = (*installStep)(nil)
	_ engine.Step = (*themeStep)(nil)
)
