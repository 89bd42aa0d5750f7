// Package clone turns manifest clone declarations into git clone steps.
package clone

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ThiagoSantosOFC/starship/internal/domain/config"
	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
	"github.com/ThiagoSantosOFC/starship/internal/provider/pkgmgr"
)

// Provider builds clone steps from manifest clone declarations.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewProvider creates a Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, fs: fs}
}

var idCharSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_/.-]`)

// StepIDFor returns the step identifier for a clone destination. The full
// expanded path is used: two clones into directories sharing a basename
// (~/work/nvim and ~/personal/nvim) must stay distinct steps.
func StepIDFor(dest string) engine.StepID {
	path := strings.TrimSuffix(ports.ExpandPath(dest), "/")
	path = idCharSanitizer.ReplaceAllString(path, "-")
	path = strings.TrimLeft(path, "_/.-")
	return engine.MustNewStepID("clone:" + path)
}

// Steps returns one clone step per declaration. When the manifest also
// installs git, every clone depends on that install.
func (p *Provider) Steps(manifest *config.Manifest) []engine.Step {
	var deps []engine.StepID
	for _, tool := range manifest.Tools {
		if tool.Name == "git" {
			deps = []engine.StepID{pkgmgr.StepIDFor("git")}
			break
		}
	}

	steps := make([]engine.Step, 0, len(manifest.Clones))
	for _, c := range manifest.Clones {
		steps = append(steps, &cloneStep{
			id:     StepIDFor(c.Dest),
			deps:   deps,
			url:    c.URL,
			dest:   c.Dest,
			runner: p.runner,
			fs:     p.fs,
		})
	}
	return steps
}

// cloneStep clones one repository to a fixed destination.
type cloneStep struct {
	id     engine.StepID
	deps   []engine.StepID
	url    string
	dest   string
	runner ports.CommandRunner
	fs     ports.FileSystem
}

func (s *cloneStep) ID() engine.StepID          { return s.id }
func (s *cloneStep) DependsOn() []engine.StepID { return s.deps }
func (s *cloneStep) Critical() bool             { return false }

// Satisfied reports whether the destination is already a git checkout.
func (s *cloneStep) Satisfied(_ engine.RunContext) bool {
	dest := ports.ExpandPath(s.dest)
	return s.fs.IsDir(filepath.Join(dest, ".git"))
}

// Apply clones the repository. A destination that exists but is not a git
// checkout is an error rather than something to overwrite.
func (s *cloneStep) Apply(ctx engine.RunContext) error {
	dest := ports.ExpandPath(s.dest)

	if s.fs.Exists(dest) {
		return fmt.Errorf("clone %s: %s exists and is not a git checkout", s.url, dest)
	}
	if err := s.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("clone %s: %w", s.url, err)
	}

	result, err := s.runner.Run(ctx.Context(), "git", "clone", s.url, dest)
	if err != nil {
		return fmt.Errorf("clone %s: %w", s.url, err)
	}
	if !result.Success() {
		return fmt.Errorf("clone %s: git exited %d: %s",
			s.url, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}

var _ engine.Step = (*cloneStep)(nil)
