package pkgmgr

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/ThiagoSantosOFC/starship/internal/domain/config"
	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

// installStep installs one tool through the system package manager.
type installStep struct {
	id       engine.StepID
	deps     []engine.StepID
	tool     config.Tool
	runner   ports.CommandRunner
	sudo     bool
	critical bool
}

func (s *installStep) ID() engine.StepID          { return s.id }
func (s *installStep) DependsOn() []engine.StepID { return s.deps }
func (s *installStep) Critical() bool             { return s.critical }
func (s *installStep) LockName() string           { return LockPackageDB }

// Satisfied reports whether the tool's binary is already on PATH at a
// sufficient version.
func (s *installStep) Satisfied(ctx engine.RunContext) bool {
	if !s.runner.LookPath(s.tool.BinaryName()) {
		return false
	}
	if s.tool.MinVersion == "" {
		return true
	}
	installed, err := s.installedVersion(ctx)
	if err != nil {
		// Unparseable version output: the binary exists, treat it as good
		// rather than reinstalling on every run.
		return true
	}
	return semver.Compare(canonical(installed), canonical(s.tool.MinVersion)) >= 0
}

// Apply installs the package with the detected manager.
func (s *installStep) Apply(ctx engine.RunContext) error {
	f := ctx.Facts()
	if f.IsCompatLayer() {
		return fmt.Errorf("cannot install %s: no package manager in a Windows compatibility shell, install it manually", s.tool.Name)
	}
	if !f.HasPackageManager() {
		return fmt.Errorf("cannot install %s: no supported package manager found", s.tool.Name)
	}

	pkg := s.tool.PackageFor(string(f.PackageManager()))
	bin, args, ok := installCommand(f.PackageManager(), pkg, s.sudo)
	if !ok {
		return fmt.Errorf("cannot install %s: no install recipe for %s", s.tool.Name, f.PackageManager())
	}

	result, err := s.runner.Run(ctx.Context(), bin, args...)
	if err != nil {
		return fmt.Errorf("install %s: %w", s.tool.Name, err)
	}
	if !result.Success() {
		return fmt.Errorf("install %s: %s exited %d: %s",
			s.tool.Name, f.PackageManager(), result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// installedVersion asks the binary for its version and extracts the first
// dotted number from the output.
func (s *installStep) installedVersion(ctx engine.RunContext) (string, error) {
	result, err := s.runner.Run(ctx.Context(), s.tool.BinaryName(), "--version")
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", fmt.Errorf("%s --version exited %d", s.tool.BinaryName(), result.ExitCode)
	}
	match := versionPattern.FindString(result.Stdout)
	if match == "" {
		return "", fmt.Errorf("no version in %q", strings.TrimSpace(result.Stdout))
	}
	return match, nil
}

// canonical prefixes "v" so the value parses as a semantic version.
func canonical(version string) string {
	return "v" + strings.TrimPrefix(version, "v")
}

var _ engine.ResourceLocker = (*installStep)(nil)
