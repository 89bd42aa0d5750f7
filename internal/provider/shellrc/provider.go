// Package shellrc maintains a managed block inside shell startup files. The
// block is delimited by markers so reruns replace it instead of appending.
package shellrc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ThiagoSantosOFC/starship/internal/domain/config"
	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
	"github.com/ThiagoSantosOFC/starship/internal/provider/prompt"
)

const (
	beginMarker = "# >>> starship-setup managed block >>>"
	endMarker   = "# <<< starship-setup managed block <<<"
)

// rcPaths maps each supported shell to its startup file.
var rcPaths = map[string]string{
	"bash": "~/.bashrc",
	"zsh":  "~/.zshrc",
	"fish": "~/.config/fish/config.fish",
}

// initLines maps each shell to the line that activates the starship prompt.
var initLines = map[string]string{
	"bash": `eval "$(starship init bash)"`,
	"zsh":  `eval "$(starship init zsh)"`,
	"fish": "starship init fish | source",
}

// Provider builds one managed-block step per configured shell.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a Provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// StepIDFor returns the step identifier for a shell.
func StepIDFor(shell string) engine.StepID {
	return engine.MustNewStepID("shellrc:" + shell)
}

// Steps returns one step per shell in the manifest. When the prompt is
// enabled each step gains the starship init line and depends on the prompt
// install.
func (p *Provider) Steps(manifest *config.Manifest) []engine.Step {
	var deps []engine.StepID
	if manifest.Prompt.Enabled {
		deps = []engine.StepID{prompt.InstallStepID}
	}

	steps := make([]engine.Step, 0, len(manifest.Shell.Shells))
	for _, shell := range manifest.Shell.Shells {
		lines := append([]string{}, manifest.Shell.Lines...)
		if manifest.Prompt.Enabled {
			lines = append(lines, initLines[shell])
		}
		if len(lines) == 0 {
			continue
		}
		steps = append(steps, &blockStep{
			id:     StepIDFor(shell),
			deps:   deps,
			rcPath: rcPaths[shell],
			lines:  lines,
			fs:     p.fs,
		})
	}
	return steps
}

// blockStep keeps one rc file's managed block in sync.
type blockStep struct {
	id     engine.StepID
	deps   []engine.StepID
	rcPath string
	lines  []string
	fs     ports.FileSystem
}

func (s *blockStep) ID() engine.StepID          { return s.id }
func (s *blockStep) DependsOn() []engine.StepID { return s.deps }
func (s *blockStep) Critical() bool             { return false }

// LockName serializes writers of the same rc file.
func (s *blockStep) LockName() string { return "rc:" + s.rcPath }

func (s *blockStep) block() string {
	return beginMarker + "\n" + strings.Join(s.lines, "\n") + "\n" + endMarker
}

// Satisfied reports whether the rc file already carries the exact block.
func (s *blockStep) Satisfied(_ engine.RunContext) bool {
	data, err := s.fs.ReadFile(ports.ExpandPath(s.rcPath))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), s.block())
}

// Apply rewrites the managed block in place, or appends it to a file (or a
// missing file) that has none.
func (s *blockStep) Apply(_ engine.RunContext) error {
	path := ports.ExpandPath(s.rcPath)

	var content string
	if data, err := s.fs.ReadFile(path); err == nil {
		content = string(data)
	} else if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("update %s: %w", s.rcPath, err)
	}

	updated, err := replaceBlock(content, s.block())
	if err != nil {
		return fmt.Errorf("update %s: %w", s.rcPath, err)
	}
	if err := s.fs.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("update %s: %w", s.rcPath, err)
	}
	return nil
}

// replaceBlock swaps the existing managed block for the desired one, or
// appends the block when none exists. Mismatched markers are an error;
// rewriting around them risks destroying user content.
func replaceBlock(content, block string) (string, error) {
	begin := strings.Index(content, beginMarker)
	end := strings.Index(content, endMarker)

	switch {
	case begin == -1 && end == -1:
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if content != "" {
			content += "\n"
		}
		return content + block + "\n", nil
	case begin == -1 || end == -1 || end < begin:
		return "", fmt.Errorf("managed block markers are damaged, fix the file by hand")
	default:
		return content[:begin] + block + content[end+len(endMarker):], nil
	}
}

var _ engine.ResourceLocker = (*blockStep)(nil)
