package clone_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThiagoSantosOFC/starship/internal/domain/config"
	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
	"github.com/ThiagoSantosOFC/starship/internal/domain/facts"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
	"github.com/ThiagoSantosOFC/starship/internal/provider/clone"
	"github.com/ThiagoSantosOFC/starship/internal/provider/pkgmgr"
	"github.com/ThiagoSantosOFC/starship/internal/testutil/mocks"
)

func runCtx() engine.RunContext {
	f := facts.New(facts.OSLinux, facts.ManagerApt, facts.ArchX8664, facts.SandboxNative, "debian")
	return engine.NewRunContext(context.Background(), f)
}

func manifest(clones ...config.Clone) *config.Manifest {
	return &config.Manifest{Clones: clones}
}

func TestCloneStep_SatisfiedWhenCheckoutExists(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddDir("/srv/dotfiles/.git")

	steps := clone.NewProvider(mocks.NewCommandRunner(), fs).
		Steps(manifest(config.Clone{URL: "https://example.com/d.git", Dest: "/srv/dotfiles"}))
	require.Len(t, steps, 1)

	assert.True(t, steps[0].Satisfied(runCtx()))
}

func TestCloneStep_ClonesIntoMissingDest(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()

	steps := clone.NewProvider(runner, fs).
		Steps(manifest(config.Clone{URL: "https://example.com/d.git", Dest: "/srv/dotfiles"}))

	require.False(t, steps[0].Satisfied(runCtx()))
	require.NoError(t, steps[0].Apply(runCtx()))
	assert.True(t, runner.Ran("git clone https://example.com/d.git /srv/dotfiles"))
	assert.True(t, fs.IsDir("/srv"))
}

func TestCloneStep_RefusesNonCheckoutDest(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	fs.AddDir("/srv/dotfiles")

	steps := clone.NewProvider(runner, fs).
		Steps(manifest(config.Clone{URL: "https://example.com/d.git", Dest: "/srv/dotfiles"}))

	err := steps[0].Apply(runCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git checkout")
	assert.Empty(t, runner.Calls())
}

func TestCloneStep_SurfacesGitFailure(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	runner.AddResult("git clone https://example.com/d.git /srv/dotfiles",
		ports.CommandResult{ExitCode: 128, Stderr: "fatal: repository not found"})

	steps := clone.NewProvider(runner, mocks.NewFileSystem()).
		Steps(manifest(config.Clone{URL: "https://example.com/d.git", Dest: "/srv/dotfiles"}))

	err := steps[0].Apply(runCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository not found")
}

func TestProvider_DependsOnGitInstallWhenDeclared(t *testing.T) {
	t.Parallel()

	m := &config.Manifest{
		Tools:  []config.Tool{{Name: "git"}},
		Clones: []config.Clone{{URL: "https://example.com/d.git", Dest: "~/dotfiles"}},
	}

	steps := clone.NewProvider(mocks.NewCommandRunner(), mocks.NewFileSystem()).Steps(m)
	require.Len(t, steps, 1)
	assert.Equal(t, []engine.StepID{pkgmgr.StepIDFor("git")}, steps[0].DependsOn())
	assert.Equal(t, clone.StepIDFor("~/dotfiles"), steps[0].ID())
}

func TestProvider_SameBasenameDestsGetDistinctSteps(t *testing.T) {
	t.Parallel()

	steps := clone.NewProvider(mocks.NewCommandRunner(), mocks.NewFileSystem()).
		Steps(manifest(
			config.Clone{URL: "https://example.com/work.git", Dest: "/srv/work/nvim"},
			config.Clone{URL: "https://example.com/personal.git", Dest: "/srv/personal/nvim"},
		))
	require.Len(t, steps, 2)
	assert.NotEqual(t, steps[0].ID(), steps[1].ID())

	// Both must survive registration: a valid manifest may not abort the run.
	reg := engine.NewRegistry()
	require.NoError(t, reg.Register(steps[0]))
	require.NoError(t, reg.Register(steps[1]))
	_, err := reg.Build()
	require.NoError(t, err)
}

func TestStepIDFor_SanitizesAwkwardPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "clone:srv/dotfiles", clone.StepIDFor("/srv/dotfiles/").String())
	assert.Equal(t, "clone:srv/my-dots", clone.StepIDFor("/srv/my dots").String())
}

func TestProvider_NoGitDependencyWithoutGitTool(t *testing.T) {
	t.Parallel()

	steps := clone.NewProvider(mocks.NewCommandRunner(), mocks.NewFileSystem()).
		Steps(manifest(config.Clone{URL: "https://example.com/d.git", Dest: "~/dotfiles"}))

	assert.Empty(t, steps[0].DependsOn())
}
