// Package app composes the manifest loader, the environment probe, the
// providers, and the scheduler into one run.
package app

import (
	"context"
	"fmt"

	"github.com/ThiagoSantosOFC/starship/internal/adapters/command"
	"github.com/ThiagoSantosOFC/starship/internal/adapters/filesystem"
	"github.com/ThiagoSantosOFC/starship/internal/adapters/logging"
	"github.com/ThiagoSantosOFC/starship/internal/domain/config"
	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
	"github.com/ThiagoSantosOFC/starship/internal/domain/facts"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
	"github.com/ThiagoSantosOFC/starship/internal/provider/clone"
	"github.com/ThiagoSantosOFC/starship/internal/provider/pkgmgr"
	"github.com/ThiagoSantosOFC/starship/internal/provider/prompt"
	"github.com/ThiagoSantosOFC/starship/internal/provider/shellrc"
)

// Setup orchestrates one provisioning run: load manifest, probe the host,
// register provider steps, build the graph, execute, report.
type Setup struct {
	loader   *config.Loader
	prober   *facts.Prober
	runner   ports.CommandRunner
	fs       ports.FileSystem
	logger   ports.Logger
	workers  int
	dryRun   bool
	sudo     *bool
	observer func(engine.StepID, engine.Outcome)
}

// Option configures a Setup.
type Option func(*Setup)

// WithRunner replaces the command runner.
func WithRunner(runner ports.CommandRunner) Option {
	return func(s *Setup) { s.runner = runner }
}

// WithFileSystem replaces the filesystem.
func WithFileSystem(fs ports.FileSystem) Option {
	return func(s *Setup) { s.fs = fs }
}

// WithLogger replaces the logger.
func WithLogger(logger ports.Logger) Option {
	return func(s *Setup) { s.logger = logger }
}

// WithProber replaces the environment prober.
func WithProber(prober *facts.Prober) Option {
	return func(s *Setup) { s.prober = prober }
}

// WithWorkers sets the concurrency level. Below 2 means sequential.
func WithWorkers(n int) Option {
	return func(s *Setup) { s.workers = n }
}

// WithDryRun plans and reports without applying.
func WithDryRun(dryRun bool) Option {
	return func(s *Setup) { s.dryRun = dryRun }
}

// WithSudo overrides the providers' root detection.
func WithSudo(sudo bool) Option {
	return func(s *Setup) { s.sudo = &sudo }
}

// WithOutcomeObserver registers a callback invoked after every step outcome.
func WithOutcomeObserver(fn func(engine.StepID, engine.Outcome)) Option {
	return func(s *Setup) { s.observer = fn }
}

// NewSetup creates a Setup backed by the real host adapters.
func NewSetup(opts ...Option) *Setup {
	s := &Setup{
		loader:  config.NewLoader(),
		runner:  command.NewRealRunner(),
		fs:      filesystem.NewRealFileSystem(),
		logger:  logging.NewNopLogger(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.prober == nil {
		s.prober = facts.NewProber(facts.WithLookPath(s.runner.LookPath))
	}
	return s
}

// Probe returns the host fact sheet.
func (s *Setup) Probe() facts.Facts {
	return s.prober.Probe()
}

// warnDegradedFacts surfaces probe signals that degraded to a sentinel. The
// run continues either way; these only explain later failures or skips.
func (s *Setup) warnDegradedFacts(ctx context.Context, f facts.Facts) {
	if f.Distro() == facts.DistroUnknown {
		s.logger.Warn(ctx, "distribution could not be determined",
			ports.F("fallback", facts.DistroUnknown))
	}
	if !f.HasPackageManager() {
		s.logger.Warn(ctx, "no supported package manager found",
			ports.F("sandbox", string(f.Sandbox())))
	}
}

// Plan loads the manifest, probes the host, and returns the validated step
// graph together with the facts it was planned against.
func (s *Setup) Plan(configPath string) (*engine.Graph, facts.Facts, error) {
	manifest, err := s.loader.Load(configPath)
	if err != nil {
		return nil, facts.Facts{}, err
	}

	f := s.Probe()
	s.logger.Info(context.Background(), "host probed", ports.F("facts", f.String()))
	s.warnDegradedFacts(context.Background(), f)

	graph, err := s.buildGraph(manifest)
	if err != nil {
		return nil, facts.Facts{}, err
	}
	return graph, f, nil
}

// Run executes the full lifecycle and returns the completed ledger. A nil
// ledger with an error means the run aborted before any step executed.
func (s *Setup) Run(ctx context.Context, configPath string) (*engine.Ledger, error) {
	lifecycle, err := NewLifecycle()
	if err != nil {
		return nil, fmt.Errorf("run lifecycle: %w", err)
	}
	defer lifecycle.Stop()

	lifecycle.probing()
	manifest, err := s.loader.Load(configPath)
	if err != nil {
		lifecycle.failed(err)
		return nil, err
	}
	f := s.Probe()
	s.logger.Info(ctx, "host probed", ports.F("facts", f.String()))
	s.warnDegradedFacts(ctx, f)

	lifecycle.planning()
	graph, err := s.buildGraph(manifest)
	if err != nil {
		lifecycle.failed(err)
		return nil, err
	}
	s.logger.Info(ctx, "plan built", ports.F("steps", fmt.Sprintf("%d", graph.Len())))

	lifecycle.applying()
	ledger := s.Execute(ctx, graph, f)

	if ctx.Err() != nil {
		lifecycle.cancelled()
	} else {
		lifecycle.done()
	}
	return ledger, nil
}

// Execute runs an already-planned graph against the facts it was planned
// with. Callers that need the step count before execution starts (the
// progress UI) plan once and pass the result here, so the executed graph can
// never diverge from the displayed one.
func (s *Setup) Execute(ctx context.Context, graph *engine.Graph, f facts.Facts) *engine.Ledger {
	scheduler := engine.NewScheduler().
		WithWorkers(s.workers).
		WithDryRun(s.dryRun).
		WithLogger(s.logger)
	if s.observer != nil {
		scheduler = scheduler.WithOutcomeObserver(s.observer)
	}
	return scheduler.Run(ctx, graph, f)
}

// buildGraph registers every provider's steps and validates the result.
func (s *Setup) buildGraph(manifest *config.Manifest) (*engine.Graph, error) {
	pkgOpts := []pkgmgr.Option{}
	promptOpts := []prompt.Option{}
	if s.sudo != nil {
		pkgOpts = append(pkgOpts, pkgmgr.WithSudo(*s.sudo))
		promptOpts = append(promptOpts, prompt.WithSudo(*s.sudo))
	}

	registry := engine.NewRegistry()
	providers := [][]engine.Step{
		pkgmgr.NewProvider(s.runner, pkgOpts...).Steps(manifest),
		clone.NewProvider(s.runner, s.fs).Steps(manifest),
		prompt.NewProvider(s.runner, s.fs, promptOpts...).Steps(manifest),
		shellrc.NewProvider(s.fs).Steps(manifest),
	}
	for _, steps := range providers {
		for _, step := range steps {
			if err := registry.Register(step); err != nil {
				return nil, err
			}
		}
	}
	return registry.Build()
}
