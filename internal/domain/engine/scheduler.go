package engine

import (
	"context"
	"sync"
	"time"

	"github.com/ThiagoSantosOFC/starship/internal/domain/facts"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

// Scheduler executes a built Graph and records one outcome per step.
//
// The reference mode is a single thread of control. WithWorkers enables a
// bounded pool where independent branches run concurrently; the dependency
// ordering guarantee is preserved via a per-step barrier, and steps that
// declare a resource lock are serialized per lock name.
type Scheduler struct {
	workers int
	dryRun  bool
	logger  ports.Logger
	// onOutcome, when set, observes each recorded outcome. Used by the
	// progress UI; must not block for long.
	onOutcome func(StepID, Outcome)
}

// NewScheduler creates a sequential Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{workers: 1}
}

// WithWorkers returns a Scheduler running up to n steps concurrently.
// Values below 2 keep the sequential reference mode.
func (s *Scheduler) WithWorkers(n int) *Scheduler {
	c := *s
	c.workers = n
	return &c
}

// WithDryRun returns a Scheduler that records what would happen without
// invoking Apply.
func (s *Scheduler) WithDryRun(dryRun bool) *Scheduler {
	c := *s
	c.dryRun = dryRun
	return &c
}

// WithLogger returns a Scheduler that logs step transitions.
func (s *Scheduler) WithLogger(logger ports.Logger) *Scheduler {
	c := *s
	c.logger = logger
	return &c
}

// WithOutcomeObserver returns a Scheduler notifying fn after each outcome is
// recorded.
func (s *Scheduler) WithOutcomeObserver(fn func(StepID, Outcome)) *Scheduler {
	c := *s
	c.onOutcome = fn
	return &c
}

// Run executes all steps of the graph against the given facts and returns
// the completed Ledger. Individual Apply failures never abort the run; they
// are classified and recorded. Cancellation is cooperative: an in-flight
// Apply finishes, and all not-yet-started steps are recorded as skipped.
func (s *Scheduler) Run(ctx context.Context, graph *Graph, f facts.Facts) *Ledger {
	ledger := NewLedger()
	run := NewRunContext(ctx, f).WithDryRun(s.dryRun)

	if s.workers > 1 {
		s.runConcurrent(ctx, graph, run, ledger)
	} else {
		s.runSequential(ctx, graph, run, ledger)
	}
	return ledger
}

func (s *Scheduler) runSequential(ctx context.Context, graph *Graph, run RunContext, ledger *Ledger) {
	cancelled := false
	for _, step := range graph.Steps() {
		if !cancelled {
			select {
			case <-ctx.Done():
				cancelled = true
			default:
			}
		}
		if cancelled {
			s.record(ledger, step.ID(), Skipped(ReasonRunCancelled))
			continue
		}

		s.record(ledger, step.ID(), s.execute(step, run, ledger))
	}
}

func (s *Scheduler) runConcurrent(ctx context.Context, graph *Graph, run RunContext, ledger *Ledger) {
	steps := graph.Steps()

	done := make(map[string]chan struct{}, len(steps))
	for _, step := range steps {
		done[step.ID().String()] = make(chan struct{})
	}

	locks := make(map[string]*sync.Mutex, len(graph.LockNames()))
	for _, name := range graph.LockNames() {
		locks[name] = &sync.Mutex{}
	}

	sem := make(chan struct{}, s.workers)

	var wg sync.WaitGroup
	for _, step := range steps {
		wg.Add(1)
		go func(step Step) {
			defer wg.Done()
			defer close(done[step.ID().String()])

			// Barrier: every dependency must have posted a terminal outcome.
			for _, dep := range step.DependsOn() {
				<-done[dep.String()]
			}

			// Blocking propagation is decided before admission so a blocked
			// step never waits for a worker slot.
			if blocker, blocked := s.blockerFor(step, ledger); blocked {
				s.record(ledger, step.ID(), SkippedBlocked(blocker))
				return
			}

			select {
			case <-ctx.Done():
				s.record(ledger, step.ID(), Skipped(ReasonRunCancelled))
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			s.record(ledger, step.ID(), s.executeLocked(step, run, locks))
		}(step)
	}
	wg.Wait()
}

// execute applies the decision rules for one step in sequential mode.
func (s *Scheduler) execute(step Step, run RunContext, ledger *Ledger) Outcome {
	if blocker, blocked := s.blockerFor(step, ledger); blocked {
		return SkippedBlocked(blocker)
	}
	if step.Satisfied(run) {
		return Skipped(ReasonAlreadyPresent)
	}
	return s.apply(step, run)
}

// executeLocked is the concurrent-mode variant: the resource lock, if any,
// is held for the full duration of Satisfied and Apply.
func (s *Scheduler) executeLocked(step Step, run RunContext, locks map[string]*sync.Mutex) Outcome {
	if name := LockNameOf(step); name != "" {
		mu := locks[name]
		mu.Lock()
		defer mu.Unlock()
	}

	if step.Satisfied(run) {
		return Skipped(ReasonAlreadyPresent)
	}
	return s.apply(step, run)
}

// blockerFor returns the root critically-failed step this step is blocked
// by. Blocking propagates transitively through skipped-blocked dependencies.
func (s *Scheduler) blockerFor(step Step, ledger *Ledger) (StepID, bool) {
	for _, dep := range step.DependsOn() {
		outcome, ok := ledger.Outcome(dep)
		if !ok {
			continue
		}
		if outcome.Blocking() {
			return dep, true
		}
		if root := outcome.BlockedBy(); !root.IsZero() {
			return root, true
		}
	}
	return StepID{}, false
}

func (s *Scheduler) apply(step Step, run RunContext) Outcome {
	if run.DryRun() {
		return Skipped("dry run")
	}

	start := time.Now()
	err := step.Apply(run)
	duration := time.Since(start)

	if err != nil {
		return Failed(err, step.Critical(), duration)
	}
	return Installed(duration)
}

func (s *Scheduler) record(ledger *Ledger, id StepID, outcome Outcome) {
	ledger.Record(id, outcome)

	if s.logger != nil {
		fields := []ports.Field{
			ports.F("step", id.String()),
			ports.F("outcome", string(outcome.Kind())),
		}
		if outcome.Reason() != "" {
			fields = append(fields, ports.F("reason", outcome.Reason()))
		}
		switch {
		case outcome.Kind() == OutcomeFailedCritical:
			s.logger.Error(context.Background(), "step failed", fields...)
		case outcome.IsFailure():
			s.logger.Warn(context.Background(), "step failed", fields...)
		default:
			s.logger.Debug(context.Background(), "step finished", fields...)
		}
	}

	if s.onOutcome != nil {
		s.onOutcome(id, outcome)
	}
}
