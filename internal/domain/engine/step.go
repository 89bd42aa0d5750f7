package engine

// Step is a single declared provisioning unit. Steps are registered before
// scheduling begins and must not change afterwards.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// DependsOn returns the IDs of steps that must reach a terminal outcome
	// before this one runs.
	DependsOn() []StepID

	// Critical reports whether a failure of this step blocks its dependents.
	// Non-critical failures only mark the step itself.
	Critical() bool

	// Satisfied reports whether the step's effect is already present. It
	// must be fast and non-blocking; when it returns true the step is
	// skipped and Apply is never invoked.
	Satisfied(ctx RunContext) bool

	// Apply performs the step's side effect. Invoked at most once per run.
	Apply(ctx RunContext) error
}

// ResourceLocker is implemented by steps whose Apply mutates a shared system
// resource (the package database, a shared rc file). The scheduler grants at
// most one holder per lock name at a time.
type ResourceLocker interface {
	Step

	// LockName names the shared resource. Empty means no lock.
	LockName() string
}

// LockNameOf returns the step's resource lock name, or "" if it declares none.
func LockNameOf(step Step) string {
	if l, ok := step.(ResourceLocker); ok {
		return l.LockName()
	}
	return ""
}

// FuncStep builds a Step from closures. Used by the composition layer for
// one-off steps and heavily in tests.
type FuncStep struct {
	StepID      StepID
	Deps        []StepID
	IsCritical  bool
	Lock        string
	SatisfiedFn func(ctx RunContext) bool
	ApplyFn     func(ctx RunContext) error
}

// ID returns the step identifier.
func (s *FuncStep) ID() StepID { return s.StepID }

// DependsOn returns the declared dependencies.
func (s *FuncStep) DependsOn() []StepID { return s.Deps }

// Critical reports the criticality flag.
func (s *FuncStep) Critical() bool { return s.IsCritical }

// Satisfied evaluates the idempotency predicate. A nil predicate means
// "never satisfied".
func (s *FuncStep) Satisfied(ctx RunContext) bool {
	if s.SatisfiedFn == nil {
		return false
	}
	return s.SatisfiedFn(ctx)
}

// Apply runs the apply closure. A nil closure is a no-op.
func (s *FuncStep) Apply(ctx RunContext) error {
	if s.ApplyFn == nil {
		return nil
	}
	return s.ApplyFn(ctx)
}

// LockName returns the declared resource lock name.
func (s *FuncStep) LockName() string { return s.Lock }

var _ ResourceLocker = (*FuncStep)(nil)
