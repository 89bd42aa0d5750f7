package app

import (
	"sync"

	"github.com/felixgeelhaar/statekit"
)

// Phase is the run lifecycle phase.
type Phase string

const (
	// PhaseIdle means no run has started.
	PhaseIdle Phase = "idle"
	// PhaseProbing means host facts are being gathered.
	PhaseProbing Phase = "probing"
	// PhasePlanning means the step graph is being built.
	PhasePlanning Phase = "planning"
	// PhaseApplying means steps are executing.
	PhaseApplying Phase = "applying"
	// PhaseDone means the run finished, possibly with step failures.
	PhaseDone Phase = "done"
	// PhaseFailed means the run aborted before or during execution.
	PhaseFailed Phase = "failed"
	// PhaseCancelled means the run was cancelled.
	PhaseCancelled Phase = "cancelled"
)

// Lifecycle events.
const (
	eventProbe  = "PROBE"
	eventPlan   = "PLAN"
	eventApply  = "APPLY"
	eventFinish = "FINISH"
	eventFail   = "FAIL"
	eventCancel = "CANCEL"
)

// lifecycleContext carries the last error through the machine.
type lifecycleContext struct {
	LastError error
}

// Lifecycle tracks a run's phase with a state machine, so status consumers
// (the progress UI, logs) observe only legal phase transitions.
type Lifecycle struct {
	mu      sync.Mutex
	interp  *statekit.Interpreter[lifecycleContext]
	lastErr error
}

// NewLifecycle builds and starts the lifecycle machine in PhaseIdle.
func NewLifecycle() (*Lifecycle, error) {
	l := &Lifecycle{}

	machine, err := statekit.NewMachine[lifecycleContext]("setup-run").
		WithInitial(statekit.StateID(PhaseIdle)).
		WithContext(lifecycleContext{}).
		WithAction("recordError", func(_ *lifecycleContext, event statekit.Event) {
			if err, ok := event.Payload.(error); ok {
				l.recordError(err)
			}
		}).
		State(statekit.StateID(PhaseIdle)).
		On(eventProbe).Target(statekit.StateID(PhaseProbing)).
		On(eventCancel).Target(statekit.StateID(PhaseCancelled)).Done().
		State(statekit.StateID(PhaseProbing)).
		On(eventPlan).Target(statekit.StateID(PhasePlanning)).
		On(eventFail).Target(statekit.StateID(PhaseFailed)).
		On(eventCancel).Target(statekit.StateID(PhaseCancelled)).Done().
		State(statekit.StateID(PhasePlanning)).
		On(eventApply).Target(statekit.StateID(PhaseApplying)).
		On(eventFail).Target(statekit.StateID(PhaseFailed)).
		On(eventCancel).Target(statekit.StateID(PhaseCancelled)).Done().
		State(statekit.StateID(PhaseApplying)).
		On(eventFinish).Target(statekit.StateID(PhaseDone)).
		On(eventFail).Target(statekit.StateID(PhaseFailed)).
		On(eventCancel).Target(statekit.StateID(PhaseCancelled)).Done().
		State(statekit.StateID(PhaseDone)).Done().
		State(statekit.StateID(PhaseFailed)).
		OnEntry("recordError").Done().
		State(statekit.StateID(PhaseCancelled)).Done().
		Build()
	if err != nil {
		return nil, err
	}

	l.interp = statekit.NewInterpreter(machine)
	l.interp.Start()
	return l, nil
}

func (l *Lifecycle) recordError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastErr = err
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase {
	return Phase(l.interp.State().Value)
}

// Err returns the error recorded when the run failed, if any.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Stop shuts the machine down.
func (l *Lifecycle) Stop() {
	l.interp.Stop()
}

func (l *Lifecycle) probing()  { l.interp.Send(statekit.Event{Type: eventProbe}) }
func (l *Lifecycle) planning() { l.interp.Send(statekit.Event{Type: eventPlan}) }
func (l *Lifecycle) applying() { l.interp.Send(statekit.Event{Type: eventApply}) }
func (l *Lifecycle) done()     { l.interp.Send(statekit.Event{Type: eventFinish}) }
func (l *Lifecycle) cancelled() {
	l.interp.Send(statekit.Event{Type: eventCancel})
}

func (l *Lifecycle) failed(err error) {
	l.interp.Send(statekit.Event{Type: eventFail, Payload: err})
}
