package engine

import "time"

// OutcomeKind is the terminal state a step reached. The per-step state
// machine is Pending -> {Installed, Skipped, Failed, FailedCritical}; there
// are no transitions back, and exactly one outcome is recorded per step per
// run.
type OutcomeKind string

const (
	// OutcomeInstalled means Apply ran and succeeded.
	OutcomeInstalled OutcomeKind = "installed"
	// OutcomeSkipped means Apply was not invoked: the effect was already
	// present, a critical dependency failed, or the run was cancelled.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeFailed means a non-critical step's Apply returned an error.
	OutcomeFailed OutcomeKind = "failed"
	// OutcomeFailedCritical means a critical step's Apply returned an
	// error; dependents will be skipped.
	OutcomeFailedCritical OutcomeKind = "failed-critical"
)

// Skip reasons used by the scheduler.
const (
	ReasonAlreadyPresent = "already present"
	ReasonRunCancelled   = "run cancelled"
)

// Outcome is the recorded result of one step.
type Outcome struct {
	kind      OutcomeKind
	reason    string
	err       error
	blockedBy StepID
	duration  time.Duration
}

// Installed creates a success outcome.
func Installed(duration time.Duration) Outcome {
	return Outcome{kind: OutcomeInstalled, duration: duration}
}

// Skipped creates a skip outcome with a reason.
func Skipped(reason string) Outcome {
	return Outcome{kind: OutcomeSkipped, reason: reason}
}

// SkippedBlocked creates a skip outcome for a step blocked by a critical
// failure upstream.
func SkippedBlocked(blocker StepID) Outcome {
	return Outcome{
		kind:      OutcomeSkipped,
		reason:    "blocked by critical failure of " + blocker.String(),
		blockedBy: blocker,
	}
}

// Failed creates a failure outcome, critical or not.
func Failed(err error, critical bool, duration time.Duration) Outcome {
	kind := OutcomeFailed
	if critical {
		kind = OutcomeFailedCritical
	}
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return Outcome{kind: kind, reason: reason, err: err, duration: duration}
}

// Kind returns the outcome kind.
func (o Outcome) Kind() OutcomeKind { return o.kind }

// Reason returns the human-readable reason (failure message or skip cause).
func (o Outcome) Reason() string { return o.reason }

// Err returns the error for failure outcomes, nil otherwise.
func (o Outcome) Err() error { return o.err }

// BlockedBy returns the critical step that blocked this one, or the zero
// StepID. Propagated transitively so a whole blocked branch names the same
// root cause.
func (o Outcome) BlockedBy() StepID { return o.blockedBy }

// Duration returns how long Apply took, zero for skips.
func (o Outcome) Duration() time.Duration { return o.duration }

// IsFailure reports whether the step failed, critically or not.
func (o Outcome) IsFailure() bool {
	return o.kind == OutcomeFailed || o.kind == OutcomeFailedCritical
}

// Blocking reports whether this outcome suppresses dependents.
func (o Outcome) Blocking() bool { return o.kind == OutcomeFailedCritical }
