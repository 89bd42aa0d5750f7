package engine

import (
	"sync"

	"github.com/google/uuid"
)

// Entry is one recorded (step, outcome) pair.
type Entry struct {
	StepID  StepID
	Outcome Outcome
}

// Ledger accumulates per-step outcomes for a single run, insertion-ordered
// by completion time. It is the only mutable structure shared between
// concurrently executing steps, so Record is serialized. The Ledger itself
// performs no I/O.
type Ledger struct {
	mu      sync.Mutex
	runID   string
	entries []Entry
	byID    map[string]Outcome
}

// NewLedger creates an empty Ledger with a fresh run ID.
func NewLedger() *Ledger {
	return &Ledger{
		runID: uuid.NewString(),
		byID:  make(map[string]Outcome),
	}
}

// RunID returns the unique identifier of this run.
func (l *Ledger) RunID() string { return l.runID }

// Record appends an outcome for a step. A step's outcome is terminal: a
// second record for the same step is dropped.
func (l *Ledger) Record(stepID StepID, outcome Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := stepID.String()
	if _, exists := l.byID[id]; exists {
		return
	}
	l.byID[id] = outcome
	l.entries = append(l.entries, Entry{StepID: stepID, Outcome: outcome})
}

// Outcome returns the recorded outcome for a step, if any.
func (l *Ledger) Outcome(stepID StepID) (Outcome, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	outcome, ok := l.byID[stepID.String()]
	return outcome, ok
}

// Entries returns a copy of all recorded entries in completion order.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Summary aggregates outcome counts for one run.
type Summary struct {
	Installed        int
	Skipped          int
	Failed           int
	CriticalFailures []string
}

// Summary returns aggregate counts and the names of critically failed steps.
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s Summary
	for _, entry := range l.entries {
		switch entry.Outcome.Kind() {
		case OutcomeInstalled:
			s.Installed++
		case OutcomeSkipped:
			s.Skipped++
		case OutcomeFailed:
			s.Failed++
		case OutcomeFailedCritical:
			s.Failed++
			s.CriticalFailures = append(s.CriticalFailures, entry.StepID.String())
		}
	}
	return s
}

// HasCriticalFailure reports whether any step ended FailedCritical.
func (l *Ledger) HasCriticalFailure() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if entry.Outcome.Kind() == OutcomeFailedCritical {
			return true
		}
	}
	return false
}

// HasFailure reports whether any step failed, critically or not.
func (l *Ledger) HasFailure() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if entry.Outcome.IsFailure() {
			return true
		}
	}
	return false
}
