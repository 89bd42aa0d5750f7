package engine_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
)

func TestLedger_RecordsInCompletionOrder(t *testing.T) {
	t.Parallel()

	ledger := engine.NewLedger()
	ledger.Record(engine.MustNewStepID("b"), engine.Installed(time.Second))
	ledger.Record(engine.MustNewStepID("a"), engine.Skipped(engine.ReasonAlreadyPresent))

	entries := ledger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].StepID.String())
	assert.Equal(t, "a", entries[1].StepID.String())
}

func TestLedger_OutcomeIsTerminal(t *testing.T) {
	t.Parallel()

	ledger := engine.NewLedger()
	id := engine.MustNewStepID("tools:git")
	ledger.Record(id, engine.Installed(0))
	ledger.Record(id, engine.Failed(errors.New("late"), false, 0))

	outcome, ok := ledger.Outcome(id)
	require.True(t, ok)
	assert.Equal(t, engine.OutcomeInstalled, outcome.Kind())
	assert.Equal(t, 1, ledger.Len())
}

func TestLedger_SummaryCountsAndCriticalNames(t *testing.T) {
	t.Parallel()

	ledger := engine.NewLedger()
	ledger.Record(engine.MustNewStepID("a"), engine.Installed(0))
	ledger.Record(engine.MustNewStepID("b"), engine.Skipped(engine.ReasonAlreadyPresent))
	ledger.Record(engine.MustNewStepID("c"), engine.Failed(errors.New("x"), false, 0))
	ledger.Record(engine.MustNewStepID("d"), engine.Failed(errors.New("y"), true, 0))
	ledger.Record(engine.MustNewStepID("e"), engine.SkippedBlocked(engine.MustNewStepID("d")))

	summary := ledger.Summary()
	assert.Equal(t, 1, summary.Installed)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, []string{"d"}, summary.CriticalFailures)

	assert.True(t, ledger.HasCriticalFailure())
	assert.True(t, ledger.HasFailure())
}

func TestLedger_RunIDsAreUnique(t *testing.T) {
	t.Parallel()

	a := engine.NewLedger()
	b := engine.NewLedger()
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestLedger_ConcurrentRecordIsSafe(t *testing.T) {
	t.Parallel()

	ledger := engine.NewLedger()

	var wg sync.WaitGroup
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			ledger.Record(engine.MustNewStepID(id), engine.Installed(0))
		}(id)
	}
	wg.Wait()

	assert.Equal(t, len(ids), ledger.Len())
	assert.Equal(t, len(ids), ledger.Summary().Installed)
}

func TestOutcome_Accessors(t *testing.T) {
	t.Parallel()

	err := errors.New("apt-get exited 100")
	failed := engine.Failed(err, true, 2*time.Second)
	assert.Equal(t, engine.OutcomeFailedCritical, failed.Kind())
	assert.True(t, failed.Blocking())
	assert.True(t, failed.IsFailure())
	assert.Equal(t, err, failed.Err())
	assert.Equal(t, 2*time.Second, failed.Duration())

	blocked := engine.SkippedBlocked(engine.MustNewStepID("root"))
	assert.Equal(t, engine.OutcomeSkipped, blocked.Kind())
	assert.False(t, blocked.Blocking())
	assert.Equal(t, "root", blocked.BlockedBy().String())
	assert.Contains(t, blocked.Reason(), "root")
}
