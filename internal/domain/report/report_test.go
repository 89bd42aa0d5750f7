package report_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
	"github.com/ThiagoSantosOFC/starship/internal/domain/report"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	clean := engine.NewLedger()
	clean.Record(engine.MustNewStepID("a"), engine.Installed(time.Second))
	clean.Record(engine.MustNewStepID("b"), engine.Skipped(engine.ReasonAlreadyPresent))
	assert.Equal(t, report.ExitOK, report.ExitCode(clean))

	partial := engine.NewLedger()
	partial.Record(engine.MustNewStepID("a"), engine.Failed(errors.New("x"), false, 0))
	assert.Equal(t, report.ExitPartialFailure, report.ExitCode(partial))

	critical := engine.NewLedger()
	critical.Record(engine.MustNewStepID("a"), engine.Failed(errors.New("x"), false, 0))
	critical.Record(engine.MustNewStepID("b"), engine.Failed(errors.New("y"), true, 0))
	assert.Equal(t, report.ExitCriticalFailure, report.ExitCode(critical))
}

func TestRenderer_GroupsCriticalFailures(t *testing.T) {
	t.Parallel()

	ledger := engine.NewLedger()
	ledger.Record(engine.MustNewStepID("pkgmgr:install:gcc"), engine.Failed(errors.New("mirror unreachable"), true, time.Second))
	ledger.Record(engine.MustNewStepID("pkgmgr:install:make"), engine.SkippedBlocked(engine.MustNewStepID("pkgmgr:install:gcc")))
	ledger.Record(engine.MustNewStepID("clone:dotfiles"), engine.Installed(2*time.Second))

	out := report.NewRenderer().WithPlain(true).Render(ledger)

	assert.Contains(t, out, "Critical failures")
	assert.Contains(t, out, "pkgmgr:install:gcc: mirror unreachable")
	assert.Contains(t, out, "blocked by critical failure of pkgmgr:install:gcc")
	assert.Contains(t, out, "1 installed, 1 skipped, 1 failed")
	assert.Contains(t, out, ledger.RunID())
}

func TestRenderer_OmitsCriticalSectionWhenClean(t *testing.T) {
	t.Parallel()

	ledger := engine.NewLedger()
	ledger.Record(engine.MustNewStepID("a"), engine.Installed(time.Second))

	out := report.NewRenderer().WithPlain(true).Render(ledger)
	assert.NotContains(t, out, "Critical failures")
	assert.Contains(t, out, "Installed")
}

func TestRenderer_SummaryDistinguishesFailureModes(t *testing.T) {
	t.Parallel()

	r := report.NewRenderer().WithPlain(true)

	ok := engine.NewLedger()
	ok.Record(engine.MustNewStepID("a"), engine.Installed(0))
	assert.NotContains(t, r.RenderSummary(ok), "failures")

	partial := engine.NewLedger()
	partial.Record(engine.MustNewStepID("a"), engine.Failed(errors.New("x"), false, 0))
	assert.Contains(t, r.RenderSummary(partial), "completed with failures")

	critical := engine.NewLedger()
	critical.Record(engine.MustNewStepID("a"), engine.Failed(errors.New("x"), true, 0))
	assert.Contains(t, r.RenderSummary(critical), "critical failures")
}
