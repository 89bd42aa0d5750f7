package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ThiagoSantosOFC/starship/internal/app"
	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
	"github.com/ThiagoSantosOFC/starship/internal/domain/report"
	"github.com/ThiagoSantosOFC/starship/internal/tui"
)

var (
	applyDryRun  bool
	applyWorkers int
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Provision the workstation from the manifest",
	Long: `Apply probes the host, plans the step graph from the manifest, and
executes every step that is not already satisfied.

Exit codes: 0 on success, 1 when a critical step failed, 2 when only
non-critical steps failed.`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "plan and report without changing the host")
	applyCmd.Flags().IntVar(&applyWorkers, "workers", 1, "number of steps to run concurrently")
}

func runApply(_ *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	interactive := !plain && !applyDryRun && isatty.IsTerminal(os.Stdout.Fd())

	var ledger *engine.Ledger
	var err error
	if interactive {
		ledger, err = applyInteractive(ctx, cancel)
	} else {
		ledger, err = applyPlainly(ctx)
	}
	if err != nil {
		return err
	}

	renderer := report.NewRenderer().WithPlain(plain || !interactive)
	fmt.Println(renderer.Render(ledger))
	lastExitCode = report.ExitCode(ledger)
	return nil
}

// applyPlainly runs with structured logs instead of the progress UI.
func applyPlainly(ctx context.Context) (*engine.Ledger, error) {
	setup := app.NewSetup(
		app.WithLogger(newLogger()),
		app.WithDryRun(applyDryRun),
		app.WithWorkers(applyWorkers),
	)
	return setup.Run(ctx, cfgFile)
}

// applyInteractive drives the bubbletea progress display while the run
// executes in the background.
func applyInteractive(ctx context.Context, cancel context.CancelFunc) (*engine.Ledger, error) {
	var program *tea.Program

	setup := app.NewSetup(
		app.WithDryRun(applyDryRun),
		app.WithWorkers(applyWorkers),
		app.WithOutcomeObserver(func(id engine.StepID, outcome engine.Outcome) {
			program.Send(tui.OutcomeMsg{StepID: id, Outcome: outcome})
		}),
	)

	// Plan once; the same graph feeds both the step count shown by the
	// progress display and the execution itself.
	graph, facts, err := setup.Plan(cfgFile)
	if err != nil {
		return nil, err
	}

	program = tea.NewProgram(tui.NewModel(graph.Len(), cancel))

	var ledger *engine.Ledger
	go func() {
		ledger = setup.Execute(ctx, graph, facts)
		program.Send(tui.DoneMsg{})
	}()

	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("progress display: %w", err)
	}
	return ledger, nil
}
