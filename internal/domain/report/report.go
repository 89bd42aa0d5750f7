// Package report renders a run's ledger into a human-readable breakdown.
// It produces strings only; printing is the caller's job.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
)

// Exit codes derived from a run's ledger.
const (
	// ExitOK means full success, or nothing to do.
	ExitOK = 0
	// ExitCriticalFailure means at least one critical step failed.
	ExitCriticalFailure = 1
	// ExitPartialFailure means only non-critical steps failed.
	ExitPartialFailure = 2
)

var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}

	titleStyle    = lipgloss.NewStyle().Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	criticalTitle = lipgloss.NewStyle().Foreground(colorError).Bold(true).Underline(true)
)

// Renderer renders ledgers. Color can be disabled for plain output.
type Renderer struct {
	plain bool
}

// NewRenderer creates a color Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// WithPlain returns a Renderer that emits no styling.
func (r *Renderer) WithPlain(plain bool) *Renderer {
	c := *r
	c.plain = plain
	return &c
}

// ExitCode maps a ledger to the process exit status: critical failures beat
// partial failures beat success.
func ExitCode(ledger *engine.Ledger) int {
	if ledger.HasCriticalFailure() {
		return ExitCriticalFailure
	}
	if ledger.HasFailure() {
		return ExitPartialFailure
	}
	return ExitOK
}

// Render produces the full per-step breakdown plus summary.
func (r *Renderer) Render(ledger *engine.Ledger) string {
	var b strings.Builder

	b.WriteString(r.style(titleStyle, "Setup Report"))
	b.WriteString("\n")
	b.WriteString(r.style(mutedStyle, "run "+ledger.RunID()))
	b.WriteString("\n\n")

	for _, entry := range ledger.Entries() {
		b.WriteString(r.renderEntry(entry))
		b.WriteString("\n")
	}

	summary := ledger.Summary()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d installed, %d skipped, %d failed\n",
		summary.Installed, summary.Skipped, summary.Failed))

	if len(summary.CriticalFailures) > 0 {
		b.WriteString("\n")
		b.WriteString(r.style(criticalTitle, "Critical failures"))
		b.WriteString("\n")
		for _, name := range summary.CriticalFailures {
			outcome, _ := ledger.Outcome(engine.MustNewStepID(name))
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", r.style(errorStyle, "✗"), name, outcome.Reason()))
		}
	}

	return b.String()
}

// RenderSummary produces the one-line closing summary.
func (r *Renderer) RenderSummary(ledger *engine.Ledger) string {
	summary := ledger.Summary()
	line := fmt.Sprintf("%d installed, %d skipped, %d failed", summary.Installed, summary.Skipped, summary.Failed)

	switch ExitCode(ledger) {
	case ExitCriticalFailure:
		return r.style(errorStyle, line+" (critical failures)")
	case ExitPartialFailure:
		return r.style(warnStyle, line+" (completed with failures)")
	default:
		return r.style(successStyle, line)
	}
}

func (r *Renderer) renderEntry(entry engine.Entry) string {
	var marker, detail string
	var style lipgloss.Style

	switch entry.Outcome.Kind() {
	case engine.OutcomeInstalled:
		marker, style = "✓", successStyle
		detail = kindLabel(entry.Outcome.Kind())
		if d := entry.Outcome.Duration(); d > 0 {
			detail += " (" + d.Round(10*time.Millisecond).String() + ")"
		}
	case engine.OutcomeSkipped:
		marker, style = "-", mutedStyle
		detail = "skipped: " + entry.Outcome.Reason()
	case engine.OutcomeFailed:
		marker, style = "✗", warnStyle
		detail = "failed: " + entry.Outcome.Reason()
	case engine.OutcomeFailedCritical:
		marker, style = "✗", errorStyle
		detail = "failed (critical): " + entry.Outcome.Reason()
	}

	return fmt.Sprintf("  %s %s  %s", r.style(style, marker), entry.StepID.String(), detail)
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

// kindLabel returns the outcome kind as a display word.
func kindLabel(kind engine.OutcomeKind) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(kind), "-", " "))
}
