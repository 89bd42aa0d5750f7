// Package tui renders live run progress on an interactive terminal. The
// model is fed step outcomes through Program.Send by the scheduler's outcome
// observer; non-TTY runs bypass it entirely.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ThiagoSantosOFC/starship/internal/domain/engine"
)

// OutcomeMsg reports one recorded step outcome.
type OutcomeMsg struct {
	StepID  engine.StepID
	Outcome engine.Outcome
}

// DoneMsg ends the progress display.
type DoneMsg struct{}

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"})
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"})
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"})
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8839ef", Dark: "#cba6f7"})
)

type progressLine struct {
	id      engine.StepID
	outcome engine.Outcome
}

// Model is the bubbletea model for a run in progress.
type Model struct {
	spinner  spinner.Model
	total    int
	lines    []progressLine
	done     bool
	onCancel func()
}

// NewModel creates a progress model for a run of total steps. onCancel is
// invoked when the user interrupts; it should cancel the run context.
func NewModel(total int, onCancel func()) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return Model{spinner: s, total: total, onCancel: onCancel}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			if m.onCancel != nil {
				m.onCancel()
			}
			return m, nil
		}
		return m, nil

	case OutcomeMsg:
		m.lines = append(m.lines, progressLine{id: msg.StepID, outcome: msg.Outcome})
		return m, nil

	case DoneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the completed steps plus a spinner line while running.
func (m Model) View() string {
	var b strings.Builder

	for _, line := range m.lines {
		b.WriteString(renderLine(line))
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString(fmt.Sprintf("%s applying... (%d/%d)\n",
			m.spinner.View(), len(m.lines), m.total))
	}
	return b.String()
}

// Lines returns how many outcomes arrived so far.
func (m Model) Lines() int { return len(m.lines) }

func renderLine(line progressLine) string {
	switch line.outcome.Kind() {
	case engine.OutcomeInstalled:
		return fmt.Sprintf("  %s %s", okStyle.Render("✓"), line.id)
	case engine.OutcomeSkipped:
		return skipStyle.Render(fmt.Sprintf("  - %s (%s)", line.id, line.outcome.Reason()))
	default:
		return fmt.Sprintf("  %s %s: %s", failStyle.Render("✗"), line.id, line.outcome.Reason())
	}
}
