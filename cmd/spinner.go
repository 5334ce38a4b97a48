package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/slotbot/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type progressLabels struct {
	pending string
	done    string
}

func progressLabelsFor(kind application.RequestKind) progressLabels {
	switch kind {
	case application.RequestSignUp:
		return progressLabels{pending: "Signing up", done: "Sign-up handled"}
	case application.RequestLeave:
		return progressLabels{pending: "Leaving slot", done: "Leave handled"}
	case application.RequestCreateEvent:
		return progressLabels{pending: "Creating event", done: "Event request handled"}
	case application.RequestEditEvent:
		return progressLabels{pending: "Updating event", done: "Event request handled"}
	default:
		return progressLabels{pending: "Working", done: "Done"}
	}
}

var (
	progressSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	progressDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	progressFailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	progressMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type workFinishedMsg struct {
	err     error
	elapsed time.Duration
}

// progressModel runs one store round trip and leaves a single status line
// behind: the spinner while it runs, then the outcome with its duration.
type progressModel struct {
	spinner  spinner.Model
	labels   progressLabels
	work     tea.Cmd
	finished *workFinishedMsg
}

func newProgressModel(labels progressLabels, work func() error) progressModel {
	started := time.Now()

	return progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(progressSpinnerStyle)),
		labels:  labels,
		work: func() tea.Msg {
			err := work()
			return workFinishedMsg{err: err, elapsed: time.Since(started)}
		},
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workFinishedMsg:
		m.finished = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m progressModel) View() string {
	if m.finished == nil {
		return fmt.Sprintf("%s %s...", m.spinner.View(), m.labels.pending)
	}

	elapsed := progressMetaStyle.Render(m.finished.elapsed.Round(time.Millisecond).String())
	if m.finished.err != nil {
		return progressFailedStyle.Render("x "+m.labels.pending+" failed") + " " + elapsed + "\n"
	}
	return progressDoneStyle.Render("ok "+m.labels.done) + " " + elapsed + "\n"
}

// runWithSpinner shows progress on output while work runs and returns the
// work's error.
func runWithSpinner(ctx context.Context, output io.Writer, labels progressLabels, work func(context.Context) error) error {
	p := tea.NewProgram(
		newProgressModel(labels, func() error { return work(ctx) }),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run progress view: %w", err)
	}

	result, ok := finalModel.(progressModel)
	if !ok || result.finished == nil {
		return fmt.Errorf("progress view ended before the request finished")
	}
	return result.finished.err
}
