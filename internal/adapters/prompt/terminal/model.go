package terminal

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bnema/slotbot/internal/ports"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

type outcome int

const (
	outcomePending outcome = iota
	outcomeSubmitted
	outcomeCancelled
	outcomeExpired
)

type model struct {
	prompt   ports.ChoicePrompt
	keys     keyMap
	help     help.Model
	now      func() time.Time
	cursor   int
	selected []int
	notice   string
	outcome  outcome
}

func newModel(prompt ports.ChoicePrompt, now func() time.Time) model {
	if now == nil {
		now = time.Now
	}

	return model{
		prompt: prompt,
		keys:   newKeyMap(),
		help:   help.New(),
		now:    now,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	if m.prompt.Deadline.IsZero() {
		return nil
	}
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.prompt.Deadline.IsZero() && !m.now().Before(m.prompt.Deadline) {
			m.outcome = outcomeExpired
			return m, tea.Quit
		}
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.outcome = outcomeCancelled
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.prompt.Options)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
		case key.Matches(msg, m.keys.Submit):
			if len(m.selected) == 0 {
				m.notice = "Select at least one slot."
				return m, nil
			}
			m.outcome = outcomeSubmitted
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *model) toggle() {
	if len(m.prompt.Options) == 0 {
		return
	}

	slot := m.prompt.Options[m.cursor].Slot
	if i := slices.Index(m.selected, slot); i >= 0 {
		m.selected = slices.Delete(m.selected, i, i+1)
		m.notice = ""
		return
	}
	if len(m.selected) >= m.prompt.MaxSelections {
		m.notice = fmt.Sprintf("You can select at most %d slots.", m.prompt.MaxSelections)
		return
	}

	m.selected = append(m.selected, slot)
	m.notice = ""
}

// Selection returns the chosen slots in the order they were picked, or nil
// when the widget was not submitted.
func (m model) Selection() []int {
	if m.outcome != outcomeSubmitted {
		return nil
	}
	return slices.Clone(m.selected)
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m model) View() string {
	if m.outcome != outcomePending {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.prompt.Title))
	b.WriteString("\n")
	if !m.prompt.Deadline.IsZero() {
		remaining := m.prompt.Deadline.Sub(m.now()).Round(time.Second)
		if remaining < 0 {
			remaining = 0
		}
		b.WriteString(metaStyle.Render(fmt.Sprintf("%d/%d selected, %s left", len(m.selected), m.prompt.MaxSelections, remaining)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, option := range m.prompt.Options {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render(">") + " "
		}
		check := "[ ]"
		label := option.Label
		if slices.Contains(m.selected, option.Slot) {
			check = "[x]"
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s%s %s\n", pointer, check, label)
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}
