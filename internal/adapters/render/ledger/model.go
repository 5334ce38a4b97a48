package ledger

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/slotbot/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const DefaultWatchInterval = 5 * time.Second

// Fetcher returns the current decoded ledger of the watched event.
type Fetcher func(ctx context.Context) (domain.Ledger, error)

type WatchOptions struct {
	Interval time.Duration
	Actor    domain.ActorID
	Now      func() time.Time
}

type refreshedMsg struct {
	ledger domain.Ledger
	err    error
}

type refreshDueMsg struct{}

type watchKeys struct {
	Refresh key.Binding
	Quit    key.Binding
}

// watchModel keeps re-reading the event document and redraws the sheet after
// every read. A failed read keeps the last good sheet on screen.
type watchModel struct {
	ctx         context.Context
	fetch       Fetcher
	opts        WatchOptions
	styles      styles
	keys        watchKeys
	ledger      domain.Ledger
	loaded      bool
	err         error
	refreshedAt time.Time
}

func newWatchModel(ctx context.Context, fetch Fetcher, opts WatchOptions) watchModel {
	if opts.Interval <= 0 {
		opts.Interval = DefaultWatchInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return watchModel{
		ctx:    ctx,
		fetch:  fetch,
		opts:   opts,
		styles: newStyles(),
		keys: watchKeys{
			Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
			Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		},
	}
}

func (m watchModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ledger, err := m.fetch(m.ctx)
		return refreshedMsg{ledger: ledger, err: err}
	}
}

func (m watchModel) Init() tea.Cmd {
	return m.refresh()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		m.refreshedAt = m.opts.Now()
		m.err = msg.err
		if msg.err == nil {
			m.ledger = msg.ledger
			m.loaded = true
		}
		return m, tea.Tick(m.opts.Interval, func(time.Time) tea.Msg {
			return refreshDueMsg{}
		})

	case refreshDueMsg:
		return m, m.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		}
	}

	return m, nil
}

func (m watchModel) View() string {
	body := m.styles.empty.Render("Loading event...")
	if m.loaded {
		body = renderView(m.ledger, RenderOptions{Now: m.opts.Now(), Actor: m.opts.Actor}, m.styles)
	}

	footer := m.styles.header.Render(fmt.Sprintf(
		"updated %s  %s %s  %s %s",
		m.refreshedAt.Format("15:04:05"),
		m.keys.Refresh.Help().Key, m.keys.Refresh.Help().Desc,
		m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc,
	))
	if m.err != nil {
		footer = m.styles.full.Render("refresh failed: "+m.err.Error()) + "\n" + footer
	}

	return body + "\n\n" + footer + "\n"
}

// Watch draws the sheet on out and redraws it every interval until the user
// quits or ctx ends.
func Watch(ctx context.Context, in io.Reader, out io.Writer, fetch Fetcher, opts WatchOptions) error {
	p := tea.NewProgram(
		newWatchModel(ctx, fetch, opts),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run watch view: %w", err)
	}
	return nil
}
