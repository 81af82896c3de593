package tui

import (
	"context"
	"time"

	"keypad-calculator/internal/keypad"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the calculator screen.
type Options struct {
	// BaseURL is shown in the header badge.
	BaseURL   string
	StatusTTL time.Duration
}

// actionMsg carries the completion of a remote effect back into Update.
type actionMsg struct{ action keypad.Action }

type statusExpiredMsg struct{ seq uint64 }

type Model struct {
	ctx   context.Context
	svc   keypad.Services
	state keypad.State

	timer   *keypad.StatusTimer
	expired chan uint64

	baseURL string
	cursor  cursor

	spinner spinner.Model
	history viewport.Model

	width  int
	height int

	initCmd tea.Cmd
}

// New builds the model. The status timer reports expiries for as long as ctx
// is alive.
func New(ctx context.Context, svc keypad.Services, opts Options) Model {
	expired := make(chan uint64)
	timer := keypad.NewStatusTimer(opts.StatusTTL, func(seq uint64) {
		select {
		case expired <- seq:
		case <-ctx.Done():
		}
	})

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = mutedStyle

	m := Model{
		ctx:     ctx,
		svc:     svc,
		state:   keypad.NewState(),
		timer:   timer,
		expired: expired,
		baseURL: opts.BaseURL,
		cursor:  cursor{row: 1, col: 0},
		spinner: spin,
		history: viewport.New(historyWidth, historyHeight),
	}
	// History is fetched once at start-up.
	var load tea.Cmd
	m, load = m.apply(keypad.RefreshHistory{})
	m.initCmd = load
	return m
}

// State exposes the calculator state, mostly for tests.
func (m Model) State() keypad.State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.waitForExpiry())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case actionMsg:
		return m.apply(msg.action)

	case statusExpiredMsg:
		var cmd tea.Cmd
		m, cmd = m.apply(keypad.StatusExpired{Seq: msg.seq})
		return m, tea.Batch(cmd, m.waitForExpiry())

	case spinner.TickMsg:
		if !m.state.Busy && !m.state.HistoryLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		m.timer.Stop()
		return m, tea.Quit
	}
	// Nothing but ctrl+c gets through while a request is in flight.
	if m.state.Busy {
		return m, nil
	}

	if action, ok := routeKey(msg); ok {
		return m.apply(action)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.timer.Stop()
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		m.cursor = m.cursor.move(-1, 0)
		return m, nil
	case key.Matches(msg, keys.Down):
		m.cursor = m.cursor.move(1, 0)
		return m, nil
	case key.Matches(msg, keys.Left):
		m.cursor = m.cursor.move(0, -1)
		return m, nil
	case key.Matches(msg, keys.Right):
		m.cursor = m.cursor.move(0, 1)
		return m, nil
	case key.Matches(msg, keys.Press):
		return m.apply(m.cursor.button().action)
	case key.Matches(msg, keys.RefreshHistory):
		return m.apply(keypad.RefreshHistory{})
	case key.Matches(msg, keys.ClearHistory):
		return m.apply(keypad.ClearHistory{})
	}

	// Anything else scrolls the history panel.
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

// apply reduces a and turns the resulting effects into commands.
func (m Model) apply(a keypad.Action) (Model, tea.Cmd) {
	wasWaiting := m.state.Busy || m.state.HistoryLoading

	var effs []keypad.Effect
	m.state, effs = keypad.Reduce(m.state, a)

	var cmds []tea.Cmd
	for _, eff := range effs {
		if c, ok := eff.(keypad.StatusChanged); ok {
			m.timer.Apply(c)
			continue
		}
		if keypad.IsRemote(eff) {
			cmds = append(cmds, m.run(eff))
		}
	}
	if !wasWaiting && (m.state.Busy || m.state.HistoryLoading) {
		cmds = append(cmds, m.spinner.Tick)
	}

	m.refreshHistoryView()
	return m, tea.Batch(cmds...)
}

func (m Model) run(eff keypad.Effect) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return actionMsg{action: svc.Run(ctx, eff)}
	}
}

func (m Model) waitForExpiry() tea.Cmd {
	ch, done := m.expired, m.ctx.Done()
	return func() tea.Msg {
		select {
		case seq := <-ch:
			return statusExpiredMsg{seq: seq}
		case <-done:
			return nil
		}
	}
}
