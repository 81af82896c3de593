package tui

import (
	"strings"

	"keypad-calculator/internal/keypad"

	"github.com/charmbracelet/lipgloss"
)

const (
	buttonWidth   = 6
	screenWidth   = 4*buttonWidth + 3
	historyWidth  = 36
	historyHeight = 12
)

func (m Model) View() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.viewScreen(),
		m.viewKeypad(),
		m.viewStatus(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", m.viewHistory())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewHelp())
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("Calculator")
	if m.baseURL == "" {
		return title
	}
	return title + " " + badgeStyle.Render(m.baseURL)
}

func (m Model) viewScreen() string {
	preview := m.state.Preview()
	if preview == "" {
		preview = " "
	}
	display := m.state.Display()
	if m.state.Busy {
		display = m.spinner.View() + " " + display
	}
	return screenStyle.Width(screenWidth).Render(
		previewStyle.Render(preview) + "\n" + displayStyle.Render(display),
	)
}

func (m Model) viewKeypad() string {
	rows := make([]string, 0, len(grid))
	for r, row := range grid {
		cells := make([]string, 0, len(row))
		for c, b := range row {
			st := buttonStyle
			if _, ok := b.action.(keypad.PressOperator); ok {
				st = operatorStyle
			}
			if r == m.cursor.row && c == m.cursor.col {
				st = selectedStyle
			}
			w := buttonWidth
			if b.wide {
				w = 2*buttonWidth + 1
			}
			cells = append(cells, st.Width(w).Render(b.label))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewStatus() string {
	if m.state.Status == "" {
		return ""
	}
	return statusStyle.Width(screenWidth).Render(m.state.Status)
}

func (m Model) viewHistory() string {
	title := titleStyle.Render("History")
	if m.state.HistoryLoading {
		title += " " + m.spinner.View()
	}
	return panelStyle.Render(title + "\n" + m.history.View())
}

func (m Model) viewHelp() string {
	parts := []string{
		"0-9 . + - * /",
		keys.Equals.Help().Key + " " + keys.Equals.Help().Desc,
		keys.Backspace.Help().Key + " " + keys.Backspace.Help().Desc,
		keys.ClearAll.Help().Key + " " + keys.ClearAll.Help().Desc,
		"arrows+" + keys.Press.Help().Key + " keypad",
		keys.RefreshHistory.Help().Key + " " + keys.RefreshHistory.Help().Desc,
	}
	if m.state.CanClearHistory() {
		parts = append(parts, keys.ClearHistory.Help().Key+" "+keys.ClearHistory.Help().Desc)
	}
	parts = append(parts, keys.Quit.Help().Key+" "+keys.Quit.Help().Desc)
	return mutedStyle.Render(strings.Join(parts, "  "))
}

// historyContent renders the history panel body.
func historyContent(s keypad.State) string {
	switch {
	case s.HistoryLoading && len(s.History) == 0:
		return mutedStyle.Render("Loading history…")
	case len(s.History) == 0:
		return mutedStyle.Render("No history yet.")
	}

	lines := make([]string, 0, len(s.History))
	for _, e := range s.History {
		lines = append(lines, keypad.FormatEntry(e)+"  "+mutedStyle.Render(e.CreatedAt.Local().Format("15:04:05")))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) refreshHistoryView() {
	m.history.SetContent(historyContent(m.state))
}

func (m *Model) resize() {
	h := m.height - 4
	if h < 3 {
		h = 3
	}
	m.history.Height = h
	w := m.width - screenWidth - 10
	if w < historyWidth {
		w = historyWidth
	}
	m.history.Width = w
}
