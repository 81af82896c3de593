package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg lipgloss.TerminalColor = ac("255", "235")
	colorBorder   lipgloss.TerminalColor = ac("250", "243")
	colorError    lipgloss.TerminalColor = ac("160", "203")
	colorButtonBg lipgloss.TerminalColor = ac("252", "236")
	colorOpFg     lipgloss.TerminalColor = ac("130", "214")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	badgeStyle = lipgloss.NewStyle().
			Foreground(colorAccentFg).
			Background(colorAccent).
			Padding(0, 1)

	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Align(lipgloss.Right)
	previewStyle = lipgloss.NewStyle().Foreground(colorMuted)
	displayStyle = lipgloss.NewStyle().Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Background(colorButtonBg).
			Width(buttonWidth).
			Align(lipgloss.Center)
	operatorStyle = buttonStyle.Foreground(colorOpFg).Bold(true)
	selectedStyle = buttonStyle.
			Foreground(colorAccentFg).
			Background(colorAccent).
			Bold(true)

	statusStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// applyColorProfile honors NO_COLOR and otherwise trusts the terminal.
func applyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
