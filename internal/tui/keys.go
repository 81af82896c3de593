package tui

import (
	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/keypad"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Equals    key.Binding
	Backspace key.Binding
	ClearAll  key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Press key.Binding

	RefreshHistory key.Binding
	ClearHistory   key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Equals:    key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter/=", "equals")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
	ClearAll:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),

	Up:    key.NewBinding(key.WithKeys("up")),
	Down:  key.NewBinding(key.WithKeys("down")),
	Left:  key.NewBinding(key.WithKeys("left")),
	Right: key.NewBinding(key.WithKeys("right")),
	Press: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "press")),

	RefreshHistory: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload history")),
	ClearHistory:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear history")),

	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}

// routeKey maps a key press to the action the matching keypad button would
// emit. ok is false for keys the calculator does not handle.
func routeKey(msg tea.KeyMsg) (keypad.Action, bool) {
	switch {
	case key.Matches(msg, keys.Equals):
		return keypad.Equals{}, true
	case key.Matches(msg, keys.Backspace):
		return keypad.Backspace{}, true
	case key.Matches(msg, keys.ClearAll):
		return keypad.ClearAll{}, true
	}

	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return nil, false
	}
	s := string(msg.Runes)
	if keypad.IsDigit(s) {
		return keypad.PressDigit{Digit: s}, true
	}
	if op := calculator.Op(s); op.Valid() {
		return keypad.PressOperator{Op: op}, true
	}
	return nil, false
}
