// Package tui is the interactive keypad calculator screen.
package tui

import (
	"context"

	"keypad-calculator/internal/keypad"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the calculator until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc keypad.Services, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	applyColorProfile()

	m := New(ctx, svc, opts)
	defer m.timer.Stop()

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
