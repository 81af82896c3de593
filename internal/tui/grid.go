package tui

import (
	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/keypad"
)

type button struct {
	label  string
	action keypad.Action
	wide   bool
}

func digit(d string) button {
	return button{label: d, action: keypad.PressDigit{Digit: d}}
}

func operator(label string, op calculator.Op) button {
	return button{label: label, action: keypad.PressOperator{Op: op}}
}

var grid = [][]button{
	{
		{label: "AC", action: keypad.ClearAll{}},
		{label: "⌫", action: keypad.Backspace{}},
		{label: "±", action: keypad.ToggleSign{}},
		operator("÷", calculator.OpDivide),
	},
	{digit("7"), digit("8"), digit("9"), operator("×", calculator.OpMultiply)},
	{digit("4"), digit("5"), digit("6"), operator("−", calculator.OpSubtract)},
	{digit("1"), digit("2"), digit("3"), operator("+", calculator.OpAdd)},
	{
		{label: "0", action: keypad.PressDigit{Digit: "0"}, wide: true},
		digit("."),
		{label: "=", action: keypad.Equals{}},
	},
}

// cursor is the highlighted keypad button.
type cursor struct{ row, col int }

func (c cursor) button() button { return grid[c.row][c.col] }

func (c cursor) move(dRow, dCol int) cursor {
	c.row = clamp(c.row+dRow, 0, len(grid)-1)
	c.col = clamp(c.col+dCol, 0, len(grid[c.row])-1)
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
