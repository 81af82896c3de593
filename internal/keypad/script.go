package keypad

import (
	"fmt"
	"unicode"

	"keypad-calculator/internal/calculator"
)

// ParseScript turns a keystroke script into actions:
//
//	0-9 .    digits
//	+ - * /  operators
//	=        equals
//	n        toggle sign
//	b        backspace
//	c        clear all
//
// Whitespace is ignored.
func ParseScript(script string) ([]Action, error) {
	var out []Action
	for i, r := range script {
		if unicode.IsSpace(r) {
			continue
		}
		a, ok := scriptAction(r)
		if !ok {
			return nil, fmt.Errorf("unknown key %q at offset %d", r, i)
		}
		out = append(out, a)
	}
	return out, nil
}

func scriptAction(r rune) (Action, bool) {
	switch {
	case r == '.' || (r >= '0' && r <= '9'):
		return PressDigit{Digit: string(r)}, true
	case r == '=':
		return Equals{}, true
	case r == 'n':
		return ToggleSign{}, true
	case r == 'b':
		return Backspace{}, true
	case r == 'c':
		return ClearAll{}, true
	}
	if op := calculator.Op(string(r)); op.Valid() {
		return PressOperator{Op: op}, true
	}
	return nil, false
}
