package keypad

import (
	"math"
	"strconv"
	"strings"
)

// Buffer is the operand being typed plus the reset-on-next-digit flag.
// Every method returns a new Buffer; the zero value is not ready for use,
// start from NewBuffer.
type Buffer struct {
	text  string
	reset bool
}

func NewBuffer() Buffer {
	return Buffer{text: "0"}
}

// Text is the Display Text.
func (b Buffer) Text() string { return b.text }

// ResetPending reports whether the next digit starts a fresh operand.
func (b Buffer) ResetPending() bool { return b.reset }

// IsDigit reports whether d is a key AppendDigit accepts.
func IsDigit(d string) bool {
	return len(d) == 1 && (d[0] == '.' || (d[0] >= '0' && d[0] <= '9'))
}

func (b Buffer) AppendDigit(d string) Buffer {
	if !IsDigit(d) {
		return b
	}
	switch {
	case b.reset:
		return Buffer{text: d}
	case b.text == "0" && d != ".":
		return Buffer{text: d}
	case d == "." && strings.Contains(b.text, "."):
		return b
	}
	return Buffer{text: b.text + d}
}

func (b Buffer) Backspace() Buffer {
	// A committed result is never edited in place.
	if b.reset || len(b.text) <= 1 {
		return NewBuffer()
	}
	return Buffer{text: b.text[:len(b.text)-1]}
}

// ToggleSign leaves the reset flag alone so that negating a result and then
// typing still starts a new operand.
func (b Buffer) ToggleSign() Buffer {
	switch {
	case b.text == "0":
		return b
	case strings.HasPrefix(b.text, "-"):
		b.text = b.text[1:]
	default:
		b.text = "-" + b.text
	}
	return b
}

func (b Buffer) Clear() Buffer {
	return NewBuffer()
}

// Commit shows text (an evaluated result) and marks an operand boundary.
func (b Buffer) Commit(text string) Buffer {
	return Buffer{text: text, reset: true}
}

// MarkBoundary keeps the text but makes the next digit start a new operand.
func (b Buffer) MarkBoundary() Buffer {
	b.reset = true
	return b
}

// Value parses the Display Text; ok is false unless it is a finite number.
func (b Buffer) Value() (v float64, ok bool) {
	return parseOperand(b.text)
}

func parseOperand(s string) (float64, bool) {
	// ParseFloat also takes "inf", "nan", hex floats and underscores; the
	// display only ever holds decimal or exponent text.
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && c != '.' && c != '-' && c != '+' && c != 'e' {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
