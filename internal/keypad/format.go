package keypad

import (
	"math"
	"strconv"
	"strings"

	"keypad-calculator/internal/history"
)

// Format renders v the way the display shows it: the shortest decimal that
// round-trips, switching to exponent form only outside [1e-6, 1e21).
// NaN renders as the empty string.
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// Covers -0 as well.
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimExponent turns Go's "1.5e-07" into "1.5e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}

// FormatPending renders the chain preview, e.g. "4 +". It is empty when no
// operation is pending.
func FormatPending(c Chain) string {
	a, op, ok := c.Pending()
	if !ok {
		return ""
	}
	return Format(a) + " " + string(op)
}

// FormatEntry renders a history line such as "4 + 5 = 9".
func FormatEntry(e history.Entry) string {
	return Format(e.A) + " " + e.Op + " " + Format(e.B) + " = " + Format(e.Result)
}
