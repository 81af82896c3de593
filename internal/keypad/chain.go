package keypad

import "keypad-calculator/internal/calculator"

// Chain is the pending left operand and operator. Both are set or neither
// is; the zero value has nothing pending.
type Chain struct {
	a   float64
	op  calculator.Op
	set bool
}

func (c Chain) Begin(a float64, op calculator.Op) Chain {
	return Chain{a: a, op: op, set: true}
}

func (c Chain) Clear() Chain {
	return Chain{}
}

func (c Chain) Pending() (a float64, op calculator.Op, ok bool) {
	return c.a, c.op, c.set
}
