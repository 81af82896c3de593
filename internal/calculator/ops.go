package calculator

import (
	"errors"
	"fmt"
	"math"
)

// Op is one of the four binary operators understood by the compute service.
type Op string

const (
	OpAdd      Op = "+"
	OpSubtract Op = "-"
	OpMultiply Op = "*"
	OpDivide   Op = "/"
)

var (
	ErrDivisionByZero  = errors.New("Division by zero is not allowed.")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrInvalidOperand  = errors.New("operands must be finite numbers")
	ErrOverflow        = errors.New("Result is out of range.")
)

// ParseOp accepts the operator symbols as well as the verbose names used by
// metric and span attributes.
func ParseOp(s string) (Op, error) {
	switch s {
	case "+", "add":
		return OpAdd, nil
	case "-", "subtract":
		return OpSubtract, nil
	case "*", "multiply":
		return OpMultiply, nil
	case "/", "divide":
		return OpDivide, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Valid reports whether op is one of the four supported operators.
func (op Op) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Name is the verbose operation name, e.g. "add" for "+".
func (op Op) Name() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	}
	return "unknown"
}

// Apply evaluates a op b.
func Apply(a, b float64, op Op) (float64, error) {
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return 0, fmt.Errorf("%w: a=%g b=%g", ErrInvalidOperand, a, b)
	}

	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		result = a / b
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, string(op))
	}

	// JSON cannot carry infinities back to the client.
	if math.IsInf(result, 0) {
		return 0, ErrOverflow
	}
	return result, nil
}
