// Package keypad is the calculator's input state machine: it turns keypad
// and keyboard actions into Display Text updates and, at operator
// boundaries, into evaluation requests for the compute service.
//
// Reduce is a pure transition function. Anything that has to talk to a
// service or a clock comes back as an Effect; the caller runs it (see
// Services.Run) and feeds the resulting Action back into Reduce.
package keypad

import (
	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/history"
)

// User-visible status texts.
const (
	MsgInvalidNumber     = "Invalid number."
	MsgCalculationFailed = "Calculation failed."
	MsgHistoryFailed     = "Failed to load history."
	MsgClearFailed       = "Failed to clear history."
)

// State is the whole client session.
type State struct {
	Buffer Buffer
	Chain  Chain

	// Status is the transient message banner; StatusSeq changes on every
	// update so a stale expiry can be told apart from the current one.
	Status    string
	StatusSeq uint64

	// Busy is set while a compute or history call is outstanding. User
	// actions are ignored until the matching completion arrives.
	Busy bool

	History        []history.Entry
	HistoryLoading bool

	// HistorySeq advances whenever a fetch is issued or a fresher list is
	// applied; a HistoryLoaded carrying an older value is discarded.
	HistorySeq uint64
}

func NewState() State {
	return State{Buffer: NewBuffer()}
}

// Display is the current Display Text.
func (s State) Display() string { return s.Buffer.Text() }

// Preview is the pending-operation hint, e.g. "4 +".
func (s State) Preview() string { return FormatPending(s.Chain) }

// CanClearHistory mirrors when the clear-history control is enabled.
func (s State) CanClearHistory() bool {
	return !s.Busy && !s.HistoryLoading && len(s.History) > 0
}

// Action is an input to Reduce. User actions are dropped while Busy;
// completions and timer expiries never are.
type Action interface {
	fromUser() bool
}

type (
	PressDigit struct {
		// Digit is "0".."9" or ".".
		Digit string
	}
	Backspace      struct{}
	ToggleSign     struct{}
	ClearAll       struct{}
	PressOperator  struct{ Op calculator.Op }
	Equals         struct{}
	RefreshHistory struct{}
	ClearHistory   struct{}
)

func (PressDigit) fromUser() bool     { return true }
func (Backspace) fromUser() bool      { return true }
func (ToggleSign) fromUser() bool     { return true }
func (ClearAll) fromUser() bool       { return true }
func (PressOperator) fromUser() bool  { return true }
func (Equals) fromUser() bool         { return true }
func (RefreshHistory) fromUser() bool { return true }
func (ClearHistory) fromUser() bool   { return true }

// Evaluated completes an EvaluateRequest. History is the page fetched right
// after a successful evaluation.
type Evaluated struct {
	Request    EvaluateRequest
	Result     float64
	Err        error
	History    []history.Entry
	HistoryErr error
}

// HistoryLoaded completes a FetchHistoryRequest. Seq echoes the request.
type HistoryLoaded struct {
	Seq     uint64
	Entries []history.Entry
	Err     error
}

// HistoryCleared completes a ClearHistoryRequest. Entries/ListErr describe
// the re-fetch that follows a successful clear.
type HistoryCleared struct {
	Err     error
	Entries []history.Entry
	ListErr error
}

// StatusExpired is delivered by the status timer.
type StatusExpired struct{ Seq uint64 }

func (Evaluated) fromUser() bool      { return false }
func (HistoryLoaded) fromUser() bool  { return false }
func (HistoryCleared) fromUser() bool { return false }
func (StatusExpired) fromUser() bool  { return false }

// Effect is work Reduce asks the caller to perform.
type Effect interface {
	effect()
}

// EvaluateRequest asks the compute service for A Op B. Then is the operator
// that starts the next pending operation on success (chained calculation);
// it is empty for equals.
type EvaluateRequest struct {
	A, B float64
	Op   calculator.Op
	Then calculator.Op
}

type FetchHistoryRequest struct{ Seq uint64 }

type ClearHistoryRequest struct{}

// StatusChanged asks the caller to cancel any pending expiry and, when Text
// is non-empty, arm a new one for Seq.
type StatusChanged struct {
	Seq  uint64
	Text string
}

func (EvaluateRequest) effect()     {}
func (FetchHistoryRequest) effect() {}
func (ClearHistoryRequest) effect() {}
func (StatusChanged) effect()       {}

// Reduce applies one action. Each action either fully commits its
// transition or leaves the calculator untouched apart from the status.
func Reduce(s State, a Action) (State, []Effect) {
	if s.Busy && a.fromUser() {
		return s, nil
	}

	switch a := a.(type) {
	case PressDigit:
		if !IsDigit(a.Digit) {
			return s, nil
		}
		effs := s.clearStatus()
		s.Buffer = s.Buffer.AppendDigit(a.Digit)
		return s, effs

	case Backspace:
		effs := s.clearStatus()
		s.Buffer = s.Buffer.Backspace()
		return s, effs

	case ToggleSign:
		effs := s.clearStatus()
		s.Buffer = s.Buffer.ToggleSign()
		return s, effs

	case ClearAll:
		effs := s.clearStatus()
		s.Buffer = s.Buffer.Clear()
		s.Chain = s.Chain.Clear()
		return s, effs

	case PressOperator:
		return s.pressOperator(a.Op)

	case Equals:
		return s.equals()

	case RefreshHistory:
		s.HistoryLoading = true
		s.HistorySeq++
		return s, []Effect{FetchHistoryRequest{Seq: s.HistorySeq}}

	case ClearHistory:
		if !s.CanClearHistory() {
			return s, nil
		}
		effs := s.clearStatus()
		s.Busy = true
		return s, append(effs, ClearHistoryRequest{})

	case Evaluated:
		return s.evaluated(a)

	case HistoryLoaded:
		// Superseded by a later fetch or by the list that came back with an
		// evaluation or clear.
		if a.Seq != s.HistorySeq {
			return s, nil
		}
		s.HistoryLoading = false
		if a.Err != nil {
			s.History = nil
			return s, []Effect{s.setStatus(errText(a.Err, MsgHistoryFailed))}
		}
		s.History = a.Entries
		return s, nil

	case HistoryCleared:
		s.Busy = false
		if a.Err != nil {
			return s, []Effect{s.setStatus(errText(a.Err, MsgClearFailed))}
		}
		s.HistoryLoading = false
		s.HistorySeq++
		if a.ListErr != nil {
			s.History = nil
			return s, []Effect{s.setStatus(errText(a.ListErr, MsgHistoryFailed))}
		}
		s.History = a.Entries
		return s, nil

	case StatusExpired:
		if a.Seq == s.StatusSeq {
			s.Status = ""
		}
		return s, nil
	}

	return s, nil
}

func (s State) pressOperator(op calculator.Op) (State, []Effect) {
	if !op.Valid() {
		return s, nil
	}

	current, ok := s.Buffer.Value()
	if !ok {
		return s, []Effect{s.setStatus(MsgInvalidNumber)}
	}

	effs := s.clearStatus()

	// A new right-hand operand has been typed since the last boundary:
	// evaluate what is pending before starting the next operation.
	if a, pendingOp, pending := s.Chain.Pending(); pending && !s.Buffer.ResetPending() {
		s.Busy = true
		return s, append(effs, EvaluateRequest{A: a, B: current, Op: pendingOp, Then: op})
	}

	// Nothing pending, or an operator right after another one: (re)start
	// the pending operation with the current value. This is what makes a
	// second operator replace the first.
	s.Chain = s.Chain.Begin(current, op)
	s.Buffer = s.Buffer.MarkBoundary()
	return s, effs
}

func (s State) equals() (State, []Effect) {
	effs := s.clearStatus()

	a, op, pending := s.Chain.Pending()
	if !pending {
		return s, effs
	}

	b, ok := s.Buffer.Value()
	if !ok {
		return s, []Effect{s.setStatus(MsgInvalidNumber)}
	}

	s.Busy = true
	return s, append(effs, EvaluateRequest{A: a, B: b, Op: op})
}

func (s State) evaluated(a Evaluated) (State, []Effect) {
	s.Busy = false
	if a.Err != nil {
		return s, []Effect{s.setStatus(errText(a.Err, MsgCalculationFailed))}
	}

	s.Buffer = s.Buffer.Commit(Format(a.Result))
	if a.Request.Then != "" {
		s.Chain = s.Chain.Begin(a.Result, a.Request.Then)
	} else {
		s.Chain = s.Chain.Clear()
	}

	s.HistoryLoading = false
	s.HistorySeq++
	if a.HistoryErr != nil {
		s.History = nil
		return s, []Effect{s.setStatus(errText(a.HistoryErr, MsgHistoryFailed))}
	}
	s.History = a.History
	return s, nil
}

func (s *State) setStatus(text string) Effect {
	s.StatusSeq++
	s.Status = text
	return StatusChanged{Seq: s.StatusSeq, Text: text}
}

func (s *State) clearStatus() []Effect {
	if s.Status == "" {
		return nil
	}
	return []Effect{s.setStatus("")}
}

func errText(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
