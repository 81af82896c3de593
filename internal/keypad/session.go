package keypad

import "context"

// Session drives Reduce synchronously: every remote effect is run inline and
// its completion reduced before Dispatch returns. It backs the headless
// command and tests; the terminal UI runs effects asynchronously instead.
type Session struct {
	state State
	svc   Services
	timer *StatusTimer
}

// NewSession starts from NewState. timer may be nil, in which case status
// messages never expire on their own.
func NewSession(svc Services, timer *StatusTimer) *Session {
	return &Session{state: NewState(), svc: svc, timer: timer}
}

func (s *Session) State() State { return s.state }

// Dispatch applies a and everything it causes, returning the settled state.
func (s *Session) Dispatch(ctx context.Context, a Action) State {
	queue := []Action{a}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		var effs []Effect
		s.state, effs = Reduce(s.state, next)
		for _, eff := range effs {
			if c, ok := eff.(StatusChanged); ok {
				if s.timer != nil {
					s.timer.Apply(c)
				}
				continue
			}
			if done := s.svc.Run(ctx, eff); done != nil {
				queue = append(queue, done)
			}
		}
	}
	return s.state
}

// Run dispatches actions in order and returns the final state.
func (s *Session) Run(ctx context.Context, actions ...Action) State {
	for _, a := range actions {
		s.Dispatch(ctx, a)
	}
	return s.state
}
