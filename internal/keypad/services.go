package keypad

import (
	"context"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/history"
	"keypad-calculator/internal/observability"

	"go.uber.org/zap"
)

// Computer evaluates one binary operation. Implementations persist the
// calculation to history as a side effect of a successful call.
type Computer interface {
	Evaluate(ctx context.Context, a, b float64, op calculator.Op) (float64, error)
}

// HistoryService reads and clears stored calculations.
type HistoryService interface {
	List(ctx context.Context, limit int) ([]history.Entry, error)
	Clear(ctx context.Context) error
}

// Services runs the remote effects Reduce emits.
type Services struct {
	Compute Computer
	History HistoryService
	// Limit is the history page size; zero means history.DefaultLimit.
	Limit int
}

// IsRemote reports whether eff has to go through Run.
func IsRemote(eff Effect) bool {
	switch eff.(type) {
	case EvaluateRequest, FetchHistoryRequest, ClearHistoryRequest:
		return true
	}
	return false
}

// Run performs a remote effect and returns the completion action to feed
// back into Reduce. It returns nil for effects that are not remote.
//
// A successful evaluation or clear is followed by a history re-fetch in the
// same call, so by the time the completion is reduced the history already
// reflects it.
func (s Services) Run(ctx context.Context, eff Effect) Action {
	logger := observability.LoggerWithTrace(ctx)

	switch e := eff.(type) {
	case EvaluateRequest:
		result, err := s.Compute.Evaluate(ctx, e.A, e.B, e.Op)
		if err != nil {
			logger.Warn("evaluate failed",
				zap.Float64("a", e.A),
				zap.Float64("b", e.B),
				zap.String("op", string(e.Op)),
				zap.Error(err),
			)
			return Evaluated{Request: e, Err: err}
		}
		logger.Info("evaluated",
			zap.Float64("a", e.A),
			zap.Float64("b", e.B),
			zap.String("op", string(e.Op)),
			zap.Float64("result", result),
			zap.Bool("chained", e.Then != ""),
		)
		entries, herr := s.History.List(ctx, s.limit())
		if herr != nil {
			logger.Warn("history refresh failed", zap.Error(herr))
		}
		return Evaluated{Request: e, Result: result, History: entries, HistoryErr: herr}

	case FetchHistoryRequest:
		entries, err := s.History.List(ctx, s.limit())
		if err != nil {
			logger.Warn("history fetch failed", zap.Error(err))
		}
		return HistoryLoaded{Seq: e.Seq, Entries: entries, Err: err}

	case ClearHistoryRequest:
		if err := s.History.Clear(ctx); err != nil {
			logger.Warn("history clear failed", zap.Error(err))
			return HistoryCleared{Err: err}
		}
		logger.Info("history cleared")
		entries, err := s.History.List(ctx, s.limit())
		return HistoryCleared{Entries: entries, ListErr: err}
	}

	return nil
}

func (s Services) limit() int {
	if s.Limit <= 0 {
		return history.DefaultLimit
	}
	return s.Limit
}
