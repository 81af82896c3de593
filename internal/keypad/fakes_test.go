package keypad

import (
	"context"
	"errors"
	"time"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/history"
)

type evalCall struct {
	a, b float64
	op   calculator.Op
}

// fakeCompute evaluates locally and, like the real service, appends each
// successful calculation to hist.
type fakeCompute struct {
	calls []evalCall
	hist  *fakeHistory
	err   error
}

func (f *fakeCompute) Evaluate(_ context.Context, a, b float64, op calculator.Op) (float64, error) {
	f.calls = append(f.calls, evalCall{a: a, b: b, op: op})
	if f.err != nil {
		return 0, f.err
	}
	r, err := calculator.Apply(a, b, op)
	if err != nil {
		return 0, err
	}
	if f.hist != nil {
		f.hist.add(history.Entry{A: a, B: b, Op: string(op), Result: r})
	}
	return r, nil
}

type fakeHistory struct {
	entries  []history.Entry
	listErr  error
	clearErr error
	lists    int
	nextID   int64
}

func (f *fakeHistory) add(e history.Entry) {
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Date(2026, 10, 19, 12, 0, int(f.nextID), 0, time.UTC)
	f.entries = append([]history.Entry{e}, f.entries...)
}

func (f *fakeHistory) List(_ context.Context, limit int) ([]history.Entry, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	out := make([]history.Entry, limit)
	copy(out, f.entries[:limit])
	return out, nil
}

func (f *fakeHistory) Clear(context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.entries = nil
	return nil
}

var errUnavailable = errors.New("Failed to load history (HTTP 503)")

func newFakeServices() (*fakeCompute, *fakeHistory, Services) {
	h := &fakeHistory{}
	c := &fakeCompute{hist: h}
	return c, h, Services{Compute: c, History: h, Limit: history.DefaultLimit}
}
