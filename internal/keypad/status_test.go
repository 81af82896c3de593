package keypad

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expiries struct {
	mu   sync.Mutex
	seqs []uint64
	ch   chan uint64
}

func newExpiries() *expiries {
	return &expiries{ch: make(chan uint64, 8)}
}

func (e *expiries) fire(seq uint64) {
	e.mu.Lock()
	e.seqs = append(e.seqs, seq)
	e.mu.Unlock()
	e.ch <- seq
}

func (e *expiries) fired() []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]uint64(nil), e.seqs...)
}

func TestStatusTimerFiresOnce(t *testing.T) {
	exp := newExpiries()
	timer := NewStatusTimer(20*time.Millisecond, exp.fire)

	timer.Apply(StatusChanged{Seq: 1, Text: "Invalid number."})
	require.True(t, timer.Pending())

	select {
	case seq := <-exp.ch:
		assert.Equal(t, uint64(1), seq)
	case <-time.After(2 * time.Second):
		t.Fatal("status never expired")
	}
	assert.Eventually(t, func() bool { return !timer.Pending() }, time.Second, 5*time.Millisecond)
}

func TestStatusTimerReplaceCancelsPrevious(t *testing.T) {
	exp := newExpiries()
	timer := NewStatusTimer(40*time.Millisecond, exp.fire)

	timer.Apply(StatusChanged{Seq: 1, Text: "first"})
	timer.Apply(StatusChanged{Seq: 2, Text: "second"})

	select {
	case seq := <-exp.ch:
		assert.Equal(t, uint64(2), seq)
	case <-time.After(2 * time.Second):
		t.Fatal("status never expired")
	}

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []uint64{2}, exp.fired())
}

func TestStatusTimerClearDisarms(t *testing.T) {
	exp := newExpiries()
	timer := NewStatusTimer(20*time.Millisecond, exp.fire)

	timer.Apply(StatusChanged{Seq: 1, Text: "Calculation failed."})
	timer.Apply(StatusChanged{Seq: 2, Text: ""})
	assert.False(t, timer.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, exp.fired())
}

func TestStatusTimerStop(t *testing.T) {
	exp := newExpiries()
	timer := NewStatusTimer(20*time.Millisecond, exp.fire)

	timer.Set(3, true)
	timer.Stop()
	assert.False(t, timer.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, exp.fired())
}

func TestStatusTimerDefaultTTL(t *testing.T) {
	timer := NewStatusTimer(0, func(uint64) {})
	assert.Equal(t, DefaultStatusTTL, timer.ttl)
}

func TestSessionExpiresStatus(t *testing.T) {
	_, _, svc := newFakeServices()
	exp := newExpiries()
	sess := NewSession(svc, NewStatusTimer(20*time.Millisecond, exp.fire))

	st := runScript(t, sess, "1/0=")
	require.NotEmpty(t, st.Status)

	var seq uint64
	select {
	case seq = <-exp.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("status never expired")
	}
	assert.Equal(t, st.StatusSeq, seq)

	st = sess.Dispatch(t.Context(), StatusExpired{Seq: seq})
	assert.Empty(t, st.Status)
}
