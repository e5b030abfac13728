package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeStates struct {
	calls atomic.Int32
	err   error
}

func (f *fakeStates) CleanupExpired(context.Context) (int64, error) {
	f.calls.Add(1)
	return 2, f.err
}

func TestStateCleanup_RunsOnStartAndTicks(t *testing.T) {
	states := &fakeStates{}
	w := NewStateCleanup(states, zap.NewNop(), 10*time.Millisecond)
	w.Start()
	if got := states.calls.Load(); got < 1 {
		t.Fatalf("expected an immediate pass, got %d calls", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for states.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	if got := states.calls.Load(); got < 3 {
		t.Errorf("expected periodic passes, got %d calls", got)
	}
}

func TestStateCleanup_ErrorsAreNotFatal(t *testing.T) {
	states := &fakeStates{err: errors.New("boom")}
	w := NewStateCleanup(states, zap.NewNop(), time.Hour)
	w.Start()
	w.Stop()
	if states.calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", states.calls.Load())
	}
}

func TestStateCleanup_StopIsIdempotent(t *testing.T) {
	w := NewStateCleanup(&fakeStates{}, zap.NewNop(), time.Hour)
	w.Stop()
	w.Stop()
}
