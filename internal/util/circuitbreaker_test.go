package util

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, time.Minute, zap.NewNop())
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	if !cb.CanExecute() {
		t.Fatal("one failure should not open the circuit")
	}
	cb.RecordFailure()
	if cb.CanExecute() {
		t.Fatal("circuit should be open after threshold")
	}
	if st := cb.GetStatus(); st.NextRetryTime == nil || !st.NextRetryTime.Equal(now.Add(time.Minute)) {
		t.Errorf("unexpected status %+v", st)
	}

	now = now.Add(time.Minute)
	if got := cb.GetState(); got != CircuitStateHalfOpen {
		t.Fatalf("state = %s, want HALF_OPEN", got)
	}

	cb.RecordFailure()
	if cb.GetState() != CircuitStateOpen {
		t.Fatal("failed probe should reopen")
	}

	now = now.Add(time.Minute)
	cb.GetState()
	cb.RecordSuccess()
	if got := cb.GetState(); got != CircuitStateClosed {
		t.Fatalf("state = %s, want CLOSED", got)
	}
	if cb.GetStatus().FailureCount != 0 {
		t.Error("success should reset failure count")
	}
}

func TestCircuitBreakerHalfOpenAdmitsOneProbe(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(1, time.Minute, nil)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	now = now.Add(time.Minute)

	if !cb.CanExecute() {
		t.Fatal("first caller after the reset timeout should probe")
	}
	for i := 0; i < 3; i++ {
		if cb.CanExecute() {
			t.Fatalf("caller %d admitted while the probe is in flight", i)
		}
	}

	cb.RecordFailure()
	if cb.CanExecute() {
		t.Fatal("failed probe should reopen the circuit")
	}

	now = now.Add(time.Minute)
	if !cb.CanExecute() {
		t.Fatal("next reset timeout should admit a new probe")
	}
	cb.RecordSuccess()
	if !cb.CanExecute() || !cb.CanExecute() {
		t.Fatal("closed circuit should admit every caller")
	}
}
