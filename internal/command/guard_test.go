package command

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/util"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

type countingLookup struct {
	err   error
	calls int
}

func (c *countingLookup) Lookup(context.Context, string) (*domain.ProfileRecord, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return domain.NewDefaultProfileRecord(), nil
}

func TestGuardedLookupFailsFastWhileOpen(t *testing.T) {
	next := &countingLookup{err: errors.NewNetworkError("unexpected status code: 429", "", 429, nil)}
	guard := NewGuardedLookup(next, util.NewCircuitBreaker(2, time.Hour, zap.NewNop()), zap.NewNop())

	for i := 0; i < 4; i++ {
		if _, err := guard.Lookup(context.Background(), "ada99"); !errors.HasCode(err, errors.CodeNetwork) {
			t.Fatalf("call %d: expected NETWORK_ERROR, got %v", i, err)
		}
	}
	if next.calls != 2 {
		t.Errorf("upstream calls = %d, want 2", next.calls)
	}
}

func TestGuardedLookupNotFoundKeepsCircuitClosed(t *testing.T) {
	next := &countingLookup{err: errors.NewNotFoundError("ghost")}
	guard := NewGuardedLookup(next, util.NewCircuitBreaker(1, time.Hour, zap.NewNop()), zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := guard.Lookup(context.Background(), "ghost"); !errors.HasCode(err, errors.CodeNotFound) {
			t.Fatalf("call %d: expected NOT_FOUND, got %v", i, err)
		}
	}
	if next.calls != 3 {
		t.Errorf("upstream calls = %d, want 3", next.calls)
	}
}

func TestGuardedLookupPassesInvalidHandleThrough(t *testing.T) {
	next := &countingLookup{err: errors.NewInvalidHandleError(" @ ")}
	breaker := util.NewCircuitBreaker(1, time.Hour, zap.NewNop())
	breaker.RecordFailure()
	guard := NewGuardedLookup(next, breaker, zap.NewNop())

	if _, err := guard.Lookup(context.Background(), " @ "); !errors.HasCode(err, errors.CodeInvalidHandle) {
		t.Fatalf("expected INVALID_HANDLE even with an open circuit, got %v", err)
	}
}

type blockingLookup struct {
	calls   atomic.Int32
	release chan struct{}
}

func (b *blockingLookup) Lookup(context.Context, string) (*domain.ProfileRecord, error) {
	b.calls.Add(1)
	<-b.release
	return domain.NewDefaultProfileRecord(), nil
}

func TestGuardedLookupHalfOpenLetsOneCallThrough(t *testing.T) {
	breaker := util.NewCircuitBreaker(1, 20*time.Millisecond, zap.NewNop())
	breaker.RecordFailure()
	time.Sleep(30 * time.Millisecond)

	next := &blockingLookup{release: make(chan struct{})}
	guard := NewGuardedLookup(next, breaker, zap.NewNop())

	const callers = 8
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			_, err := guard.Lookup(context.Background(), "ada99")
			results <- err
		}()
	}

	// everyone except the probe is turned away without waiting on the upstream
	for i := 0; i < callers-1; i++ {
		select {
		case err := <-results:
			if !errors.HasCode(err, errors.CodeNetwork) {
				t.Fatalf("expected NETWORK_ERROR for a rejected caller, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("rejected callers did not return")
		}
	}
	if got := next.calls.Load(); got != 1 {
		t.Fatalf("upstream calls while half-open = %d, want 1", got)
	}

	close(next.release)
	if err := <-results; err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if !breaker.CanExecute() || !breaker.CanExecute() {
		t.Error("successful probe should close the circuit")
	}
}
