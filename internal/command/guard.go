package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/util"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

// GuardedLookup stops calling the upstream while its circuit is open and
// answers with a NETWORK_ERROR instead. Only NETWORK_ERROR results count as
// failures; every other answer proves the upstream is reachable.
type GuardedLookup struct {
	next    ProfileLookup
	breaker *util.CircuitBreaker
	logger  *zap.Logger
}

func NewGuardedLookup(next ProfileLookup, breaker *util.CircuitBreaker, logger *zap.Logger) *GuardedLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GuardedLookup{next: next, breaker: breaker, logger: logger}
}

func (g *GuardedLookup) Lookup(ctx context.Context, raw string) (*domain.ProfileRecord, error) {
	if domain.NormalizeHandle(raw) == "" {
		return g.next.Lookup(ctx, raw)
	}
	if !g.breaker.CanExecute() {
		status := g.breaker.GetStatus()
		fields := []zap.Field{
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
		}
		if status.NextRetryTime != nil {
			fields = append(fields, zap.Time("next_retry", *status.NextRetryTime))
		}
		g.logger.Warn("Profile lookup skipped, circuit open", fields...)
		return nil, errors.NewNetworkError("tiktok temporarily unavailable: circuit open", "", 0, nil)
	}

	recorded := false
	defer func() {
		// a panicking lookup must not leave a half-open probe pending
		if !recorded {
			g.breaker.RecordFailure()
		}
	}()

	record, err := g.next.Lookup(ctx, raw)
	if errors.HasCode(err, errors.CodeNetwork) {
		g.breaker.RecordFailure()
	} else {
		g.breaker.RecordSuccess()
	}
	recorded = true
	return record, err
}
