package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/adapter"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error
}

// ProfileLookup resolves a raw handle into a profile record.
type ProfileLookup interface {
	Lookup(ctx context.Context, raw string) (*domain.ProfileRecord, error)
}

type Dependencies struct {
	Profiles    ProfileLookup
	Formatter   *adapter.ResponseFormatter
	SendMessage func(room, message string) error
	Logger      *zap.Logger
}
