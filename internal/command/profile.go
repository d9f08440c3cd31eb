package command

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

// ProfileCommand looks up a TikTok handle and replies with the summary or a
// failure message. Lookup failures are answered, not returned.
type ProfileCommand struct {
	deps *Dependencies
}

func NewProfileCommand(deps *Dependencies) *ProfileCommand {
	return &ProfileCommand{deps: deps}
}

func (c *ProfileCommand) Name() string {
	return domain.CommandProfile.String()
}

func (c *ProfileCommand) Description() string {
	return "Looks up a TikTok profile"
}

func (c *ProfileCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	handle, _ := params["handle"].(string)
	handle = strings.TrimSpace(handle)

	record, err := c.deps.Profiles.Lookup(ctx, handle)
	if err != nil {
		c.logger().Warn("Profile lookup failed",
			zap.String("room", cmdCtx.Room),
			zap.String("handle", handle),
			zap.String("code", errors.CodeOf(err)),
			zap.Error(err),
		)
	} else {
		c.logger().Info("Profile lookup succeeded",
			zap.String("room", cmdCtx.Room),
			zap.String("handle", record.Handle),
		)
	}

	return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatLookup(record, err))
}

func (c *ProfileCommand) logger() *zap.Logger {
	if c.deps.Logger == nil {
		return zap.NewNop()
	}
	return c.deps.Logger
}
