package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/adapter"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/bot"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/command"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/config"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/constants"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/iris"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/service/region"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/service/tiktok"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/util"
)

// Container bundles assembled services for constructing runtime components like Bot.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Profiles *tiktok.Service

	botDeps *bot.Dependencies
}

// NewBot instantiates a bot using the pre-built dependency graph.
func (c *Container) NewBot() (*bot.Bot, error) {
	if c == nil || c.botDeps == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	return bot.NewBot(c.botDeps)
}

// Build assembles the TikTok lookup pipeline and the Iris messaging
// primitives into a container capable of creating fully-wired bots.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	profiles, err := BuildProfileService(cfg.TikTok, logger)
	if err != nil {
		return nil, err
	}

	// Messaging primitives
	irisClient := iris.NewClient(cfg.Iris.BaseURL, cfg.Bot.Token, logger)
	irisWS := iris.NewWebSocket(
		cfg.Iris.WSURL,
		cfg.Bot.Token,
		constants.WebSocketConfig.MaxReconnectAttempts,
		constants.WebSocketConfig.ReconnectDelay,
		logger,
	)
	messageAdapter := adapter.NewMessageAdapter(cfg.Bot.Prefix, cfg.Bot.PlainLookup)
	formatter := adapter.NewResponseFormatter(cfg.Bot.Prefix, cfg.Bot.PlainLookup, region.Lookup)

	if irisClient.Ping(ctx) {
		logger.Info("Iris reachable", zap.String("base_url", cfg.Iris.BaseURL))
	} else {
		logger.Warn("Iris not reachable yet, continuing", zap.String("base_url", cfg.Iris.BaseURL))
	}

	breaker := util.NewCircuitBreaker(
		constants.TikTokConfig.BreakerThreshold,
		constants.TikTokConfig.BreakerResetTimeout,
		logger,
	)
	guarded := command.NewGuardedLookup(profiles, breaker, logger)

	deps := &bot.Dependencies{
		Config:         cfg,
		Logger:         logger,
		IrisClient:     irisClient,
		IrisWebSocket:  irisWS,
		MessageAdapter: messageAdapter,
		Formatter:      formatter,
		Profiles:       guarded,
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Profiles: profiles,
		botDeps:  deps,
	}, nil
}

// BuildProfileService wires the fetcher and lookup pipeline from config.
func BuildProfileService(cfg config.TikTokConfig, logger *zap.Logger) (*tiktok.Service, error) {
	fetcher, err := tiktok.NewFetcher(tiktok.FetcherConfig{
		BaseURL:   cfg.BaseURL,
		Lang:      cfg.Lang,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Proxy:     cfg.Proxy,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tiktok fetcher: %w", err)
	}
	return tiktok.NewService(fetcher, cfg.Timeout, logger), nil
}
