package bot

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/adapter"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/command"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/config"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/constants"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/iris"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/util"
)

// MessageSender delivers a reply to a chat room.
type MessageSender interface {
	SendMessage(ctx context.Context, room, message string) error
}

// MessageStream produces inbound chat messages.
type MessageStream interface {
	Connect(ctx context.Context) error
	OnMessage(callback iris.MessageCallback) func()
	OnStateChange(callback iris.StateCallback) func()
	Disconnect() error
}

type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	IrisClient     MessageSender
	IrisWebSocket  MessageStream
	MessageAdapter *adapter.MessageAdapter
	Formatter      *adapter.ResponseFormatter
	Profiles       command.ProfileLookup
}

// Bot receives chat messages, dispatches them to commands and replies.
// Messages are handled concurrently up to the configured limit.
type Bot struct {
	config     *config.Config
	logger     *zap.Logger
	sender     MessageSender
	stream     MessageStream
	adapter    *adapter.MessageAdapter
	registry   *command.Registry
	dispatcher command.Dispatcher

	poolMu      sync.Mutex
	workers     *pool.Pool
	submitting  sync.WaitGroup
	stopped     bool
	unsubscribe []func()
}

func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil {
		return nil, fmt.Errorf("bot dependencies must not be nil")
	}
	switch {
	case deps.Config == nil:
		return nil, fmt.Errorf("config must not be nil")
	case deps.IrisClient == nil:
		return nil, fmt.Errorf("iris client must not be nil")
	case deps.IrisWebSocket == nil:
		return nil, fmt.Errorf("iris websocket must not be nil")
	case deps.MessageAdapter == nil:
		return nil, fmt.Errorf("message adapter must not be nil")
	case deps.Formatter == nil:
		return nil, fmt.Errorf("formatter must not be nil")
	case deps.Profiles == nil:
		return nil, fmt.Errorf("profile lookup must not be nil")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	concurrency := deps.Config.Bot.Concurrency
	if concurrency < 1 {
		concurrency = constants.BotConfig.DefaultConcurrency
	}

	b := &Bot{
		config:   deps.Config,
		logger:   logger,
		sender:   deps.IrisClient,
		stream:   deps.IrisWebSocket,
		adapter:  deps.MessageAdapter,
		registry: command.NewRegistry(),
		workers:  pool.New().WithMaxGoroutines(concurrency),
	}

	cmdDeps := &command.Dependencies{
		Profiles:    deps.Profiles,
		Formatter:   deps.Formatter,
		SendMessage: b.reply,
		Logger:      logger,
	}
	b.registry.Register(command.NewHelpCommand(cmdDeps))
	b.registry.Register(command.NewProfileCommand(cmdDeps))
	b.dispatcher = command.NewSequentialDispatcher(b.registry, command.DefaultNormalize)

	logger.Info("Bot initialized",
		zap.Int("commands", b.registry.Count()),
		zap.Int("concurrency", concurrency),
		zap.Strings("rooms", deps.Config.Bot.Rooms),
	)

	return b, nil
}

// ErrStreamFailed is returned by Start when the message stream gave up
// reconnecting.
var ErrStreamFailed = errors.New("iris message stream failed")

// Start subscribes to the message stream and blocks until ctx is cancelled
// or the stream fails for good.
func (b *Bot) Start(ctx context.Context) error {
	handlerCtx := context.WithoutCancel(ctx)
	failed := make(chan struct{}, 1)

	unsubscribeMessages := b.stream.OnMessage(func(message *iris.Message) {
		b.enqueue(handlerCtx, message)
	})
	unsubscribeState := b.stream.OnStateChange(func(state iris.WebSocketState) {
		if state != iris.WSStateFailed {
			return
		}
		select {
		case failed <- struct{}{}:
		default:
		}
	})
	b.poolMu.Lock()
	b.unsubscribe = append(b.unsubscribe, unsubscribeMessages, unsubscribeState)
	b.poolMu.Unlock()

	if err := b.stream.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to Iris: %w", err)
	}

	b.logger.Info("Bot is listening for messages")
	select {
	case <-ctx.Done():
		return nil
	case <-failed:
		b.logger.Error("Iris message stream failed, stopping bot")
		return ErrStreamFailed
	}
}

// Shutdown stops accepting messages and waits for in-flight handlers.
func (b *Bot) Shutdown(ctx context.Context) error {
	b.poolMu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	alreadyStopped := b.stopped
	b.stopped = true
	b.poolMu.Unlock()

	for _, fn := range unsubscribe {
		fn()
	}
	disconnectErr := b.stream.Disconnect()
	if alreadyStopped {
		return disconnectErr
	}

	done := make(chan struct{})
	go func() {
		b.submitting.Wait()
		b.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("All message handlers finished")
	case <-ctx.Done():
		b.logger.Warn("Timed out waiting for message handlers")
		return ctx.Err()
	}

	return disconnectErr
}

// enqueue hands message to the worker pool. It blocks while the pool is
// full, but never while holding poolMu.
func (b *Bot) enqueue(ctx context.Context, message *iris.Message) {
	b.poolMu.Lock()
	if b.stopped {
		b.poolMu.Unlock()
		return
	}
	b.submitting.Add(1)
	b.poolMu.Unlock()
	defer b.submitting.Done()

	b.workers.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Message handler panicked",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
			}
		}()
		b.handleMessage(ctx, message)
	})
}

func (b *Bot) handleMessage(ctx context.Context, message *iris.Message) {
	if message == nil {
		return
	}

	if !b.config.Bot.AllowsRoom(message.Room) {
		b.logger.Debug("Ignoring message from room outside allowlist", zap.String("room", message.Room))
		return
	}

	parsed := b.adapter.ParseMessage(message)
	if parsed.Type == domain.CommandUnknown {
		return
	}

	b.logger.Info("Command received",
		zap.String("type", parsed.Type.String()),
		zap.String("room", message.Room),
		zap.String("sender", message.SenderName()),
		zap.String("message", util.TruncateString(parsed.RawMessage, constants.LogLimits.MaxMessageChars)),
	)

	cmdCtx := domain.NewCommandContext(message.Room, message.SenderName(), parsed.RawMessage)
	if _, err := b.dispatcher.Publish(ctx, cmdCtx, command.CommandEvent{Type: parsed.Type, Params: parsed.Params}); err != nil {
		b.logger.Error("Command execution failed",
			zap.String("type", parsed.Type.String()),
			zap.String("room", message.Room),
			zap.Error(err),
		)
	}
}

func (b *Bot) reply(room, message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.BotConfig.ReplyTimeout)
	defer cancel()
	return b.sender.SendMessage(ctx, room, message)
}
