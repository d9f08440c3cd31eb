package iris

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/constants"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/util"
)

type MessageCallback func(message *Message)

type StateCallback func(state WebSocketState)

type callbackEntry struct {
	id       int
	callback MessageCallback
}

type stateCallbackEntry struct {
	id       int
	callback StateCallback
}

// WebSocket receives inbound chat events from Iris and fans them out to
// registered callbacks. Lost connections are re-dialed with backoff.
type WebSocket struct {
	wsURL                string
	header               http.Header
	conn                 *websocket.Conn
	connMu               sync.Mutex
	state                WebSocketState
	stateMu              sync.RWMutex
	messageCallbacks     []callbackEntry
	stateCallbacks       []stateCallbackEntry
	nextCallbackID       int
	callbacksMu          sync.RWMutex
	maxReconnectAttempts int
	reconnectDelay       time.Duration
	logger               *zap.Logger
	stopCh               chan struct{}
	stopOnce             sync.Once
	listenerWg           sync.WaitGroup
}

func NewWebSocket(wsURL, token string, maxReconnectAttempts int, reconnectDelay time.Duration, logger *zap.Logger) *WebSocket {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxReconnectAttempts < 1 {
		maxReconnectAttempts = 1
	}
	return &WebSocket{
		wsURL:                wsURL,
		header:               authHeader(token),
		state:                WSStateDisconnected,
		maxReconnectAttempts: maxReconnectAttempts,
		reconnectDelay:       reconnectDelay,
		logger:               logger,
		stopCh:               make(chan struct{}),
		messageCallbacks:     make([]callbackEntry, 0),
		stateCallbacks:       make([]stateCallbackEntry, 0),
		nextCallbackID:       1,
	}
}

// Connect dials Iris, retrying up to the configured attempt count, and
// starts the read loop.
func (ws *WebSocket) Connect(ctx context.Context) error {
	state := ws.GetState()
	if state == WSStateConnected || state == WSStateConnecting {
		ws.logger.Warn("WebSocket already connected or connecting")
		return nil
	}

	ws.setState(WSStateConnecting)

	err := retry.Do(
		func() error {
			return ws.dial(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(uint(ws.maxReconnectAttempts)),
		retry.Delay(ws.reconnectDelay),
		retry.MaxJitter(ws.reconnectDelay/4),
		retry.OnRetry(func(n uint, err error) {
			ws.setState(WSStateReconnecting)
			ws.logger.Warn("WebSocket dial failed, retrying",
				zap.Uint("attempt", n+1),
				zap.Int("max", ws.maxReconnectAttempts),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		ws.logger.Error("Failed to connect WebSocket", zap.Error(err))
		ws.setState(WSStateFailed)
		return err
	}

	ws.setState(WSStateConnected)
	ws.logger.Info("WebSocket connected", zap.String("url", ws.wsURL))

	ws.listenerWg.Add(1)
	go ws.listen(ctx)

	return nil
}

func (ws *WebSocket) dial(ctx context.Context) error {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = constants.WebSocketConfig.HandshakeTimeout

	conn, resp, err := dialer.DialContext(ctx, ws.wsURL, ws.header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return err
	}

	ws.connMu.Lock()
	ws.conn = conn
	ws.connMu.Unlock()
	return nil
}

func (ws *WebSocket) currentConn() *websocket.Conn {
	ws.connMu.Lock()
	defer ws.connMu.Unlock()
	return ws.conn
}

func (ws *WebSocket) listen(ctx context.Context) {
	defer ws.listenerWg.Done()
	defer ws.logger.Info("WebSocket listener stopped")

	for {
		conn := ws.currentConn()
		if conn == nil {
			return
		}

		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			if ws.stopped() || ctx.Err() != nil {
				return
			}
			ws.logger.Error("WebSocket read error", zap.Error(err))
			ws.setState(WSStateDisconnected)
			go ws.reconnect(ctx)
			return
		}

		ws.handleMessage(msgBytes)
	}
}

func (ws *WebSocket) reconnect(ctx context.Context) {
	ws.connMu.Lock()
	if ws.conn != nil {
		_ = ws.conn.Close()
		ws.conn = nil
	}
	ws.connMu.Unlock()

	select {
	case <-ctx.Done():
		return
	case <-ws.stopCh:
		return
	case <-time.After(ws.reconnectDelay):
	}

	if err := ws.Connect(ctx); err != nil {
		ws.logger.Error("Reconnect failed", zap.Error(err))
	}
}

func (ws *WebSocket) stopped() bool {
	select {
	case <-ws.stopCh:
		return true
	default:
		return false
	}
}

func (ws *WebSocket) handleMessage(data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		ws.logger.Error("Failed to parse message",
			zap.Error(err),
			zap.String("data", util.TruncateString(string(data), constants.LogLimits.MaxMessageChars)),
		)
		return
	}

	ws.callbacksMu.RLock()
	callbacks := make([]callbackEntry, len(ws.messageCallbacks))
	copy(callbacks, ws.messageCallbacks)
	ws.callbacksMu.RUnlock()

	for _, entry := range callbacks {
		entry.callback(&message)
	}
}

func (ws *WebSocket) OnMessage(callback MessageCallback) func() {
	ws.callbacksMu.Lock()
	id := ws.nextCallbackID
	ws.nextCallbackID++
	ws.messageCallbacks = append(ws.messageCallbacks, callbackEntry{
		id:       id,
		callback: callback,
	})
	ws.callbacksMu.Unlock()

	return func() {
		ws.callbacksMu.Lock()
		defer ws.callbacksMu.Unlock()
		for i, entry := range ws.messageCallbacks {
			if entry.id == id {
				ws.messageCallbacks = append(ws.messageCallbacks[:i], ws.messageCallbacks[i+1:]...)
				break
			}
		}
	}
}

func (ws *WebSocket) OnStateChange(callback StateCallback) func() {
	ws.callbacksMu.Lock()
	id := ws.nextCallbackID
	ws.nextCallbackID++
	ws.stateCallbacks = append(ws.stateCallbacks, stateCallbackEntry{
		id:       id,
		callback: callback,
	})
	ws.callbacksMu.Unlock()

	return func() {
		ws.callbacksMu.Lock()
		defer ws.callbacksMu.Unlock()
		for i, entry := range ws.stateCallbacks {
			if entry.id == id {
				ws.stateCallbacks = append(ws.stateCallbacks[:i], ws.stateCallbacks[i+1:]...)
				break
			}
		}
	}
}

func (ws *WebSocket) setState(newState WebSocketState) {
	ws.stateMu.Lock()
	oldState := ws.state
	ws.state = newState
	ws.stateMu.Unlock()

	if oldState == newState {
		return
	}

	ws.logger.Info("WebSocket state changed",
		zap.String("from", oldState.String()),
		zap.String("to", newState.String()),
	)

	ws.callbacksMu.RLock()
	callbacks := make([]stateCallbackEntry, len(ws.stateCallbacks))
	copy(callbacks, ws.stateCallbacks)
	ws.callbacksMu.RUnlock()

	for _, entry := range callbacks {
		entry.callback(newState)
	}
}

func (ws *WebSocket) GetState() WebSocketState {
	ws.stateMu.RLock()
	defer ws.stateMu.RUnlock()
	return ws.state
}

// Disconnect closes the connection and waits briefly for the read loop.
func (ws *WebSocket) Disconnect() error {
	ws.stopOnce.Do(func() {
		close(ws.stopCh)
	})

	var closeErr error
	ws.connMu.Lock()
	if ws.conn != nil {
		closeErr = ws.conn.Close()
		ws.conn = nil
	}
	ws.connMu.Unlock()
	if closeErr != nil {
		ws.logger.Error("Failed to close WebSocket", zap.Error(closeErr))
	}

	ws.setState(WSStateDisconnected)
	ws.logger.Info("WebSocket disconnected")

	done := make(chan struct{})
	go func() {
		ws.listenerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		ws.logger.Info("Listener stopped cleanly")
	case <-time.After(5 * time.Second):
		ws.logger.Warn("Timeout waiting for listener to stop")
	}

	return closeErr
}
