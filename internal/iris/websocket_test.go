package iris

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func newIrisStub(t *testing.T, frames ...string) (*httptest.Server, <-chan string) {
	t.Helper()
	auth := make(chan string, 4)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		// hold the connection until the client hangs up
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, auth
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketDeliversMessages(t *testing.T) {
	srv, auth := newIrisStub(t,
		`not json`,
		`{"msg":"@ada99","room":"room-1","sender":"grace"}`,
	)

	ws := NewWebSocket(wsURL(srv), "secret", 1, 10*time.Millisecond, zap.NewNop())
	got := make(chan *Message, 1)
	ws.OnMessage(func(m *Message) { got <- m })

	if err := ws.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer ws.Disconnect()

	if ws.GetState() != WSStateConnected {
		t.Errorf("state = %s, want CONNECTED", ws.GetState())
	}
	if a := <-auth; a != "Bearer secret" {
		t.Errorf("Authorization = %q", a)
	}

	select {
	case m := <-got:
		if m.Msg != "@ada99" || m.Room != "room-1" || m.SenderName() != "grace" {
			t.Errorf("unexpected message %+v", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
}

func TestWebSocketConnectFailsAfterAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no upgrade", http.StatusForbidden)
	}))
	defer srv.Close()

	ws := NewWebSocket(wsURL(srv), "", 2, time.Millisecond, zap.NewNop())
	var states []WebSocketState
	ws.OnStateChange(func(s WebSocketState) { states = append(states, s) })

	if err := ws.Connect(context.Background()); err == nil {
		t.Fatal("expected dial error")
	}
	if ws.GetState() != WSStateFailed {
		t.Errorf("state = %s, want FAILED", ws.GetState())
	}
	if len(states) == 0 || states[len(states)-1] != WSStateFailed {
		t.Errorf("state transitions = %v", states)
	}
}

func TestOnMessageUnsubscribe(t *testing.T) {
	ws := NewWebSocket("ws://unused", "", 1, time.Millisecond, zap.NewNop())
	calls := 0
	remove := ws.OnMessage(func(*Message) { calls++ })

	ws.handleMessage([]byte(`{"msg":"a","room":"r"}`))
	remove()
	ws.handleMessage([]byte(`{"msg":"b","room":"r"}`))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
