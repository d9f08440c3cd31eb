package tiktok

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

const fullUserJSON = `{"__DEFAULT_SCOPE__":{"webapp.user-detail":{"userInfo":{` +
	`"user":{"id":"6800000000000000000","uniqueId":"ada99","nickname":"Ada",` +
	`"avatarMedium":"https://p16.tiktokcdn.com/ada.jpeg","signature":"analytical engines",` +
	`"region":"US","verified":true,"privateAccount":false},` +
	`"stats":{"followingCount":7,"followerCount":42,"heartCount":1815,"videoCount":12}}}}}`

// page wraps a payload in a rehydration script element.
func page(payload string) string {
	return `<!DOCTYPE html><html><head><title>TikTok</title></head><body>` +
		`<script id="SIGI_STATE" type="application/json">{"decoy":true}</script>` +
		`<script id="__UNIVERSAL_DATA_FOR_REHYDRATION__" type="application/json">` + payload + `</script>` +
		`</body></html>`
}

// seenRequest records what the stub server received.
type seenRequest struct {
	mu        sync.Mutex
	count     int
	path      string
	query     string
	userAgent string
}

func (s *seenRequest) snapshot() (count int, path, query, userAgent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, s.path, s.query, s.userAgent
}

// newStubServer serves body with status for every request.
func newStubServer(t *testing.T, status int, body string) (*httptest.Server, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.mu.Lock()
		seen.count++
		seen.path = r.URL.Path
		seen.query = r.URL.RawQuery
		seen.userAgent = r.Header.Get("User-Agent")
		seen.mu.Unlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func newTestFetcher(t *testing.T, baseURL string) *Fetcher {
	t.Helper()
	f, err := NewFetcher(FetcherConfig{BaseURL: baseURL, Timeout: 2 * time.Second}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFetcher: %v", err)
	}
	return f
}
