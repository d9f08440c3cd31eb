package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/config"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

func testConfig(tiktokURL, irisURL string) *config.Config {
	return &config.Config{
		Iris: config.IrisConfig{BaseURL: irisURL, WSURL: "ws://127.0.0.1:1/ws"},
		Bot:  config.BotConfig{Token: "t", Prefix: "!", PlainLookup: true, Concurrency: 2},
		TikTok: config.TikTokConfig{
			BaseURL: tiktokURL,
			Timeout: 2 * time.Second,
		},
		Logging: config.LoggingConfig{Level: "info"},
	}
}

func TestBuildWiresBot(t *testing.T) {
	tiktokSrv := httptest.NewServer(http.NotFoundHandler())
	defer tiktokSrv.Close()
	irisSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"port":3000}`))
	}))
	defer irisSrv.Close()

	container, err := Build(context.Background(), testConfig(tiktokSrv.URL, irisSrv.URL), zap.NewNop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := container.NewBot(); err != nil {
		t.Fatalf("NewBot: %v", err)
	}

	_, err = container.Profiles.Lookup(context.Background(), "@ghost")
	if !errors.HasCode(err, errors.CodeNotFound) {
		t.Errorf("Lookup error = %v, want NOT_FOUND", err)
	}
}

func TestBuildRejectsBadProxy(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1", "http://127.0.0.1:1")
	cfg.TikTok.Proxy = "ftp://proxy:21"
	if _, err := Build(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Error("expected error for unsupported proxy scheme")
	}
}

func TestBuildRequiresConfig(t *testing.T) {
	if _, err := Build(context.Background(), nil, zap.NewNop()); err == nil {
		t.Error("expected error for nil config")
	}
	var c *Container
	if _, err := c.NewBot(); err == nil {
		t.Error("expected error for nil container")
	}
}
