package tiktok

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/proxy"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/constants"
	"github.com/loaihabb/tiktok-profile-bot-go/pkg/errors"
)

// FetchResult is one completed HTTP exchange for a profile page.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       string
}

// FetcherConfig configures the profile page fetcher. Zero values fall back
// to constants.TikTokConfig.
type FetcherConfig struct {
	BaseURL   string
	Lang      string
	UserAgent string
	Timeout   time.Duration
	Proxy     string
}

// Fetcher issues a single GET per profile with a static browser User-Agent.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	lang       string
	userAgent  string
	logger     *zap.Logger
}

func NewFetcher(cfg FetcherConfig, logger *zap.Logger) (*Fetcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.TikTokConfig.BaseURL
	}
	if cfg.Lang == "" {
		cfg.Lang = constants.TikTokConfig.Lang
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = constants.TikTokConfig.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.TikTokConfig.RequestTimeout
	}

	transport, err := newTransport(cfg.Proxy)
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseURL:   cfg.BaseURL,
		lang:      cfg.Lang,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}, nil
}

// ProfileURL returns the page URL for a normalized handle.
func (f *Fetcher) ProfileURL(handle string) string {
	q := url.Values{}
	q.Set("lang", f.lang)
	return fmt.Sprintf("%s/@%s/?%s", f.baseURL, url.PathEscape(handle), q.Encode())
}

// Fetch downloads the profile page for a normalized handle. Any completed
// exchange is returned regardless of status; only transport failures are errors.
func (f *Fetcher) Fetch(ctx context.Context, handle string) (*FetchResult, error) {
	profileURL := f.ProfileURL(handle)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, http.NoBody)
	if err != nil {
		return nil, errors.NewNetworkError("failed to create request", profileURL, 0, err)
	}
	setHeaders(req, f.userAgent)

	f.logger.Info("Requesting profile page", zap.String("url", profileURL))

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn("Profile request failed", zap.String("url", profileURL), zap.Error(err))
		return nil, errors.NewNetworkError("request failed", profileURL, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.TikTokConfig.MaxBodyBytes))
	if err != nil {
		f.logger.Warn("Profile body read failed",
			zap.String("url", profileURL),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return nil, errors.NewNetworkError("failed to read response body", profileURL, resp.StatusCode, err)
	}

	f.logger.Info("Profile page fetched",
		zap.String("url", profileURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	return &FetchResult{
		URL:        profileURL,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

func setHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")
}

func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
}

// newTransport applies an optional http, https or socks5 proxy.
func newTransport(proxyAddr string) (*http.Transport, error) {
	base := defaultTransport()
	if proxyAddr == "" {
		return base, nil
	}

	u, err := url.Parse(proxyAddr)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		base.Proxy = http.ProxyURL(u)
	case "socks5":
		var auth *proxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: pass}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy: %w", err)
		}
		dc, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks5: context dialer not supported")
		}
		base.Proxy = nil
		base.DialContext = dc.DialContext
	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %q", u.Scheme)
	}

	return base, nil
}
