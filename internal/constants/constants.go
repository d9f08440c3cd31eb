package constants

import "time"

var TikTokConfig = struct {
	BaseURL        string
	Lang           string
	UserAgent      string
	DataElementID  string
	RequestTimeout time.Duration
	MaxBodyBytes   int64

	BreakerThreshold    int
	BreakerResetTimeout time.Duration
}{
	BaseURL:        "https://www.tiktok.com",
	Lang:           "ru",
	UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	DataElementID:  "__UNIVERSAL_DATA_FOR_REHYDRATION__",
	RequestTimeout: 15 * time.Second,
	MaxBodyBytes:   8 << 20, // 8 MiB, profile pages are ~300 KiB

	BreakerThreshold:    5,
	BreakerResetTimeout: 30 * time.Second,
}

// PayloadPath is the key path from the rehydration root to userInfo.
var PayloadPath = struct {
	Root       string
	UserDetail string
	UserInfo   string
	User       string
	Stats      string
}{
	Root:       "__DEFAULT_SCOPE__",
	UserDetail: "webapp.user-detail",
	UserInfo:   "userInfo",
	User:       "user",
	Stats:      "stats",
}

var WebSocketConfig = struct {
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
	HandshakeTimeout     time.Duration
}{
	MaxReconnectAttempts: 5,
	ReconnectDelay:       5 * time.Second,
	HandshakeTimeout:     10 * time.Second,
}

var BotConfig = struct {
	DefaultConcurrency int
	ReplyTimeout       time.Duration
	ShutdownTimeout    time.Duration
}{
	DefaultConcurrency: 8,
	ReplyTimeout:       10 * time.Second,
	ShutdownTimeout:    10 * time.Second,
}

var LogLimits = struct {
	MaxMessageChars int
}{
	MaxMessageChars: 200,
}
