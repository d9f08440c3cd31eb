package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/constants"
)

type Config struct {
	Iris    IrisConfig
	Bot     BotConfig
	TikTok  TikTokConfig
	Logging LoggingConfig
}

type IrisConfig struct {
	BaseURL string
	WSURL   string
}

type BotConfig struct {
	Token       string
	Prefix      string
	PlainLookup bool
	Rooms       []string
	Concurrency int
}

type TikTokConfig struct {
	BaseURL   string
	Lang      string
	UserAgent string
	Timeout   time.Duration
	Proxy     string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Iris: IrisConfig{
			BaseURL: getEnv("IRIS_BASE_URL", "http://localhost:3000"),
			WSURL:   getEnv("IRIS_WS_URL", "ws://localhost:3000/ws"),
		},
		Bot: BotConfig{
			Token:       getEnv("BOT_TOKEN", ""),
			Prefix:      getEnv("BOT_PREFIX", "!"),
			PlainLookup: getEnvBool("BOT_PLAIN_LOOKUP", true),
			Rooms:       parseCommaSeparated(getEnv("BOT_ROOMS", "")),
			Concurrency: getEnvInt("BOT_CONCURRENCY", constants.BotConfig.DefaultConcurrency),
		},
		TikTok: loadTikTok(),
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", "logs/bot.log"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadTikTok reads only the TikTok fetch settings. Tools that do not talk to
// Iris use it so BOT_TOKEN is not required.
func LoadTikTok() (TikTokConfig, error) {
	_ = godotenv.Load()

	cfg := loadTikTok()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadTikTok() TikTokConfig {
	return TikTokConfig{
		BaseURL:   strings.TrimRight(getEnv("TIKTOK_BASE_URL", constants.TikTokConfig.BaseURL), "/"),
		Lang:      getEnv("TIKTOK_LANG", constants.TikTokConfig.Lang),
		UserAgent: getEnv("TIKTOK_USER_AGENT", constants.TikTokConfig.UserAgent),
		Timeout:   time.Duration(getEnvInt("TIKTOK_TIMEOUT_SECONDS", int(constants.TikTokConfig.RequestTimeout/time.Second))) * time.Second,
		Proxy:     getEnv("TIKTOK_PROXY", ""),
	}
}

func (c TikTokConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("TIKTOK_TIMEOUT_SECONDS must be positive")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("TIKTOK_BASE_URL is invalid: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Iris.BaseURL == "" {
		return fmt.Errorf("IRIS_BASE_URL is required")
	}
	if c.Iris.WSURL == "" {
		return fmt.Errorf("IRIS_WS_URL is required")
	}
	if c.Bot.Concurrency < 1 {
		return fmt.Errorf("BOT_CONCURRENCY must be at least 1, got %d", c.Bot.Concurrency)
	}
	return c.TikTok.Validate()
}

// AllowsRoom reports whether replies may be sent to room. An empty allowlist
// admits every room.
func (c BotConfig) AllowsRoom(room string) bool {
	if len(c.Rooms) == 0 {
		return true
	}
	for _, r := range c.Rooms {
		if r == room {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
