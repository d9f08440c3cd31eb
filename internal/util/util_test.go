package util

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestTruncateStringCountsRunes(t *testing.T) {
	if got := TruncateString("héllo", 10); got != "héllo" {
		t.Fatalf("unexpected %q", got)
	}
	if got := TruncateString("héllo", 2); got != "hé..." {
		t.Fatalf("unexpected %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerCreatesLogDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "bot.log")

	logger, err := NewLogger("debug", logFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug level to be enabled")
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"help", "tt"}, "tt") {
		t.Error("expected tt to be found")
	}
	if Contains(nil, "tt") {
		t.Error("nil slice contains nothing")
	}
	if got := TruncateString("abc", -1); got != "..." {
		t.Errorf("TruncateString negative = %q", got)
	}
}
