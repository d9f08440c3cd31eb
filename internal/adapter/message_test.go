package adapter

import (
	"testing"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/iris"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name       string
		plain      bool
		msg        string
		wantType   domain.CommandType
		wantHandle string
	}{
		{"plain handle", true, "@Ada99", domain.CommandProfile, "@Ada99"},
		{"plain handle trimmed", true, "  ada99 \n", domain.CommandProfile, "ada99"},
		{"plain disabled", false, "ada99", domain.CommandUnknown, ""},
		{"prefixed lookup", false, "!tiktok @ada99", domain.CommandProfile, "@ada99"},
		{"prefixed alias", true, "!TT ada99", domain.CommandProfile, "ada99"},
		{"prefixed lookup without handle", true, "!tiktok", domain.CommandProfile, ""},
		{"help", true, "!help", domain.CommandHelp, ""},
		{"unknown command", true, "!weather", domain.CommandUnknown, ""},
		{"bare prefix", true, "!", domain.CommandUnknown, ""},
		{"empty", true, "", domain.CommandUnknown, ""},
		{"control chars only", true, "\x00\x01", domain.CommandUnknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma := NewMessageAdapter("!", tt.plain)
			got := ma.ParseMessage(&iris.Message{Msg: tt.msg, Room: "room"})
			if got.Type != tt.wantType {
				t.Fatalf("expected %s, got %s", tt.wantType, got.Type)
			}
			if tt.wantType != domain.CommandProfile {
				return
			}
			if handle, _ := got.Params["handle"].(string); handle != tt.wantHandle {
				t.Fatalf("expected handle %q, got %q", tt.wantHandle, handle)
			}
		})
	}
}

func TestParseMessageNil(t *testing.T) {
	if got := NewMessageAdapter("!", true).ParseMessage(nil); got.Type != domain.CommandUnknown {
		t.Fatalf("expected unknown for nil message, got %s", got.Type)
	}
}
