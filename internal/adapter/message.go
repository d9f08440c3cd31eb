package adapter

import (
	"regexp"
	"strings"

	"github.com/loaihabb/tiktok-profile-bot-go/internal/domain"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/iris"
	"github.com/loaihabb/tiktok-profile-bot-go/internal/util"
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)

// MessageAdapter converts chat messages to bot commands
type MessageAdapter struct {
	prefix      string
	plainLookup bool
}

// NewMessageAdapter creates a new MessageAdapter. With plainLookup set, any
// un-prefixed text is treated as a handle to look up.
func NewMessageAdapter(prefix string, plainLookup bool) *MessageAdapter {
	return &MessageAdapter{prefix: prefix, plainLookup: plainLookup}
}

// ParsedCommand represents a parsed command
type ParsedCommand struct {
	Type       domain.CommandType
	Params     map[string]any
	RawMessage string
}

// ParseMessage parses a chat message into a command
func (ma *MessageAdapter) ParseMessage(message *iris.Message) *ParsedCommand {
	if message == nil || message.Msg == "" {
		return ma.createUnknownCommand("")
	}

	text := strings.TrimSpace(controlCharsPattern.ReplaceAllString(message.Msg, " "))
	if text == "" {
		return ma.createUnknownCommand("")
	}

	if ma.prefix == "" || !strings.HasPrefix(text, ma.prefix) {
		if !ma.plainLookup {
			return ma.createUnknownCommand(text)
		}
		return ma.createProfileCommand(text, text)
	}

	parts := strings.Fields(strings.TrimSpace(text[len(ma.prefix):]))
	if len(parts) == 0 {
		return ma.createUnknownCommand(text)
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	if ma.isHelpCommand(command) {
		return &ParsedCommand{
			Type:       domain.CommandHelp,
			Params:     make(map[string]any),
			RawMessage: text,
		}
	}

	if ma.isProfileCommand(command) {
		return ma.createProfileCommand(strings.Join(args, " "), text)
	}

	return ma.createUnknownCommand(text)
}

// Command matchers

func (ma *MessageAdapter) isHelpCommand(cmd string) bool {
	return util.Contains([]string{"help", "start", "commands", "도움말"}, cmd)
}

func (ma *MessageAdapter) isProfileCommand(cmd string) bool {
	return util.Contains([]string{"tiktok", "tt", "profile", "user", "틱톡"}, cmd)
}

func (ma *MessageAdapter) createProfileCommand(handle, rawMessage string) *ParsedCommand {
	return &ParsedCommand{
		Type:       domain.CommandProfile,
		Params:     map[string]any{"handle": handle},
		RawMessage: rawMessage,
	}
}

func (ma *MessageAdapter) createUnknownCommand(text string) *ParsedCommand {
	return &ParsedCommand{
		Type:       domain.CommandUnknown,
		Params:     make(map[string]any),
		RawMessage: text,
	}
}
