package domain

import "time"

// CommandContext describes where a command came from and where its reply goes.
type CommandContext struct {
	Room      string
	Sender    string
	Message   string
	Timestamp time.Time
}

func NewCommandContext(room, sender, message string) *CommandContext {
	return &CommandContext{
		Room:      room,
		Sender:    sender,
		Message:   message,
		Timestamp: time.Now(),
	}
}
