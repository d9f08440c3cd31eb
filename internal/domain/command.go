package domain

type CommandType string

const (
	CommandProfile CommandType = "profile"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

func (c CommandType) String() string {
	return string(c)
}

func (c CommandType) IsValid() bool {
	switch c {
	case CommandProfile, CommandHelp, CommandUnknown:
		return true
	default:
		return false
	}
}
