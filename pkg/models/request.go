package models

// CommandRequest carries the flag values a command was invoked with
type CommandRequest struct {
	PropertiesPath string
	NoPrompt       bool
	JSONOutput     bool
	Args           []string
	Connections    []string
}

// NewCommandRequest creates a new CommandRequest with default values
func NewCommandRequest() *CommandRequest {
	return &CommandRequest{
		Args:        []string{},
		Connections: []string{},
	}
}
