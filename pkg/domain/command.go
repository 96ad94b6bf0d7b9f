package domain

// CommandRequest is sent by the client for every remote command.
type CommandRequest struct {
	Command   string `json:"command"`
	SessionID string `json:"session_id"`
}

// CommandResult is the server's answer. Exactly one of Output and Error is set.
type CommandResult struct {
	Output *string `json:"output"`
	Error  *string `json:"error"`
}

// Success builds a result carrying output.
func Success(output string) CommandResult {
	return CommandResult{Output: &output}
}

// Failure builds a result carrying a displayable error message.
func Failure(msg string) CommandResult {
	return CommandResult{Error: &msg}
}

// Text returns the displayable text of the result.
// Errors are rendered with an "Error: " prefix.
func (r CommandResult) Text() string {
	if r.Error != nil {
		return "Error: " + *r.Error
	}
	if r.Output != nil {
		return *r.Output
	}
	return ""
}
