package model

// State represents the position of a session key in the conversation state
// machine.
type State string

const (
	// StateAwaitingFormatChoice means a prompt was sent and the bot waits
	// for a format selection.
	StateAwaitingFormatChoice State = "AwaitingFormatChoice"

	// StateTransferring means a download+upload transfer is in flight.
	StateTransferring State = "Transferring"

	// StateSent means the transfer finished and the media reply was sent.
	StateSent State = "Sent"

	// StateReset means the user asked for another format and the session
	// was rebuilt under a new key.
	StateReset State = "Reset"

	// StateFailed means the transfer terminated with an error.
	StateFailed State = "Failed"
)

// String returns the string representation of State.
func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether the state ends the lifecycle of a session key.
func (s State) IsTerminal() bool {
	return s == StateSent || s == StateReset || s == StateFailed
}
