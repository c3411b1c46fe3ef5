package pairing

// State is the session's pairing state.
type State uint8

const (
	// StateIdle indicates no attempt has run, or the last one was cancelled.
	StateIdle State = iota

	// StateInProgress indicates an attempt is waiting on the host.
	StateInProgress

	// StateSucceeded indicates the last attempt paired the host.
	StateSucceeded

	// StateFailed indicates the last attempt failed.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateInProgress:
		return "IN_PROGRESS"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether s ends an attempt.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}
