package domain

// SessionState is a state of the register/poll state machine.
type SessionState int

const (
	StateUnregistered SessionState = iota
	StateRegistering
	StatePolling
	StateDownloading
	StateAborted
)

// String returns a human-readable representation of the state.
func (s SessionState) String() string {
	switch s {
	case StateUnregistered:
		return "Unregistered"
	case StateRegistering:
		return "Registering"
	case StatePolling:
		return "Polling"
	case StateDownloading:
		return "Downloading"
	case StateAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}
