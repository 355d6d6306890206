package events

const (
	// KindSessionStateChanged identifies a session lifecycle transition.
	KindSessionStateChanged Kind = "session.state_changed"
	// KindSessionCompleted identifies a round-trip finishing without confirmation.
	KindSessionCompleted Kind = "session.completed"
	// KindSessionFailed identifies a failed round-trip.
	KindSessionFailed Kind = "session.failed"
)

// SessionStateChanged marks a transition of the session state machine.
type SessionStateChanged struct {
	Base
	State    string
	Previous string
}

// NewSessionStateChanged creates a session state transition event.
func NewSessionStateChanged(previous, state string) SessionStateChanged {
	return SessionStateChanged{Base: NewBase(KindSessionStateChanged), State: state, Previous: previous}
}

// SessionCompleted marks a round-trip that finished without confirmation.
type SessionCompleted struct{ Base }

// NewSessionCompleted creates a session completed event.
func NewSessionCompleted() SessionCompleted {
	return SessionCompleted{Base: NewBase(KindSessionCompleted)}
}

// SessionFailed marks a failed round-trip with its user-facing message.
type SessionFailed struct {
	Base
	Message string
}

// NewSessionFailed creates a session failed event.
func NewSessionFailed(message string) SessionFailed {
	return SessionFailed{Base: NewBase(KindSessionFailed), Message: message}
}
