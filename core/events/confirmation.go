package events

const (
	// KindActionProposed identifies a mutating action awaiting confirmation.
	KindActionProposed Kind = "confirmation.action_proposed"
	// KindActionConfirmed identifies a confirmed mutating action.
	KindActionConfirmed Kind = "confirmation.confirmed"
	// KindActionCancelled identifies a cancelled mutating action.
	KindActionCancelled Kind = "confirmation.cancelled"
)

// ActionProposed marks a mutating action waiting for the user's decision.
// ActionType is the agent's discriminant string, Summary a short human
// description of what confirming would do.
type ActionProposed struct {
	Base
	ActionType string
	Summary    string
}

// NewActionProposed creates an action proposed event.
func NewActionProposed(actionType, summary string) ActionProposed {
	return ActionProposed{Base: NewBase(KindActionProposed), ActionType: actionType, Summary: summary}
}

// ActionConfirmed marks the user confirming the pending action.
type ActionConfirmed struct {
	Base
	ActionType string
}

// NewActionConfirmed creates an action confirmed event.
func NewActionConfirmed(actionType string) ActionConfirmed {
	return ActionConfirmed{Base: NewBase(KindActionConfirmed), ActionType: actionType}
}

// ActionCancelled marks the user cancelling the pending action.
type ActionCancelled struct {
	Base
	ActionType string
}

// NewActionCancelled creates an action cancelled event.
func NewActionCancelled(actionType string) ActionCancelled {
	return ActionCancelled{Base: NewBase(KindActionCancelled), ActionType: actionType}
}
