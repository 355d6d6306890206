package orchestration

// SessionState is the lifecycle position of the voice session. One utterance
// walks Idle → Capturing → Transcribing → Dispatching → Interpreting and then
// either completes directly or parks in AwaitingConfirmation until the user
// decides. Completed and Failed are passed through on the way back to Idle;
// the machine always comes to rest in Idle, ready for the next utterance.
type SessionState string

const (
	StateIdle                 SessionState = "idle"
	StateCapturing            SessionState = "capturing"
	StateTranscribing         SessionState = "transcribing"
	StateDispatching          SessionState = "dispatching"
	StateInterpreting         SessionState = "interpreting"
	StateAwaitingConfirmation SessionState = "awaiting_confirmation"
	StateMutating             SessionState = "mutating"
	StateReconciling          SessionState = "reconciling"
	StateCompleted            SessionState = "completed"
	StateFailed               SessionState = "failed"
)
