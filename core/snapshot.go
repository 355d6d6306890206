package orchestration

import "github.com/nvolchak/voxcal-core/core/calendar"

// StateSnapshot is a point-in-time read model of the whole session, for
// receivers that render by polling instead of subscribing to events.
type StateSnapshot struct {
	State             SessionState
	Transcript        string
	InterimTranscript string
	Window            calendar.ScheduleWindow
	Events            []calendar.DisplayEvent
	Focus             *calendar.FocusEvent
	Pending           *PendingAction
	Notice            string
	Error             string
}

// Snapshot assembles a consistent view of the current session.
func (o *Orchestrator) Snapshot() StateSnapshot {
	o.mu.Lock()
	state := o.state
	transcript := o.transcript
	interim := o.interim
	pending := o.pending
	o.mu.Unlock()

	display, focus := o.projector.Snapshot()

	return StateSnapshot{
		State:             state,
		Transcript:        transcript,
		InterimTranscript: interim,
		Window:            o.projector.Window(),
		Events:            display,
		Focus:             focus,
		Pending:           pending,
		Notice:            o.notices.Notice(),
		Error:             o.notices.Error(),
	}
}
