package orchestration

import (
	"fmt"

	"github.com/nvolchak/voxcal-core/core/agentapi"
	"github.com/nvolchak/voxcal-core/core/faults"
)

type planKind string

const (
	planShowEvent planKind = "show_event"
	planShowRange planKind = "show_range"
	planCreate    planKind = "create"
	planUpdate    planKind = "update"
	planDelete    planKind = "delete"
	planNotice    planKind = "notice"
)

// actionPlan is the interpreted shape of one agent action: what to fetch,
// what overlay to synthesize, and whether the user must confirm before
// anything is mutated.
type actionPlan struct {
	kind                 planKind
	requiresConfirmation bool

	eventID    string
	calendarID string

	rangeStart string
	rangeEnd   string

	create *agentapi.CreateEvent
	update *agentapi.UpdateEvent

	notice string
}

// interpret maps a decoded agent action onto a plan. Pure: no collaborator
// calls, no state.
func interpret(action agentapi.Action) (actionPlan, error) {
	switch typedAction := action.(type) {
	case *agentapi.ShowEvent:
		return actionPlan{
			kind:       planShowEvent,
			eventID:    typedAction.EventID,
			calendarID: typedAction.CalendarID,
		}, nil
	case *agentapi.ShowSchedule:
		return actionPlan{
			kind:       planShowRange,
			rangeStart: typedAction.StartDate,
			rangeEnd:   typedAction.EndDate,
		}, nil
	case *agentapi.CreateEvent:
		return actionPlan{
			kind:                 planCreate,
			requiresConfirmation: true,
			calendarID:           typedAction.CalendarID,
			create:               typedAction,
		}, nil
	case *agentapi.UpdateEvent:
		return actionPlan{
			kind:                 planUpdate,
			requiresConfirmation: true,
			eventID:              typedAction.EventID,
			calendarID:           typedAction.CalendarID,
			update:               typedAction,
		}, nil
	case *agentapi.DeleteEvent:
		return actionPlan{
			kind:                 planDelete,
			requiresConfirmation: true,
			eventID:              typedAction.EventID,
			calendarID:           typedAction.CalendarID,
		}, nil
	case *agentapi.NoAction:
		return actionPlan{kind: planNotice, notice: typedAction.Reason}, nil
	}

	return actionPlan{}, &faults.DecodingError{Err: fmt.Errorf("unhandled action %T", action)}
}
