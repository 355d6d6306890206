package orchestration

import (
	"fmt"

	"github.com/nvolchak/voxcal-core/core/agentapi"
	"github.com/nvolchak/voxcal-core/core/calendar"
)

// PendingAction is the one mutating action waiting for the user's decision.
// Original carries the server copy of the target for update and delete, so
// the confirmed mutation and the local revert both work from the same
// authoritative snapshot. PreviewID identifies the synthetic overlay entry,
// if the action projected one.
type PendingAction struct {
	Action     agentapi.Action
	ActionType agentapi.ActionType
	Summary    string
	Original   *calendar.CalendarEvent
	PreviewID  string
}

func pendingSummary(action agentapi.Action, original *calendar.CalendarEvent) string {
	switch typedAction := action.(type) {
	case *agentapi.CreateEvent:
		return fmt.Sprintf("Create %q", typedAction.Summary)
	case *agentapi.UpdateEvent:
		if original != nil && original.Title != "" {
			return fmt.Sprintf("Update %q", original.Title)
		}
		return "Update event"
	case *agentapi.DeleteEvent:
		if original != nil && original.Title != "" {
			return fmt.Sprintf("Delete %q", original.Title)
		}
		return "Delete event"
	}
	return ""
}
