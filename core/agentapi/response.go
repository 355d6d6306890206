// Package agentapi speaks the natural-language agent's wire contract: a
// query goes out, a typed action comes back.
package agentapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nvolchak/voxcal-core/core/calendar"
	"github.com/nvolchak/voxcal-core/core/faults"
)

// ActionType discriminates the agent's response union.
type ActionType string

const (
	ActionShowEvent    ActionType = "show-event"
	ActionShowSchedule ActionType = "show-schedule"
	ActionCreateEvent  ActionType = "create-event"
	ActionUpdateEvent  ActionType = "update-event"
	ActionDeleteEvent  ActionType = "delete-event"
	ActionNoAction     ActionType = "no-action"
)

// Action is one decoded variant of the agent's response. Exactly one variant
// is populated per response; a failed envelope never yields an Action.
type Action interface {
	Type() ActionType
}

// ShowEvent asks the client to display one existing event.
type ShowEvent struct {
	EventID    string `json:"eventId"`
	CalendarID string `json:"calendarId"`
}

func (ShowEvent) Type() ActionType { return ActionShowEvent }

// ShowSchedule asks the client to display a date range.
type ShowSchedule struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (ShowSchedule) Type() ActionType { return ActionShowSchedule }

// CreateEvent proposes a new event; it is never applied without user
// confirmation.
type CreateEvent struct {
	Summary     string             `json:"summary"`
	Start       calendar.EventTime `json:"start"`
	End         calendar.EventTime `json:"end"`
	CalendarID  string             `json:"calendarId"`
	Description string             `json:"description,omitempty"`
	Location    string             `json:"location,omitempty"`
}

func (CreateEvent) Type() ActionType { return ActionCreateEvent }

// UpdateEvent proposes a partial update of an existing event. Absent fields
// keep the stored event's values.
type UpdateEvent struct {
	EventID     string              `json:"eventId"`
	CalendarID  string              `json:"calendarId"`
	Summary     string              `json:"summary,omitempty"`
	Start       *calendar.EventTime `json:"start,omitempty"`
	End         *calendar.EventTime `json:"end,omitempty"`
	Description string              `json:"description,omitempty"`
	Location    string              `json:"location,omitempty"`
}

func (UpdateEvent) Type() ActionType { return ActionUpdateEvent }

// DeleteEvent proposes deleting an existing event; confirmation required.
type DeleteEvent struct {
	EventID    string `json:"eventId"`
	CalendarID string `json:"calendarId"`
}

func (DeleteEvent) Type() ActionType { return ActionDeleteEvent }

// NoAction means the agent understood the request but has nothing to do
// about it; Reason is shown to the user as a transient notice.
type NoAction struct {
	Reason string `json:"reason"`
}

func (NoAction) Type() ActionType { return ActionNoAction }

type responseEnvelope struct {
	Success  bool            `json:"success"`
	Type     ActionType      `json:"type"`
	Error    string          `json:"error,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// DecodeResponse decodes the agent's response body into exactly one Action.
// A success=false envelope becomes a faults.AgentError; anything that
// violates the contract becomes a faults.DecodingError.
func DecodeResponse(body []byte) (Action, error) {
	var envelope responseEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &faults.DecodingError{Err: err}
	}

	if !envelope.Success {
		return nil, &faults.AgentError{Message: strings.TrimSpace(envelope.Error)}
	}

	decodeInto := func(target Action) (Action, error) {
		if len(envelope.Metadata) > 0 {
			if err := json.Unmarshal(envelope.Metadata, target); err != nil {
				return nil, &faults.DecodingError{Err: fmt.Errorf("metadata for %q: %w", envelope.Type, err)}
			}
		}
		return target, nil
	}

	switch envelope.Type {
	case ActionShowEvent:
		action := &ShowEvent{}
		return decodeInto(action)
	case ActionShowSchedule:
		action := &ShowSchedule{}
		return decodeInto(action)
	case ActionCreateEvent:
		action := &CreateEvent{}
		return decodeInto(action)
	case ActionUpdateEvent:
		action := &UpdateEvent{}
		return decodeInto(action)
	case ActionDeleteEvent:
		action := &DeleteEvent{}
		return decodeInto(action)
	case ActionNoAction:
		action := &NoAction{}
		return decodeInto(action)
	}

	return nil, &faults.DecodingError{Err: fmt.Errorf("unknown action type %q", envelope.Type)}
}
