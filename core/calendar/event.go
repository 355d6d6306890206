// Package calendar holds the wire-level and display-level calendar model
// shared by the schedule clients and the orchestration core.
package calendar

import "time"

// EventTime is the start/end of an event: either a timed instant with an
// optional timezone, or an all-day date. Exactly one of DateTime and Date is
// set; an event is all-day iff Date is set.
type EventTime struct {
	DateTime *time.Time `json:"dateTime,omitempty"`
	TimeZone string     `json:"timeZone,omitempty"`
	Date     string     `json:"date,omitempty"`
}

const allDayLayout = "2006-01-02"

// NewTimed builds a timed EventTime.
func NewTimed(instant time.Time, timezone string) EventTime {
	return EventTime{DateTime: &instant, TimeZone: timezone}
}

// NewAllDay builds an all-day EventTime from a yyyy-MM-dd date string.
func NewAllDay(date string) EventTime {
	return EventTime{Date: date}
}

func (t EventTime) IsZero() bool   { return t.DateTime == nil && t.Date == "" }
func (t EventTime) IsAllDay() bool { return t.Date != "" }

// Instant resolves the EventTime to a sortable instant. All-day dates
// resolve to midnight UTC of that date. The second return is false when the
// EventTime carries neither variant or the date string is malformed.
func (t EventTime) Instant() (time.Time, bool) {
	if t.DateTime != nil {
		return *t.DateTime, true
	}
	if t.Date != "" {
		parsed, err := time.Parse(allDayLayout, t.Date)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

// Attendee mirrors the backend's attendee shape.
type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

// ConferenceInfo carries join information for a video call attached to an
// event.
type ConferenceInfo struct {
	URI   string `json:"uri"`
	Label string `json:"label,omitempty"`
}

// CalendarEvent is the server-truth event shape. Fields other than ID are
// optional on the wire.
type CalendarEvent struct {
	ID          string          `json:"id"`
	Title       string          `json:"summary,omitempty"`
	Description string          `json:"description,omitempty"`
	Start       *EventTime      `json:"start,omitempty"`
	End         *EventTime      `json:"end,omitempty"`
	Attendees   []Attendee      `json:"attendees,omitempty"`
	CalendarID  string          `json:"calendarId,omitempty"`
	Location    string          `json:"location,omitempty"`
	Conference  *ConferenceInfo `json:"conference,omitempty"`
}

// IsAllDay reports whether the event's start is the all-day variant.
func (e CalendarEvent) IsAllDay() bool {
	return e.Start != nil && e.Start.IsAllDay()
}

// StartInstant resolves the event's start for sorting. False when the event
// has no usable start; such events sort after all events that have one.
func (e CalendarEvent) StartInstant() (time.Time, bool) {
	if e.Start == nil {
		return time.Time{}, false
	}
	return e.Start.Instant()
}

// HasDefinedDuration reports whether a time-grid layout can place the event.
// A timed event with no end has undefined duration and is excluded from grid
// placement, not from data.
func (e CalendarEvent) HasDefinedDuration() bool {
	if e.Start == nil {
		return false
	}
	if e.Start.IsAllDay() {
		return true
	}
	return e.End != nil && !e.End.IsZero()
}
