package calendar

import "time"

// DefaultWindowDays is how many days a schedule window spans unless the
// caller asks for more. Windows of 1-3 days are typical.
const DefaultWindowDays = 1

// ScheduleWindow is the contiguous date range [Start, End) the schedule view
// currently displays, together with the server-truth events inside it.
// Events are re-fetched on every load; nothing here is cached across
// sessions.
type ScheduleWindow struct {
	Start    time.Time
	End      time.Time
	Timezone string
	Events   []CalendarEvent
}

// NewWindow builds an empty window of the given day span. Spans below one
// day are clamped to one.
func NewWindow(start time.Time, days int, timezone string) ScheduleWindow {
	if days < 1 {
		days = 1
	}
	return ScheduleWindow{
		Start:    start,
		End:      start.AddDate(0, 0, days),
		Timezone: timezone,
	}
}

// Days returns the day span of the window.
func (w ScheduleWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// Contains reports whether an instant falls inside [Start, End).
func (w ScheduleWindow) Contains(instant time.Time) bool {
	return !instant.Before(w.Start) && instant.Before(w.End)
}

// SameRange reports whether another window covers the same date range. Used
// to skip redundant fetches; reconciliation bypasses this check.
func (w ScheduleWindow) SameRange(other ScheduleWindow) bool {
	return w.Start.Equal(other.Start) && w.End.Equal(other.End)
}
