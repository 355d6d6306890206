package events

import "github.com/nvolchak/voxcal-core/core/calendar"

// KindScheduleUpdated identifies a fresh render-ready projection.
const KindScheduleUpdated Kind = "schedule.updated"

// ScheduleUpdated carries a render-ready projection: the display list plus
// the focus pointer, if any. Receivers treat both as read-only.
type ScheduleUpdated struct {
	Base
	Window calendar.ScheduleWindow
	Events []calendar.DisplayEvent
	Focus  *calendar.FocusEvent
}

// NewScheduleUpdated creates a schedule updated event.
func NewScheduleUpdated(window calendar.ScheduleWindow, events []calendar.DisplayEvent, focus *calendar.FocusEvent) ScheduleUpdated {
	return ScheduleUpdated{Base: NewBase(KindScheduleUpdated), Window: window, Events: events, Focus: focus}
}
