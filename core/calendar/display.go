package calendar

import "reflect"

// DisplayStyle is the render emphasis applied to an event row.
type DisplayStyle string

const (
	StyleStandard    DisplayStyle = "standard"
	StyleHighlight   DisplayStyle = "highlight"
	StyleUpdate      DisplayStyle = "update"
	StyleDestructive DisplayStyle = "destructive"
	StyleNew         DisplayStyle = "new"
)

// DisplayEvent is a render-ready event: server truth or an overlay preview,
// plus emphasis. Identity is the wrapped event's ID.
//
// IsHidden never participates in equality: hiding or unhiding an event is a
// mutation of the same display entry, not a replacement, so change detection
// keeps row identity stable across an update preview.
type DisplayEvent struct {
	Event    CalendarEvent
	Style    DisplayStyle
	IsHidden bool
}

// Equal reports whether two display events are the same entry for
// change-detection purposes. IsHidden is deliberately excluded.
func (d DisplayEvent) Equal(other DisplayEvent) bool {
	return d.Style == other.Style && reflect.DeepEqual(d.Event, other.Event)
}

// FocusEvent points at one event in the current display list by id, driving
// scroll-to and emphasis. It does not own the event it points at.
type FocusEvent struct {
	EventID string
	Style   DisplayStyle
}
