package orchestration

import (
	"sort"
	"sync"

	"github.com/nvolchak/voxcal-core/core/calendar"
)

type overlayKind string

const (
	overlayNone   overlayKind = ""
	overlayCreate overlayKind = "create"
	overlayUpdate overlayKind = "update"
	overlayDelete overlayKind = "delete"
)

// ScheduleProjector merges server-truth events with at most one ephemeral
// overlay operation into the render-ready display list. Destructive and
// creative effects stay in the overlay until the user confirms, so
// cancellation is a pure, network-free local revert.
type ScheduleProjector struct {
	mu      sync.Mutex
	window  calendar.ScheduleWindow
	display []calendar.DisplayEvent
	focus   *calendar.FocusEvent

	overlay   overlayKind
	previewID string
	targetID  string
}

func NewScheduleProjector() *ScheduleProjector {
	return &ScheduleProjector{}
}

// Window returns the authoritative window backing the current projection.
func (p *ScheduleProjector) Window() calendar.ScheduleWindow {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window
}

// ProjectShow replaces the projection with server truth, optionally focusing
// one event for highlight and scroll-to.
func (p *ScheduleProjector) ProjectShow(window calendar.ScheduleWindow, focusID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resetLocked(window)
	if focusID != "" {
		p.focus = &calendar.FocusEvent{EventID: focusID, Style: calendar.StyleHighlight}
	}
}

// ProjectCreate appends a synthetic preview of a proposed new event.
func (p *ScheduleProjector) ProjectCreate(window calendar.ScheduleWindow, preview calendar.CalendarEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resetLocked(window)
	p.display = append(p.display, calendar.DisplayEvent{Event: preview, Style: calendar.StyleNew})
	sortDisplayEvents(p.display)

	p.overlay = overlayCreate
	p.previewID = preview.ID
	p.focus = &calendar.FocusEvent{EventID: preview.ID, Style: calendar.StyleNew}
}

// ProjectUpdate hides every authoritative copy of the target (a recurring
// event may appear across calendars) and appends a synthetic preview built
// from the agent's patch merged over the original.
func (p *ScheduleProjector) ProjectUpdate(window calendar.ScheduleWindow, targetID string, preview calendar.CalendarEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resetLocked(window)
	for i := range p.display {
		if p.display[i].Event.ID == targetID {
			p.display[i].IsHidden = true
		}
	}
	p.display = append(p.display, calendar.DisplayEvent{Event: preview, Style: calendar.StyleUpdate})
	sortDisplayEvents(p.display)

	p.overlay = overlayUpdate
	p.previewID = preview.ID
	p.targetID = targetID
	p.focus = &calendar.FocusEvent{EventID: preview.ID, Style: calendar.StyleUpdate}
}

// ProjectDelete keeps the target visible and marks it destructive through
// the focus pointer; the event is only removed by the post-confirmation
// reconciliation fetch.
func (p *ScheduleProjector) ProjectDelete(window calendar.ScheduleWindow, targetID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resetLocked(window)
	p.overlay = overlayDelete
	p.targetID = targetID
	p.focus = &calendar.FocusEvent{EventID: targetID, Style: calendar.StyleDestructive}
}

// Revert undoes the pending overlay in place: remove the synthetic preview,
// unhide originals, drop the focus pointer. Pure and synchronous.
func (p *ScheduleProjector) Revert() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.overlay {
	case overlayCreate:
		p.removePreviewLocked()
	case overlayUpdate:
		p.removePreviewLocked()
		for i := range p.display {
			if p.display[i].Event.ID == p.targetID {
				p.display[i].IsHidden = false
			}
		}
	}

	p.overlay = overlayNone
	p.previewID = ""
	p.targetID = ""
	p.focus = nil
}

// ClearFocus drops the focus pointer without touching the display list and
// reports whether one was set.
func (p *ScheduleProjector) ClearFocus() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	cleared := p.focus != nil
	p.focus = nil
	return cleared
}

// Snapshot returns the render-ready list and the focus pointer. The focused
// event's style is elevated in the returned copy; stored entries keep their
// base style.
func (p *ScheduleProjector) Snapshot() ([]calendar.DisplayEvent, *calendar.FocusEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	display := make([]calendar.DisplayEvent, len(p.display))
	copy(display, p.display)

	if p.focus != nil {
		for i := range display {
			if display[i].Event.ID == p.focus.EventID && display[i].Style == calendar.StyleStandard {
				display[i].Style = p.focus.Style
			}
		}
	}

	var focus *calendar.FocusEvent
	if p.focus != nil {
		focusCopy := *p.focus
		focus = &focusCopy
	}
	return display, focus
}

func (p *ScheduleProjector) resetLocked(window calendar.ScheduleWindow) {
	p.window = window
	p.display = make([]calendar.DisplayEvent, 0, len(window.Events))
	for _, event := range window.Events {
		p.display = append(p.display, calendar.DisplayEvent{Event: event, Style: calendar.StyleStandard})
	}
	sortDisplayEvents(p.display)

	p.overlay = overlayNone
	p.previewID = ""
	p.targetID = ""
	p.focus = nil
}

func (p *ScheduleProjector) removePreviewLocked() {
	filtered := p.display[:0]
	for _, entry := range p.display {
		if entry.Event.ID != p.previewID {
			filtered = append(filtered, entry)
		}
	}
	p.display = filtered
}

// sortDisplayEvents orders by start ascending; events without a usable start
// keep their relative order after all events that have one.
func sortDisplayEvents(display []calendar.DisplayEvent) {
	sort.SliceStable(display, func(i, j int) bool {
		left, leftOK := display[i].Event.StartInstant()
		right, rightOK := display[j].Event.StartInstant()
		if leftOK != rightOK {
			return leftOK
		}
		if !leftOK {
			return false
		}
		return left.Before(right)
	})
}
