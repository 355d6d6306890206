package calendar

import (
	"testing"
	"time"
)

func TestMergeFieldsPatchWinsWhenPresent(t *testing.T) {
	originalStart := NewTimed(time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), "UTC")
	original := CalendarEvent{
		ID:          "e1",
		Title:       "Standup",
		Description: "Daily sync",
		Start:       &originalStart,
		Location:    "Room 2",
	}

	patchStart := NewTimed(time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC), "UTC")
	patch := CalendarEvent{Title: "Standup (moved)", Start: &patchStart}

	merged := MergeFields(original, patch)

	if merged.Title != "Standup (moved)" {
		t.Fatalf("expected patch title to win, got %q", merged.Title)
	}
	if got, _ := merged.StartInstant(); !got.Equal(*patchStart.DateTime) {
		t.Fatalf("expected patch start to win, got %v", got)
	}
	if merged.Description != "Daily sync" {
		t.Fatalf("expected absent patch field to inherit original, got %q", merged.Description)
	}
	if merged.Location != "Room 2" {
		t.Fatalf("expected absent patch field to inherit original, got %q", merged.Location)
	}
	if merged.ID != "e1" {
		t.Fatalf("expected identity to survive the merge, got %q", merged.ID)
	}
}

func TestMergeFieldsEmptyPatchIsIdentity(t *testing.T) {
	start := NewAllDay("2025-01-10")
	original := CalendarEvent{ID: "e1", Title: "Review", Start: &start}

	merged := MergeFields(original, CalendarEvent{})

	if !(DisplayEvent{Event: merged}).Equal(DisplayEvent{Event: original}) {
		t.Fatalf("expected empty patch to leave the event unchanged, got %+v", merged)
	}
}
