package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEventTimeInstantResolvesTimedVariant(t *testing.T) {
	instant := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	eventTime := NewTimed(instant, "UTC")

	got, ok := eventTime.Instant()
	if !ok {
		t.Fatalf("expected timed variant to resolve to an instant")
	}
	if !got.Equal(instant) {
		t.Fatalf("expected %v, got %v", instant, got)
	}
	if eventTime.IsAllDay() {
		t.Fatalf("expected timed variant not to be all-day")
	}
}

func TestEventTimeInstantResolvesAllDayVariant(t *testing.T) {
	eventTime := NewAllDay("2025-01-10")

	got, ok := eventTime.Instant()
	if !ok {
		t.Fatalf("expected all-day variant to resolve to an instant")
	}
	if got.Year() != 2025 || got.Month() != time.January || got.Day() != 10 {
		t.Fatalf("expected midnight of 2025-01-10, got %v", got)
	}
	if !eventTime.IsAllDay() {
		t.Fatalf("expected all-day variant to report all-day")
	}
}

func TestEventTimeInstantRejectsMalformedDate(t *testing.T) {
	eventTime := NewAllDay("tomorrow-ish")

	if _, ok := eventTime.Instant(); ok {
		t.Fatalf("expected malformed all-day date to have no usable instant")
	}
}

func TestEventTimeJSONRoundTripKeepsVariant(t *testing.T) {
	raw := []byte(`{"date":"2025-01-10"}`)

	var eventTime EventTime
	if err := json.Unmarshal(raw, &eventTime); err != nil {
		t.Fatalf("expected decode to succeed, got %v", err)
	}
	if !eventTime.IsAllDay() {
		t.Fatalf("expected decoded all-day variant")
	}
	if eventTime.DateTime != nil {
		t.Fatalf("expected timed variant to stay empty, got %v", eventTime.DateTime)
	}
}

func TestHasDefinedDurationExcludesOpenEndedTimedEvents(t *testing.T) {
	start := NewTimed(time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), "UTC")

	openEnded := CalendarEvent{ID: "e1", Start: &start}
	if openEnded.HasDefinedDuration() {
		t.Fatalf("expected timed event without end to have undefined duration")
	}

	allDay := CalendarEvent{ID: "e2", Start: &EventTime{Date: "2025-01-10"}}
	if !allDay.HasDefinedDuration() {
		t.Fatalf("expected all-day event to be placeable")
	}
}

func TestDisplayEventEqualIgnoresHiddenFlag(t *testing.T) {
	event := CalendarEvent{ID: "e1", Title: "Standup"}
	visible := DisplayEvent{Event: event, Style: StyleStandard}
	hidden := DisplayEvent{Event: event, Style: StyleStandard, IsHidden: true}

	if !visible.Equal(hidden) {
		t.Fatalf("expected equality to ignore IsHidden")
	}

	styled := DisplayEvent{Event: event, Style: StyleHighlight}
	if visible.Equal(styled) {
		t.Fatalf("expected differing styles to break equality")
	}
}

func TestWindowContainsIsHalfOpen(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	window := NewWindow(start, 1, "UTC")

	if !window.Contains(start) {
		t.Fatalf("expected window start to be included")
	}
	if window.Contains(window.End) {
		t.Fatalf("expected window end to be excluded")
	}
	if window.Days() != 1 {
		t.Fatalf("expected one-day window, got %d", window.Days())
	}
}
