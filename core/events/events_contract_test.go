package events

import (
	"testing"
	"time"

	"github.com/nvolchak/voxcal-core/core/calendar"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "session state changed", event: NewSessionStateChanged("idle", "capturing"), expected: KindSessionStateChanged},
		{name: "session completed", event: NewSessionCompleted(), expected: KindSessionCompleted},
		{name: "session failed", event: NewSessionFailed("Server error"), expected: KindSessionFailed},
		{name: "capture started", event: NewCaptureStarted(), expected: KindCaptureStarted},
		{name: "capture stopped", event: NewCaptureStopped(2 * time.Second), expected: KindCaptureStopped},
		{name: "transcript interim updated", event: NewTranscriptInterimUpdated("show my ev"), expected: KindTranscriptInterimUpdated},
		{name: "transcript final", event: NewTranscriptFinal("show my events"), expected: KindTranscriptFinal},
		{name: "schedule updated", event: NewScheduleUpdated(calendar.ScheduleWindow{}, nil, nil), expected: KindScheduleUpdated},
		{name: "action proposed", event: NewActionProposed("create-event", "Create Lunch"), expected: KindActionProposed},
		{name: "action confirmed", event: NewActionConfirmed("create-event"), expected: KindActionConfirmed},
		{name: "action cancelled", event: NewActionCancelled("delete-event"), expected: KindActionCancelled},
		{name: "notice posted", event: NewNoticePosted("Nothing to do"), expected: KindNoticePosted},
		{name: "notice cleared", event: NewNoticeCleared(), expected: KindNoticeCleared},
		{name: "error posted", event: NewErrorPosted("Server error"), expected: KindErrorPosted},
		{name: "error cleared", event: NewErrorCleared(), expected: KindErrorCleared},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestNoticeAndErrorKindsAreDistinct(t *testing.T) {
	notice := NewNoticePosted("reason")
	errorEvent := NewErrorPosted("reason")

	if notice.Kind() == errorEvent.Kind() {
		t.Fatalf("expected notice and error kinds to differ, both were %q", notice.Kind())
	}
}
