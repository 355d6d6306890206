package orchestration

import (
	"testing"

	"github.com/nvolchak/voxcal-core/core/calendar"
	"github.com/nvolchak/voxcal-core/core/events"
)

func TestCallbackEmitterForwardsRawEvents(t *testing.T) {
	var kinds []events.Kind
	emit := newCallbackEventEmitter(CallbackOptions{
		onEvent: func(event events.Event) { kinds = append(kinds, event.Kind()) },
	})

	emit(events.NewCaptureStarted())
	emit(events.NewTranscriptFinal("hello"))

	if len(kinds) != 2 || kinds[0] != events.KindCaptureStarted || kinds[1] != events.KindTranscriptFinal {
		t.Fatalf("expected raw events forwarded in order, got %v", kinds)
	}
}

func TestCallbackEmitterBridgesStateChanges(t *testing.T) {
	var previous, current SessionState
	emit := newCallbackEventEmitter(CallbackOptions{
		onStateChanged: func(p, c SessionState) { previous, current = p, c },
	})

	emit(events.NewSessionStateChanged(string(StateIdle), string(StateCapturing)))

	if previous != StateIdle || current != StateCapturing {
		t.Fatalf("expected idle -> capturing, got %s -> %s", previous, current)
	}
}

func TestFinalTranscriptClearsInterim(t *testing.T) {
	var interims []string
	var finals []string
	emit := newCallbackEventEmitter(CallbackOptions{
		onInterimTranscription: func(transcript string) { interims = append(interims, transcript) },
		onTranscription:        func(transcript string) { finals = append(finals, transcript) },
	})

	emit(events.NewTranscriptInterimUpdated("crea"))
	emit(events.NewTranscriptInterimUpdated("create a meet"))
	emit(events.NewTranscriptFinal("create a meeting"))

	if len(interims) != 3 || interims[2] != "" {
		t.Fatalf("expected final transcript to clear interim, got %v", interims)
	}
	if len(finals) != 1 || finals[0] != "create a meeting" {
		t.Fatalf("expected one final transcript, got %v", finals)
	}
}

func TestCallbackEmitterBridgesScheduleAndMessages(t *testing.T) {
	var displayed []calendar.DisplayEvent
	var noticeText, errorText string
	emit := newCallbackEventEmitter(CallbackOptions{
		onSchedule: func(display []calendar.DisplayEvent, _ *calendar.FocusEvent) { displayed = display },
		onNotice:   func(text string) { noticeText = text },
		onError:    func(text string) { errorText = text },
	})

	emit(events.NewScheduleUpdated(calendar.ScheduleWindow{}, []calendar.DisplayEvent{
		{Event: calendar.CalendarEvent{ID: "evt-1"}},
	}, nil))
	emit(events.NewNoticePosted("nothing to do"))
	emit(events.NewErrorPosted("Server error"))
	emit(events.NewNoticeCleared())

	if len(displayed) != 1 || displayed[0].Event.ID != "evt-1" {
		t.Fatalf("expected schedule bridged, got %v", displayed)
	}
	if noticeText != "" {
		t.Fatalf("expected notice cleared last, got %q", noticeText)
	}
	if errorText != "Server error" {
		t.Fatalf("expected error bridged, got %q", errorText)
	}
}

func TestNilCallbacksAreSafe(t *testing.T) {
	emit := newCallbackEventEmitter(CallbackOptions{})

	emit(events.NewCaptureStarted())
	emit(events.NewErrorPosted("Server error"))
	emit(events.NewScheduleUpdated(calendar.ScheduleWindow{}, nil, nil))
}
