package agentapi

import (
	"errors"
	"testing"

	"github.com/nvolchak/voxcal-core/core/faults"
)

func TestDecodeResponseShowEvent(t *testing.T) {
	body := []byte(`{"success":true,"type":"show-event","metadata":{"eventId":"e1","calendarId":"cal1"}}`)

	action, err := DecodeResponse(body)
	if err != nil {
		t.Fatalf("expected decode to succeed, got %v", err)
	}

	show, ok := action.(*ShowEvent)
	if !ok {
		t.Fatalf("expected *ShowEvent, got %T", action)
	}
	if show.EventID != "e1" || show.CalendarID != "cal1" {
		t.Fatalf("expected metadata to populate the variant, got %+v", show)
	}
}

func TestDecodeResponseCreateEventParsesEventTimes(t *testing.T) {
	body := []byte(`{"success":true,"type":"create-event","metadata":{
		"summary":"Lunch",
		"start":{"dateTime":"2025-01-10T12:00:00.000Z"},
		"end":{"dateTime":"2025-01-10T13:00:00.000Z"},
		"calendarId":"cal1"}}`)

	action, err := DecodeResponse(body)
	if err != nil {
		t.Fatalf("expected decode to succeed, got %v", err)
	}

	create, ok := action.(*CreateEvent)
	if !ok {
		t.Fatalf("expected *CreateEvent, got %T", action)
	}
	if create.Summary != "Lunch" {
		t.Fatalf("expected summary Lunch, got %q", create.Summary)
	}
	if create.Start.DateTime == nil || create.Start.DateTime.Hour() != 12 {
		t.Fatalf("expected a timed start at 12:00, got %+v", create.Start)
	}
	if create.Start.IsAllDay() {
		t.Fatalf("expected timed variant, got all-day")
	}
}

func TestDecodeResponseAllDayDateStaysAllDay(t *testing.T) {
	body := []byte(`{"success":true,"type":"create-event","metadata":{
		"summary":"Offsite","start":{"date":"2025-01-10"},"end":{"date":"2025-01-11"},"calendarId":"cal1"}}`)

	action, err := DecodeResponse(body)
	if err != nil {
		t.Fatalf("expected decode to succeed, got %v", err)
	}

	create := action.(*CreateEvent)
	if !create.Start.IsAllDay() || create.Start.Date != "2025-01-10" {
		t.Fatalf("expected all-day start, got %+v", create.Start)
	}
}

func TestDecodeResponseFailureEnvelopeYieldsAgentError(t *testing.T) {
	body := []byte(`{"success":false,"error":" I could not find that event. "}`)

	_, err := DecodeResponse(body)
	var agentErr *faults.AgentError
	if !errors.As(err, &agentErr) {
		t.Fatalf("expected AgentError, got %v", err)
	}
	if agentErr.Message != "I could not find that event." {
		t.Fatalf("expected trimmed message, got %q", agentErr.Message)
	}
}

func TestDecodeResponseUnknownTypeIsContractBug(t *testing.T) {
	body := []byte(`{"success":true,"type":"reschedule-everything"}`)

	_, err := DecodeResponse(body)
	var decodingErr *faults.DecodingError
	if !errors.As(err, &decodingErr) {
		t.Fatalf("expected DecodingError, got %v", err)
	}
}

func TestDecodeResponseMalformedBodyIsContractBug(t *testing.T) {
	_, err := DecodeResponse([]byte(`{"success":`))

	var decodingErr *faults.DecodingError
	if !errors.As(err, &decodingErr) {
		t.Fatalf("expected DecodingError, got %v", err)
	}
}

func TestDecodeResponseUpdateLeavesAbsentFieldsNil(t *testing.T) {
	body := []byte(`{"success":true,"type":"update-event","metadata":{"eventId":"e1","calendarId":"cal1","summary":"Moved"}}`)

	action, err := DecodeResponse(body)
	if err != nil {
		t.Fatalf("expected decode to succeed, got %v", err)
	}

	update := action.(*UpdateEvent)
	if update.Start != nil || update.End != nil {
		t.Fatalf("expected absent times to stay nil, got %+v", update)
	}
	if update.Summary != "Moved" {
		t.Fatalf("expected summary Moved, got %q", update.Summary)
	}
}
