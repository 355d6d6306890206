package scheduleapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nvolchak/voxcal-core/core/calendar"
	"github.com/nvolchak/voxcal-core/core/faults"
)

func eventTimeAt(instant time.Time) calendar.EventTime {
	return calendar.NewTimed(instant, "UTC")
}

func TestFetchWindowDecodesWindowAndEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("expected bearer token on request, got %q", got)
		}
		if got := r.URL.Query().Get("start"); got != "2025-01-10T00:00:00Z" {
			t.Fatalf("unexpected start param %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"window": {
				"start": "2025-01-10T00:00:00Z",
				"end": "2025-01-11T00:00:00Z",
				"timezone": "Europe/Zagreb",
				"start_date": "2025-01-10",
				"end_date": "2025-01-11"
			},
			"events": [
				{"id":"e1","summary":"Standup","start":{"dateTime":"2025-01-10T09:00:00Z"},"end":{"dateTime":"2025-01-10T09:15:00Z"}},
				{"id":"e2","summary":"Offsite","start":{"date":"2025-01-10"},"end":{"date":"2025-01-11"}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	window, err := client.FetchWindow(context.Background(), "2025-01-10T00:00:00Z", "2025-01-11T00:00:00Z", "tok-1")
	if err != nil {
		t.Fatalf("expected fetch to succeed, got %v", err)
	}

	if window.Timezone != "Europe/Zagreb" {
		t.Fatalf("expected timezone to survive decoding, got %q", window.Timezone)
	}
	if window.Days() != 1 {
		t.Fatalf("expected a one-day window, got %d days", window.Days())
	}
	if len(window.Events) != 2 {
		t.Fatalf("expected two events, got %d", len(window.Events))
	}
	if !window.Events[1].IsAllDay() {
		t.Fatalf("expected second event to decode as all-day")
	}
	if start, ok := window.Events[0].StartInstant(); !ok || start.Hour() != 9 {
		t.Fatalf("expected first event to start at 09:00, got %v (%v)", start, ok)
	}
}

func TestFetchWindowPreservesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"calendar backend is down for maintenance"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.FetchWindow(context.Background(), "2025-01-10T00:00:00Z", "2025-01-11T00:00:00Z", "tok-1")
	var serverErr *faults.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", serverErr.StatusCode)
	}
	if serverErr.Message != "calendar backend is down for maintenance" {
		t.Fatalf("expected backend message to survive, got %q", serverErr.Message)
	}
}

func TestCreateEventPostsDraftAndDecodesServerCopy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendars/cal1/events" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"srv-9","summary":"Lunch","start":{"dateTime":"2025-01-10T12:00:00Z"},"end":{"dateTime":"2025-01-10T13:00:00Z"},"calendarId":"cal1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	start := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	created, err := client.CreateEvent(context.Background(), EventDraft{
		Summary:    "Lunch",
		Start:      eventTimeAt(start),
		End:        eventTimeAt(end),
		CalendarID: "cal1",
	}, "tok-1")
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if created.ID != "srv-9" {
		t.Fatalf("expected the server-assigned id, got %q", created.ID)
	}
}

func TestDeleteEventTreatsNoContentAsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/calendars/cal1/events/e1" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	if err := client.DeleteEvent(context.Background(), "cal1", "e1", "tok-1"); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
}

func TestFetchEventMapsUnauthorizedForRetryPolicy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.FetchEvent(context.Background(), "cal1", "e1", "expired")
	if !faults.IsUnauthorized(err) {
		t.Fatalf("expected an unauthorized classification, got %v", err)
	}
}
