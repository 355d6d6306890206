package scheduleapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nvolchak/voxcal-core/core/calendar"
)

// EventDraft is the payload accepted by create and update calls.
type EventDraft struct {
	Summary     string             `json:"summary"`
	Start       calendar.EventTime `json:"start"`
	End         calendar.EventTime `json:"end"`
	CalendarID  string             `json:"calendarId"`
	Description string             `json:"description,omitempty"`
	Location    string             `json:"location,omitempty"`
	Timezone    string             `json:"timezone,omitempty"`
}

func eventPath(calendarID, eventID string) string {
	return fmt.Sprintf("/calendars/%s/events/%s",
		url.PathEscape(calendarID), url.PathEscape(eventID))
}

// FetchEvent loads one event by id.
func (c *Client) FetchEvent(ctx context.Context, calendarID, eventID string, token string) (calendar.CalendarEvent, error) {
	ctx, span := tracer.Start(ctx, "fetch event")
	defer span.End()
	span.SetAttributes(attribute.String("request.event_id", eventID))

	var event calendar.CalendarEvent
	if err := c.doJSON(ctx, http.MethodGet, eventPath(calendarID, eventID), nil, token, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return calendar.CalendarEvent{}, err
	}
	return event, nil
}

// CreateEvent creates a new event and returns the server's copy of it.
func (c *Client) CreateEvent(ctx context.Context, draft EventDraft, token string) (calendar.CalendarEvent, error) {
	ctx, span := tracer.Start(ctx, "create event")
	defer span.End()
	span.SetAttributes(attribute.String("request.calendar_id", draft.CalendarID))

	path := fmt.Sprintf("/calendars/%s/events", url.PathEscape(draft.CalendarID))
	var event calendar.CalendarEvent
	if err := c.doJSON(ctx, http.MethodPost, path, draft, token, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return calendar.CalendarEvent{}, err
	}

	logger.InfoContext(ctx, "event created", "event_id", event.ID)
	return event, nil
}

// UpdateEvent replaces an event's fields and returns the server's copy.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, draft EventDraft, token string) (calendar.CalendarEvent, error) {
	ctx, span := tracer.Start(ctx, "update event")
	defer span.End()
	span.SetAttributes(attribute.String("request.event_id", eventID))

	var event calendar.CalendarEvent
	if err := c.doJSON(ctx, http.MethodPut, eventPath(calendarID, eventID), draft, token, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return calendar.CalendarEvent{}, err
	}

	logger.InfoContext(ctx, "event updated", "event_id", eventID)
	return event, nil
}

// DeleteEvent deletes an event by id.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string, token string) error {
	ctx, span := tracer.Start(ctx, "delete event")
	defer span.End()
	span.SetAttributes(attribute.String("request.event_id", eventID))

	if err := c.doJSON(ctx, http.MethodDelete, eventPath(calendarID, eventID), nil, token, nil); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	logger.InfoContext(ctx, "event deleted", "event_id", eventID)
	return nil
}
