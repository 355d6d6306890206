// Package googlecal adapts the Google Calendar API to the schedule and
// mutation interfaces the orchestration core expects, for running without a
// dedicated backend. Authorization comes from the OAuth HTTP client baked
// into the service; the per-call bearer token is ignored.
package googlecal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/oauth2"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/nvolchak/voxcal-core/core/calendar"
	"github.com/nvolchak/voxcal-core/core/faults"
	"github.com/nvolchak/voxcal-core/core/scheduleapi"
)

const defaultCalendarID = "primary"

// Client wraps one authenticated Google Calendar service.
type Client struct {
	service  *calendarapi.Service
	timezone string
}

type Option func(*Client)

// WithTimezone sets the timezone attached to fetched windows and to drafts
// that do not carry one.
func WithTimezone(name string) Option {
	return func(c *Client) {
		c.timezone = name
	}
}

// NewClient builds a client from an OAuth2 config and a previously obtained
// token.
func NewClient(ctx context.Context, config *oauth2.Config, token *oauth2.Token, opts ...Option) (*Client, error) {
	service, err := calendarapi.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	client := &Client{service: service, timezone: "UTC"}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchWindow lists events of every visible copy of the primary calendar in
// [start, end).
func (c *Client) FetchWindow(ctx context.Context, startISO, endISO string, _ string) (calendar.ScheduleWindow, error) {
	ctx, span := tracer.Start(ctx, "listing calendar events")
	defer span.End()
	span.SetAttributes(
		attribute.String("window.start", startISO),
		attribute.String("window.end", endISO),
	)

	listing, err := c.service.Events.List(defaultCalendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(startISO).
		TimeMax(endISO).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing failed")
		return calendar.ScheduleWindow{}, mapError(err)
	}

	window := calendar.ScheduleWindow{Timezone: c.timezone}
	if start, parseErr := time.Parse(time.RFC3339, startISO); parseErr == nil {
		window.Start = start
	}
	if end, parseErr := time.Parse(time.RFC3339, endISO); parseErr == nil {
		window.End = end
	}
	for _, item := range listing.Items {
		window.Events = append(window.Events, fromGoogleEvent(item, defaultCalendarID))
	}
	return window, nil
}

func (c *Client) FetchEvent(ctx context.Context, calendarID, eventID string, _ string) (calendar.CalendarEvent, error) {
	ctx, span := tracer.Start(ctx, "fetching calendar event")
	defer span.End()

	item, err := c.service.Events.Get(orPrimary(calendarID), eventID).Context(ctx).Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return calendar.CalendarEvent{}, mapError(err)
	}
	return fromGoogleEvent(item, orPrimary(calendarID)), nil
}

func (c *Client) CreateEvent(ctx context.Context, draft scheduleapi.EventDraft, _ string) (calendar.CalendarEvent, error) {
	ctx, span := tracer.Start(ctx, "creating calendar event")
	defer span.End()

	item, err := c.service.Events.
		Insert(orPrimary(draft.CalendarID), c.toGoogleEvent(draft)).
		Context(ctx).
		Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create failed")
		return calendar.CalendarEvent{}, mapError(err)
	}
	return fromGoogleEvent(item, orPrimary(draft.CalendarID)), nil
}

func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, draft scheduleapi.EventDraft, _ string) (calendar.CalendarEvent, error) {
	ctx, span := tracer.Start(ctx, "updating calendar event")
	defer span.End()

	item, err := c.service.Events.
		Update(orPrimary(calendarID), eventID, c.toGoogleEvent(draft)).
		Context(ctx).
		Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return calendar.CalendarEvent{}, mapError(err)
	}
	return fromGoogleEvent(item, orPrimary(calendarID)), nil
}

func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string, _ string) error {
	ctx, span := tracer.Start(ctx, "deleting calendar event")
	defer span.End()

	if err := c.service.Events.Delete(orPrimary(calendarID), eventID).Context(ctx).Do(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return mapError(err)
	}
	return nil
}

func orPrimary(calendarID string) string {
	if calendarID == "" {
		return defaultCalendarID
	}
	return calendarID
}

// mapError folds Google API failures into the shared taxonomy so the core
// classifies them the same way it classifies backend failures.
func mapError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &faults.ServerError{StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return faults.WrapTransport(err)
}

func fromGoogleEvent(item *calendarapi.Event, calendarID string) calendar.CalendarEvent {
	event := calendar.CalendarEvent{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		CalendarID:  calendarID,
		Location:    item.Location,
		Start:       fromGoogleTime(item.Start),
		End:         fromGoogleTime(item.End),
	}

	for _, attendee := range item.Attendees {
		event.Attendees = append(event.Attendees, calendar.Attendee{
			Email:          attendee.Email,
			DisplayName:    attendee.DisplayName,
			ResponseStatus: attendee.ResponseStatus,
		})
	}

	if item.ConferenceData != nil {
		for _, entry := range item.ConferenceData.EntryPoints {
			if entry.EntryPointType == "video" && entry.Uri != "" {
				event.Conference = &calendar.ConferenceInfo{URI: entry.Uri, Label: entry.Label}
				break
			}
		}
	}
	return event
}

func fromGoogleTime(value *calendarapi.EventDateTime) *calendar.EventTime {
	if value == nil {
		return nil
	}
	if value.Date != "" {
		eventTime := calendar.NewAllDay(value.Date)
		return &eventTime
	}
	if value.DateTime == "" {
		return nil
	}
	instant, err := time.Parse(time.RFC3339, value.DateTime)
	if err != nil {
		return nil
	}
	eventTime := calendar.NewTimed(instant, value.TimeZone)
	return &eventTime
}

func (c *Client) toGoogleEvent(draft scheduleapi.EventDraft) *calendarapi.Event {
	return &calendarapi.Event{
		Summary:     draft.Summary,
		Description: draft.Description,
		Location:    draft.Location,
		Start:       c.toGoogleTime(draft.Start, draft.Timezone),
		End:         c.toGoogleTime(draft.End, draft.Timezone),
	}
}

func (c *Client) toGoogleTime(value calendar.EventTime, timezone string) *calendarapi.EventDateTime {
	if value.IsZero() {
		return nil
	}
	if value.IsAllDay() {
		return &calendarapi.EventDateTime{Date: value.Date}
	}

	converted := &calendarapi.EventDateTime{DateTime: value.DateTime.Format(time.RFC3339)}
	switch {
	case value.TimeZone != "":
		converted.TimeZone = value.TimeZone
	case timezone != "":
		converted.TimeZone = timezone
	default:
		converted.TimeZone = c.timezone
	}
	return converted
}
