// Package scheduleapi is the HTTP client for the calendar backend: window
// fetches plus the four event mutations. All calls are authenticated and all
// failures map onto the faults taxonomy.
package scheduleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nvolchak/voxcal-core/core/calendar"
	"github.com/nvolchak/voxcal-core/core/faults"
)

// Client talks to the schedule backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type windowPayload struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Timezone  string `json:"timezone"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type windowResponse struct {
	Window windowPayload            `json:"window"`
	Events []calendar.CalendarEvent `json:"events"`
}

// FetchWindow loads the events of [startISO, endISO). Dates cross the wire
// as ISO-8601 with fractional seconds.
func (c *Client) FetchWindow(ctx context.Context, startISO, endISO string, token string) (calendar.ScheduleWindow, error) {
	ctx, span := tracer.Start(ctx, "fetch schedule window")
	defer span.End()
	span.SetAttributes(
		attribute.String("request.window_start", startISO),
		attribute.String("request.window_end", endISO),
	)

	query := url.Values{}
	query.Set("start", startISO)
	query.Set("end", endISO)

	var decoded windowResponse
	if err := c.doJSON(ctx, http.MethodGet, "/schedule?"+query.Encode(), nil, token, &decoded); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return calendar.ScheduleWindow{}, err
	}

	window, err := decoded.toWindow()
	if err != nil {
		wrapped := &faults.DecodingError{Err: err}
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, wrapped.Error())
		return calendar.ScheduleWindow{}, wrapped
	}

	span.SetAttributes(attribute.Int("response.event_count", len(window.Events)))
	logger.InfoContext(ctx, "schedule window fetched",
		"start", startISO, "end", endISO, "events", len(window.Events))
	return window, nil
}

func (r windowResponse) toWindow() (calendar.ScheduleWindow, error) {
	start, err := time.Parse(time.RFC3339, r.Window.Start)
	if err != nil {
		return calendar.ScheduleWindow{}, fmt.Errorf("window start %q: %w", r.Window.Start, err)
	}
	end, err := time.Parse(time.RFC3339, r.Window.End)
	if err != nil {
		return calendar.ScheduleWindow{}, fmt.Errorf("window end %q: %w", r.Window.End, err)
	}

	return calendar.ScheduleWindow{
		Start:    start,
		End:      end,
		Timezone: r.Window.Timezone,
		Events:   r.Events,
	}, nil
}

// doJSON performs one authenticated round-trip and decodes the response into
// out when out is non-nil. Server messages are preserved for classification.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any, token string, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("error marshalling request: %w", err)
		}
		body = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return faults.WrapTransport(err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return faults.WrapTransport(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &faults.ServerError{StatusCode: resp.StatusCode, Message: extractErrorMessage(responseBody)}
	}

	if out == nil || len(responseBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return &faults.DecodingError{Err: err}
	}
	return nil
}

func extractErrorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return strings.TrimSpace(payload.Error)
	}
	return strings.TrimSpace(payload.Message)
}
