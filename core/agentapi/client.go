package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nvolchak/voxcal-core/core/faults"
)

const actionPath = "/assistant/action"

// Client is the HTTP agent client. It posts the transcribed query and
// decodes the typed response.
type Client struct {
	baseURL    string
	httpClient *http.Client

	advertiseSchema bool
	responseSchema  json.RawMessage
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, e.g. to set a request
// timeout.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAdvertisedResponseSchema includes a JSON schema of the response
// envelope in every request, for backends that feed it to their model as a
// structured-output contract.
func WithAdvertisedResponseSchema() ClientOption {
	return func(c *Client) {
		c.advertiseSchema = true
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

	if c.advertiseSchema {
		reflector := jsonschema.Reflector{DoNotReference: true}
		if schemaBytes, err := reflector.Reflect(responseEnvelope{}).MarshalJSON(); err == nil {
			c.responseSchema = schemaBytes
		}
	}

	return c
}

type actionRequest struct {
	Query          string          `json:"query"`
	ResponseSchema json.RawMessage `json:"responseSchema,omitempty"`
}

// PerformAction sends one query to the agent and returns the decoded action.
// Transport, server, agent, and contract failures map onto the faults
// taxonomy; the caller decides what is retried.
func (c *Client) PerformAction(ctx context.Context, query string, token string) (Action, error) {
	ctx, span := tracer.Start(ctx, "agent action")
	defer span.End()
	span.SetAttributes(attribute.Int("request.query_length", len(query)))

	requestBody, err := json.Marshal(actionRequest{Query: query, ResponseSchema: c.responseSchema})
	if err != nil {
		return nil, fmt.Errorf("error marshalling agent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+actionPath, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("error creating agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := faults.WrapTransport(err)
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, wrapped.Error())
		return nil, wrapped
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		wrapped := faults.WrapTransport(err)
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, wrapped.Error())
		return nil, wrapped
	}

	if resp.StatusCode != http.StatusOK {
		serverErr := &faults.ServerError{StatusCode: resp.StatusCode, Message: extractErrorMessage(body)}
		span.RecordError(serverErr)
		span.SetStatus(codes.Error, serverErr.Error())
		return nil, serverErr
	}

	action, err := DecodeResponse(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("response.action_type", string(action.Type())))
	logger.InfoContext(ctx, "agent action decoded", "type", string(action.Type()))
	return action, nil
}

// extractErrorMessage pulls a backend-supplied message out of an error body,
// tolerating both {"error": "..."} and {"message": "..."} shapes.
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
