// Package deepgram provides transcription over the Deepgram API: a one-shot
// REST path for finite recordings and a websocket stream for live interim
// transcripts while capture is still running.
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nvolchak/voxcal-core/core/audio"
	"github.com/nvolchak/voxcal-core/core/faults"
)

const listenURL = "https://api.deepgram.com/v1/listen"

// TranscriptionClient transcribes finite recordings through Deepgram's
// prerecorded REST endpoint.
type TranscriptionClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	language   string
}

type ClientOption func(*TranscriptionClient)

func WithModel(model string) ClientOption {
	return func(c *TranscriptionClient) {
		c.model = model
	}
}

func WithLanguage(language string) ClientOption {
	return func(c *TranscriptionClient) {
		c.language = language
	}
}

// WithAPIKey pins the Deepgram API key. A pinned key wins over the per-call
// token, which in most deployments is a backend or calendar credential that
// Deepgram would reject.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *TranscriptionClient) {
		c.apiKey = apiKey
	}
}

func NewTranscriptionClient(opts ...ClientOption) *TranscriptionClient {
	client := &TranscriptionClient{
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		model:      "nova-3",
		language:   "en-US",
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Transcribe sends one finite recording and returns its transcript. The key
// pinned through WithAPIKey is used when set; otherwise the per-call token is
// treated as a Deepgram API key, with DEEPGRAM_API_KEY as the last fallback.
func (c *TranscriptionClient) Transcribe(ctx context.Context, recording *audio.Recording, token string) (string, error) {
	ctx, span := tracer.Start(ctx, "transcribe recording")
	defer span.End()

	if recording == nil || len(recording.Audio) == 0 {
		return "", &faults.RecordingError{Cause: faults.RecordingNoAudioCaptured}
	}
	span.SetAttributes(
		attribute.Int("request.audio_bytes", len(recording.Audio)),
		attribute.Float64("request.duration_seconds", recording.Duration.Seconds()),
	)

	apiKey, err := resolveAPIKey(c.apiKey, token)
	if err != nil {
		return "", err
	}

	encoding, err := convertEncoding(recording.Encoding)
	if err != nil {
		return "", fmt.Errorf("invalid encoding: %w", err)
	}

	requestURL, _ := url.Parse(listenURL)
	queryParams := requestURL.Query()
	queryParams.Set("encoding", encoding.Format.Name())
	queryParams.Set("sample_rate", strconv.Itoa(encoding.SampleRate))
	queryParams.Set("channels", "1")
	queryParams.Set("model", c.model)
	queryParams.Set("language", c.language)
	queryParams.Set("smart_format", "true")
	requestURL.RawQuery = queryParams.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL.String(), bytes.NewReader(recording.Audio))
	if err != nil {
		return "", fmt.Errorf("error creating transcription request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/raw")
	req.Header.Set("Authorization", "Token "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := faults.WrapTransport(err)
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, wrapped.Error())
		return "", wrapped
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		wrapped := faults.WrapTransport(err)
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, wrapped.Error())
		return "", wrapped
	}

	if resp.StatusCode != http.StatusOK {
		serverErr := &faults.ServerError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		span.RecordError(serverErr)
		span.SetStatus(codes.Error, serverErr.Error())
		return "", serverErr
	}

	transcript, err := extractTranscript(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.Int("response.transcript_length", len(transcript)))
	logger.InfoContext(ctx, "recording transcribed", "transcript_length", len(transcript))
	return transcript, nil
}

// resolveAPIKey picks the credential for a Deepgram call: a pinned key, then
// the per-call token, then the DEEPGRAM_API_KEY environment variable.
func resolveAPIKey(pinned, token string) (string, error) {
	if pinned != "" {
		return pinned, nil
	}
	if token != "" {
		return token, nil
	}
	if fromEnv, ok := os.LookupEnv("DEEPGRAM_API_KEY"); ok && fromEnv != "" {
		return fromEnv, nil
	}
	return "", &faults.AuthError{Cause: faults.AuthMissingProvider, Err: fmt.Errorf("deepgram api key not found")}
}

// extractTranscript pulls the best alternative out of a prerecorded
// response.
func extractTranscript(body []byte) (string, error) {
	var parsed struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &faults.DecodingError{Err: err}
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", &faults.DecodingError{Err: fmt.Errorf("response carried no transcription alternatives")}
	}

	return strings.TrimSpace(parsed.Results.Channels[0].Alternatives[0].Transcript), nil
}
