package orchestration

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/nvolchak/voxcal-core/core/faults"
)

func TestClassifyErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "agent message verbatim",
			err:  &faults.AgentError{Message: "I can only help with calendar questions."},
			want: "I can only help with calendar questions.",
		},
		{
			name: "empty agent message falls back to rephrase",
			err:  &faults.AgentError{},
			want: messageRephrase,
		},
		{
			name: "server message verbatim when informative",
			err:  &faults.ServerError{StatusCode: http.StatusConflict, Message: "event overlaps an existing booking"},
			want: "event overlaps an existing booking",
		},
		{
			name: "generic server message uses bucket",
			err:  &faults.ServerError{StatusCode: http.StatusInternalServerError, Message: "Internal Server Error"},
			want: messageServerError,
		},
		{
			name: "unauthorized bucket",
			err:  &faults.ServerError{StatusCode: http.StatusUnauthorized},
			want: messageAuthFailed,
		},
		{
			name: "not found bucket",
			err:  &faults.ServerError{StatusCode: http.StatusNotFound},
			want: messageNotFound,
		},
		{
			name: "other 4xx bucket",
			err:  &faults.ServerError{StatusCode: http.StatusUnprocessableEntity},
			want: messageRequestFailed,
		},
		{
			name: "5xx bucket",
			err:  &faults.ServerError{StatusCode: http.StatusBadGateway},
			want: messageServerError,
		},
		{
			name: "auth error",
			err:  &faults.AuthError{Cause: faults.AuthRefreshFailed},
			want: messageAuthFailed,
		},
		{
			name: "permission denied recording",
			err:  &faults.RecordingError{Cause: faults.RecordingPermissionDenied},
			want: messageMicDenied,
		},
		{
			name: "no audio recording",
			err:  &faults.RecordingError{Cause: faults.RecordingNoAudioCaptured},
			want: messageNoAudioCaptured,
		},
		{
			name: "calendar operation wrapper",
			err:  &calendarOpError{op: "fetching event", err: errors.New("boom")},
			want: messageCalendarFailed,
		},
		{
			name: "server error inside calendar wrapper wins",
			err:  &calendarOpError{op: "updating event", err: &faults.ServerError{StatusCode: http.StatusInternalServerError}},
			want: messageServerError,
		},
		{
			name: "timeout",
			err:  &faults.TransportError{Timeout: true, Err: errors.New("deadline")},
			want: messageTimedOut,
		},
		{
			name: "connection failure",
			err:  &faults.TransportError{Err: errors.New("refused")},
			want: messageConnectionFailed,
		},
		{
			name: "wrapped transport still classified",
			err:  fmt.Errorf("window fetch: %w", &faults.TransportError{Timeout: true}),
			want: messageTimedOut,
		},
		{
			name: "unknown error",
			err:  errors.New("mystery"),
			want: messageGeneric,
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := classifyError(testCase.err); got != testCase.want {
				t.Fatalf("expected %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestClassifyNilError(t *testing.T) {
	if got := classifyError(nil); got != "" {
		t.Fatalf("expected empty message for nil error, got %q", got)
	}
}
