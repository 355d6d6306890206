package orchestration

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nvolchak/voxcal-core/core/faults"
)

// User-facing messages. Raw transport or server strings never reach the
// user; full diagnostic detail goes to spans and logs instead.
const (
	messageRephrase         = "I didn't catch that. Please try rephrasing your request."
	messageAuthFailed       = "Authentication failed"
	messageNotFound         = "Resource not found"
	messageRequestFailed    = "Request failed"
	messageServerError      = "Server error"
	messageNetworkError     = "Network error"
	messageCalendarFailed   = "Calendar operation failed"
	messageTimedOut         = "Request timed out."
	messageConnectionFailed = "Network connection failed"
	messageGeneric          = "Something went wrong"

	messageMicDenied       = "Microphone access denied"
	messageNoAudioCaptured = "No audio captured"
	messageMicUnavailable  = "Microphone unavailable"
)

// calendarOpError marks a failure of a calendar/schedule collaborator that
// did not come back as a typed transport or server failure.
type calendarOpError struct {
	op  string
	err error
}

func (e *calendarOpError) Error() string { return fmt.Sprintf("%s: %v", e.op, e.err) }
func (e *calendarOpError) Unwrap() error { return e.err }

// classifyError maps any failure to its short user-facing message. First
// match wins; the order mirrors how specific each category is.
func classifyError(err error) string {
	if err == nil {
		return ""
	}

	var agentErr *faults.AgentError
	if errors.As(err, &agentErr) {
		if message := strings.TrimSpace(agentErr.Message); message != "" {
			return message
		}
		return messageRephrase
	}

	var serverErr *faults.ServerError
	if errors.As(err, &serverErr) {
		if message := strings.TrimSpace(serverErr.Message); message != "" && !isGenericServerMessage(serverErr.StatusCode, message) {
			return message
		}
		switch {
		case serverErr.StatusCode == http.StatusUnauthorized || serverErr.StatusCode == http.StatusForbidden:
			return messageAuthFailed
		case serverErr.StatusCode == http.StatusNotFound:
			return messageNotFound
		case serverErr.StatusCode >= 400 && serverErr.StatusCode < 500:
			return messageRequestFailed
		case serverErr.StatusCode >= 500 && serverErr.StatusCode < 600:
			return messageServerError
		}
		return messageNetworkError
	}

	var authErr *faults.AuthError
	if errors.As(err, &authErr) {
		return messageAuthFailed
	}

	var recordingErr *faults.RecordingError
	if errors.As(err, &recordingErr) {
		switch recordingErr.Cause {
		case faults.RecordingPermissionDenied:
			return messageMicDenied
		case faults.RecordingNoAudioCaptured:
			return messageNoAudioCaptured
		}
		return messageMicUnavailable
	}

	var calendarErr *calendarOpError
	if errors.As(err, &calendarErr) {
		return messageCalendarFailed
	}

	var transportErr *faults.TransportError
	if errors.As(err, &transportErr) {
		if transportErr.Timeout {
			return messageTimedOut
		}
		return messageConnectionFailed
	}

	return messageGeneric
}

// isGenericServerMessage filters backend messages that just restate the
// status line, so the bucket message is used instead.
func isGenericServerMessage(statusCode int, message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return true
	}
	if statusText := strings.ToLower(http.StatusText(statusCode)); statusText != "" && normalized == statusText {
		return true
	}
	switch normalized {
	case "error", "internal error", "an error occurred", "unknown error":
		return true
	}
	return false
}
