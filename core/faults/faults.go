// Package faults defines the failure taxonomy shared by the orchestration
// core and every collaborator client.
//
// The taxonomy is deliberately small:
//
//   - RecordingError: the capture device could not produce a usable recording.
//   - TransportError: the request never produced an HTTP response.
//   - ServerError: the backend answered with a non-success status.
//   - AuthError: no token provider, or a token refresh failed.
//   - AgentError: an application-level mistake reported by the agent itself.
//   - DecodingError: a response that violated the wire contract. Always a
//     programming bug on one side of the wire, never retried.
package faults

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

type RecordingCause string

const (
	RecordingPermissionDenied  RecordingCause = "permission_denied"
	RecordingNoAudioCaptured   RecordingCause = "no_audio_captured"
	RecordingDeviceUnavailable RecordingCause = "device_unavailable"
)

// RecordingError reports a capture-device failure.
type RecordingError struct {
	Cause RecordingCause
	Err   error
}

func (e *RecordingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recording failed (%s): %v", e.Cause, e.Err)
	}
	return fmt.Sprintf("recording failed (%s)", e.Cause)
}

func (e *RecordingError) Unwrap() error { return e.Err }

// TransportError reports that no HTTP response was received at all.
type TransportError struct {
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("request timed out: %v", e.Err)
	}
	return fmt.Sprintf("connection failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError reports a non-success HTTP status, with whatever message the
// backend attached to it.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

type AuthCause string

const (
	AuthMissingProvider AuthCause = "missing_provider"
	AuthRefreshFailed   AuthCause = "refresh_failed"
)

// AuthError reports a failure to obtain a usable token.
type AuthError struct {
	Cause AuthCause
	Err   error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed (%s): %v", e.Cause, e.Err)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Cause)
}

func (e *AuthError) Unwrap() error { return e.Err }

// AgentError is an application-level mistake reported by the agent, carried
// through the success envelope rather than the transport layer.
type AgentError struct {
	Message string
}

func (e *AgentError) Error() string { return fmt.Sprintf("agent error: %s", e.Message) }

// DecodingError reports a response body that did not match the wire contract.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string { return fmt.Sprintf("malformed response: %v", e.Err) }
func (e *DecodingError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a server rejection that a token
// refresh might repair.
func IsUnauthorized(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusUnauthorized
}

// WrapTransport converts a round-trip error into a TransportError, splitting
// timeouts from other connection failures.
func WrapTransport(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Timeout: true, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{Timeout: true, Err: err}
	}

	return &TransportError{Err: err}
}
