package orchestration

import (
	"context"

	"github.com/nvolchak/voxcal-core/core/agentapi"
	"github.com/nvolchak/voxcal-core/core/audio"
	"github.com/nvolchak/voxcal-core/core/auth"
	"github.com/nvolchak/voxcal-core/core/calendar"
	"github.com/nvolchak/voxcal-core/core/events"
	"github.com/nvolchak/voxcal-core/core/scheduleapi"
)

type OrchestratorOption func(*Orchestrator)

// CaptureSession produces one finite recording per push-to-talk press.
type CaptureSession interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (*audio.Recording, error)
}

func WithCaptureSession(client CaptureSession) OrchestratorOption {
	return func(o *Orchestrator) {
		o.capture.set(client)
	}
}

// Transcriber turns a finite recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, recording *audio.Recording, token string) (string, error)
}

func WithTranscriber(client Transcriber) OrchestratorOption {
	return func(o *Orchestrator) {
		o.transcriber.set(client)
	}
}

// AgentClient sends one transcribed query to the natural-language agent.
type AgentClient interface {
	PerformAction(ctx context.Context, query string, token string) (agentapi.Action, error)
}

func WithAgentClient(client AgentClient) OrchestratorOption {
	return func(o *Orchestrator) {
		o.agent = client
	}
}

// ScheduleClient loads the events of one display window.
type ScheduleClient interface {
	FetchWindow(ctx context.Context, startISO, endISO string, token string) (calendar.ScheduleWindow, error)
}

func WithScheduleClient(client ScheduleClient) OrchestratorOption {
	return func(o *Orchestrator) {
		o.schedule = client
	}
}

// CalendarMutationClient applies confirmed mutations and resolves single
// events by id.
type CalendarMutationClient interface {
	FetchEvent(ctx context.Context, calendarID, eventID string, token string) (calendar.CalendarEvent, error)
	CreateEvent(ctx context.Context, draft scheduleapi.EventDraft, token string) (calendar.CalendarEvent, error)
	UpdateEvent(ctx context.Context, calendarID, eventID string, draft scheduleapi.EventDraft, token string) (calendar.CalendarEvent, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string, token string) error
}

func WithMutationClient(client CalendarMutationClient) OrchestratorOption {
	return func(o *Orchestrator) {
		o.mutations = client
	}
}

func WithTokenProvider(provider auth.TokenProvider) OrchestratorOption {
	return func(o *Orchestrator) {
		o.tokens = provider
	}
}

// WithWindowDays sets the display window span. Values outside 1-3 are
// clamped.
func WithWindowDays(days int) OrchestratorOption {
	return func(o *Orchestrator) {
		if days < 1 {
			days = 1
		}
		if days > 3 {
			days = 3
		}
		o.windowDays = days
	}
}

// WithTimezone sets the IANA timezone used to anchor window days. Falls back
// to the host's local timezone when unset or unknown.
func WithTimezone(name string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.timezoneName = name
	}
}

// CallbackOptions are the receiver-facing hooks. Any reactive binding can
// subscribe through these without the core depending on it; all of them are
// optional.
type CallbackOptions struct {
	onEvent                func(events.Event)
	onStateChanged         func(previous, current SessionState)
	onInterimTranscription func(transcript string)
	onTranscription        func(transcript string)
	onSchedule             func(displayEvents []calendar.DisplayEvent, focus *calendar.FocusEvent)
	onPendingAction        func(pending *PendingAction)
	onNotice               func(text string)
	onError                func(text string)
}

// WithEventHandler subscribes to the raw typed event stream.
func WithEventHandler(handler func(events.Event)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.callbacks.onEvent = handler
	}
}

func WithStateCallback(callback func(previous, current SessionState)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.callbacks.onStateChanged = callback
	}
}

func WithInterimTranscriptionCallback(callback func(transcript string)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.callbacks.onInterimTranscription = callback
	}
}

func WithTranscriptionCallback(callback func(transcript string)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.callbacks.onTranscription = callback
	}
}

func WithScheduleCallback(callback func(displayEvents []calendar.DisplayEvent, focus *calendar.FocusEvent)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.callbacks.onSchedule = callback
	}
}

func WithPendingActionCallback(callback func(pending *PendingAction)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.callbacks.onPendingAction = callback
	}
}

func WithNoticeCallback(callback func(text string)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.callbacks.onNotice = callback
	}
}

func WithErrorCallback(callback func(text string)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.callbacks.onError = callback
	}
}
