// Package orchestration drives the voice-to-calendar round trip: capture an
// utterance, transcribe it, ask the agent what to do, project the outcome
// onto the schedule, and apply mutations only after explicit confirmation.
//
// The orchestrator owns the session state machine and the optimistic
// schedule overlay; collaborators (capture, transcription, agent, schedule
// and mutation backends, tokens) are injected through options and called
// through small interfaces so any of them can be replaced or stubbed.
package orchestration

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nvolchak/voxcal-core/core/agentapi"
	"github.com/nvolchak/voxcal-core/core/audio"
	"github.com/nvolchak/voxcal-core/core/auth"
	"github.com/nvolchak/voxcal-core/core/calendar"
	"github.com/nvolchak/voxcal-core/core/events"
	"github.com/nvolchak/voxcal-core/core/faults"
)

const defaultWindowDays = 3

// windowTimeLayout is the wire format for window boundaries.
const windowTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Orchestrator is the session engine. All exported methods are safe for
// concurrent use; overlapping commands that the current state does not
// accept are dropped silently.
type Orchestrator struct {
	mu         sync.Mutex
	state      SessionState
	transcript string
	interim    string
	pending    *PendingAction

	capturing  atomic.Bool
	fetching   atomic.Bool
	confirming atomic.Bool

	capture     captureSession
	transcriber speechToText
	agent       AgentClient
	schedule    ScheduleClient
	mutations   CalendarMutationClient
	tokens      auth.TokenProvider

	projector *ScheduleProjector
	notices   *NoticeScheduler

	windowDays   int
	timezoneName string
	location     *time.Location

	callbacks   CallbackOptions
	emitEvent   eventEmitter
	baseContext context.Context
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	orchestrator := &Orchestrator{
		state:       StateIdle,
		projector:   NewScheduleProjector(),
		windowDays:  defaultWindowDays,
		emitEvent:   noopEventEmitter,
		baseContext: context.Background(),
	}

	for _, opt := range opts {
		opt(orchestrator)
	}

	orchestrator.emitEvent = newCallbackEventEmitter(orchestrator.callbacks)
	orchestrator.notices = NewNoticeScheduler(
		func(text string) {
			if text == "" {
				orchestrator.emitEvent(events.NewNoticeCleared())
			} else {
				orchestrator.emitEvent(events.NewNoticePosted(text))
			}
		},
		func(text string) {
			if text == "" {
				orchestrator.emitEvent(events.NewErrorCleared())
			} else {
				orchestrator.emitEvent(events.NewErrorPosted(text))
			}
		},
	)

	orchestrator.location = time.Local
	if orchestrator.timezoneName != "" {
		if location, err := time.LoadLocation(orchestrator.timezoneName); err == nil {
			orchestrator.location = location
		} else {
			logger.Warn("unknown timezone, falling back to local",
				"timezone", orchestrator.timezoneName)
		}
	}
	if orchestrator.timezoneName == "" {
		orchestrator.timezoneName = orchestrator.location.String()
	}

	return orchestrator
}

// State returns the current session state.
func (o *Orchestrator) State() SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Pending returns the action awaiting confirmation, or nil.
func (o *Orchestrator) Pending() *PendingAction {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pending
}

// StartCapture opens the microphone and begins a new session. Accepted from
// Idle, or from AwaitingConfirmation, where the new utterance cancels the
// pending action first. Any other state drops the command.
func (o *Orchestrator) StartCapture() {
	if o.State() == StateAwaitingConfirmation {
		o.Cancel()
	}

	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return
	}
	if !o.capturing.CompareAndSwap(false, true) {
		o.mu.Unlock()
		return
	}
	o.transcript = ""
	o.interim = ""
	o.mu.Unlock()

	o.notices.Reset()

	if err := o.capture.Start(o.baseContext); err != nil {
		o.capturing.Store(false)
		o.failSession(err)
		return
	}

	o.setState(StateCapturing)
	o.emitEvent(events.NewCaptureStarted())
}

// StopCapture closes the microphone and, when the capture produced audio,
// runs the utterance round trip asynchronously. A capture with no audio
// returns to Idle without any network traffic.
func (o *Orchestrator) StopCapture() {
	o.mu.Lock()
	if o.state != StateCapturing || !o.capturing.CompareAndSwap(true, false) {
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()

	recording, err := o.capture.Stop(o.baseContext)
	if err != nil {
		o.failSession(err)
		return
	}

	var captured time.Duration
	if recording != nil {
		captured = recording.Duration
	}
	o.emitEvent(events.NewCaptureStopped(captured))

	if recording == nil || len(recording.Audio) == 0 {
		o.setState(StateIdle)
		return
	}

	o.setState(StateTranscribing)
	go o.runUtterance(o.baseContext, recording)
}

// PublishInterimTranscript feeds a live interim transcript into the event
// stream. Only meaningful while capturing; dropped otherwise.
func (o *Orchestrator) PublishInterimTranscript(transcript string) {
	o.mu.Lock()
	if o.state != StateCapturing {
		o.mu.Unlock()
		return
	}
	o.interim = transcript
	o.mu.Unlock()

	o.emitEvent(events.NewTranscriptInterimUpdated(transcript))
}

// LoadSchedule fetches and projects the window starting at the given day.
// Used for the initial render and for explicit navigation; dropped silently
// while a session round trip is running or another fetch is in flight.
func (o *Orchestrator) LoadSchedule(ctx context.Context, day time.Time) error {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return nil
	}
	o.mu.Unlock()

	if !o.fetching.CompareAndSwap(false, true) {
		return nil
	}
	defer o.fetching.Store(false)

	window, err := o.loadWindow(ctx, o.dayStart(day), o.windowDays, true)
	if err != nil {
		o.notices.PostError(classifyError(err))
		return err
	}

	o.projector.ProjectShow(window, "")
	o.publishSchedule()
	return nil
}

// DismissMessages clears any visible notice or error ahead of their timers.
func (o *Orchestrator) DismissMessages() {
	o.notices.Reset()
}

// Close invalidates pending dismissal timers. The orchestrator must not be
// used after Close.
func (o *Orchestrator) Close() {
	o.notices.Reset()
}

// runUtterance is the asynchronous half of a session: transcribe, dispatch,
// interpret, and project. Runs exactly once per accepted StopCapture.
func (o *Orchestrator) runUtterance(ctx context.Context, recording *audio.Recording) {
	ctx, span := tracer.Start(ctx, "utterance round trip")
	defer span.End()

	transcript, err := executeAuthenticated(ctx, o.tokens, func(ctx context.Context, token string) (string, error) {
		return o.transcriber.Transcribe(ctx, recording, token)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transcription failed")
		o.failSession(err)
		return
	}
	transcript = strings.TrimSpace(transcript)
	span.SetAttributes(attribute.String("utterance.transcript", transcript))

	o.mu.Lock()
	o.transcript = transcript
	o.interim = ""
	o.mu.Unlock()
	o.emitEvent(events.NewTranscriptFinal(transcript))

	if transcript == "" {
		o.failSession(&faults.RecordingError{Cause: faults.RecordingNoAudioCaptured})
		return
	}

	// A focus left by an earlier round must not outlive its utterance.
	if o.projector.ClearFocus() {
		o.publishSchedule()
	}

	o.setState(StateDispatching)

	action, err := executeAuthenticated(ctx, o.tokens, func(ctx context.Context, token string) (agentapi.Action, error) {
		if o.agent == nil {
			return nil, errors.New("no agent client configured")
		}
		return o.agent.PerformAction(ctx, transcript, token)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "agent dispatch failed")
		o.failSession(err)
		return
	}

	o.setState(StateInterpreting)

	plan, err := interpret(action)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "uninterpretable action")
		o.failSession(err)
		return
	}
	span.SetAttributes(attribute.String("utterance.plan", string(plan.kind)))

	o.executePlan(ctx, plan)
}

func (o *Orchestrator) executePlan(ctx context.Context, plan actionPlan) {
	switch plan.kind {
	case planNotice:
		notice := strings.TrimSpace(plan.notice)
		if notice == "" {
			notice = "Nothing to do."
		}
		o.notices.PostNotice(notice)
		o.completeSession()

	case planShowEvent:
		original, err := o.fetchEvent(ctx, plan.calendarID, plan.eventID)
		if err != nil {
			o.failSession(err)
			return
		}
		window, err := o.loadWindow(ctx, o.dayOf(original), o.windowDays, false)
		if err != nil {
			o.failSession(err)
			return
		}
		o.projector.ProjectShow(window, plan.eventID)
		o.publishSchedule()
		o.completeSession()

	case planShowRange:
		start, days := o.resolveRange(plan.rangeStart, plan.rangeEnd)
		window, err := o.loadWindow(ctx, start, days, false)
		if err != nil {
			o.failSession(err)
			return
		}
		o.projector.ProjectShow(window, "")
		o.publishSchedule()
		o.completeSession()

	case planCreate:
		o.executeCreatePlan(ctx, plan)

	case planUpdate:
		o.executeUpdatePlan(ctx, plan)

	case planDelete:
		o.executeDeletePlan(ctx, plan)
	}
}

func (o *Orchestrator) executeCreatePlan(ctx context.Context, plan actionPlan) {
	day := time.Now().In(o.location)
	if instant, ok := plan.create.Start.Instant(); ok {
		day = instant.In(o.location)
	}
	window, err := o.loadWindow(ctx, o.dayStart(day), o.windowDays, false)
	if err != nil {
		o.failSession(err)
		return
	}

	preview := calendar.CalendarEvent{
		ID:          previewID(),
		Title:       plan.create.Summary,
		Description: plan.create.Description,
		Start:       &plan.create.Start,
		End:         &plan.create.End,
		CalendarID:  plan.create.CalendarID,
		Location:    plan.create.Location,
	}
	o.projector.ProjectCreate(window, preview)
	o.publishSchedule()

	o.proposeAction(&PendingAction{
		Action:     plan.create,
		ActionType: agentapi.ActionCreateEvent,
		Summary:    pendingSummary(plan.create, nil),
		PreviewID:  preview.ID,
	})
}

func (o *Orchestrator) executeUpdatePlan(ctx context.Context, plan actionPlan) {
	original, err := o.fetchEvent(ctx, plan.calendarID, plan.eventID)
	if err != nil {
		o.failSession(err)
		return
	}

	day := o.dayOf(original)
	if plan.update.Start != nil {
		if instant, ok := plan.update.Start.Instant(); ok {
			day = o.dayStart(instant.In(o.location))
		}
	}
	window, err := o.loadWindow(ctx, day, o.windowDays, false)
	if err != nil {
		o.failSession(err)
		return
	}

	merged := calendar.MergeFields(original, updatePatch(plan.update))
	merged.ID = previewID()
	o.projector.ProjectUpdate(window, plan.eventID, merged)
	o.publishSchedule()

	o.proposeAction(&PendingAction{
		Action:     plan.update,
		ActionType: agentapi.ActionUpdateEvent,
		Summary:    pendingSummary(plan.update, &original),
		Original:   &original,
		PreviewID:  merged.ID,
	})
}

func (o *Orchestrator) executeDeletePlan(ctx context.Context, plan actionPlan) {
	original, err := o.fetchEvent(ctx, plan.calendarID, plan.eventID)
	if err != nil {
		o.failSession(err)
		return
	}
	window, err := o.loadWindow(ctx, o.dayOf(original), o.windowDays, false)
	if err != nil {
		o.failSession(err)
		return
	}

	o.projector.ProjectDelete(window, plan.eventID)
	o.publishSchedule()

	o.proposeAction(&PendingAction{
		Action:     &agentapi.DeleteEvent{EventID: plan.eventID, CalendarID: plan.calendarID},
		ActionType: agentapi.ActionDeleteEvent,
		Summary:    pendingSummary(&agentapi.DeleteEvent{}, &original),
		Original:   &original,
	})
}

func (o *Orchestrator) proposeAction(pending *PendingAction) {
	o.mu.Lock()
	o.pending = pending
	o.mu.Unlock()

	o.setState(StateAwaitingConfirmation)
	o.emitEvent(events.NewActionProposed(string(pending.ActionType), pending.Summary))
	if o.callbacks.onPendingAction != nil {
		o.callbacks.onPendingAction(pending)
	}
}

func (o *Orchestrator) clearPending() {
	o.mu.Lock()
	cleared := o.pending != nil
	o.pending = nil
	o.mu.Unlock()

	if cleared && o.callbacks.onPendingAction != nil {
		o.callbacks.onPendingAction(nil)
	}
}

func (o *Orchestrator) fetchEvent(ctx context.Context, calendarID, eventID string) (calendar.CalendarEvent, error) {
	return executeAuthenticated(ctx, o.tokens, func(ctx context.Context, token string) (calendar.CalendarEvent, error) {
		if o.mutations == nil {
			return calendar.CalendarEvent{}, errors.New("no mutation client configured")
		}
		event, err := o.mutations.FetchEvent(ctx, calendarID, eventID, token)
		if err != nil {
			return calendar.CalendarEvent{}, &calendarOpError{op: "fetching event", err: err}
		}
		return event, nil
	})
}

// loadWindow resolves the target window, reusing the projector's cached one
// when the range matches and forced is false. Session-internal callers are
// already serialized by the state machine, so the fetch itself carries no
// guard; LoadSchedule holds the fetching flag so UI-triggered loads cannot
// stack, and the reconciliation fetch after a mutation is never dropped.
func (o *Orchestrator) loadWindow(ctx context.Context, start time.Time, days int, forced bool) (calendar.ScheduleWindow, error) {
	target := calendar.NewWindow(start, days, o.timezoneName)

	if !forced {
		current := o.projector.Window()
		if !current.Start.IsZero() && current.SameRange(target) {
			return current, nil
		}
	}

	window, err := executeAuthenticated(ctx, o.tokens, func(ctx context.Context, token string) (calendar.ScheduleWindow, error) {
		if o.schedule == nil {
			return calendar.ScheduleWindow{}, errors.New("no schedule client configured")
		}
		return o.schedule.FetchWindow(ctx,
			target.Start.Format(windowTimeLayout),
			target.End.Format(windowTimeLayout),
			token)
	})
	if err != nil {
		return calendar.ScheduleWindow{}, err
	}
	if window.Start.IsZero() {
		window.Start = target.Start
		window.End = target.End
		window.Timezone = target.Timezone
	}
	return window, nil
}

func (o *Orchestrator) publishSchedule() {
	display, focus := o.projector.Snapshot()
	o.emitEvent(events.NewScheduleUpdated(o.projector.Window(), display, focus))
}

// completeSession passes through Completed and rests in Idle.
func (o *Orchestrator) completeSession() {
	o.setState(StateCompleted)
	o.emitEvent(events.NewSessionCompleted())
	o.setState(StateIdle)
}

// failSession classifies the error, posts it, and passes through Failed back
// to Idle. Failure of an unconfirmed session never touches the calendar, so
// no rollback is needed here.
func (o *Orchestrator) failSession(err error) {
	message := classifyError(err)
	logger.Error("session failed", "error", err, "message", message)

	o.notices.PostError(message)
	o.setState(StateFailed)
	o.emitEvent(events.NewSessionFailed(message))
	o.setState(StateIdle)
}

func (o *Orchestrator) setState(next SessionState) {
	o.mu.Lock()
	previous := o.state
	o.state = next
	o.mu.Unlock()

	if previous == next {
		return
	}
	o.emitEvent(events.NewSessionStateChanged(string(previous), string(next)))
}

// dayStart anchors an instant at midnight in the configured timezone.
func (o *Orchestrator) dayStart(instant time.Time) time.Time {
	local := instant.In(o.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, o.location)
}

// dayOf is the window anchor for an event: the day it starts on, or today
// when it has no resolvable start.
func (o *Orchestrator) dayOf(event calendar.CalendarEvent) time.Time {
	if instant, ok := event.StartInstant(); ok {
		return o.dayStart(instant)
	}
	return o.dayStart(time.Now())
}

// resolveRange maps the agent's date range onto a window anchor and span.
// Unparseable dates fall back to today and the configured span.
func (o *Orchestrator) resolveRange(startDate, endDate string) (time.Time, int) {
	start := o.dayStart(time.Now())
	if parsed, ok := o.parseDate(startDate); ok {
		start = parsed
	}

	days := o.windowDays
	if parsed, ok := o.parseDate(endDate); ok {
		span := int(parsed.Sub(start).Hours()/24) + 1
		if span >= 1 && span <= 3 {
			days = span
		}
	}
	return start, days
}

func (o *Orchestrator) parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if parsed, err := time.ParseInLocation("2006-01-02", value, o.location); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return o.dayStart(parsed), true
	}
	return time.Time{}, false
}

func previewID() string {
	return "preview-" + uuid.NewString()
}

// updatePatch lifts the agent's sparse patch into event shape for merging.
// The event id is deliberately left empty so the original's id survives.
func updatePatch(update *agentapi.UpdateEvent) calendar.CalendarEvent {
	return calendar.CalendarEvent{
		Title:       update.Summary,
		Description: update.Description,
		Start:       update.Start,
		End:         update.End,
		Location:    update.Location,
	}
}
