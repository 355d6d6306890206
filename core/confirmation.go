package orchestration

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nvolchak/voxcal-core/core/agentapi"
	"github.com/nvolchak/voxcal-core/core/calendar"
	"github.com/nvolchak/voxcal-core/core/events"
	"github.com/nvolchak/voxcal-core/core/scheduleapi"
)

// Confirm applies the pending action. Accepted only in AwaitingConfirmation;
// the mutation and the reconciliation fetch run asynchronously, and the
// single-flight guard makes a double press apply at most once.
func (o *Orchestrator) Confirm() {
	o.mu.Lock()
	if o.state != StateAwaitingConfirmation || o.pending == nil {
		o.mu.Unlock()
		return
	}
	if !o.confirming.CompareAndSwap(false, true) {
		o.mu.Unlock()
		return
	}
	pending := o.pending
	o.mu.Unlock()

	o.setState(StateMutating)
	o.emitEvent(events.NewActionConfirmed(string(pending.ActionType)))

	go o.runMutation(o.baseContext, pending)
}

// Cancel discards the pending action: the overlay is reverted locally and
// nothing is sent anywhere. Synchronous.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	if o.state != StateAwaitingConfirmation || o.pending == nil {
		o.mu.Unlock()
		return
	}
	pending := o.pending
	o.pending = nil
	o.mu.Unlock()

	o.projector.Revert()
	o.publishSchedule()

	o.emitEvent(events.NewActionCancelled(string(pending.ActionType)))
	if o.callbacks.onPendingAction != nil {
		o.callbacks.onPendingAction(nil)
	}

	o.setState(StateIdle)
}

func (o *Orchestrator) runMutation(ctx context.Context, pending *PendingAction) {
	defer o.confirming.Store(false)

	ctx, span := tracer.Start(ctx, "apply confirmed action")
	defer span.End()
	span.SetAttributes(attribute.String("action.type", string(pending.ActionType)))

	if err := o.applyMutation(ctx, pending); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "mutation failed")

		// A failed mutation rolls back exactly like a cancel: the server was
		// never (or only partially observably) changed, so the overlay goes.
		o.projector.Revert()
		o.publishSchedule()
		o.clearPending()
		o.failSession(err)
		return
	}

	o.clearPending()
	o.setState(StateReconciling)

	current := o.projector.Window()
	window, err := o.loadWindow(ctx, current.Start, current.Days(), true)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reconciliation fetch failed")

		// The mutation itself succeeded; drop the stale overlay and report.
		o.projector.Revert()
		o.publishSchedule()
		o.failSession(err)
		return
	}

	o.projector.ProjectShow(window, "")
	o.publishSchedule()
	o.completeSession()
}

func (o *Orchestrator) applyMutation(ctx context.Context, pending *PendingAction) error {
	if o.mutations == nil {
		return errors.New("no mutation client configured")
	}

	switch action := pending.Action.(type) {
	case *agentapi.CreateEvent:
		_, err := executeAuthenticated(ctx, o.tokens, func(ctx context.Context, token string) (calendar.CalendarEvent, error) {
			created, err := o.mutations.CreateEvent(ctx, createDraft(action, o.timezoneName), token)
			if err != nil {
				return calendar.CalendarEvent{}, &calendarOpError{op: "creating event", err: err}
			}
			return created, nil
		})
		return err

	case *agentapi.UpdateEvent:
		draft := updateDraft(action, pending.Original, o.timezoneName)
		_, err := executeAuthenticated(ctx, o.tokens, func(ctx context.Context, token string) (calendar.CalendarEvent, error) {
			updated, err := o.mutations.UpdateEvent(ctx, action.CalendarID, action.EventID, draft, token)
			if err != nil {
				return calendar.CalendarEvent{}, &calendarOpError{op: "updating event", err: err}
			}
			return updated, nil
		})
		return err

	case *agentapi.DeleteEvent:
		_, err := executeAuthenticated(ctx, o.tokens, func(ctx context.Context, token string) (struct{}, error) {
			if err := o.mutations.DeleteEvent(ctx, action.CalendarID, action.EventID, token); err != nil {
				return struct{}{}, &calendarOpError{op: "deleting event", err: err}
			}
			return struct{}{}, nil
		})
		return err
	}

	return errors.New("unsupported pending action")
}

func createDraft(action *agentapi.CreateEvent, timezone string) scheduleapi.EventDraft {
	return scheduleapi.EventDraft{
		Summary:     action.Summary,
		Start:       action.Start,
		End:         action.End,
		CalendarID:  action.CalendarID,
		Description: action.Description,
		Location:    action.Location,
		Timezone:    timezone,
	}
}

// updateDraft fills the sparse patch from the original's server copy so the
// backend always receives a complete event.
func updateDraft(action *agentapi.UpdateEvent, original *calendar.CalendarEvent, timezone string) scheduleapi.EventDraft {
	base := calendar.CalendarEvent{}
	if original != nil {
		base = *original
	}
	merged := calendar.MergeFields(base, calendar.CalendarEvent{
		Title:       action.Summary,
		Description: action.Description,
		Start:       action.Start,
		End:         action.End,
		Location:    action.Location,
	})

	draft := scheduleapi.EventDraft{
		Summary:     merged.Title,
		CalendarID:  action.CalendarID,
		Description: merged.Description,
		Location:    merged.Location,
		Timezone:    timezone,
	}
	if merged.Start != nil {
		draft.Start = *merged.Start
	}
	if merged.End != nil {
		draft.End = *merged.End
	}
	return draft
}
