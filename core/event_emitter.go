package orchestration

import "github.com/nvolchak/voxcal-core/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

// newCallbackEventEmitter bridges the typed event stream onto the optional
// per-concern callbacks, so subscribers can pick either surface.
func newCallbackEventEmitter(opts CallbackOptions) eventEmitter {
	return func(event events.Event) {
		if opts.onEvent != nil {
			opts.onEvent(event)
		}

		switch typedEvent := event.(type) {
		case events.SessionStateChanged:
			if opts.onStateChanged != nil {
				opts.onStateChanged(SessionState(typedEvent.Previous), SessionState(typedEvent.State))
			}
		case events.TranscriptInterimUpdated:
			if opts.onInterimTranscription != nil {
				opts.onInterimTranscription(typedEvent.Transcript)
			}
		case events.TranscriptFinal:
			if opts.onInterimTranscription != nil {
				opts.onInterimTranscription("")
			}
			if opts.onTranscription != nil {
				opts.onTranscription(typedEvent.Transcript)
			}
		case events.ScheduleUpdated:
			if opts.onSchedule != nil {
				opts.onSchedule(typedEvent.Events, typedEvent.Focus)
			}
		case events.NoticePosted:
			if opts.onNotice != nil {
				opts.onNotice(typedEvent.Text)
			}
		case events.NoticeCleared:
			if opts.onNotice != nil {
				opts.onNotice("")
			}
		case events.ErrorPosted:
			if opts.onError != nil {
				opts.onError(typedEvent.Text)
			}
		case events.ErrorCleared:
			if opts.onError != nil {
				opts.onError("")
			}
		}
	}
}
