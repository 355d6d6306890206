// Package events defines the typed session event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - session.*
//   - user_input.*
//   - schedule.*
//   - confirmation.*
//   - notice.*
//
// session events
//
//   - SessionStateChanged (session.state_changed): the session moved to a new
//     lifecycle state.
//   - SessionCompleted (session.completed): the current voice round-trip
//     finished without requiring confirmation.
//   - SessionFailed (session.failed): the current round-trip failed; carries
//     the classified user-facing message.
//
// user_input events
//
//   - CaptureStarted (user_input.capture_started): microphone capture began.
//   - CaptureStopped (user_input.capture_stopped): microphone capture ended;
//     carries the recording duration when one was produced.
//   - TranscriptInterimUpdated (user_input.transcript_interim_updated):
//     mutable interim transcript snapshot while capture is still running.
//   - TranscriptFinal (user_input.transcript_final): terminal transcript for
//     the utterance, held as thinking state during dispatch.
//
// schedule events
//
//   - ScheduleUpdated (schedule.updated): a new projection is ready to
//     render; carries the display list and the focus pointer, if any.
//
// confirmation events
//
//   - ActionProposed (confirmation.action_proposed): a mutating action awaits
//     the user's decision.
//   - ActionConfirmed (confirmation.confirmed): the user confirmed; the
//     mutation is being applied.
//   - ActionCancelled (confirmation.cancelled): the user cancelled; the
//     overlay was reverted locally.
//
// notice events
//
//   - NoticePosted (notice.posted): transient informational message.
//   - NoticeCleared (notice.cleared): the notice was dismissed.
//   - ErrorPosted (notice.error_posted): user-actionable failure message.
//   - ErrorCleared (notice.error_cleared): the error was dismissed.
package events
