package events

import "time"

const (
	// KindCaptureStarted identifies the start of microphone capture.
	KindCaptureStarted Kind = "user_input.capture_started"
	// KindCaptureStopped identifies the end of microphone capture.
	KindCaptureStopped Kind = "user_input.capture_stopped"
	// KindTranscriptInterimUpdated identifies mutable interim transcript updates.
	KindTranscriptInterimUpdated Kind = "user_input.transcript_interim_updated"
	// KindTranscriptFinal identifies the final transcript for the utterance.
	KindTranscriptFinal Kind = "user_input.transcript_final"
)

// CaptureStarted marks when microphone capture begins.
type CaptureStarted struct{ Base }

// NewCaptureStarted creates a capture started event.
func NewCaptureStarted() CaptureStarted {
	return CaptureStarted{Base: NewBase(KindCaptureStarted)}
}

// CaptureStopped marks when microphone capture ends. Duration is zero when
// the capture produced no usable recording.
type CaptureStopped struct {
	Base
	Duration time.Duration
}

// NewCaptureStopped creates a capture stopped event.
func NewCaptureStopped(duration time.Duration) CaptureStopped {
	return CaptureStopped{Base: NewBase(KindCaptureStopped), Duration: duration}
}

// TranscriptInterimUpdated carries a mutable interim transcript snapshot.
type TranscriptInterimUpdated struct {
	Base
	Transcript string
}

// NewTranscriptInterimUpdated creates an interim transcript event.
func NewTranscriptInterimUpdated(transcript string) TranscriptInterimUpdated {
	return TranscriptInterimUpdated{Base: NewBase(KindTranscriptInterimUpdated), Transcript: transcript}
}

// TranscriptFinal carries the terminal transcript for the utterance.
type TranscriptFinal struct {
	Base
	Transcript string
}

// NewTranscriptFinal creates a final transcript event.
func NewTranscriptFinal(transcript string) TranscriptFinal {
	return TranscriptFinal{Base: NewBase(KindTranscriptFinal), Transcript: transcript}
}
