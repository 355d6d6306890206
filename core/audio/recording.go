package audio

import (
	"sync"
	"time"
)

// Recording is one finite utterance captured from the microphone.
type Recording struct {
	Audio    []byte
	Duration time.Duration
	Encoding EncodingInfo
}

// Recorder accumulates capture frames into a finite recording. A capture
// session feeds it from the device callback; Take drains it when the user
// releases the mic.
type Recorder struct {
	mu       sync.Mutex
	encoding EncodingInfo
	frames   []byte
}

func NewRecorder(encoding EncodingInfo) *Recorder {
	if encoding.IsZero() {
		encoding = GetDefaultEncodingInfo()
	}
	return &Recorder{encoding: encoding}
}

// AddAudio appends one capture frame. Safe to call from a device callback
// goroutine.
func (r *Recorder) AddAudio(frame []byte) {
	if r == nil || len(frame) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame...)
}

// Len returns the accumulated byte count.
func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Take drains the recorder. It returns nil when nothing was captured, which
// callers treat as a silent no-op rather than an error.
func (r *Recorder) Take() *Recording {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.frames) == 0 {
		return nil
	}

	recording := &Recording{
		Audio:    r.frames,
		Duration: r.encoding.Duration(len(r.frames)),
		Encoding: r.encoding,
	}
	r.frames = nil
	return recording
}
