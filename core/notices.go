package orchestration

import (
	"sync"
	"time"
)

const (
	noticeAutoDismiss = 2 * time.Second
	errorAutoDismiss  = 4 * time.Second
)

// NoticeScheduler owns the two user-facing message slots and their timed
// dismissal. Notices are transient information (a no-action reason); errors
// are user-actionable failures and win display priority while active.
//
// Every post bumps a generation counter captured by the dismissal timer, so
// a superseding post invalidates a stale timer without cooperative
// cancellation.
type NoticeScheduler struct {
	mu         sync.Mutex
	notice     string
	errorText  string
	generation uint64

	noticeDuration time.Duration
	errorDuration  time.Duration

	onNotice func(text string)
	onError  func(text string)
}

type NoticeSchedulerOption func(*NoticeScheduler)

// WithDismissDurations overrides the auto-dismiss delays.
func WithDismissDurations(notice, errorDuration time.Duration) NoticeSchedulerOption {
	return func(s *NoticeScheduler) {
		s.noticeDuration = notice
		s.errorDuration = errorDuration
	}
}

func NewNoticeScheduler(onNotice, onError func(text string), opts ...NoticeSchedulerOption) *NoticeScheduler {
	scheduler := &NoticeScheduler{
		noticeDuration: noticeAutoDismiss,
		errorDuration:  errorAutoDismiss,
		onNotice:       onNotice,
		onError:        onError,
	}
	for _, opt := range opts {
		opt(scheduler)
	}
	return scheduler
}

// PostNotice shows a transient notice. Suppressed while an error is active.
func (s *NoticeScheduler) PostNotice(text string) {
	s.mu.Lock()
	if s.errorText != "" {
		s.mu.Unlock()
		return
	}

	s.notice = text
	s.generation++
	generation := s.generation
	duration := s.noticeDuration
	s.mu.Unlock()

	if s.onNotice != nil {
		s.onNotice(text)
	}

	time.AfterFunc(duration, func() { s.dismissNotice(generation) })
}

// PostError shows an error, replacing any pending dismissal and clearing an
// active notice.
func (s *NoticeScheduler) PostError(text string) {
	s.mu.Lock()
	noticeCleared := s.notice != ""
	s.notice = ""
	s.errorText = text
	s.generation++
	generation := s.generation
	duration := s.errorDuration
	s.mu.Unlock()

	if noticeCleared && s.onNotice != nil {
		s.onNotice("")
	}
	if s.onError != nil {
		s.onError(text)
	}

	time.AfterFunc(duration, func() { s.dismissError(generation) })
}

// Reset clears both slots and invalidates any pending dismissal. Used when a
// new capture supersedes whatever was on screen.
func (s *NoticeScheduler) Reset() {
	s.mu.Lock()
	noticeCleared := s.notice != ""
	errorCleared := s.errorText != ""
	s.notice = ""
	s.errorText = ""
	s.generation++
	s.mu.Unlock()

	if noticeCleared && s.onNotice != nil {
		s.onNotice("")
	}
	if errorCleared && s.onError != nil {
		s.onError("")
	}
}

// Notice returns the active notice, or empty.
func (s *NoticeScheduler) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// Error returns the active error, or empty.
func (s *NoticeScheduler) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorText
}

func (s *NoticeScheduler) dismissNotice(generation uint64) {
	s.mu.Lock()
	if generation != s.generation || s.notice == "" {
		s.mu.Unlock()
		return
	}
	s.notice = ""
	s.mu.Unlock()

	if s.onNotice != nil {
		s.onNotice("")
	}
}

func (s *NoticeScheduler) dismissError(generation uint64) {
	s.mu.Lock()
	if generation != s.generation || s.errorText == "" {
		s.mu.Unlock()
		return
	}
	s.errorText = ""
	s.mu.Unlock()

	if s.onError != nil {
		s.onError("")
	}
}
