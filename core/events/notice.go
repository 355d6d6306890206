package events

const (
	// KindNoticePosted identifies a transient informational message.
	KindNoticePosted Kind = "notice.posted"
	// KindNoticeCleared identifies notice dismissal.
	KindNoticeCleared Kind = "notice.cleared"
	// KindErrorPosted identifies a user-actionable failure message.
	KindErrorPosted Kind = "notice.error_posted"
	// KindErrorCleared identifies error dismissal.
	KindErrorCleared Kind = "notice.error_cleared"
)

// NoticePosted carries a transient informational message.
type NoticePosted struct {
	Base
	Text string
}

// NewNoticePosted creates a notice posted event.
func NewNoticePosted(text string) NoticePosted {
	return NoticePosted{Base: NewBase(KindNoticePosted), Text: text}
}

// NoticeCleared marks dismissal of the current notice.
type NoticeCleared struct{ Base }

// NewNoticeCleared creates a notice cleared event.
func NewNoticeCleared() NoticeCleared {
	return NoticeCleared{Base: NewBase(KindNoticeCleared)}
}

// ErrorPosted carries a user-actionable failure message.
type ErrorPosted struct {
	Base
	Text string
}

// NewErrorPosted creates an error posted event.
func NewErrorPosted(text string) ErrorPosted {
	return ErrorPosted{Base: NewBase(KindErrorPosted), Text: text}
}

// ErrorCleared marks dismissal of the current error.
type ErrorCleared struct{ Base }

// NewErrorCleared creates an error cleared event.
func NewErrorCleared() ErrorCleared {
	return ErrorCleared{Base: NewBase(KindErrorCleared)}
}
