package orchestration

import (
	"testing"
	"time"
)

func TestNoticeAutoDismisses(t *testing.T) {
	noticeUpdates := make(chan string, 4)
	scheduler := NewNoticeScheduler(
		func(text string) { noticeUpdates <- text },
		nil,
		WithDismissDurations(20*time.Millisecond, 40*time.Millisecond),
	)

	scheduler.PostNotice("nothing to do")

	if got := <-noticeUpdates; got != "nothing to do" {
		t.Fatalf("expected notice posted, got %q", got)
	}

	select {
	case got := <-noticeUpdates:
		if got != "" {
			t.Fatalf("expected dismissal, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for notice dismissal")
	}

	if scheduler.Notice() != "" {
		t.Fatalf("expected notice cleared, got %q", scheduler.Notice())
	}
}

func TestErrorSuppressesNotice(t *testing.T) {
	scheduler := NewNoticeScheduler(nil, nil,
		WithDismissDurations(time.Minute, time.Minute))

	scheduler.PostError("Server error")
	scheduler.PostNotice("nothing to do")

	if scheduler.Notice() != "" {
		t.Fatalf("expected notice suppressed while error active, got %q", scheduler.Notice())
	}
	if scheduler.Error() != "Server error" {
		t.Fatalf("expected error retained, got %q", scheduler.Error())
	}
}

func TestErrorClearsActiveNotice(t *testing.T) {
	noticeUpdates := make(chan string, 4)
	scheduler := NewNoticeScheduler(
		func(text string) { noticeUpdates <- text },
		nil,
		WithDismissDurations(time.Minute, time.Minute),
	)

	scheduler.PostNotice("nothing to do")
	<-noticeUpdates

	scheduler.PostError("Server error")

	select {
	case got := <-noticeUpdates:
		if got != "" {
			t.Fatalf("expected notice cleared by error, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for notice clear")
	}
}

func TestSupersededPostInvalidatesStaleTimer(t *testing.T) {
	scheduler := NewNoticeScheduler(nil, nil,
		WithDismissDurations(60*time.Millisecond, time.Minute))

	scheduler.PostNotice("first")
	time.Sleep(40 * time.Millisecond)
	scheduler.PostNotice("second")

	// The first post's timer fires here; the second notice must survive it.
	time.Sleep(40 * time.Millisecond)
	if scheduler.Notice() != "second" {
		t.Fatalf("expected second notice to survive stale timer, got %q", scheduler.Notice())
	}
}

func TestResetClearsBothSlots(t *testing.T) {
	scheduler := NewNoticeScheduler(nil, nil,
		WithDismissDurations(time.Minute, time.Minute))

	scheduler.PostError("Server error")
	scheduler.Reset()
	scheduler.PostNotice("nothing to do")

	if scheduler.Error() != "" {
		t.Fatalf("expected error cleared by reset, got %q", scheduler.Error())
	}
	if scheduler.Notice() != "nothing to do" {
		t.Fatalf("expected notice accepted after reset, got %q", scheduler.Notice())
	}
}
