package deepgram

import (
	"errors"
	"testing"

	"github.com/nvolchak/voxcal-core/core/audio"
	"github.com/nvolchak/voxcal-core/core/faults"
)

func TestExtractTranscriptReturnsBestAlternative(t *testing.T) {
	body := []byte(`{"results":{"channels":[{"alternatives":[{"transcript":" show my event called standup "}]}]}}`)

	transcript, err := extractTranscript(body)
	if err != nil {
		t.Fatalf("expected extraction to succeed, got %v", err)
	}
	if transcript != "show my event called standup" {
		t.Fatalf("expected trimmed transcript, got %q", transcript)
	}
}

func TestExtractTranscriptRejectsEmptyResults(t *testing.T) {
	_, err := extractTranscript([]byte(`{"results":{"channels":[]}}`))

	var decodingErr *faults.DecodingError
	if !errors.As(err, &decodingErr) {
		t.Fatalf("expected DecodingError, got %v", err)
	}
}

func TestTranscribeRejectsEmptyRecording(t *testing.T) {
	client := NewTranscriptionClient()

	_, err := client.Transcribe(t.Context(), &audio.Recording{}, "key")
	var recordingErr *faults.RecordingError
	if !errors.As(err, &recordingErr) {
		t.Fatalf("expected RecordingError, got %v", err)
	}
	if recordingErr.Cause != faults.RecordingNoAudioCaptured {
		t.Fatalf("expected no-audio cause, got %q", recordingErr.Cause)
	}
}

func TestResolveAPIKeyPrefersPinnedKeyOverToken(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "env-key")

	key, err := resolveAPIKey("pinned-key", "backend-bearer-token")
	if err != nil {
		t.Fatalf("expected resolution to succeed, got %v", err)
	}
	if key != "pinned-key" {
		t.Fatalf("expected the pinned key to win, got %q", key)
	}
}

func TestResolveAPIKeyFallsBackToTokenThenEnv(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "env-key")

	key, err := resolveAPIKey("", "call-token")
	if err != nil {
		t.Fatalf("expected resolution to succeed, got %v", err)
	}
	if key != "call-token" {
		t.Fatalf("expected the per-call token, got %q", key)
	}

	key, err = resolveAPIKey("", "")
	if err != nil {
		t.Fatalf("expected env fallback to succeed, got %v", err)
	}
	if key != "env-key" {
		t.Fatalf("expected the environment key, got %q", key)
	}
}

func TestResolveAPIKeyWithoutAnySourceFails(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "")

	_, err := resolveAPIKey("", "")
	var authErr *faults.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Cause != faults.AuthMissingProvider {
		t.Fatalf("expected missing-provider cause, got %q", authErr.Cause)
	}
}

func TestWithAPIKeyPinsTheClientCredential(t *testing.T) {
	client := NewTranscriptionClient(WithAPIKey("pinned-key"))

	if client.apiKey != "pinned-key" {
		t.Fatalf("expected pinned key on the client, got %q", client.apiKey)
	}
}

func TestConvertEncodingRejectsUnsupportedSampleRate(t *testing.T) {
	if _, err := convertEncoding(audio.EncodingInfo{SampleRate: 44100, Format: audio.EncodingLinear16}); err == nil {
		t.Fatalf("expected unsupported sample rate to be rejected")
	}
}
