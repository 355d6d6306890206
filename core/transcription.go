package orchestration

import (
	"context"
	"fmt"

	"github.com/nvolchak/voxcal-core/core/audio"
)

// speechToText is the transcription facade, normalizing optional wiring the
// same way the capture facade does.
type speechToText struct {
	client Transcriber
}

func (s *speechToText) set(client Transcriber) {
	if s != nil {
		s.client = client
	}
}

func (s *speechToText) IsConfigured() bool { return s != nil && s.client != nil }

func (s *speechToText) Transcribe(ctx context.Context, recording *audio.Recording, token string) (string, error) {
	if !s.IsConfigured() {
		return "", fmt.Errorf("no transcriber configured")
	}
	return s.client.Transcribe(ctx, recording, token)
}
