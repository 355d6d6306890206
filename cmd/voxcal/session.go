package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"

	orchestration "github.com/nvolchak/voxcal-core/core"
	"github.com/nvolchak/voxcal-core/core/agentapi"
	"github.com/nvolchak/voxcal-core/core/audio/miniaudio"
	"github.com/nvolchak/voxcal-core/core/audio/portaudio"
	"github.com/nvolchak/voxcal-core/core/auth"
	"github.com/nvolchak/voxcal-core/core/calendar/googlecal"
	"github.com/nvolchak/voxcal-core/core/events"
	"github.com/nvolchak/voxcal-core/core/scheduleapi"
	"github.com/nvolchak/voxcal-core/core/speechtotext"
	"github.com/nvolchak/voxcal-core/core/speechtotext/deepgram"
	"github.com/nvolchak/voxcal-core/internal/config"
)

// portaudioBufferSize is the frames-per-buffer for the portaudio backend.
const portaudioBufferSize = 480

// session bundles the orchestrator with the event channel the TUI drains
// and the resources that need closing on exit.
type session struct {
	orchestrator *orchestration.Orchestrator
	events       chan events.Event
	windowDays   int

	liveStream *deepgram.LiveStream
}

func (s *session) close() {
	if s.liveStream != nil {
		_ = s.liveStream.Close()
	}
	s.orchestrator.Close()
}

// buildSession wires the collaborators the config asks for: either the
// dedicated backend, or Google Calendar directly with the agent still going
// through the backend-less default.
func buildSession(ctx context.Context, cfg *config.Config) (*session, error) {
	eventStream := make(chan events.Event, 64)

	options := []orchestration.OrchestratorOption{
		orchestration.WithTimezone(cfg.Timezone),
		orchestration.WithWindowDays(cfg.WindowDays),
		orchestration.WithEventHandler(func(event events.Event) {
			select {
			case eventStream <- event:
			default:
			}
		}),
	}

	built := &session{
		events:     eventStream,
		windowDays: cfg.WindowDays,
	}

	transcriber := deepgram.NewTranscriptionClient(
		deepgram.WithAPIKey(cfg.Speech.APIKey),
		deepgram.WithModel(cfg.Speech.Model),
		deepgram.WithLanguage(cfg.Speech.Language),
	)
	options = append(options, orchestration.WithTranscriber(transcriber))

	var liveStream *deepgram.LiveStream
	if cfg.Speech.Live {
		liveStream = &deepgram.LiveStream{}
		built.liveStream = liveStream
	}

	onFrame := func(frame []byte) {
		if liveStream != nil {
			_ = liveStream.SendAudio(frame)
		}
	}
	var capture orchestration.CaptureSession
	var err error
	switch cfg.AudioBackend {
	case "portaudio":
		capture, err = portaudio.NewClient(portaudioBufferSize, portaudio.WithFrameCallback(onFrame))
	default:
		capture, err = miniaudio.NewClient(miniaudio.WithFrameCallback(onFrame))
	}
	if err != nil {
		return nil, fmt.Errorf("opening capture device: %w", err)
	}
	options = append(options, orchestration.WithCaptureSession(capture))

	if cfg.UsesBackend() {
		options = append(options,
			orchestration.WithAgentClient(agentapi.NewClient(cfg.Backend.BaseURL, agentapi.WithAdvertisedResponseSchema())),
		)
		backend := scheduleapi.NewClient(cfg.Backend.BaseURL)
		options = append(options,
			orchestration.WithScheduleClient(backend),
			orchestration.WithMutationClient(backend),
			orchestration.WithTokenProvider(auth.StaticProvider{Token: cfg.Backend.Token}),
		)
	} else {
		oauthConfig, err := googleOAuthConfig(cfg)
		if err != nil {
			return nil, err
		}
		token, err := loadToken(cfg.Google.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("loading Google token (run 'voxcal auth' first): %w", err)
		}

		direct, err := googlecal.NewClient(ctx, oauthConfig, token, googlecal.WithTimezone(cfg.Timezone))
		if err != nil {
			return nil, err
		}
		options = append(options,
			orchestration.WithScheduleClient(direct),
			orchestration.WithMutationClient(direct),
			orchestration.WithTokenProvider(auth.NewOAuth2Provider(oauthConfig.TokenSource(ctx, token))),
		)
		if cfg.Backend.BaseURL == "" && os.Getenv("VOXCAL_AGENT_URL") != "" {
			options = append(options,
				orchestration.WithAgentClient(agentapi.NewClient(os.Getenv("VOXCAL_AGENT_URL"), agentapi.WithAdvertisedResponseSchema())),
			)
		}
	}

	built.orchestrator = orchestration.NewOrchestrator(options...)

	if liveStream != nil {
		err := liveStream.Open(ctx,
			speechtotext.WithAPIKey(cfg.Speech.APIKey),
			speechtotext.WithInterimTranscriptionCallback(func(transcript string) {
				built.orchestrator.PublishInterimTranscript(transcript)
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("opening live transcription stream: %w", err)
		}
	}

	return built, nil
}

func (s *session) loadInitialSchedule() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = s.orchestrator.LoadSchedule(ctx, time.Now())
}

func saveToken(path string, token *oauth2.Token) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating token file: %w", err)
	}
	defer file.Close()
	return json.NewEncoder(file).Encode(token)
}

func loadToken(path string) (*oauth2.Token, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(file).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}
