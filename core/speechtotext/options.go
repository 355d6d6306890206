// Package speechtotext defines the option contract shared by live
// transcription streams.
package speechtotext

import "github.com/nvolchak/voxcal-core/core/audio"

type StreamOptions struct {
	InterimTranscriptionCallback func(transcript string)
	TranscriptionCallback        func(transcript string)

	SpeechStartedCallback func()
	SpeechEndedCallback   func()

	EncodingInfo audio.EncodingInfo

	APIKey string
}

type StreamOption func(*StreamOptions)

func WithTranscriptionCallback(callback func(transcript string)) StreamOption {
	return func(o *StreamOptions) {
		o.TranscriptionCallback = callback
	}
}

func WithInterimTranscriptionCallback(callback func(transcript string)) StreamOption {
	return func(o *StreamOptions) {
		o.InterimTranscriptionCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) StreamOption {
	return func(o *StreamOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithSpeechEndedCallback(callback func()) StreamOption {
	return func(o *StreamOptions) {
		o.SpeechEndedCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) StreamOption {
	return func(o *StreamOptions) {
		o.EncodingInfo = encodingInfo
	}
}

// WithAPIKey sets the provider credential for the stream, overriding any
// environment-based default.
func WithAPIKey(apiKey string) StreamOption {
	return func(o *StreamOptions) {
		o.APIKey = apiKey
	}
}
