// Package miniaudio is the malgo-backed capture session: push-to-talk
// recording of one finite utterance at a time.
package miniaudio

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/nvolchak/voxcal-core/core/audio"
	"github.com/nvolchak/voxcal-core/core/faults"
)

type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext
	captureClient

	recorder *audio.Recorder
	onFrame  func(frame []byte)
}

type Option func(*Client)

// WithFrameCallback taps every capture frame as it arrives, e.g. to feed a
// live transcription stream alongside the recorder.
func WithFrameCallback(onFrame func(frame []byte)) Option {
	return func(c *Client) {
		c.onFrame = onFrame
	}
}

func NewClient(opts ...Option) (*Client, error) {
	audioCtx, err := malgo.InitContext(
		nil,
		malgo.ContextConfig{},
		func(message string) {},
	)
	if err != nil {
		return nil, &faults.RecordingError{
			Cause: faults.RecordingDeviceUnavailable,
			Err:   fmt.Errorf("malgo InitContext failed: %w", err),
		}
	}

	client := Client{audioContext: audioCtx}
	for _, opt := range opts {
		opt(&client)
	}

	if err := client.captureClient.Init(audioCtx); err != nil {
		client.Close()
		return nil, &faults.RecordingError{Cause: faults.RecordingDeviceUnavailable, Err: err}
	}

	return &client, nil
}

// Start begins accumulating one finite recording.
func (c *Client) Start(_ context.Context) error {
	c.recorder = audio.NewRecorder(c.EncodingInfo())

	err := c.captureClient.Start(func(frame []byte) {
		c.recorder.AddAudio(frame)
		if c.onFrame != nil {
			c.onFrame(frame)
		}
	})
	if err != nil {
		return &faults.RecordingError{Cause: faults.RecordingDeviceUnavailable, Err: err}
	}
	return nil
}

// Stop ends capture and drains the recording. A nil recording with a nil
// error means nothing usable was captured.
func (c *Client) Stop(_ context.Context) (*audio.Recording, error) {
	if err := c.captureClient.Stop(); err != nil {
		return nil, &faults.RecordingError{Cause: faults.RecordingDeviceUnavailable, Err: err}
	}
	return c.recorder.Take(), nil
}

func (c *Client) Close() {
	_ = c.captureClient.Uninit()
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}
