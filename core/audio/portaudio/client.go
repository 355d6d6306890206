// Package portaudio is the portaudio-backed capture session, for hosts where
// miniaudio is unavailable.
package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"github.com/nvolchak/voxcal-core/core/audio"
	"github.com/nvolchak/voxcal-core/core/faults"
)

type Client struct {
	bufferSize int
	stream     *portaudio.Stream
	in         []int16

	capturing atomic.Bool
	done      chan struct{}

	recorder *audio.Recorder
	onFrame  func(frame []byte)
}

type Option func(*Client)

// WithFrameCallback taps every capture frame as it arrives.
func WithFrameCallback(onFrame func(frame []byte)) Option {
	return func(c *Client) {
		c.onFrame = onFrame
	}
}

func NewClient(bufferSize int, opts ...Option) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, &faults.RecordingError{
			Cause: faults.RecordingDeviceUnavailable,
			Err:   fmt.Errorf("failed to initialize portaudio: %w", err),
		}
	}

	in := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, audio.DefaultSampleRate, bufferSize, in)
	if err != nil {
		portaudio.Terminate()
		return nil, &faults.RecordingError{
			Cause: faults.RecordingDeviceUnavailable,
			Err:   fmt.Errorf("failed to open portaudio stream: %w", err),
		}
	}

	client := &Client{bufferSize: bufferSize, stream: stream, in: in}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Start begins accumulating one finite recording. Reading happens on a
// dedicated goroutine until Stop or context cancellation.
func (c *Client) Start(ctx context.Context) error {
	if !c.capturing.CompareAndSwap(false, true) {
		return nil
	}

	c.recorder = audio.NewRecorder(c.EncodingInfo())
	c.done = make(chan struct{})

	if err := c.stream.Start(); err != nil {
		c.capturing.Store(false)
		return &faults.RecordingError{
			Cause: faults.RecordingDeviceUnavailable,
			Err:   fmt.Errorf("failed to start portaudio stream: %w", err),
		}
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.done:
				return
			default:
				if err := c.stream.Read(); err != nil {
					continue
				}

				frameBuffer := bytes.Buffer{}
				_ = binary.Write(&frameBuffer, binary.LittleEndian, c.in)
				frame := frameBuffer.Bytes()
				c.recorder.AddAudio(frame)
				if c.onFrame != nil {
					c.onFrame(frame)
				}
			}
		}
	}()

	return nil
}

// Stop ends capture and drains the recording.
func (c *Client) Stop(_ context.Context) (*audio.Recording, error) {
	if !c.capturing.CompareAndSwap(true, false) {
		return nil, nil
	}

	close(c.done)
	if err := c.stream.Stop(); err != nil {
		return nil, &faults.RecordingError{
			Cause: faults.RecordingDeviceUnavailable,
			Err:   fmt.Errorf("failed to stop portaudio stream: %w", err),
		}
	}

	return c.recorder.Take(), nil
}

func (c *Client) Close() {
	c.stream.Close()
	portaudio.Terminate()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}
