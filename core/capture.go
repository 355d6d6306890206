package orchestration

import (
	"context"
	"fmt"

	"github.com/nvolchak/voxcal-core/core/audio"
	"github.com/nvolchak/voxcal-core/core/faults"
)

// captureSession is the capture facade used to normalize optional client
// wiring: a missing device surfaces as a recording failure, not a panic.
type captureSession struct {
	client CaptureSession
}

func (c *captureSession) set(client CaptureSession) {
	if c != nil {
		c.client = client
	}
}

func (c *captureSession) IsConfigured() bool { return c != nil && c.client != nil }

func (c *captureSession) Start(ctx context.Context) error {
	if !c.IsConfigured() {
		return &faults.RecordingError{
			Cause: faults.RecordingDeviceUnavailable,
			Err:   fmt.Errorf("no capture session configured"),
		}
	}
	return c.client.Start(ctx)
}

func (c *captureSession) Stop(ctx context.Context) (*audio.Recording, error) {
	if !c.IsConfigured() {
		return nil, &faults.RecordingError{
			Cause: faults.RecordingDeviceUnavailable,
			Err:   fmt.Errorf("no capture session configured"),
		}
	}
	return c.client.Stop(ctx)
}
