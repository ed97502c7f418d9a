package monitor

import (
	"context"
	"time"

	"github.com/LdDl/presence-go/mot"
)

// Frame is a single captured video frame
type Frame struct {
	Size      mot.FrameSize
	Timestamp time.Time
	// Image is whatever the detector needs (decoded picture, recorded detections, ...)
	Image any
}

// FrameSource provides frames. io.EOF signals the end of stream.
type FrameSource interface {
	Next(ctx context.Context) (Frame, error)
}

// Detector runs object detection on a frame. Detections carry no identity.
type Detector interface {
	Detect(ctx context.Context, frame Frame, confidenceThreshold float64) ([]mot.RawDetection, error)
}

// Sink receives results of every processed frame
type Sink interface {
	Publish(result FrameResult)
}

// SinkFunc adapts function to Sink
type SinkFunc func(result FrameResult)

// Publish calls f(result)
func (f SinkFunc) Publish(result FrameResult) {
	f(result)
}

// ConfigProvider returns tracker config for the next frame
type ConfigProvider func() mot.DetectionConfig

// StaticConfig returns provider which always gives config
func StaticConfig(config mot.DetectionConfig) ConfigProvider {
	return func() mot.DetectionConfig {
		return config
	}
}

// FrameResult is what the monitor publishes for every frame.
// Tracks must be treated as read-only.
type FrameResult struct {
	Timestamp time.Time
	Tracks    []mot.TrackedObject
	Summary   mot.Summary
	Alerts    []Alert
	FPS       int
	// Skipped is true when tracks were not updated on this frame
	Skipped        bool
	ProcessingTime time.Duration
}
