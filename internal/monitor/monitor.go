// Package monitor drives the presence tracker: it pulls frames, runs detection,
// updates tracked objects and publishes results together with presence alerts.
package monitor

import (
	"context"
	"io"
	"time"

	"github.com/LdDl/presence-go/mot"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultAlertHold is how long an alert stays active after its condition was last seen
const DefaultAlertHold = 3 * time.Second

// Monitor runs frame loop. It is not safe for concurrent use: frames are processed strictly one by one.
type Monitor struct {
	source   FrameSource
	detector Detector
	sink     Sink
	tracker  *mot.Tracker
	config   ConfigProvider
	logger   zerolog.Logger
	fps      *FPSMeter
	alerts   *alertBoard

	tracks        []mot.TrackedObject
	lastTimestamp time.Time
	// Latest time seen by alerts board, it never goes backwards
	alertClock time.Time
}

// Option configures Monitor
type Option func(*Monitor)

// WithTracker sets tracker (e.g. with custom identifiers generator)
func WithTracker(tracker *mot.Tracker) Option {
	return func(m *Monitor) {
		m.tracker = tracker
	}
}

// WithConfig sets provider of tracker config. It is called once per frame.
func WithConfig(provider ConfigProvider) Option {
	return func(m *Monitor) {
		m.config = provider
	}
}

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithAlertHold sets how long alerts stay active
func WithAlertHold(hold time.Duration) Option {
	return func(m *Monitor) {
		m.alerts = newAlertBoard(hold)
	}
}

// New creates monitor. Default config is mot.DefaultDetectionConfig, logger is disabled.
func New(source FrameSource, detector Detector, sink Sink, options ...Option) *Monitor {
	m := &Monitor{
		source:   source,
		detector: detector,
		sink:     sink,
		tracker:  mot.NewTracker(),
		config:   StaticConfig(mot.DefaultDetectionConfig()),
		logger:   zerolog.Nop(),
		fps:      NewFPSMeter(),
		alerts:   newAlertBoard(DefaultAlertHold),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Tracks returns objects tracked after the last processed frame
func (m *Monitor) Tracks() []mot.TrackedObject {
	return m.tracks
}

// Run processes frames until source is exhausted or ctx is cancelled.
// Both cases are a clean stop and return nil.
func (m *Monitor) Run(ctx context.Context) error {
	frames := 0
	for {
		if ctx.Err() != nil {
			m.logger.Info().Int("frames", frames).Msg("Monitor stopped")
			return nil
		}
		frame, err := m.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				m.logger.Info().Int("frames", frames).Msg("Frame source exhausted")
				return nil
			}
			if ctx.Err() != nil {
				m.logger.Info().Int("frames", frames).Msg("Monitor stopped")
				return nil
			}
			return errors.Wrap(err, "can't read frame")
		}
		frames++
		result := m.ProcessFrame(ctx, frame)
		if m.sink != nil {
			m.sink.Publish(result)
		}
	}
}

// ProcessFrame runs detection and tracking for a single frame.
// When the frame can't be tracked (detector failure, invalid frame or config, stale timestamp)
// previous tracks are kept unchanged and result is marked as skipped.
func (m *Monitor) ProcessFrame(ctx context.Context, frame Frame) FrameResult {
	start := time.Now()
	stale := !m.lastTimestamp.IsZero() && !frame.Timestamp.After(m.lastTimestamp)
	fps := m.fps.FPS()
	if !stale {
		var recalculated bool
		fps, recalculated = m.fps.Tick(frame.Timestamp)
		if recalculated {
			m.logger.Debug().Int("fps", fps).Msg("FPS updated")
		}
	}

	result := FrameResult{
		Timestamp: frame.Timestamp,
		FPS:       fps,
	}
	skip := func(reason string, err error) FrameResult {
		event := m.logger.Warn().Time("frame", frame.Timestamp).Str("reason", reason)
		if err != nil {
			event = event.Err(err)
		}
		event.Msg("Frame skipped")
		result.Skipped = true
		result.Tracks = m.tracks
		result.Summary = mot.Summarize(m.tracks)
		result.Alerts, _ = m.alerts.update(m.tracks, m.alertTime(frame.Timestamp))
		result.ProcessingTime = time.Since(start)
		return result
	}

	if stale {
		return skip("non-increasing timestamp", nil)
	}
	if !frame.Size.Valid() {
		return skip("invalid frame size", nil)
	}
	config := m.config()
	if err := config.Validate(); err != nil {
		return skip("invalid config", err)
	}

	detections, err := m.detector.Detect(ctx, frame, config.ConfidenceThreshold)
	if err != nil {
		// Failed detection is not an empty frame: tracks must not age
		return skip("detection failed", err)
	}

	m.tracks = m.tracker.Update(m.tracks, detections, frame.Size, config, frame.Timestamp)
	m.lastTimestamp = frame.Timestamp

	active, raised := m.alerts.update(m.tracks, m.alertTime(frame.Timestamp))
	for _, alert := range raised {
		m.logger.Info().Str("kind", alert.Kind.String()).Strs("labels", alert.Labels).Msg(alert.Message)
	}

	result.Tracks = m.tracks
	result.Summary = mot.Summarize(m.tracks)
	result.Alerts = active
	result.ProcessingTime = time.Since(start)
	m.logger.Debug().
		Time("frame", frame.Timestamp).
		Int("detections", len(detections)).
		Int("objects", result.Summary.Total).
		Int("new", result.Summary.New).
		Int("missing", result.Summary.Missing).
		Dur("took", result.ProcessingTime).
		Msg("Frame processed")
	return result
}

// alertTime returns ts unless it is earlier than a time already given to the alerts board
func (m *Monitor) alertTime(ts time.Time) time.Time {
	if ts.Before(m.alertClock) {
		return m.alertClock
	}
	m.alertClock = ts
	return ts
}
