package mot

import (
	"time"
)

// Tracker maintains object identities across frames with IoU matching and
// classifies objects as new or missing.
// It keeps no state between frames: caller owns tracked objects and passes them to every Update call.
type Tracker struct {
	idGenerator IDGenerator
}

// TrackerOption configures Tracker
type TrackerOption func(*Tracker)

// WithIDGenerator sets generator for identifiers of spawned tracks
func WithIDGenerator(gen IDGenerator) TrackerOption {
	return func(tracker *Tracker) {
		tracker.idGenerator = gen
	}
}

// NewTracker creates a new instance of Tracker.
// Default identifiers are UUID based.
func NewTracker(options ...TrackerOption) *Tracker {
	tracker := &Tracker{
		idGenerator: UUIDGenerator{},
	}
	for _, option := range options {
		option(tracker)
	}
	return tracker
}

var defaultTracker = NewTracker()

// Update is shorthand for Tracker.Update with UUID based identifiers
func Update(previous []TrackedObject, raw []RawDetection, frame FrameSize, config DetectionConfig, now time.Time) []TrackedObject {
	return defaultTracker.Update(previous, raw, frame, config, now)
}

// Update consumes detections of a single frame and returns new set of tracked objects.
// Previous objects are never modified: returned slice is freshly allocated.
// Surviving previous objects keep their order and spawned objects are appended in detections order.
//
// now must strictly increase between consecutive calls.
// Frame must have positive dimensions (see Normalize).
func (tracker *Tracker) Update(previous []TrackedObject, raw []RawDetection, frame FrameSize, config DetectionConfig, now time.Time) []TrackedObject {
	detections := Normalize(frame, raw, config.ConfidenceThreshold)
	assignment := matchDetections(previous, detections, config.IoUThreshold)

	// Working copy: previous objects must stay untouched
	objects := make([]TrackedObject, len(previous), len(previous)+len(detections))
	copy(objects, previous)
	matched := make([]bool, len(previous))

	spawned := make([]TrackedObject, 0)
	for i, detection := range detections {
		trackIdx := assignment[i]
		if trackIdx == noTrack {
			// Register detection as a new object
			spawned = append(spawned, tracker.spawn(detection, now))
			continue
		}
		refresh(&objects[trackIdx], detection, config, now)
		matched[trackIdx] = true
	}

	// Handle unmatched objects
	for i := range objects {
		if !matched[i] {
			age(&objects[i], config, now)
		}
	}
	objects = append(objects, spawned...)

	// Clean up existing data - remove objects missing for a long time
	horizon := config.EvictionHorizon()
	alive := objects[:0]
	for _, obj := range objects {
		if obj.IsMissing && obj.SinceLastDetection(now) >= horizon {
			continue
		}
		alive = append(alive, obj)
	}
	return alive
}

func (tracker *Tracker) spawn(detection Detection, now time.Time) TrackedObject {
	return TrackedObject{
		ID:              tracker.idGenerator.NewID(),
		Label:           detection.Label,
		Score:           detection.Score,
		Box:             detection.Box,
		FirstDetectedAt: now,
		LastDetectedAt:  now,
		IsNew:           true,
		IsMissing:       false,
	}
}

// refresh applies matched detection to object.
// Missing status is cleared regardless of how long object was away.
func refresh(obj *TrackedObject, detection Detection, config DetectionConfig, now time.Time) {
	obj.Box = detection.Box
	obj.Score = detection.Score
	obj.LastDetectedAt = now
	obj.IsMissing = false
	obj.IsNew = now.Sub(obj.FirstDetectedAt) < config.TimeThresholdForNew
}

// age re-evaluates missing status of unmatched object. IsNew is left as is.
func age(obj *TrackedObject, config DetectionConfig, now time.Time) {
	obj.IsMissing = obj.SinceLastDetection(now) >= config.TimeThresholdForMissing
}
