package monitor

import (
	"math"
	"time"
)

// FPSMeter counts frames and recalculates frames per second once a second
type FPSMeter struct {
	frames     int
	lastUpdate time.Time
	lastFrame  time.Time
	fps        int
}

// NewFPSMeter creates meter
func NewFPSMeter() *FPSMeter {
	return &FPSMeter{}
}

// Tick registers frame captured at ts. Returns current FPS and whether it has just been recalculated.
// Frames with non-increasing timestamps are not counted.
func (meter *FPSMeter) Tick(ts time.Time) (int, bool) {
	if meter.lastFrame.IsZero() {
		meter.lastFrame = ts
		meter.lastUpdate = ts
		return meter.fps, false
	}
	// Out of order frames neither count nor move the clock back
	if !ts.After(meter.lastFrame) {
		return meter.fps, false
	}
	meter.lastFrame = ts
	meter.frames++
	window := ts.Sub(meter.lastUpdate)
	if window < time.Second {
		return meter.fps, false
	}
	meter.fps = int(math.Round(float64(meter.frames) / window.Seconds()))
	meter.frames = 0
	meter.lastUpdate = ts
	return meter.fps, true
}

// FPS returns last calculated value
func (meter *FPSMeter) FPS() int {
	return meter.fps
}
