package mot

import "fmt"

// RawDetection is a single detector output for one frame.
// Box is given by pixel corners. There is no identity across frames.
type RawDetection struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	XMin  float64 `json:"xmin"`
	YMin  float64 `json:"ymin"`
	XMax  float64 `json:"xmax"`
	YMax  float64 `json:"ymax"`
}

// Detection is a RawDetection converted to frame-fraction coordinates
type Detection struct {
	Label string
	Score float64
	Box   Rectangle
}

// Normalize converts raw detections into frame-fraction boxes and drops every
// detection with score below confidenceThreshold. Order of surviving detections is preserved.
//
// Frame must have positive dimensions: calling Normalize with invalid frame is a programming error and panics.
func Normalize(frame FrameSize, raw []RawDetection, confidenceThreshold float64) []Detection {
	if !frame.Valid() {
		panic(fmt.Sprintf("mot: can't normalize detections for frame %vx%v", frame.Width, frame.Height))
	}
	detections := make([]Detection, 0, len(raw))
	for _, det := range raw {
		if det.Score < confidenceThreshold {
			continue
		}
		detections = append(detections, Detection{
			Label: det.Label,
			Score: det.Score,
			Box:   NewRectFromCorners(det.XMin, det.YMin, det.XMax, det.YMax).Relative(frame),
		})
	}
	return detections
}
