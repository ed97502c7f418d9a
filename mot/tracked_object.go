package mot

import "time"

// Status is a presentation class of tracked object
type Status uint16

const (
	// StatusTracked is steadily present object
	StatusTracked Status = iota
	// StatusNew is recently appeared object
	StatusNew
	// StatusMissing is object which has not been detected for a while
	StatusMissing
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusMissing:
		return "missing"
	default:
		return "tracked"
	}
}

// TrackedObject is a single identity maintained across frames
type TrackedObject struct {
	ID              string    `json:"id"`
	Label           string    `json:"label"`
	Score           float64   `json:"score"`
	Box             Rectangle `json:"box"`
	FirstDetectedAt time.Time `json:"firstDetectedAt"`
	LastDetectedAt  time.Time `json:"lastDetectedAt"`
	IsNew           bool      `json:"isNew"`
	IsMissing       bool      `json:"isMissing"`
}

// Status returns object's status. New takes precedence over missing,
// since an object that vanished while still new keeps IsNew until it is re-matched or evicted.
func (obj TrackedObject) Status() Status {
	if obj.IsNew {
		return StatusNew
	}
	if obj.IsMissing {
		return StatusMissing
	}
	return StatusTracked
}

// SinceLastDetection returns time passed since object has been detected last time
func (obj TrackedObject) SinceLastDetection(now time.Time) time.Duration {
	return now.Sub(obj.LastDetectedAt)
}

// Summary is counters over tracked objects set
type Summary struct {
	Total   int `json:"total"`
	New     int `json:"new"`
	Missing int `json:"missing"`
}

// Summarize counts objects by flags. Object flagged both new and missing is counted in both.
func Summarize(objects []TrackedObject) Summary {
	summary := Summary{Total: len(objects)}
	for _, obj := range objects {
		if obj.IsNew {
			summary.New++
		}
		if obj.IsMissing {
			summary.Missing++
		}
	}
	return summary
}

// Labels returns labels of objects accepted by keep, in objects order
func Labels(objects []TrackedObject, keep func(TrackedObject) bool) []string {
	labels := make([]string, 0)
	for _, obj := range objects {
		if keep(obj) {
			labels = append(labels, obj.Label)
		}
	}
	return labels
}
