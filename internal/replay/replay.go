// Package replay feeds recorded detections into the monitor.
//
// Input is JSON lines, one frame per line:
//
//	{"timestamp": 40, "width": 1280, "height": 720, "detections": [{"label": "person", "score": 0.9, "xmin": 10, "ymin": 20, "xmax": 110, "ymax": 220}]}
//
// timestamp is milliseconds since the start of the recording. A frame with non-empty "error"
// replays a failed detector call.
package replay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/LdDl/presence-go/internal/monitor"
	"github.com/LdDl/presence-go/mot"
	"github.com/pkg/errors"
)

// ErrDetectionFailed is returned by Detect for recorded failures
var ErrDetectionFailed = errors.New("recorded detection failure")

// Record is a single line of recording
type Record struct {
	Timestamp  int64              `json:"timestamp"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Detections []mot.RawDetection `json:"detections"`
	Error      string             `json:"error,omitempty"`
}

// Source reads recorded frames. It serves as both monitor.FrameSource and monitor.Detector.
type Source struct {
	scanner *bufio.Scanner
	start   time.Time
	line    int
}

// NewSource creates source reading from r. Recorded timestamps are offsets from start.
func NewSource(r io.Reader, start time.Time) *Source {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Source{
		scanner: scanner,
		start:   start,
	}
}

// Next returns next recorded frame. Blank lines are ignored.
func (src *Source) Next(ctx context.Context) (monitor.Frame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return monitor.Frame{}, err
		}
		if !src.scanner.Scan() {
			if err := src.scanner.Err(); err != nil {
				return monitor.Frame{}, errors.Wrapf(err, "can't read line %d", src.line+1)
			}
			return monitor.Frame{}, io.EOF
		}
		src.line++
		data := src.scanner.Bytes()
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		record := Record{}
		if err := json.Unmarshal(data, &record); err != nil {
			return monitor.Frame{}, errors.Wrapf(err, "can't parse line %d", src.line)
		}
		return monitor.Frame{
			Size:      mot.FrameSize{Width: record.Width, Height: record.Height},
			Timestamp: src.start.Add(time.Duration(record.Timestamp) * time.Millisecond),
			Image:     record,
		}, nil
	}
}

// Detect returns recorded detections of frame. The recorder already applied its own threshold,
// so confidenceThreshold is left to the tracker.
func (src *Source) Detect(ctx context.Context, frame monitor.Frame, confidenceThreshold float64) ([]mot.RawDetection, error) {
	record, ok := frame.Image.(Record)
	if !ok {
		return nil, errors.Errorf("frame payload %T is not a recorded frame", frame.Image)
	}
	if record.Error != "" {
		return nil, errors.Wrap(ErrDetectionFailed, record.Error)
	}
	return record.Detections, nil
}
