package mot

import (
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned (wrapped) by DetectionConfig.Validate
var ErrInvalidConfig = errors.New("invalid detection config")

// evictionFactor scales TimeThresholdForMissing into eviction horizon
const evictionFactor = 3

// DetectionConfig holds tunables for a single Update call
type DetectionConfig struct {
	// Detections with lower score are dropped before matching
	ConfidenceThreshold float64
	// Object is "new" while it has been known for less than this duration
	TimeThresholdForNew time.Duration
	// Object is "missing" once it has not been detected for this duration.
	// Tracks are evicted after three times this duration.
	TimeThresholdForMissing time.Duration
	// Minimal IoU between track and detection to consider them the same object
	IoUThreshold float64
}

// DefaultDetectionConfig returns default config.
// Default values: confidence=0.5, new=2s, missing=2s, IoU=0.5
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		ConfidenceThreshold:     0.5,
		TimeThresholdForNew:     2 * time.Second,
		TimeThresholdForMissing: 2 * time.Second,
		IoUThreshold:            0.5,
	}
}

// EvictionHorizon returns time since last detection after which missing track is dropped
func (config DetectionConfig) EvictionHorizon() time.Duration {
	return config.TimeThresholdForMissing * evictionFactor
}

// Validate checks that thresholds are within their domains. NaN thresholds are rejected.
func (config DetectionConfig) Validate() error {
	if !(config.ConfidenceThreshold >= 0 && config.ConfidenceThreshold <= 1) {
		return errors.Wrapf(ErrInvalidConfig, "confidence threshold %v is out of [0, 1]", config.ConfidenceThreshold)
	}
	if !(config.IoUThreshold >= 0 && config.IoUThreshold <= 1) {
		return errors.Wrapf(ErrInvalidConfig, "IoU threshold %v is out of [0, 1]", config.IoUThreshold)
	}
	if config.TimeThresholdForNew < 0 {
		return errors.Wrapf(ErrInvalidConfig, "time threshold for new %s is negative", config.TimeThresholdForNew)
	}
	if config.TimeThresholdForMissing < 0 {
		return errors.Wrapf(ErrInvalidConfig, "time threshold for missing %s is negative", config.TimeThresholdForMissing)
	}
	return nil
}
