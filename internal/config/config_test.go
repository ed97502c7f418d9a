package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LdDl/presence-go/mot"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ModelCOCO, cfg.Detection.ModelType)
	assert.Equal(t, 0.5, cfg.Detection.ConfidenceThreshold)
	assert.Equal(t, 2*time.Second, cfg.Detection.TimeThresholdForNew)
	assert.Equal(t, 2*time.Second, cfg.Detection.TimeThresholdForMissing)
	assert.Equal(t, 0.5, cfg.Detection.IoUThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 3*time.Second, cfg.Alerts.HoldDuration)
	assert.Equal(t, "", cfg.Replay.Path)
	assert.Equal(t, mot.DefaultDetectionConfig(), cfg.Tracker())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, "presence.json", `{
		"detection": {
			"confidenceThreshold": 0.7,
			"timeThresholdForNew": "500ms",
			"timeThresholdForMissing": "5s",
			"modelType": "custom-detection"
		},
		"log": { "level": "debug", "format": "json" }
	}`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, ModelCustom, cfg.Detection.ModelType)
	assert.Equal(t, 0.7, cfg.Detection.ConfidenceThreshold)
	assert.Equal(t, 500*time.Millisecond, cfg.Detection.TimeThresholdForNew)
	assert.Equal(t, 5*time.Second, cfg.Detection.TimeThresholdForMissing)
	assert.Equal(t, 0.5, cfg.Detection.IoUThreshold)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 15*time.Second, cfg.Tracker().EvictionHorizon())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "presence.yaml", "detection:\n  iouThreshold: 0.3\nalerts:\n  holdDuration: 1s\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Detection.IoUThreshold)
	assert.Equal(t, time.Second, cfg.Alerts.HoldDuration)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/presence.json", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidThreshold(t *testing.T) {
	path := writeConfig(t, "presence.json", `{"detection": {"iouThreshold": 1.5}}`)

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mot.ErrInvalidConfig))
}

func TestLoad_UnknownModel(t *testing.T) {
	path := writeConfig(t, "presence.json", `{"detection": {"modelType": "yolo-v99"}}`)

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model type")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PRESENCE_DETECTION_CONFIDENCETHRESHOLD", "0.8")
	t.Setenv("PRESENCE_LOG_LEVEL", "warn")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.Detection.ConfidenceThreshold)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Flags(t *testing.T) {
	path := writeConfig(t, "presence.json", `{"detection": {"confidenceThreshold": 0.7}}`)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--detection.timeThresholdForMissing=4s", "--replay.path=frames.jsonl"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	// Unchanged flags do not shadow the file
	assert.Equal(t, 0.7, cfg.Detection.ConfidenceThreshold)
	assert.Equal(t, 4*time.Second, cfg.Detection.TimeThresholdForMissing)
	assert.Equal(t, "frames.jsonl", cfg.Replay.Path)
}

func TestLoad_NaNThresholdFromEnv(t *testing.T) {
	t.Setenv("PRESENCE_DETECTION_IOUTHRESHOLD", "NaN")

	_, err := Load("", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mot.ErrInvalidConfig))
}
