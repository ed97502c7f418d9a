// Package config loads presence monitor settings with viper.
package config

import (
	"strings"
	"time"

	"github.com/LdDl/presence-go/mot"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prefix of environment variables overriding config keys (PRESENCE_DETECTION_IOUTHRESHOLD, ...)
const EnvPrefix = "PRESENCE"

// Detection model types accepted by detection.modelType
const (
	ModelCOCO   = "coco-detection"
	ModelCustom = "custom-detection"
)

// Config keys
const (
	KeyConfidenceThreshold     = "detection.confidenceThreshold"
	KeyTimeThresholdForNew     = "detection.timeThresholdForNew"
	KeyTimeThresholdForMissing = "detection.timeThresholdForMissing"
	KeyIoUThreshold            = "detection.iouThreshold"
	KeyModelType               = "detection.modelType"
	KeyLogLevel                = "log.level"
	KeyLogFormat               = "log.format"
	KeyAlertHold               = "alerts.holdDuration"
	KeyReplayPath              = "replay.path"
)

// DetectionConfig holds detection and tracking tunables
type DetectionConfig struct {
	ModelType               string        `mapstructure:"modelType"`
	ConfidenceThreshold     float64       `mapstructure:"confidenceThreshold"`
	TimeThresholdForNew     time.Duration `mapstructure:"timeThresholdForNew"`
	TimeThresholdForMissing time.Duration `mapstructure:"timeThresholdForMissing"`
	IoUThreshold            float64       `mapstructure:"iouThreshold"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AlertsConfig holds alert settings
type AlertsConfig struct {
	HoldDuration time.Duration `mapstructure:"holdDuration"`
}

// ReplayConfig holds settings of recorded detections source
type ReplayConfig struct {
	Path string `mapstructure:"path"`
}

// Config is the whole program configuration
type Config struct {
	Detection DetectionConfig `mapstructure:"detection"`
	Log       LogConfig       `mapstructure:"log"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
	Replay    ReplayConfig    `mapstructure:"replay"`
}

// Tracker returns tracker config
func (cfg *Config) Tracker() mot.DetectionConfig {
	return mot.DetectionConfig{
		ConfidenceThreshold:     cfg.Detection.ConfidenceThreshold,
		TimeThresholdForNew:     cfg.Detection.TimeThresholdForNew,
		TimeThresholdForMissing: cfg.Detection.TimeThresholdForMissing,
		IoUThreshold:            cfg.Detection.IoUThreshold,
	}
}

// Validate checks the configuration
func (cfg *Config) Validate() error {
	switch cfg.Detection.ModelType {
	case ModelCOCO, ModelCustom:
	default:
		return errors.Errorf("unknown model type %q", cfg.Detection.ModelType)
	}
	if err := cfg.Tracker().Validate(); err != nil {
		return err
	}
	if cfg.Alerts.HoldDuration < 0 {
		return errors.Errorf("alerts hold duration %s is negative", cfg.Alerts.HoldDuration)
	}
	return nil
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	defaults := mot.DefaultDetectionConfig()
	v.SetDefault(KeyConfidenceThreshold, defaults.ConfidenceThreshold)
	v.SetDefault(KeyTimeThresholdForNew, defaults.TimeThresholdForNew.String())
	v.SetDefault(KeyTimeThresholdForMissing, defaults.TimeThresholdForMissing.String())
	v.SetDefault(KeyIoUThreshold, defaults.IoUThreshold)
	v.SetDefault(KeyModelType, ModelCOCO)

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	v.SetDefault(KeyAlertHold, "3s")

	v.SetDefault(KeyReplayPath, "")
}

// Load reads configuration. Precedence: flags, environment, file, defaults.
// Empty path means no config file. Flags may be nil; flag names are the config keys.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "error reading config file %s", path)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errors.Wrap(err, "can't bind flags")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "can't decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// RegisterFlags adds flags for the most used keys to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Float64(KeyConfidenceThreshold, 0.5, "minimal detection score")
	fs.Duration(KeyTimeThresholdForNew, 2*time.Second, "object is new while known for less than this")
	fs.Duration(KeyTimeThresholdForMissing, 2*time.Second, "object is missing once not detected for this long")
	fs.Float64(KeyIoUThreshold, 0.5, "minimal IoU to match detection with tracked object")
	fs.String(KeyLogLevel, "info", "log level")
	fs.String(KeyLogFormat, "console", "log format: console or json")
	fs.String(KeyReplayPath, "", "path to JSON-lines file with recorded detections")
}
