// Command presence replays recorded detections through the presence tracker,
// logs new/missing object alerts and prints the final set of tracked objects as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LdDl/presence-go/internal/config"
	"github.com/LdDl/presence-go/internal/logging"
	"github.com/LdDl/presence-go/internal/monitor"
	"github.com/LdDl/presence-go/internal/replay"
	"github.com/LdDl/presence-go/mot"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("presence", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to config file (json, yaml, toml)")
	config.RegisterFlags(flags)
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracks, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Presence monitor failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tracks); err != nil {
		logger.Fatal().Err(err).Msg("Can't write tracked objects")
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) ([]mot.TrackedObject, error) {
	var input io.Reader = os.Stdin
	if cfg.Replay.Path != "" && cfg.Replay.Path != "-" {
		file, err := os.Open(cfg.Replay.Path)
		if err != nil {
			return nil, errors.Wrap(err, "can't open recording")
		}
		defer file.Close()
		input = file
	}
	src := replay.NewSource(input, time.Now())

	logger.Info().
		Str("model", cfg.Detection.ModelType).
		Float64("confidence", cfg.Detection.ConfidenceThreshold).
		Dur("new", cfg.Detection.TimeThresholdForNew).
		Dur("missing", cfg.Detection.TimeThresholdForMissing).
		Float64("iou", cfg.Detection.IoUThreshold).
		Msg("Starting presence monitor")

	frames := 0
	sink := monitor.SinkFunc(func(result monitor.FrameResult) {
		frames++
		logger.Debug().
			Int("frame", frames).
			Bool("skipped", result.Skipped).
			Int("fps", result.FPS).
			Int("objects", result.Summary.Total).
			Int("new", result.Summary.New).
			Int("missing", result.Summary.Missing).
			Msg("Frame published")
	})
	m := monitor.New(src, src, sink,
		monitor.WithConfig(monitor.StaticConfig(cfg.Tracker())),
		monitor.WithLogger(logger),
		monitor.WithAlertHold(cfg.Alerts.HoldDuration),
	)
	if err := m.Run(ctx); err != nil {
		return nil, err
	}
	summary := mot.Summarize(m.Tracks())
	logger.Info().Int("frames", frames).Int("objects", summary.Total).Int("new", summary.New).Int("missing", summary.Missing).Msg("Done")
	return m.Tracks(), nil
}
