// Package main runs a scripted sled session without a window and reports
// the resulting telemetry.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/winter-sled/internal/config"
	"github.com/Faultbox/winter-sled/internal/engine/debug"
	"github.com/Faultbox/winter-sled/internal/engine/input/script"
	"github.com/Faultbox/winter-sled/internal/game/session"
	"github.com/Faultbox/winter-sled/internal/logger"
	"github.com/Faultbox/winter-sled/internal/telemetry"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	summary, err := run(cfg)
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}

	out, err := yaml.Marshal(&summary)
	if err != nil {
		logger.Error("failed to encode summary", zap.Error(err))
		os.Exit(1)
	}
	fmt.Print(string(out))
}

func run(cfg *config.Config) (telemetry.Summary, error) {
	sc, err := loadScript(cfg.Headless.ScriptPath)
	if err != nil {
		return telemetry.Summary{}, err
	}

	s, err := session.New(cfg, nil, logger.Named("session"))
	if err != nil {
		return telemetry.Summary{}, err
	}

	rec, err := telemetry.NewRecorder(cfg.Telemetry.OutputDir, cfg.Session.Seed, cfg.Telemetry.SampleEvery)
	if err != nil {
		return telemetry.Summary{}, err
	}
	defer rec.Close()

	if dir := rec.Dir(); dir != "" {
		// Resolved config next to the trace.
		if err := cfg.SaveTo(filepath.Join(dir, "config.yaml")); err != nil {
			return telemetry.Summary{}, fmt.Errorf("writing config.yaml: %w", err)
		}
	}

	ctx := context.Background()
	if cfg.Headless.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Headless.Timeout)
		defer cancel()
	}

	dt := 1 / float64(cfg.Headless.TickRate)
	if err := s.Replay(ctx, sc, cfg.Headless.Ticks, dt, rec); err != nil {
		return telemetry.Summary{}, err
	}

	if err := rec.WriteSummary(); err != nil {
		return telemetry.Summary{}, err
	}
	if dir := rec.Dir(); dir != "" {
		name, err := debug.NewScreenshotCapture(dir, "map").CaptureFromImage(s.Map(4))
		if err != nil {
			return telemetry.Summary{}, fmt.Errorf("writing map: %w", err)
		}
		logger.Info("map written", zap.String("path", name))
	}
	if err := s.Save(); err != nil {
		return telemetry.Summary{}, err
	}
	return rec.Summary(), nil
}

// loadScript reads the configured script, or a looping downhill run when none is set.
func loadScript(path string) (*script.Script, error) {
	if path != "" {
		return script.Load(path)
	}
	sc, err := script.New("default",
		script.Step{Ticks: 240, Keys: []string{"forward"}},
		script.Step{Ticks: 90, Keys: []string{"forward", "left"}},
		script.Step{Ticks: 180, Keys: []string{"forward", "boost"}},
		script.Step{Ticks: 90, Keys: []string{"forward", "right"}},
		script.Step{Ticks: 60, Keys: []string{"brake"}},
	)
	if err != nil {
		return nil, err
	}
	sc.Loop = true
	return sc, nil
}
