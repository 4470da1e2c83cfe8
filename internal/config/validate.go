package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/winter-sled/internal/engine/terrain"
	"github.com/Faultbox/winter-sled/internal/logger"
	"github.com/Faultbox/winter-sled/pkg/rng"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks the configuration for values that would produce a broken world.
// It runs before anything is built so bad settings stop startup instead of
// being replaced with defaults.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if err := c.Terrain.Params().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if len(c.Terrain.Palette) < 2 {
		bad("terrain.palette needs at least 2 stops, got %d", len(c.Terrain.Palette))
	}

	s := c.Sled
	if s.Mass <= 0 {
		bad("sled.mass must be positive, got %v", s.Mass)
	}
	for i, h := range s.HalfExtents {
		if h <= 0 {
			bad("sled.half_extents[%d] must be positive, got %v", i, h)
		}
	}
	if s.MaxSpeed <= 0 {
		bad("sled.max_speed must be positive, got %v", s.MaxSpeed)
	}
	if s.Drag <= 0 || s.Drag > 1 {
		bad("sled.drag must be in (0, 1], got %v", s.Drag)
	}
	if s.AngularDamping < 0 || s.AngularDamping > 1 {
		bad("sled.angular_damping must be in [0, 1], got %v", s.AngularDamping)
	}
	for name, v := range map[string]float64{
		"drift_cancel":     s.DriftCancel,
		"lateral_grip":     s.LateralGrip,
		"speed_clamp_gain": s.SpeedClampGain,
	} {
		if v < 0 || v > 1 {
			bad("sled.%s must be in [0, 1], got %v", name, v)
		}
	}
	if s.RespawnThreshold <= 0 {
		bad("sled.respawn_threshold must be positive, got %v", s.RespawnThreshold)
	}

	if c.Session.Seed != "" {
		if _, err := rng.ParseSeed(c.Session.Seed); err != nil {
			errs = append(errs, fmt.Errorf("%w: session.seed: %w", ErrInvalid, err))
		}
	}

	if c.Window.TickRate <= 0 {
		bad("window.tick_rate must be positive, got %d", c.Window.TickRate)
	}
	if c.Headless.TickRate <= 0 {
		bad("headless.tick_rate must be positive, got %d", c.Headless.TickRate)
	}
	if c.Telemetry.SampleEvery < 1 {
		bad("telemetry.sample_every must be at least 1, got %d", c.Telemetry.SampleEvery)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: logging.level: %w", ErrInvalid, err))
	}

	return errors.Join(errs...)
}

// Params returns the heightfield build parameters.
func (t TerrainConfig) Params() terrain.Params {
	return terrain.Params{Size: t.Size, Segments: t.Segments, Amplitude: t.Amplitude}
}
