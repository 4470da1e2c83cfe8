package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/winter-sled/internal/engine/input/script"
	"github.com/Faultbox/winter-sled/internal/telemetry"
)

// Replay drives the session from a script for the given number of fixed
// steps, recording every step. It stops early when ctx is done.
func (s *Session) Replay(ctx context.Context, sc *script.Script, ticks int, dt float64, rec *telemetry.Recorder) error {
	if sc == nil {
		return fmt.Errorf("%w: nil script", script.ErrInvalid)
	}
	if !(dt > 0) {
		return fmt.Errorf("replay: invalid step %v", dt)
	}

	s.log.Info("replay started",
		zap.String("script", sc.Name),
		zap.Int("ticks", ticks),
		zap.Float64("dt", dt))

	for i := range ticks {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("replay stopped at tick %d: %w", i, err)
			}
		}

		in := sc.At(i)
		s.AddPitch(in.Pitch)
		f := s.Step(in.State, dt)
		if rec != nil {
			if err := rec.Record(f.Record()); err != nil {
				return err
			}
		}
		for _, d := range f.Discoveries {
			s.log.Info("gift collected",
				zap.Int("tick", f.Tick),
				zap.String("id", d.ID),
				zap.Int("xp", d.XP))
		}
	}

	s.log.Info("replay finished",
		zap.Int("ticks", s.tick),
		zap.Int("found", len(s.tracker.Visited())),
		zap.Float64("distance", s.tracker.Distance()))
	return nil
}
