package session

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/winter-sled/internal/game/quest"
	"github.com/Faultbox/winter-sled/internal/game/sled"
	"github.com/Faultbox/winter-sled/internal/telemetry"
	"github.com/Faultbox/winter-sled/pkg/math"
)

// Frame describes the outcome of one Step.
type Frame struct {
	Tick   int
	Time   float64
	State  sled.State
	Result sled.TickResult
	// Discoveries lists gift boxes collected during this step.
	Discoveries []quest.Discovery
	// Claimed lists quests whose rewards were granted during this step.
	Claimed []string
	Found   int
	XP      int
	Level   int
	Camera  mgl64.Vec3
}

// Step advances the session by dt seconds: controller tick, physics step,
// gift discovery, distance accounting and camera follow. A step the
// controller skips leaves the world untouched.
func (s *Session) Step(in sled.InputState, dt float64) Frame {
	res := s.controller.Tick(in, dt)
	if res.Skipped {
		return s.frame(res)
	}

	s.world.Step(dt)
	s.tick++
	s.elapsed += dt

	pos := s.body.Position()
	if !res.Respawned {
		s.tracker.AddDistance(math.HorizontalLength(pos.Sub(s.lastPos)))
	}
	s.lastPos = pos
	if s.tick%trailEvery == 0 {
		s.trail = append(s.trail, pos)
	}

	f := s.frame(res)
	f.Discoveries, f.Claimed = s.discover()
	f.Found = len(s.tracker.Visited())
	f.XP = s.tracker.XP()
	f.Level = s.tracker.Level()

	st := s.controller.State()
	s.camera.Follow(st.Position, st.Yaw, st.Pitch, dt, s.field.Sampler())
	f.Camera = s.camera.Position()
	return f
}

func (s *Session) frame(res sled.TickResult) Frame {
	return Frame{
		Tick:   s.tick,
		Time:   s.elapsed,
		State:  s.controller.State(),
		Result: res,
		Found:  len(s.tracker.Visited()),
		XP:     s.tracker.XP(),
		Level:  s.tracker.Level(),
		Camera: s.camera.Position(),
	}
}

// discover collects every gift box whose sensor the sled overlaps and grants
// rewards for quests that complete as a result.
func (s *Session) discover() (found []quest.Discovery, claimed []string) {
	bounds := s.body.Bounds()
	reach := s.cfg.Session.DiscoveryReach
	for _, m := range s.markers {
		if s.tracker.Discovered(m.ID()) {
			continue
		}
		if !bounds.Overlaps(m.Sensor.Expand(reach)) {
			continue
		}
		d := s.tracker.Discover(m.Dapp)
		if !d.New {
			continue
		}
		found = append(found, d)
		for _, id := range d.Completed {
			if s.tracker.Claim(id) {
				claimed = append(claimed, id)
			}
		}
		s.log.Debug("gift collected",
			zap.String("id", m.ID()),
			zap.Int("index", m.Index),
			zap.Int("variant", m.Variant))
	}
	return found, claimed
}

// Remaining returns how many gift boxes are still uncollected.
func (s *Session) Remaining() int {
	n := 0
	for _, m := range s.markers {
		if !s.tracker.Discovered(m.ID()) {
			n++
		}
	}
	return n
}

// HUD returns a one-line status for the window title.
func (s *Session) HUD() string {
	st := s.controller.State()
	return fmt.Sprintf("Winter Sled | %4.1f m/s | gifts %d/%d | Lv %d (%d xp, %d to next) | %.0f m",
		st.Speed(),
		len(s.markers)-s.Remaining(), len(s.markers),
		s.tracker.Level(), s.tracker.XP(), quest.XPToNextLevel(s.tracker.XP()),
		s.tracker.Distance())
}

// Record converts the frame into a telemetry row.
func (f Frame) Record() telemetry.TickRecord {
	return telemetry.TickRecord{
		Tick:          f.Tick,
		Time:          f.Time,
		X:             f.State.Position.X(),
		Y:             f.State.Position.Y(),
		Z:             f.State.Position.Z(),
		Speed:         f.State.Speed(),
		Yaw:           f.State.Yaw,
		Pitch:         f.State.Pitch,
		OnGround:      f.Result.OnGround,
		GroundClamped: f.Result.GroundClamped,
		SpeedLimited:  f.Result.SpeedLimited,
		Respawned:     f.Result.Respawned,
		Healed:        f.Result.Healed,
		Discovered:    f.Found,
		XP:            f.XP,
		Level:         f.Level,
	}
}
