// Package sled implements the per-tick sled controller that layers steering,
// thrust and stabilization on top of a rigid body.
package sled

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/winter-sled/internal/engine/terrain"
	"github.com/Faultbox/winter-sled/pkg/math"
)

// Mode is the controller state.
type Mode int

const (
	// ModeEnabled accepts input and applies forces.
	ModeEnabled Mode = iota
	// ModeDisabled holds the sled still and ignores input.
	ModeDisabled
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeEnabled:
		return "enabled"
	case ModeDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// State is a snapshot of the sled.
type State struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

// Speed returns the horizontal speed.
func (s State) Speed() float64 {
	return math.HorizontalLength(s.Velocity)
}

// TickResult reports what a tick did.
type TickResult struct {
	Skipped       bool // dt invalid or body/sampler not attached
	Respawned     bool
	OnGround      bool // Ground probe hit
	GroundClamped bool
	SpeedLimited  bool
	Healed        int // Non-finite values reset this tick
}

// bodyForward is the body-local forward axis.
var bodyForward = mgl64.Vec3{0, 0, -1}

// steerSpeedScale and steerMaxBonus shape the speed bonus on steering torque.
const (
	steerSpeedScale = 12.0
	steerMaxBonus   = 1.8
	yawBlendBase    = 0.02
)

// Controller drives a Body from player input. It owns the tracked heading
// (yaw) and camera pitch; the body owns everything else.
type Controller struct {
	params Params
	log    *zap.Logger

	body   Body
	sample terrain.Sampler

	mode  Mode
	yaw   float64
	pitch float64

	spawn       mgl64.Vec3
	spawnHeight float64
}

// NewController creates a detached, enabled controller.
func NewController(p Params, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		params: p,
		log:    log,
		mode:   ModeEnabled,
		pitch:  p.DefaultPitch,
	}
}

// Attach connects the body and height sampler. Until both are attached every
// tick is skipped. The body's current position becomes the respawn point
// until Spawn is called.
func (c *Controller) Attach(body Body, sample terrain.Sampler) {
	c.body = body
	c.sample = sample
	if body != nil {
		c.spawn = body.Position()
		c.spawnHeight = c.spawn[1]
		if q := body.Rotation(); math.IsFiniteQuat(q) {
			c.yaw = math.Heading(q)
		}
	}
}

// Detach disconnects the body and sampler.
func (c *Controller) Detach() {
	c.body = nil
	c.sample = nil
}

// Attached reports whether the controller can tick.
func (c *Controller) Attached() bool {
	return c.body != nil && c.sample != nil
}

// Spawn places the body at pos, lifted onto the ground when the sampler has
// terrain there, and records the respawn point. Returns the final position.
func (c *Controller) Spawn(pos mgl64.Vec3) mgl64.Vec3 {
	if c.sample != nil {
		if ground, ok := c.sample(pos[0], pos[2]); ok {
			pos[1] = ground + c.params.HalfHeight + c.params.Clearance
		}
	}
	c.spawn = pos
	c.spawnHeight = pos[1]

	if c.body != nil {
		c.body.SetPosition(pos)
		c.body.SetVelocity(mgl64.Vec3{})
		c.body.SetAngularVelocity(mgl64.Vec3{})
		c.body.SetRotation(math.QuatFromHeading(c.yaw))
	}
	return pos
}

// SpawnHeight returns the height respawns return to.
func (c *Controller) SpawnHeight() float64 {
	return c.spawnHeight
}

// SetEnabled switches between ModeEnabled and ModeDisabled.
func (c *Controller) SetEnabled(enabled bool) {
	if enabled {
		c.mode = ModeEnabled
	} else {
		c.mode = ModeDisabled
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Yaw returns the tracked heading in (-π, π].
func (c *Controller) Yaw() float64 {
	return c.yaw
}

// SetYaw overrides the tracked heading.
func (c *Controller) SetYaw(yaw float64) {
	c.yaw = math.WrapAngle(yaw)
}

// Pitch returns the camera pitch in radians.
func (c *Controller) Pitch() float64 {
	return c.pitch
}

// AddPitch tilts the camera, clamped to the configured range.
func (c *Controller) AddPitch(delta float64) {
	if !math.IsFinite(delta) {
		return
	}
	c.pitch = math.Clamp(c.pitch+delta, c.params.MinPitch, c.params.MaxPitch)
}

// State returns a snapshot of the sled. Position and velocity are zero while detached.
func (c *Controller) State() State {
	s := State{Yaw: c.yaw, Pitch: c.pitch}
	if c.body != nil {
		s.Position = c.body.Position()
		s.Velocity = c.body.Velocity()
	}
	return s
}

// Tick applies one frame of control. It must run before the physics step.
func (c *Controller) Tick(in InputState, dt float64) TickResult {
	if !(dt > 0) || gomath.IsInf(dt, 1) {
		return TickResult{Skipped: true}
	}
	if !c.Attached() {
		return TickResult{Skipped: true}
	}

	b := c.body
	if c.mode == ModeDisabled {
		b.SetVelocity(mgl64.Vec3{})
		b.SetAngularVelocity(mgl64.Vec3{})
		return TickResult{}
	}

	var res TickResult
	healed, lost := c.sanitize()
	res.Healed = healed
	if lost || b.Position()[1] < c.spawnHeight-c.params.RespawnThreshold {
		c.respawn()
		res.Respawned = true
		return res
	}

	p := c.params
	mass := b.Mass()

	// Heading
	speed := math.HorizontalLength(b.Velocity())
	bodyYaw := math.Heading(b.Rotation())
	if steer := in.Steer(); steer != 0 {
		c.yaw = math.WrapAngle(c.yaw + steer*p.TurnRate*dt)
		bonus := 1 + gomath.Min(speed/steerSpeedScale, steerMaxBonus)
		// A clockwise heading change is a negative rotation about +Y.
		b.ApplyTorque(mgl64.Vec3{0, -steer * p.TurnStrength * bonus, 0})
	} else {
		delta := math.ShortestAngleDelta(bodyYaw, c.yaw)
		c.yaw = math.WrapAngle(c.yaw + delta*math.DampFactor(yawBlendBase, p.YawDamping, dt))
	}
	if err := math.ShortestAngleDelta(c.yaw, bodyYaw); gomath.Abs(err) > 1e-4 {
		t := math.Clamp(err*p.AlignStrength, -p.AlignLimit, p.AlignLimit)
		b.ApplyTorque(mgl64.Vec3{0, -t, 0})
	}

	// Basis
	forward := math.Forward(c.yaw)
	right := math.Right(c.yaw)

	// Thrust and braking
	if in.Forward {
		a := p.Acceleration
		if in.Boost {
			a *= p.BoostFactor
		}
		b.ApplyImpulse(forward.Mul(a * dt))
	}
	if in.Backward {
		b.ApplyImpulse(forward.Mul(-p.Acceleration * p.BackwardFactor * dt))
	}
	if in.Brake || in.Backward {
		b.ApplyImpulse(math.Horizontal(b.Velocity()).Mul(-p.BrakeStrength * dt))
	}

	// Downhill assist
	bodyFwd := b.Rotation().Rotate(bodyForward)
	if _, hit := b.CastRayDown(p.GroundProbe); hit {
		res.OnGround = true
		if bodyFwd[1] < -p.DownhillSlope {
			if dir := math.HorizontalDir(bodyFwd); dir != (mgl64.Vec3{}) {
				b.ApplyImpulse(dir.Mul(p.DownhillAssist * dt))
			}
		}
	}

	// Ground clamp. The sampler can miss off the field; then there is nothing to clamp to.
	pos := b.Position()
	if ground, ok := c.sample(pos[0], pos[2]); ok {
		if floor := ground + p.Clearance; pos[1] < floor {
			pos[1] = floor
			b.SetPosition(pos)
			if v := b.Velocity(); v[1] < 0 {
				v[1] = 0
				b.SetVelocity(v)
			}
			res.GroundClamped = true
		}
	}

	// Anti-drift along the body's own facing
	if facing := math.HorizontalDir(bodyFwd); facing != (mgl64.Vec3{}) {
		along := math.Horizontal(b.Velocity()).Dot(facing)
		throttle := in.Throttle()
		if (throttle > 0 && along < 0) || (throttle < 0 && along > 0) {
			b.ApplyImpulse(facing.Mul(-along * p.DriftCancel * mass))
		}
	}

	// Speed clamp
	vel := b.Velocity()
	if speed := math.HorizontalLength(vel); speed > p.MaxSpeed {
		b.ApplyImpulse(math.Horizontal(vel).Mul(-(1 - p.MaxSpeed/speed) * p.SpeedClampGain * mass))
		res.SpeedLimited = true
	}

	// Drag
	b.ApplyImpulse(math.Horizontal(b.Velocity()).Mul(-(1 - p.Drag) * mass))

	// Lateral grip
	lateral := b.Velocity().Dot(right)
	b.ApplyImpulse(right.Mul(-lateral * p.LateralGrip * mass))

	// Spin damping
	w := b.AngularVelocity()
	w[1] *= p.AngularDamping
	b.SetAngularVelocity(w)

	return res
}

// sanitize resets non-finite state. lost reports a non-finite position,
// which can only be recovered by respawning.
func (c *Controller) sanitize() (healed int, lost bool) {
	b := c.body
	var reset []string

	if !math.IsFiniteVec3(b.Velocity()) {
		b.SetVelocity(mgl64.Vec3{})
		reset = append(reset, "velocity")
	}
	if !math.IsFiniteVec3(b.AngularVelocity()) {
		b.SetAngularVelocity(mgl64.Vec3{})
		reset = append(reset, "angular_velocity")
	}
	if !math.IsFiniteQuat(b.Rotation()) {
		c.yaw = 0
		b.SetRotation(math.QuatFromHeading(0))
		reset = append(reset, "rotation")
	}
	if !math.IsFinite(c.yaw) {
		c.yaw = 0
		reset = append(reset, "yaw")
	}
	if !math.IsFinite(c.pitch) {
		c.pitch = c.params.DefaultPitch
		reset = append(reset, "pitch")
	}
	if !math.IsFiniteVec3(b.Position()) {
		lost = true
		reset = append(reset, "position")
	}

	if len(reset) > 0 {
		c.log.Warn("reset non-finite sled state", zap.Strings("fields", reset))
	}
	return len(reset), lost
}

// respawn teleports the body to the spawn height above its current column.
// Non-finite coordinates fall back to the spawn point.
func (c *Controller) respawn() {
	b := c.body
	pos := b.Position()
	x, z := pos[0], pos[2]
	if !math.IsFinite(x) || !math.IsFinite(z) {
		x, z = c.spawn[0], c.spawn[2]
	}

	target := mgl64.Vec3{x, c.spawnHeight, z}
	b.SetPosition(target)
	b.SetVelocity(mgl64.Vec3{})
	b.SetAngularVelocity(mgl64.Vec3{})
	b.SetRotation(math.QuatFromHeading(c.yaw))

	c.log.Info("sled respawned",
		zap.Float64("x", x),
		zap.Float64("y", c.spawnHeight),
		zap.Float64("z", z))
}
