// Package camera provides the first-person camera that rides on the sled.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/winter-sled/internal/engine/terrain"
	"github.com/Faultbox/winter-sled/pkg/math"
)

// FirstPersonCamera follows a target from the rider's head.
type FirstPersonCamera struct {
	// Eye offset above the followed point
	HeadHeight float64

	// Minimum eye height above the terrain surface
	Clearance float64

	// Smoothing bases: the share of the gap left after 1/60 s
	PositionBase float64
	RotationBase float64

	// Constraints
	MinPitch float64
	MaxPitch float64

	// Projection
	FOV       float64 // vertical, radians
	NearPlane float64
	FarPlane  float64

	pos         mgl64.Vec3
	orient      mgl64.Quat
	yaw, pitch  float64
	initialized bool
}

// NewFirstPersonCamera creates a camera with the sled defaults.
func NewFirstPersonCamera() *FirstPersonCamera {
	return &FirstPersonCamera{
		HeadHeight:   1.45,
		Clearance:    0.3,
		PositionBase: 0.12,
		RotationBase: 0.1,
		MinPitch:     math.DegToRad(-50),
		MaxPitch:     math.DegToRad(60),
		FOV:          math.DegToRad(70),
		NearPlane:    0.1,
		FarPlane:     600,
		orient:       mgl64.QuatIdent(),
	}
}

// Reset snaps the camera onto target with the given yaw and pitch.
func (c *FirstPersonCamera) Reset(target mgl64.Vec3, yaw, pitch float64) {
	c.yaw = math.WrapAngle(yaw)
	c.pitch = math.Clamp(pitch, c.MinPitch, c.MaxPitch)
	c.pos = target.Add(mgl64.Vec3{0, c.HeadHeight, 0})
	c.orient = c.orientation(c.yaw, c.pitch)
	c.initialized = true
}

// Follow eases the camera toward the head position above target and toward
// the given heading and pitch. The eye never dips below the terrain plus
// Clearance when sample covers its position. A non-finite target or a
// non-positive dt leaves the camera unchanged.
func (c *FirstPersonCamera) Follow(target mgl64.Vec3, yaw, pitch, dt float64, sample terrain.Sampler) {
	if !math.IsFiniteVec3(target) || !math.IsFinite(yaw) || !math.IsFinite(pitch) {
		return
	}
	if !c.initialized {
		c.Reset(target, yaw, pitch)
		c.keepAbove(sample)
		return
	}
	if !(dt > 0) || gomath.IsInf(dt, 0) {
		return
	}

	c.yaw = math.WrapAngle(yaw)
	c.pitch = math.Clamp(pitch, c.MinPitch, c.MaxPitch)

	head := target.Add(mgl64.Vec3{0, c.HeadHeight, 0})
	t := math.DampFactor(c.PositionBase, 60, dt)
	c.pos = c.pos.Add(head.Sub(c.pos).Mul(t))

	goal := c.orientation(c.yaw, c.pitch)
	if c.orient.Dot(goal) < 0 {
		goal = goal.Scale(-1)
	}
	c.orient = mgl64.QuatSlerp(c.orient, goal, math.DampFactor(c.RotationBase, 60, dt)).Normalize()

	c.keepAbove(sample)
}

func (c *FirstPersonCamera) keepAbove(sample terrain.Sampler) {
	if sample == nil {
		return
	}
	if h, ok := sample(c.pos.X(), c.pos.Z()); ok && c.pos.Y() < h+c.Clearance {
		c.pos[1] = h + c.Clearance
	}
}

// orientation composes heading then pitch (YXZ order).
func (c *FirstPersonCamera) orientation(yaw, pitch float64) mgl64.Quat {
	return math.QuatFromHeading(yaw).Mul(mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0})).Normalize()
}

// Position returns the eye position in world space.
func (c *FirstPersonCamera) Position() mgl64.Vec3 { return c.pos }

// Orientation returns the smoothed camera rotation.
func (c *FirstPersonCamera) Orientation() mgl64.Quat { return c.orient }

// Yaw returns the target heading last passed to Follow or Reset.
func (c *FirstPersonCamera) Yaw() float64 { return c.yaw }

// Pitch returns the clamped target pitch.
func (c *FirstPersonCamera) Pitch() float64 { return c.pitch }

// Forward returns the direction the camera looks along.
func (c *FirstPersonCamera) Forward() mgl64.Vec3 {
	return c.orient.Rotate(mgl64.Vec3{0, 0, -1})
}

// ViewMatrix returns the view matrix for the current pose.
func (c *FirstPersonCamera) ViewMatrix() mgl64.Mat4 {
	up := c.orient.Rotate(math.Up)
	return mgl64.LookAtV(c.pos, c.pos.Add(c.Forward()), up)
}

// ProjectionMatrix returns a perspective projection for the given aspect ratio.
func (c *FirstPersonCamera) ProjectionMatrix(aspect float64) mgl64.Mat4 {
	if !(aspect > 0) {
		aspect = 1
	}
	return mgl64.Perspective(c.FOV, aspect, c.NearPlane, c.FarPlane)
}
