package physics

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/winter-sled/internal/engine/picking"
	"github.com/Faultbox/winter-sled/pkg/math"
)

// BoxConfig describes a box-shaped dynamic body.
type BoxConfig struct {
	Mass           float64
	HalfExtents    mgl64.Vec3
	Position       mgl64.Vec3
	Heading        float64
	LinearDamping  float64 // Fraction of velocity lost per second
	AngularDamping float64 // Fraction of spin lost per second
	Friction       float64 // Multiplied with the ground friction
}

// Body is a dynamic box. Its heading is integrated from the vertical spin;
// its tilt follows the ground it rests on.
type Body struct {
	world *World

	mass        float64
	invMass     float64
	halfExtents mgl64.Vec3
	invInertia  mgl64.Vec3 // Body-local diagonal

	linearDamping  float64
	angularDamping float64
	friction       float64

	pos     mgl64.Vec3
	vel     mgl64.Vec3
	angVel  mgl64.Vec3
	heading float64
	tilt    mgl64.Quat

	force  mgl64.Vec3
	torque mgl64.Vec3

	grounded      bool
	contactNormal mgl64.Vec3
}

func newBox(w *World, cfg BoxConfig) *Body {
	h := cfg.HalfExtents
	// Solid box inertia with full extents 2h: m/3 * (b² + c²) per axis.
	ix := cfg.Mass / 3 * (h[1]*h[1] + h[2]*h[2])
	iy := cfg.Mass / 3 * (h[0]*h[0] + h[2]*h[2])
	iz := cfg.Mass / 3 * (h[0]*h[0] + h[1]*h[1])

	return &Body{
		world:          w,
		mass:           cfg.Mass,
		invMass:        1 / cfg.Mass,
		halfExtents:    h,
		invInertia:     mgl64.Vec3{1 / ix, 1 / iy, 1 / iz},
		linearDamping:  cfg.LinearDamping,
		angularDamping: cfg.AngularDamping,
		friction:       cfg.Friction,
		pos:            cfg.Position,
		heading:        math.WrapAngle(cfg.Heading),
		tilt:           mgl64.QuatIdent(),
		contactNormal:  math.Up,
	}
}

// Position returns the body center.
func (b *Body) Position() mgl64.Vec3 { return b.pos }

// SetPosition teleports the body.
func (b *Body) SetPosition(p mgl64.Vec3) { b.pos = p }

// Velocity returns the linear velocity.
func (b *Body) Velocity() mgl64.Vec3 { return b.vel }

// SetVelocity overrides the linear velocity.
func (b *Body) SetVelocity(v mgl64.Vec3) { b.vel = v }

// AngularVelocity returns the angular velocity in world space.
func (b *Body) AngularVelocity() mgl64.Vec3 { return b.angVel }

// SetAngularVelocity overrides the angular velocity.
func (b *Body) SetAngularVelocity(w mgl64.Vec3) { b.angVel = w }

// Mass returns the body mass.
func (b *Body) Mass() float64 { return b.mass }

// HalfExtents returns the box half size.
func (b *Body) HalfExtents() mgl64.Vec3 { return b.halfExtents }

// Rotation returns the orientation: heading about +Y, then the ground tilt.
func (b *Body) Rotation() mgl64.Quat {
	return b.tilt.Mul(math.QuatFromHeading(b.heading)).Normalize()
}

// SetRotation splits q into heading and tilt.
func (b *Body) SetRotation(q mgl64.Quat) {
	if !math.IsFiniteQuat(q) || q.Len() < 1e-9 {
		b.heading = 0
		b.tilt = mgl64.QuatIdent()
		return
	}
	q = q.Normalize()
	b.heading = math.Heading(q)
	b.tilt = q.Mul(math.QuatFromHeading(b.heading).Inverse()).Normalize()
}

// Heading returns the compass heading.
func (b *Body) Heading() float64 { return b.heading }

// Grounded reports whether the last step ended in contact with the ground.
func (b *Body) Grounded() bool { return b.grounded }

// ContactNormal returns the ground normal from the last contact.
func (b *Body) ContactNormal() mgl64.Vec3 { return b.contactNormal }

// ApplyImpulse changes the velocity immediately by j/m.
func (b *Body) ApplyImpulse(j mgl64.Vec3) {
	b.vel = b.vel.Add(j.Mul(b.invMass))
}

// ApplyForce adds a force for the next step.
func (b *Body) ApplyForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// ApplyTorque adds a world-space torque for the next step.
func (b *Body) ApplyTorque(t mgl64.Vec3) {
	b.torque = b.torque.Add(t)
}

// PendingForce returns the force accumulated since the last step.
func (b *Body) PendingForce() mgl64.Vec3 { return b.force }

// PendingTorque returns the torque accumulated since the last step.
func (b *Body) PendingTorque() mgl64.Vec3 { return b.torque }

// CastRayDown returns the distance from the body center to the ground below.
func (b *Body) CastRayDown(maxDist float64) (float64, bool) {
	if b.world == nil || b.world.ground == nil {
		return 0, false
	}
	hit, ok := b.world.ground.Raycast(picking.Down(b.pos), maxDist)
	if !ok {
		return 0, false
	}
	return hit.Distance, true
}

// Bounds returns the world-space box around the body, ignoring tilt.
func (b *Body) Bounds() picking.AABB {
	h := b.halfExtents
	// Heading rotation mixes X and Z extents.
	s, c := gomath.Sincos(b.heading)
	ex := gomath.Abs(c)*h[0] + gomath.Abs(s)*h[2]
	ez := gomath.Abs(s)*h[0] + gomath.Abs(c)*h[2]
	return picking.CenteredAABB(b.pos, mgl64.Vec3{ex, h[1], ez})
}

// invInertiaWorld returns the inverse inertia tensor rotated into world space.
func (b *Body) invInertiaWorld() mgl64.Mat3 {
	r := b.Rotation().Mat4().Mat3()
	return r.Mul3(mgl64.Diag3(b.invInertia)).Mul3(r.Transpose())
}

func (b *Body) clearAccumulators() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}
