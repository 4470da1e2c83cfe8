// Package physics is a small rigid-body world for boxes sliding on a static
// terrain surface.
package physics

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/winter-sled/internal/engine/terrain"
	"github.com/Faultbox/winter-sled/pkg/math"
)

// DefaultGravity is the downward pull used by the sled world.
var DefaultGravity = mgl64.Vec3{0, -28, 0}

const (
	contactSlop = 0.02 // Gap still treated as touching
	tiltRate    = 12.0 // How fast a body's tilt settles onto the ground normal, per second
)

// World steps bodies against a static ground surface.
type World struct {
	Gravity mgl64.Vec3

	ground *terrain.Collider
	bodies []*Body
	log    *zap.Logger
}

// NewWorld creates a world. ground may be nil, in which case bodies fall freely.
func NewWorld(ground *terrain.Collider, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		Gravity: DefaultGravity,
		ground:  ground,
		log:     log,
	}
}

// AddBox creates a box body and adds it to the world.
func (w *World) AddBox(cfg BoxConfig) *Body {
	b := newBox(w, cfg)
	w.bodies = append(w.bodies, b)
	w.log.Debug("body added",
		zap.Float64("mass", cfg.Mass),
		zap.Float64s("half_extents", cfg.HalfExtents[:]),
		zap.Float64s("position", cfg.Position[:]))
	return b
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Step advances the world by dt seconds. Non-positive steps are ignored.
func (w *World) Step(dt float64) {
	if !(dt > 0) || gomath.IsInf(dt, 1) {
		return
	}
	for _, b := range w.bodies {
		w.integrate(b, dt)
		w.resolveGround(b, dt)
		b.clearAccumulators()
	}
}

// integrate applies accumulated forces, gravity and damping, then moves the body.
func (w *World) integrate(b *Body, dt float64) {
	accel := w.Gravity.Add(b.force.Mul(b.invMass))
	b.vel = b.vel.Add(accel.Mul(dt))
	b.angVel = b.angVel.Add(b.invInertiaWorld().Mul3x1(b.torque).Mul(dt))

	b.vel = b.vel.Mul(gomath.Pow(1-b.linearDamping, dt))
	b.angVel = b.angVel.Mul(gomath.Pow(1-b.angularDamping, dt))

	b.pos = b.pos.Add(b.vel.Mul(dt))

	// Positive spin about +Y turns counter-clockwise, which lowers the compass heading.
	b.heading = math.WrapAngle(b.heading - b.angVel[1]*dt)
	// Tilt is driven by the ground, not by spin.
	b.angVel[0], b.angVel[2] = 0, 0
}

// resolveGround pushes the body out of the ground and applies the contact
// response: restitution along the normal and Coulomb friction along the surface.
func (w *World) resolveGround(b *Body, dt float64) {
	b.grounded = false
	if w.ground == nil {
		return
	}

	ground, n, ok := w.ground.HeightAt(b.pos[0], b.pos[2])
	if !ok {
		return
	}

	bottom := b.pos[1] - b.halfExtents[1]
	if bottom > ground+contactSlop {
		return
	}

	b.grounded = true
	b.contactNormal = n
	if bottom < ground {
		b.pos[1] = ground + b.halfExtents[1]
	}

	if vn := b.vel.Dot(n); vn < 0 {
		jn := -(1 + w.ground.Restitution) * vn
		b.vel = b.vel.Add(n.Mul(jn))

		tangent := b.vel.Sub(n.Mul(b.vel.Dot(n)))
		if speed := tangent.Len(); speed > 0 {
			mu := w.ground.Friction * b.friction
			drop := gomath.Min(speed, mu*jn)
			b.vel = b.vel.Sub(tangent.Mul(drop / speed))
		}
	}

	target := math.TiltTo(n)
	b.tilt = mgl64.QuatSlerp(b.tilt, target, gomath.Min(1, tiltRate*dt)).Normalize()
}
