package sled

import "github.com/go-gl/mathgl/mgl64"

// Body is the rigid body the controller drives. The physics engine owns its
// position, velocity and rotation; the controller only nudges them.
//
// ApplyImpulse changes velocity immediately. ApplyForce and ApplyTorque
// accumulate until the next physics step.
type Body interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AngularVelocity() mgl64.Vec3
	SetAngularVelocity(w mgl64.Vec3)
	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
	Mass() float64

	ApplyImpulse(j mgl64.Vec3)
	ApplyForce(f mgl64.Vec3)
	ApplyTorque(t mgl64.Vec3)

	// CastRayDown returns the distance from the body center to the ground
	// straight below, if within maxDist.
	CastRayDown(maxDist float64) (float64, bool)
}
