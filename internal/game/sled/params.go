package sled

import "github.com/Faultbox/winter-sled/pkg/math"

// Params tunes the controller. Impulse magnitudes for thrust, braking and
// downhill assist are momentum per second; the corrective terms (drift,
// speed clamp, drag, grip) are fractions of the current velocity.
type Params struct {
	Acceleration   float64 // Forward thrust
	BoostFactor    float64 // Thrust multiplier while boosting
	BackwardFactor float64 // Reverse thrust relative to Acceleration
	BrakeStrength  float64

	DownhillAssist float64
	DownhillSlope  float64 // Body forward must point at least this far below horizontal
	GroundProbe    float64 // Ray length from the body center that counts as grounded

	TurnRate       float64 // Heading change per second while steering
	TurnStrength   float64 // Steering torque before the speed bonus
	AlignStrength  float64 // Torque gain pulling the body towards the tracked heading
	AlignLimit     float64 // Cap on the alignment torque
	YawDamping     float64 // Rate at which the tracked heading follows the body

	MaxSpeed       float64
	SpeedClampGain float64
	DriftCancel    float64
	Drag           float64 // Horizontal velocity kept per tick
	LateralGrip    float64 // Share of sideways velocity removed per tick
	AngularDamping float64 // Share of yaw spin kept per tick

	HalfHeight       float64
	Clearance        float64
	RespawnThreshold float64

	DefaultPitch float64
	MinPitch     float64
	MaxPitch     float64
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		Acceleration:   40,
		BoostFactor:    1.8,
		BackwardFactor: 0.5,
		BrakeStrength:  24,

		DownhillAssist: 18,
		DownhillSlope:  0.05,
		GroundProbe:    0.6,

		TurnRate:      1.8,
		TurnStrength:  18,
		AlignStrength: 12,
		AlignLimit:    12,
		YawDamping:    6,

		MaxSpeed:       28,
		SpeedClampGain: 0.6,
		DriftCancel:    0.8,
		Drag:           0.995,
		LateralGrip:    0.12,
		AngularDamping: 0.6,

		HalfHeight:       0.25,
		Clearance:        0.05,
		RespawnThreshold: 60,

		DefaultPitch: math.DegToRad(-6),
		MinPitch:     math.DegToRad(-50),
		MaxPitch:     math.DegToRad(60),
	}
}
