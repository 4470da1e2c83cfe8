// Package telemetry records per-tick sled traces and run summaries.
package telemetry

// TickRecord is one row of trace.csv.
type TickRecord struct {
	Tick          int     `csv:"tick"`
	Time          float64 `csv:"time"`
	X             float64 `csv:"x"`
	Y             float64 `csv:"y"`
	Z             float64 `csv:"z"`
	Speed         float64 `csv:"speed"`
	Yaw           float64 `csv:"yaw"`
	Pitch         float64 `csv:"pitch"`
	OnGround      bool    `csv:"on_ground"`
	GroundClamped bool    `csv:"ground_clamped"`
	SpeedLimited  bool    `csv:"speed_limited"`
	Respawned     bool    `csv:"respawned"`
	Healed        int     `csv:"healed"`
	Discovered    int     `csv:"discovered"` // Total listings found so far
	XP            int     `csv:"xp"`
	Level         int     `csv:"level"`
}

// Summary aggregates a whole run.
type Summary struct {
	Seed        string  `yaml:"seed"`
	Ticks       int     `yaml:"ticks"`
	Duration    float64 `yaml:"duration_seconds"`
	MeanSpeed   float64 `yaml:"mean_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	SpeedStdDev float64 `yaml:"speed_stddev"`
	Distance    float64 `yaml:"distance"`
	Airborne    float64 `yaml:"airborne_fraction"`
	Respawns    int     `yaml:"respawns"`
	Healed      int     `yaml:"healed"`
	Discoveries int     `yaml:"discoveries"`
	XP          int     `yaml:"xp"`
	Level       int     `yaml:"level"`
}
