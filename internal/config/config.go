// Package config handles game configuration loading and management.
package config

import "time"

// Config holds all game settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Sled      SledConfig      `yaml:"sled"`
	Session   SessionConfig   `yaml:"session"`
	Data      DataConfig      `yaml:"data"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds the interactive client's window and loop settings.
type WindowConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Fullscreen       bool    `yaml:"fullscreen"`
	TickRate         int     `yaml:"tick_rate"`         // Simulation ticks per second
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // Radians of pitch per pixel
}

// TerrainConfig holds heightfield build parameters.
type TerrainConfig struct {
	Size         float64  `yaml:"size"`      // World units per side
	Segments     int      `yaml:"segments"`  // Grid segments per side
	Amplitude    float64  `yaml:"amplitude"` // Vertical scale
	Palette      []string `yaml:"palette"`   // Hex color stops, low to high
	SunLongitude float64  `yaml:"sun_longitude"`
	SunLatitude  float64  `yaml:"sun_latitude"`
}

// SledConfig holds the sled body and controller tuning.
type SledConfig struct {
	// Body
	Mass               float64    `yaml:"mass"`
	HalfExtents        [3]float64 `yaml:"half_extents"`
	LinearDamping      float64    `yaml:"linear_damping"`
	BodyAngularDamping float64    `yaml:"body_angular_damping"`
	Friction           float64    `yaml:"friction"`

	// Controller
	Acceleration   float64 `yaml:"acceleration"`
	BoostFactor    float64 `yaml:"boost_factor"`
	BackwardFactor float64 `yaml:"backward_factor"`
	BrakeStrength  float64 `yaml:"brake_strength"`
	DownhillAssist float64 `yaml:"downhill_assist"`
	DownhillSlope  float64 `yaml:"downhill_slope"` // Minimum downward tilt of forward
	GroundProbe    float64 `yaml:"ground_probe"`   // Ray length counted as on the ground
	TurnRate       float64 `yaml:"turn_rate"`      // Radians per second
	TurnStrength   float64 `yaml:"turn_strength"`
	YawDamping     float64 `yaml:"yaw_damping"`
	MaxSpeed       float64 `yaml:"max_speed"`
	SpeedClampGain float64 `yaml:"speed_clamp_gain"`
	DriftCancel    float64 `yaml:"drift_cancel"`
	Drag           float64 `yaml:"drag"`
	LateralGrip    float64 `yaml:"lateral_grip"`
	AngularDamping float64 `yaml:"angular_damping"`
	Clearance      float64 `yaml:"clearance"`

	// Spawn
	SpawnX           float64 `yaml:"spawn_x"`
	SpawnY           float64 `yaml:"spawn_y"`
	SpawnZ           float64 `yaml:"spawn_z"`
	RespawnThreshold float64 `yaml:"respawn_threshold"`
}

// SessionConfig holds per-session settings.
type SessionConfig struct {
	Seed           string  `yaml:"seed"`            // Empty picks a fresh UUID
	MarkerLimit    int     `yaml:"marker_limit"`    // 0 places every catalog entry
	DiscoveryReach float64 `yaml:"discovery_reach"` // Extra margin around gift boxes
}

// DataConfig holds data file paths.
type DataConfig struct {
	CatalogPath   string `yaml:"catalog_path"`    // dApp CSV; empty uses the built-in catalog
	QuestSavePath string `yaml:"quest_save_path"` // Empty disables persistence
}

// HeadlessConfig holds settings for scripted runs.
type HeadlessConfig struct {
	ScriptPath string        `yaml:"script_path"`
	Ticks      int           `yaml:"ticks"`
	TickRate   int           `yaml:"tick_rate"`
	Timeout    time.Duration `yaml:"timeout"`
}

// TelemetryConfig holds trace output settings.
type TelemetryConfig struct {
	OutputDir   string `yaml:"output_dir"`   // Empty disables output
	SampleEvery int    `yaml:"sample_every"` // Record every Nth tick
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			TickRate:         60,
			MouseSensitivity: 0.003,
		},
		Terrain: TerrainConfig{
			Size:         420,
			Segments:     180,
			Amplitude:    16,
			Palette:      []string{"#dce9f5", "#eff6ff", "#f8fafc", "#f1f5f9"},
			SunLongitude: 45,
			SunLatitude:  50,
		},
		Sled: SledConfig{
			Mass:               4.5,
			HalfExtents:        [3]float64{0.55, 0.25, 1.1},
			LinearDamping:      0.12,
			BodyAngularDamping: 0.8,
			Friction:           0.05,

			Acceleration:   40,
			BoostFactor:    1.8,
			BackwardFactor: 0.5,
			BrakeStrength:  24,
			DownhillAssist: 18,
			DownhillSlope:  0.05,
			GroundProbe:    0.6,
			TurnRate:       1.8,
			TurnStrength:   18,
			YawDamping:     6,
			MaxSpeed:       28,
			SpeedClampGain: 0.6,
			DriftCancel:    0.8,
			Drag:           0.995,
			LateralGrip:    0.12,
			AngularDamping: 0.6,
			Clearance:      0.05,

			SpawnX:           0,
			SpawnY:           8,
			SpawnZ:           0,
			RespawnThreshold: 60,
		},
		Session: SessionConfig{
			Seed:           "",
			MarkerLimit:    0,
			DiscoveryReach: 0.2,
		},
		Data: DataConfig{
			CatalogPath:   "",
			QuestSavePath: "",
		},
		Headless: HeadlessConfig{
			ScriptPath: "",
			Ticks:      1800,
			TickRate:   60,
			Timeout:    30 * time.Second,
		},
		Telemetry: TelemetryConfig{
			OutputDir:   "",
			SampleEvery: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
