package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.String("seed", "", "World seed (empty picks a fresh one)")
	flagSegments   = flag.Int("segments", 0, "Terrain grid segments per side")
	flagAmplitude  = flag.Float64("amplitude", 0, "Terrain height scale")
	flagCatalog    = flag.String("catalog", "", "Path to dApp catalog CSV")
	flagQuests     = flag.String("quests", "", "Path to quest progress file")
	flagScript     = flag.String("script", "", "Input script for headless runs")
	flagTicks      = flag.Int("ticks", 0, "Number of ticks for headless runs")
	flagOut        = flag.String("out", "", "Telemetry output directory")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != "" {
		cfg.Session.Seed = *flagSeed
	}
	if *flagSegments > 0 {
		cfg.Terrain.Segments = *flagSegments
	}
	if *flagAmplitude > 0 {
		cfg.Terrain.Amplitude = *flagAmplitude
	}
	if *flagCatalog != "" {
		cfg.Data.CatalogPath = *flagCatalog
	}
	if *flagQuests != "" {
		cfg.Data.QuestSavePath = *flagQuests
	}
	if *flagScript != "" {
		cfg.Headless.ScriptPath = *flagScript
	}
	if *flagTicks > 0 {
		cfg.Headless.Ticks = *flagTicks
	}
	if *flagOut != "" {
		cfg.Telemetry.OutputDir = *flagOut
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
