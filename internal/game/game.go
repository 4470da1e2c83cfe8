// Package game implements the interactive game loop.
package game

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/winter-sled/internal/config"
	"github.com/Faultbox/winter-sled/internal/engine/debug"
	"github.com/Faultbox/winter-sled/internal/engine/input"
	"github.com/Faultbox/winter-sled/internal/engine/window"
	"github.com/Faultbox/winter-sled/internal/game/catalog"
	"github.com/Faultbox/winter-sled/internal/game/session"
	"github.com/Faultbox/winter-sled/internal/game/sled"
	"github.com/Faultbox/winter-sled/internal/logger"
)

// maxFrame caps the time fed to the fixed-step loop after a stall.
const maxFrame = 0.25

var (
	skyColor   = colorful.Color{R: 0.05, G: 0.08, B: 0.16}
	sledColor  = colorful.Color{R: 0.94, G: 0.27, B: 0.27}
	foundColor = colorful.Color{R: 0.45, G: 0.5, B: 0.55}
)

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool
	window  *window.Window
	input   *input.Input
	session *session.Session
	step    float64
	mapView window.MapView
	tiles   []tile
}

// New creates the session and opens the window.
func New(cfg *config.Config, cat *catalog.Catalog) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("seed", cfg.Session.Seed),
	)

	s, err := session.New(cfg, cat, logger.Named("session"))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		log:     log,
		session: s,
		step:    1 / float64(cfg.Window.TickRate),
	}

	g.window, err = window.New(window.Config{
		Title:      s.HUD(),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      true, // Enable VSync by default
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	g.input = input.New(cfg.Window.MouseSensitivity)
	g.resize(cfg.Window.Width, cfg.Window.Height)

	log.Info("game initialized successfully")
	return g, nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	// Timing
	lastTime := time.Now()
	acc := 0.0
	titleTimer := time.Now()

	g.log.Info("starting game loop", zap.Float64("step", g.step))

	for g.running {
		now := time.Now()
		acc += min(now.Sub(lastTime).Seconds(), maxFrame)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			// Quit event received
			g.running = false
			break
		}

		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				g.resize(event.Width, event.Height)
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					g.running = false
				case sdl.SCANCODE_R:
					g.session.Respawn()
				case sdl.SCANCODE_F12:
					g.captureMap()
				case sdl.SCANCODE_P:
					c := g.session.Controller()
					c.SetEnabled(c.Mode() == sled.ModeDisabled)
					g.log.Info("controls toggled", zap.Stringer("mode", c.Mode()))
				}
			}
		}
		g.session.AddPitch(g.input.PitchDelta())

		// 2. Fixed-step simulation
		held := g.input.Snapshot()
		for acc >= g.step {
			f := g.session.Step(held, g.step)
			for _, d := range f.Discoveries {
				g.log.Info("gift collected", zap.String("id", d.ID), zap.Int("xp", d.XP))
			}
			for _, id := range f.Claimed {
				g.log.Info("quest complete", zap.String("quest", id))
			}
			acc -= g.step
		}

		// 3. Render
		g.render()

		if time.Since(titleTimer) >= 100*time.Millisecond {
			g.window.SetTitle(g.session.HUD())
			titleTimer = time.Now()
		}
	}

	return nil
}

// captureMap writes the session map to the telemetry directory, or to
// ./screenshots when none is configured.
func (g *Game) captureMap() {
	dir := g.cfg.Telemetry.OutputDir
	if dir == "" {
		dir = "screenshots"
	}
	name, err := debug.NewScreenshotCapture(dir, "map").CaptureFromImage(g.session.Map(4))
	if err != nil {
		g.log.Error("failed to capture map", zap.Error(err))
		return
	}
	g.log.Info("map captured", zap.String("path", name))
}

// Close saves progress and cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.session != nil {
		if err := g.session.Save(); err != nil {
			g.log.Error("failed to save progress", zap.Error(err))
		}
	}
	if g.window != nil {
		g.window.Close()
	}
}
