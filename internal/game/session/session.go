// Package session assembles a playable world from a config and steps it.
package session

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/winter-sled/internal/config"
	"github.com/Faultbox/winter-sled/internal/engine/camera"
	"github.com/Faultbox/winter-sled/internal/engine/lighting"
	"github.com/Faultbox/winter-sled/internal/engine/physics"
	"github.com/Faultbox/winter-sled/internal/engine/terrain"
	"github.com/Faultbox/winter-sled/internal/game/catalog"
	"github.com/Faultbox/winter-sled/internal/game/placement"
	"github.com/Faultbox/winter-sled/internal/game/quest"
	"github.com/Faultbox/winter-sled/internal/game/sled"
	"github.com/Faultbox/winter-sled/internal/logger"
	"github.com/Faultbox/winter-sled/pkg/rng"
)

// Session owns one world: terrain, sled, gift boxes and quest progress.
// It is not safe for concurrent use.
type Session struct {
	cfg *config.Config
	log *zap.Logger

	seed     rng.Seed
	field    *terrain.HeightField
	mesh     *terrain.Mesh
	collider *terrain.Collider

	world      *physics.World
	body       *physics.Body
	controller *sled.Controller
	camera     *camera.FirstPersonCamera

	catalog *catalog.Catalog
	markers []placement.Marker
	tracker *quest.Tracker

	tick    int
	elapsed float64
	lastPos mgl64.Vec3
	trail   []mgl64.Vec3
}

// New builds a world. A nil catalog is loaded from cfg.Data.CatalogPath or
// the built-in listings. Quest progress is restored from
// cfg.Data.QuestSavePath when that file exists.
func New(cfg *config.Config, cat *catalog.Catalog, log *zap.Logger) (*Session, error) {
	log = logger.OrNop(log)
	if cfg == nil {
		cfg = config.Default()
	}

	seed, err := rng.ParseSeed(cfg.Session.Seed)
	if err != nil {
		return nil, fmt.Errorf("session seed: %w", err)
	}

	if cat == nil {
		if cat, err = LoadCatalog(cfg.Data.CatalogPath); err != nil {
			return nil, err
		}
	}
	cat = cat.Limit(cfg.Session.MarkerLimit)

	s := &Session{
		cfg:     cfg,
		log:     log,
		seed:    seed,
		catalog: cat,
	}

	if s.field, err = terrain.BuildHeightField(cfg.Terrain.Params(), seed); err != nil {
		return nil, fmt.Errorf("building terrain: %w", err)
	}
	sun := lighting.NewSun(cfg.Terrain.SunLongitude, cfg.Terrain.SunLatitude)
	if s.mesh, err = terrain.BuildMesh(s.field, cfg.Terrain.Palette, sun); err != nil {
		return nil, fmt.Errorf("building terrain mesh: %w", err)
	}
	s.collider = terrain.BuildCollider(s.field)

	sampler := s.field.Sampler()
	spawn := mgl64.Vec3{cfg.Sled.SpawnX, cfg.Sled.SpawnY, cfg.Sled.SpawnZ}

	s.world = physics.NewWorld(s.collider, logger.Named("physics"))
	s.body = s.world.AddBox(BoxConfig(cfg.Sled, spawn))
	params := ControllerParams(cfg.Sled)
	s.controller = sled.NewController(params, logger.Named("sled"))
	s.controller.Attach(s.body, sampler)
	s.lastPos = s.controller.Spawn(spawn)

	if s.markers, err = placement.Place(cat, seed, sampler, s.field.Size()); err != nil {
		return nil, fmt.Errorf("placing markers: %w", err)
	}

	s.tracker = quest.NewTracker(logger.Named("quest"))
	if path := cfg.Data.QuestSavePath; path != "" {
		if err := s.tracker.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("restoring quests: %w", err)
		}
	}

	s.camera = camera.NewFirstPersonCamera()
	s.camera.MinPitch = params.MinPitch
	s.camera.MaxPitch = params.MaxPitch
	s.camera.Follow(s.lastPos, s.controller.Yaw(), s.controller.Pitch(), 0, sampler)

	lo, hi := s.field.MinMax()
	log.Info("session ready",
		zap.String("seed", seed.String()),
		zap.Int("segments", s.field.Segments()),
		zap.Float64("min_height", lo),
		zap.Float64("max_height", hi),
		zap.Int("triangles", s.mesh.TriangleCount()),
		zap.Int("markers", len(s.markers)),
		zap.Int("unplaced", len(s.markers)-placement.Placed(s.markers)),
		zap.Float64s("spawn", s.lastPos[:]))
	return s, nil
}

// LoadCatalog reads the catalog at path, or the built-in one when path is empty.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// BoxConfig converts sled settings into a physics body at pos.
func BoxConfig(c config.SledConfig, pos mgl64.Vec3) physics.BoxConfig {
	return physics.BoxConfig{
		Mass:           c.Mass,
		HalfExtents:    mgl64.Vec3(c.HalfExtents),
		Position:       pos,
		LinearDamping:  c.LinearDamping,
		AngularDamping: c.BodyAngularDamping,
		Friction:       c.Friction,
	}
}

// ControllerParams converts sled settings into controller tuning.
func ControllerParams(c config.SledConfig) sled.Params {
	p := sled.DefaultParams()
	p.Acceleration = c.Acceleration
	p.BoostFactor = c.BoostFactor
	p.BackwardFactor = c.BackwardFactor
	p.BrakeStrength = c.BrakeStrength
	p.DownhillAssist = c.DownhillAssist
	p.DownhillSlope = c.DownhillSlope
	p.GroundProbe = c.GroundProbe
	p.TurnRate = c.TurnRate
	p.TurnStrength = c.TurnStrength
	p.YawDamping = c.YawDamping
	p.MaxSpeed = c.MaxSpeed
	p.SpeedClampGain = c.SpeedClampGain
	p.DriftCancel = c.DriftCancel
	p.Drag = c.Drag
	p.LateralGrip = c.LateralGrip
	p.AngularDamping = c.AngularDamping
	p.HalfHeight = c.HalfExtents[1]
	p.Clearance = c.Clearance
	p.RespawnThreshold = c.RespawnThreshold
	return p
}

// Seed returns the parsed session seed.
func (s *Session) Seed() rng.Seed { return s.seed }

// HeightField returns the terrain heights.
func (s *Session) HeightField() *terrain.HeightField { return s.field }

// Mesh returns the coloured terrain mesh.
func (s *Session) Mesh() *terrain.Mesh { return s.mesh }

// Body returns the sled's physics body.
func (s *Session) Body() *physics.Body { return s.body }

// Controller returns the sled controller.
func (s *Session) Controller() *sled.Controller { return s.controller }

// Camera returns the first-person camera.
func (s *Session) Camera() *camera.FirstPersonCamera { return s.camera }

// Catalog returns the listings placed in this session.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Markers returns the gift boxes.
func (s *Session) Markers() []placement.Marker { return s.markers }

// Tracker returns the quest tracker.
func (s *Session) Tracker() *quest.Tracker { return s.tracker }

// Tick returns the number of completed steps.
func (s *Session) Tick() int { return s.tick }

// Elapsed returns simulated seconds.
func (s *Session) Elapsed() float64 { return s.elapsed }

// AddPitch tilts the view.
func (s *Session) AddPitch(delta float64) { s.controller.AddPitch(delta) }

// Respawn returns the sled to the configured spawn point.
func (s *Session) Respawn() {
	spawn := mgl64.Vec3{s.cfg.Sled.SpawnX, s.cfg.Sled.SpawnY, s.cfg.Sled.SpawnZ}
	s.lastPos = s.controller.Spawn(spawn)
	s.log.Info("sled reset to spawn", zap.Float64s("position", s.lastPos[:]))
}

// Save writes quest progress when a save path is configured.
func (s *Session) Save() error {
	path := s.cfg.Data.QuestSavePath
	if path == "" {
		return nil
	}
	if err := s.tracker.Save(path); err != nil {
		return fmt.Errorf("saving quests: %w", err)
	}
	s.log.Info("quest progress saved", zap.String("path", path))
	return nil
}
