package game

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/winter-sled/internal/engine/terrain"
	"github.com/Faultbox/winter-sled/internal/engine/window"
)

// mapCells is the number of terrain tiles per side on the map.
const mapCells = 64

type tile struct {
	x, z  float64 // world position of the tile's north-west corner
	color colorful.Color
}

// buildTiles downsamples the terrain mesh colours onto a mapCells grid.
func buildTiles(mesh *terrain.Mesh, hf *terrain.HeightField) []tile {
	s := hf.Segments()
	cells := min(mapCells, s)
	stride := s + 1
	tiles := make([]tile, 0, cells*cells)
	for j := range cells {
		for i := range cells {
			gi, gj := i*s/cells, j*s/cells
			x, z := hf.GridPosition(gi, gj)
			c := mesh.Vertices[gj*stride+gi].Color
			tiles = append(tiles, tile{
				x:     x,
				z:     z,
				color: colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])},
			})
		}
	}
	return tiles
}

func (g *Game) resize(width, height int) {
	hf := g.session.HeightField()
	g.mapView = window.FitMap(hf.Size(), width, height, 24)
	if g.tiles == nil {
		g.tiles = buildTiles(g.session.Mesh(), hf)
	}
}

// render draws the top-down map: terrain, gift boxes, then the sled.
func (g *Game) render() {
	w := g.window
	w.Clear(skyColor)

	hf := g.session.HeightField()
	cells := min(mapCells, hf.Segments())
	side := max(g.mapView.Side/int32(cells), 1) + 1
	for _, t := range g.tiles {
		if px, py, ok := g.mapView.Project(t.x, t.z); ok {
			w.FillRect(px, py, side, side, t.color)
		}
	}

	tracker := g.session.Tracker()
	for _, m := range g.session.Markers() {
		px, py, ok := g.mapView.Project(m.Position.X(), m.Position.Z())
		if !ok {
			continue
		}
		c := m.Tint
		if tracker.Discovered(m.ID()) {
			c = foundColor
		}
		w.FillRect(px-3, py-3, 6, 6, c)
	}

	pos := g.session.Body().Position()
	if px, py, ok := g.mapView.Project(pos.X(), pos.Z()); ok {
		w.FillRect(px-4, py-4, 8, 8, sledColor)
	}

	w.Present()
}
