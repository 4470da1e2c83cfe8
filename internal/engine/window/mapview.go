package window

import gomath "math"

// MapView projects the square terrain onto a square region of the window,
// seen from above with -Z at the top.
type MapView struct {
	// Terrain width in world units
	WorldSize float64
	// Top-left corner and edge length of the map in pixels
	X, Y, Side int32
}

// FitMap centres the largest square map that fits the window with margin.
func FitMap(worldSize float64, width, height, margin int) MapView {
	side := min(width, height) - 2*margin
	if side < 1 {
		side = 1
	}
	return MapView{
		WorldSize: worldSize,
		X:         int32((width - side) / 2),
		Y:         int32((height - side) / 2),
		Side:      int32(side),
	}
}

// Project converts a world XZ position to window pixels. ok is false for
// points outside the terrain square.
func (m MapView) Project(x, z float64) (px, py int32, ok bool) {
	if !(m.WorldSize > 0) || m.Side <= 0 {
		return 0, 0, false
	}
	half := m.WorldSize / 2
	u := (x + half) / m.WorldSize
	v := (z + half) / m.WorldSize
	if !(u >= 0 && u <= 1 && v >= 0 && v <= 1) {
		return 0, 0, false
	}
	side := float64(m.Side - 1)
	return m.X + int32(gomath.Round(u*side)), m.Y + int32(gomath.Round(v*side)), true
}
