package session

import (
	"math"

	"gridcaster/internal/raycast"
)

const (
	minimapFanDegrees = 60
	// dotsPerTile quantizes lidar dots so repeated sweeps over the same wall
	// do not pile up.
	dotsPerTile = 10
)

// MinimapRay is one line of the minimap fan, in grid units.
type MinimapRay struct {
	FromX, FromY float64
	ToX, ToY     float64
}

// Minimap sweeps a fan of rays around the heading each frame and remembers
// every distinct wall point it has touched.
type Minimap struct {
	rays []MinimapRay
	seen map[[2]int]struct{}
	dots [][2]float64
}

// NewMinimap creates an empty minimap.
func NewMinimap() *Minimap {
	return &Minimap{seen: make(map[[2]int]struct{})}
}

// Sweep casts one ray per degree across the fan and records the end points.
// The returned slice is reused by the next sweep.
func (m *Minimap) Sweep(grid raycast.Grid, pose raycast.Pose) []MinimapRay {
	m.rays = m.rays[:0]
	half := minimapFanDegrees / 2
	for deg := -half; deg <= half; deg++ {
		angle := pose.Angle + float64(deg)*math.Pi/180
		dx, dy := math.Cos(angle), math.Sin(angle)
		hit := raycast.CastDirection(grid, pose, dx, dy, 1)

		ex := pose.X + dx*hit.RayLength
		ey := pose.Y + dy*hit.RayLength
		m.rays = append(m.rays, MinimapRay{FromX: pose.X, FromY: pose.Y, ToX: ex, ToY: ey})

		key := [2]int{int(math.Round(ex * dotsPerTile)), int(math.Round(ey * dotsPerTile))}
		if _, ok := m.seen[key]; !ok {
			m.seen[key] = struct{}{}
			m.dots = append(m.dots, [2]float64{ex, ey})
		}
	}
	return m.rays
}

// Rays returns the fan from the last sweep.
func (m *Minimap) Rays() []MinimapRay { return m.rays }

// Dots returns every distinct wall point seen so far.
func (m *Minimap) Dots() [][2]float64 { return m.dots }

// DotCount is the number of distinct wall points seen so far.
func (m *Minimap) DotCount() int { return len(m.dots) }

// Reset forgets all recorded dots.
func (m *Minimap) Reset() {
	m.rays = m.rays[:0]
	m.dots = m.dots[:0]
	clear(m.seen)
}
