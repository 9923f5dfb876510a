// Package raycast marches rays through a tile grid with the DDA (digital
// differential analyzer) algorithm.
package raycast

// Grid is the subset of a tile map the caster needs. IsWall must report true
// for every coordinate outside [0,Width)x[0,Height).
type Grid interface {
	Width() int
	Height() int
	IsWall(x, y int) bool
}

// Pose is the player's continuous position in grid units and heading in
// radians. The heading is unbounded.
type Pose struct {
	X, Y  float64
	Angle float64
}

// Side identifies which family of grid lines a ray crossed last.
type Side int

const (
	// SideX means the ray crossed a vertical grid line (stepped along X).
	SideX Side = iota
	// SideY means the ray crossed a horizontal grid line (stepped along Y).
	SideY
)

// MinDistance floors the perpendicular distance so wall heights stay finite.
const MinDistance = 1e-4

// noCrossing stands in for 1/0 when a direction component is exactly zero.
const noCrossing = 1e30

// RayResult is the outcome of casting one ray.
type RayResult struct {
	MapX, MapY int     // Hit cell (may lie outside the grid)
	Side       Side    // Axis that was stepped into the hit cell
	Distance   float64 // Perpendicular distance along the view axis, >= MinDistance
	RayLength  float64 // Distance along the ray itself
	WallU      float64 // Position along the hit face, in [0,1)
	Steps      int     // Cells advanced before the hit
}
