package render

import (
	"image"
	"image/color"
	"math"

	"gridcaster/internal/graphics"
	"gridcaster/internal/raycast"
)

// horizonEpsilon bounds the projection denominator at the horizon row, where
// 2y-H reaches zero (or -1 for odd heights).
const horizonEpsilon = 0.5

// gradientScale shapes the out-of-grid floor: black at the horizon brightening
// toward the bottom of the screen.
const gradientScale = 205

// drawFloor projects rows [top, H) of pixel columns [x0, x1) onto the floor
// plane along the column's ray.
func (r *Renderer) drawFloor(img *image.RGBA, grid TileGrid, pose raycast.Pose, col raycast.Column, x1, top, screenHeight int) {
	angle := pose.Angle + col.Offset
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	skyHeight := max(1, screenHeight/2)
	h := float64(screenHeight)

	for y := top; y < screenHeight; y++ {
		denom := 2*float64(y) - h
		if denom < horizonEpsilon {
			denom = horizonEpsilon
		}
		// Perpendicular floor distance, stretched back to ray length so the
		// floor meets the corrected walls.
		floorDist := h / denom / col.Cos
		wx := pose.X + dirX*floorDist
		wy := pose.Y + dirY*floorDist
		fillRow(img, col.X, x1, y, r.floorColor(grid, wx, wy, y, skyHeight))
	}
}

func (r *Renderer) floorColor(grid TileGrid, wx, wy float64, y, skyHeight int) color.RGBA {
	cx, cy := math.Floor(wx), math.Floor(wy)
	tx, ty := int(cx), int(cy)
	if cx < 0 || cy < 0 || tx >= grid.Width() || ty >= grid.Height() {
		return gray(int(1 + gradientScale*float64(y-skyHeight)/float64(skyHeight)))
	}

	kind := grid.TileAt(tx, ty)
	if c, ok := r.opts.FloorColors[kind]; ok {
		return c
	}
	if r.textures.Floor == nil {
		return r.opts.FloorColor
	}
	c := graphics.SampleUV(r.textures.Floor, wx-cx, wy-cy)
	c.A = 255
	return c
}
