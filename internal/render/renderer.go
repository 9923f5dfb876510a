// Package render turns a tile grid and a player pose into a full-screen
// first-person frame: sky band, textured walls and a projected floor.
package render

import (
	"image"
	"image/color"

	"gridcaster/internal/graphics"
	"gridcaster/internal/raycast"
	"gridcaster/internal/threading/monitoring"
	"gridcaster/internal/threading/rendering"
	"gridcaster/internal/world"
)

// TileGrid is what the renderer reads from a level. It must not be mutated
// while Render runs.
type TileGrid interface {
	raycast.Grid
	TileAt(x, y int) world.TileKind
}

// Options are the fixed look of the renderer.
type Options struct {
	ViewDistance  float64
	BrightnessMin float64
	SkyColor      color.RGBA
	WallColor     color.RGBA
	FloorColor    color.RGBA
	// FloorColors overrides the floor for special tiles.
	FloorColors map[world.TileKind]color.RGBA
}

// Renderer owns the per-column offset cache and the frame buffer it draws
// into. Render must not be called concurrently on the same Renderer.
type Renderer struct {
	textures graphics.TextureSet
	opts     Options

	table    raycast.OffsetTable
	frame    *image.RGBA
	hits     []raycast.RayResult
	parallel *rendering.ParallelRenderer
	monitor  *monitoring.PerformanceMonitor
}

// NewRenderer creates a renderer. parallel may be nil for single-threaded
// rendering; the output is identical either way.
func NewRenderer(textures graphics.TextureSet, opts Options, parallel *rendering.ParallelRenderer) *Renderer {
	if opts.FloorColors == nil {
		opts.FloorColors = map[world.TileKind]color.RGBA{}
	}
	return &Renderer{
		textures: textures,
		opts:     opts,
		parallel: parallel,
	}
}

// SetMonitor attaches a performance monitor that times each ray casting pass.
func (r *Renderer) SetMonitor(m *monitoring.PerformanceMonitor) {
	r.monitor = m
}

// OffsetRebuilds reports how often the per-column offset table was rebuilt.
func (r *Renderer) OffsetRebuilds() int {
	return r.table.Rebuilds()
}

// LastHits returns the ray results of the previous frame, one per sampled
// column. The slice is reused by the next Render call.
func (r *Renderer) LastHits() []raycast.RayResult {
	return r.hits
}

// Render draws one frame. The returned image is owned by the renderer and is
// overwritten by the next call. Invalid settings fail before any pixel is
// touched.
func (r *Renderer) Render(grid TileGrid, pose raycast.Pose, s Settings) (*image.RGBA, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if r.frame == nil || r.frame.Rect.Dx() != s.Width || r.frame.Rect.Dy() != s.Height {
		r.frame = image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	}

	columns := r.table.Columns(s.FOV, s.Stride, s.Width)
	if cap(r.hits) < len(columns) {
		r.hits = make([]raycast.RayResult, len(columns))
	}
	r.hits = r.hits[:len(columns)]

	var timer *monitoring.RaycastTimer
	if r.monitor != nil {
		timer = r.monitor.StartRaycast()
	}

	draw := func(i int) {
		r.drawColumn(grid, pose, columns[i], i, s.Height)
	}
	if r.parallel != nil {
		r.parallel.RenderColumns(len(columns), draw)
	} else {
		for i := range columns {
			draw(i)
		}
	}

	if timer != nil {
		timer.EndRaycast(len(columns))
	}
	return r.frame, nil
}

// drawColumn casts one ray and writes every row of its pixel columns: sky
// above the strip, the wall strip, then floor to the bottom of the screen.
func (r *Renderer) drawColumn(grid TileGrid, pose raycast.Pose, col raycast.Column, index, screenHeight int) {
	hit := raycast.CastColumn(grid, pose, col.Offset)
	r.hits[index] = hit

	x1 := col.X + col.Width
	span := wallExtent(hit.Distance, screenHeight)

	r.drawSky(r.frame, col.X, x1, span.Top, max(1, screenHeight/2), pose.Angle)
	r.drawWall(r.frame, col.X, x1, hit, span)
	r.drawFloor(r.frame, grid, pose, col, x1, span.Bottom, screenHeight)
}
