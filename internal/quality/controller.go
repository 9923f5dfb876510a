// Package quality trades horizontal sampling density for frame rate and
// eases the field of view toward a tile-driven target.
package quality

import (
	"log"
	"time"

	"gridcaster/internal/config"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// Controller is owned by the frame loop goroutine and is not safe for
// concurrent use.
type Controller struct {
	cfg config.QualityConfig

	stride  int
	fov     float64
	baseFOV float64

	frames      int
	windowStart time.Time
	lastFPS     float64
}

// NewController starts at the configured initial stride with the field of
// view already at its base value.
func NewController(cfg config.QualityConfig) *Controller {
	base := mathutil.ClampFloat(cfg.BaseFOV, cfg.MinFOV, cfg.MaxFOV)
	return &Controller{
		cfg:     cfg,
		stride:  mathutil.ClampInt(cfg.InitialStride, max(1, cfg.MinStride), max(1, cfg.MaxStride)),
		fov:     base,
		baseFOV: base,
	}
}

// Stride is the current sampling stride in pixels.
func (c *Controller) Stride() int { return c.stride }

// FOV is the current (smoothed) field of view in degrees.
func (c *Controller) FOV() float64 { return c.fov }

// MeasuredFPS is the rate computed at the end of the last full window.
func (c *Controller) MeasuredFPS() float64 { return c.lastFPS }

// TargetFOV is where the field of view is heading for the given tile.
func (c *Controller) TargetFOV(tile world.TileKind) float64 {
	target := c.baseFOV
	if tile == world.TileFovTrap {
		target = c.cfg.TrapFOV
	}
	return mathutil.ClampFloat(target, c.cfg.MinFOV, c.cfg.MaxFOV)
}

// Advance applies one measurement window: stride moves one step against the
// FPS band, then the field of view takes one smoothing step.
func (c *Controller) Advance(measuredFPS float64, tile world.TileKind) (int, float64) {
	c.adjustStride(measuredFPS)
	return c.stride, c.Smooth(tile)
}

// Smooth moves the field of view one step toward the tile's target and
// returns it. It never passes the target.
func (c *Controller) Smooth(tile world.TileKind) float64 {
	c.fov = mathutil.StepToward(c.fov, c.TargetFOV(tile), c.cfg.FOVStep)
	return c.fov
}

// Frame is called once per rendered frame. It counts frames, closes the
// measurement window when it elapses, and always smooths the field of view.
// A window counts the frames in (start, end]; the very first frame only
// opens it.
func (c *Controller) Frame(now time.Time, tile world.TileKind) (int, float64) {
	if c.windowStart.IsZero() {
		c.windowStart = now
		return c.stride, c.Smooth(tile)
	}
	c.frames++

	if elapsed := now.Sub(c.windowStart); elapsed >= c.cfg.Window {
		c.lastFPS = float64(c.frames) / elapsed.Seconds()
		c.adjustStride(c.lastFPS)
		c.frames = 0
		c.windowStart = now
	}
	return c.stride, c.Smooth(tile)
}

// SetBaseFOV changes the non-trap target, clamped to the configured range.
func (c *Controller) SetBaseFOV(fov float64) {
	c.baseFOV = mathutil.ClampFloat(fov, c.cfg.MinFOV, c.cfg.MaxFOV)
}

// BaseFOV is the field of view used away from trap tiles.
func (c *Controller) BaseFOV() float64 { return c.baseFOV }

// AdjustStride applies a manual stride change, e.g. from the options menu.
func (c *Controller) AdjustStride(delta int) int {
	c.setStride(c.stride+delta, "manual")
	return c.stride
}

func (c *Controller) adjustStride(fps float64) {
	switch {
	case fps < c.cfg.TargetFPSLow:
		c.setStride(c.stride+1, "low fps")
	case fps > c.cfg.TargetFPSHigh:
		c.setStride(c.stride-1, "high fps")
	}
}

func (c *Controller) setStride(stride int, reason string) {
	stride = mathutil.ClampInt(stride, max(1, c.cfg.MinStride), max(1, c.cfg.MaxStride))
	if stride == c.stride {
		return
	}
	log.Printf("[Quality] stride %d -> %d (%s, %.1f FPS)", c.stride, stride, reason, c.lastFPS)
	c.stride = stride
}
