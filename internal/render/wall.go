package render

import (
	"image"

	"gridcaster/internal/graphics"
	"gridcaster/internal/raycast"
)

// maxStripHeight keeps the strip arithmetic finite when the distance sits at
// raycast.MinDistance.
const maxStripHeight = 1 << 24

// wallSpan is the vertical extent of one wall strip. Start may be negative
// and the strip may extend past the screen; Top and Bottom are clamped.
type wallSpan struct {
	Start  float64
	Height float64
	Top    int
	Bottom int
}

func wallExtent(distance float64, screenHeight int) wallSpan {
	h := float64(screenHeight) / distance
	if h > maxStripHeight {
		h = maxStripHeight
	}
	lineH := int(h)
	top := (screenHeight - lineH) / 2
	bottom := (screenHeight + lineH) / 2
	if top < 0 {
		top = 0
	}
	if bottom > screenHeight {
		bottom = screenHeight
	}
	return wallSpan{
		Start:  (float64(screenHeight) - h) / 2,
		Height: h,
		Top:    top,
		Bottom: bottom,
	}
}

// drawWall fills the strip rows of pixel columns [x0, x1).
func (r *Renderer) drawWall(img *image.RGBA, x0, x1 int, hit raycast.RayResult, span wallSpan) {
	brightness := Brightness(hit.Distance, r.opts.ViewDistance, r.opts.BrightnessMin)

	tex := r.textures.Wall
	if tex == nil {
		c := shade(r.opts.WallColor, brightness)
		for y := span.Top; y < span.Bottom; y++ {
			fillRow(img, x0, x1, y, c)
		}
		return
	}

	for y := span.Top; y < span.Bottom; y++ {
		v := (float64(y) + 0.5 - span.Start) / span.Height
		c := graphics.SampleUV(tex, hit.WallU, v)
		c.A = 255
		fillRow(img, x0, x1, y, shade(c, brightness))
	}
}
