package render

import (
	"image"
	"math"

	"gridcaster/internal/graphics"
)

// skyOffset is the horizontal texel shift for a heading: a full turn scrolls
// exactly one texture width.
func skyOffset(angle float64, texWidth int) int {
	w := float64(texWidth)
	off := math.Mod(angle/(2*math.Pi)*w, w)
	if off < 0 {
		off += w
	}
	return int(off)
}

// drawSky fills rows [0, bottom) of pixel columns [x0, x1) from the sky band.
// The band is skyHeight rows tall; the texture is stretched to it vertically
// and tiled horizontally.
func (r *Renderer) drawSky(img *image.RGBA, x0, x1, bottom, skyHeight int, angle float64) {
	sky := r.textures.Sky
	if sky == nil {
		for y := 0; y < bottom; y++ {
			fillRow(img, x0, x1, y, r.opts.SkyColor)
		}
		return
	}

	texW, texH := sky.Width(), sky.Height()
	offset := skyOffset(angle, texW)
	for y := 0; y < bottom; y++ {
		ty := y * texH / skyHeight
		i := y*img.Stride + x0*4
		for x := x0; x < x1; x++ {
			c := graphics.Sample(sky, (x+offset)%texW, ty)
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 255
			i += 4
		}
	}
}
