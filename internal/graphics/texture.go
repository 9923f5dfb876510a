package graphics

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Texture is a read-only 2D pixel surface.
type Texture interface {
	Width() int
	Height() int
	// At returns the texel at integer coordinates already inside the bounds.
	At(x, y int) color.RGBA
}

// Sample returns the texel at (x, y) after clamping both coordinates into
// [0,width)x[0,height). It never indexes outside the texture.
func Sample(tex Texture, x, y int) color.RGBA {
	w, h := tex.Width(), tex.Height()
	if x < 0 {
		x = 0
	} else if x >= w {
		x = w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= h {
		y = h - 1
	}
	return tex.At(x, y)
}

// SampleUV maps normalized (u, v) into texel space and samples with clamping.
// Values outside [0,1), infinities included, land on the nearest edge texel.
// NaN samples texel 0.
func SampleUV(tex Texture, u, v float64) color.RGBA {
	return Sample(tex, texelIndex(u, tex.Width()), texelIndex(v, tex.Height()))
}

// texelIndex clamps in float space so huge values cannot overflow the int
// conversion.
func texelIndex(t float64, size int) int {
	if !(t > 0) {
		return 0
	}
	if t >= 1 {
		return size - 1
	}
	return int(t * float64(size))
}

// ImageTexture is a Texture backed by an RGBA copy of a decoded image.
type ImageTexture struct {
	img *image.RGBA
}

// NewImageTexture copies src into RGBA storage with its origin at (0, 0).
func NewImageTexture(src image.Image) *ImageTexture {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return &ImageTexture{img: rgba}
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return &ImageTexture{img: rgba}
}

func (t *ImageTexture) Width() int  { return t.img.Rect.Dx() }
func (t *ImageTexture) Height() int { return t.img.Rect.Dy() }

func (t *ImageTexture) At(x, y int) color.RGBA {
	i := y*t.img.Stride + x*4
	p := t.img.Pix[i : i+4 : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

// Image exposes the underlying RGBA image for presentation layers.
func (t *ImageTexture) Image() *image.RGBA {
	return t.img
}

// NewCheckerboard builds the fallback wall texture: size x size pixels with
// cell x cell squares alternating between the two colors.
func NewCheckerboard(size, cell int, a, b color.RGBA) *ImageTexture {
	if size < 1 {
		size = 1
	}
	if cell < 1 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell)%2 == (y/cell)%2 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return &ImageTexture{img: img}
}
