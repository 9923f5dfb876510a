package render

import (
	"image"
	"image/color"
)

// Brightness falls off linearly with distance and never drops below
// minimum. Distance zero is full brightness.
func Brightness(distance, viewDistance, minimum float64) float64 {
	if viewDistance <= 0 {
		return 1
	}
	b := 1 - distance/viewDistance
	if b < minimum {
		b = minimum
	}
	if b > 1 {
		b = 1
	}
	return b
}

func shade(c color.RGBA, brightness float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * brightness),
		G: uint8(float64(c.G) * brightness),
		B: uint8(float64(c.B) * brightness),
		A: c.A,
	}
}

func gray(v int) color.RGBA {
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return color.RGBA{uint8(v), uint8(v), uint8(v), 255}
}

// fillRow writes c into pixels [x0, x1) of row y.
func fillRow(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}
