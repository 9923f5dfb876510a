package game

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	debugTextCharWidth  = 6
	debugTextCharHeight = 16
)

var (
	debugTextScratch  *ebiten.Image
	debugTextScratchW int
	debugTextScratchH int
)

func debugTextWidth(text string) int {
	return utf8.RuneCountInString(text) * debugTextCharWidth
}

// widestLine is the pixel width of the longest line.
func widestLine(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, debugTextWidth(line))
	}
	return w
}

func drawCenteredDebugText(screen *ebiten.Image, text string, x, y, w, h int) {
	if text == "" {
		return
	}
	textW := debugTextWidth(text)
	textH := debugTextCharHeight
	drawX := x + (w-textW)/2
	drawY := y + (h-textH)/2
	ebitenutil.DebugPrintAt(screen, text, drawX, drawY)
}

func ensureDebugTextScratch(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if debugTextScratch == nil || debugTextScratchW < width || debugTextScratchH < height {
		if debugTextScratchW < width {
			debugTextScratchW = width
		}
		if debugTextScratchH < height {
			debugTextScratchH = height
		}
		debugTextScratch = ebiten.NewImage(debugTextScratchW, debugTextScratchH)
	}
}

func drawDebugTextColored(screen *ebiten.Image, text string, x, y int, col color.Color) {
	if text == "" {
		return
	}
	w := debugTextWidth(text) + 2
	h := debugTextCharHeight
	ensureDebugTextScratch(w, h)
	debugTextScratch.Fill(color.RGBA{0, 0, 0, 0})

	// Offset by -1 so the rendered text aligns with DebugPrintAt's left edge.
	ebitenutil.DebugPrintAt(debugTextScratch, text, -1, 0)

	opts := &ebiten.DrawImageOptions{}
	r, g, b, a := col.RGBA()
	opts.ColorScale.Scale(float32(r)/65535, float32(g)/65535, float32(b)/65535, float32(a)/65535)
	opts.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(debugTextScratch, opts)
}

// drawFilledRect draws a filled rectangle
func drawFilledRect(dst *ebiten.Image, x, y, w, h int, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// drawRectBorder draws a rectangle border of given thickness and color
func drawRectBorder(dst *ebiten.Image, x, y, w, h, thickness int, clr color.Color) {
	// Top border
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y-thickness), float32(w+2*thickness), float32(thickness), clr, false)
	// Bottom border
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y+h), float32(w+2*thickness), float32(thickness), clr, false)
	// Left border
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y), float32(thickness), float32(h), clr, false)
	// Right border
	vector.DrawFilledRect(dst, float32(x+w), float32(y), float32(thickness), float32(h), clr, false)
}
