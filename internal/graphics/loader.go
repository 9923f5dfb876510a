package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Fallback checkerboard used when the wall texture cannot be loaded
const (
	fallbackTextureSize = 64
	fallbackCellSize    = 8
)

var (
	fallbackLight = color.RGBA{255, 255, 255, 255}
	fallbackDark  = color.RGBA{170, 170, 170, 255}
)

// TextureSet holds the surfaces the renderer samples. Floor and Sky may be
// nil, in which case the renderer synthesizes flat colors.
type TextureSet struct {
	Wall  Texture
	Floor Texture
	Sky   Texture
}

// TextureLoader owns decoded textures and hands them out by reference.
type TextureLoader struct {
	scale    float64
	textures map[string]*ImageTexture
}

// NewTextureLoader creates a loader that rescales wall and floor textures by
// scale (1 keeps the native size).
func NewTextureLoader(scale float64) *TextureLoader {
	if scale <= 0 {
		scale = 1
	}
	return &TextureLoader{
		scale:    scale,
		textures: make(map[string]*ImageTexture),
	}
}

// LoadTexture decodes an image file (png, jpeg, bmp or webp). Repeated calls
// for the same path return the cached texture.
func (tl *TextureLoader) LoadTexture(path string, scaled bool) (*ImageTexture, error) {
	key := path
	if scaled {
		key = fmt.Sprintf("%s@%g", path, tl.scale)
	}
	if tex, ok := tl.textures[key]; ok {
		return tex, nil
	}
	if path == "" {
		return nil, errors.New("no texture path configured")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	if scaled && tl.scale != 1 {
		img = ScaleImage(img, tl.scale)
	}

	tex := NewImageTexture(img)
	tl.textures[key] = tex
	return tex, nil
}

// LoadSet loads the wall, floor and sky textures. A missing wall texture is
// replaced by a checkerboard; a missing floor or sky texture is left nil.
// Failures are logged, never returned.
func (tl *TextureLoader) LoadSet(wallPath, floorPath, skyPath string) *TextureSet {
	set := &TextureSet{}

	if wall, err := tl.LoadTexture(wallPath, true); err == nil {
		set.Wall = wall
	} else {
		log.Printf("Warning: %v; using default checkerboard wall texture", err)
		set.Wall = NewCheckerboard(fallbackTextureSize, fallbackCellSize, fallbackLight, fallbackDark)
	}

	if floor, err := tl.LoadTexture(floorPath, true); err == nil {
		set.Floor = floor
	} else {
		log.Printf("Warning: %v; floor will be flat shaded", err)
	}

	if sky, err := tl.LoadTexture(skyPath, false); err == nil {
		set.Sky = sky
	} else {
		log.Printf("Warning: %v; sky will be a flat color", err)
	}

	return set
}

// ScaleImage resamples img by factor with bilinear filtering. The result is
// at least 1x1.
func ScaleImage(img image.Image, factor float64) *image.RGBA {
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
