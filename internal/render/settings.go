package render

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is returned by Render before any pixel is written when
// the caller passes settings it cannot draw with.
var ErrInvalidSettings = errors.New("invalid render settings")

// Settings are the per-frame render parameters.
type Settings struct {
	FOV    float64 // degrees
	Stride int     // pixels between cast rays
	Width  int
	Height int
}

// Validate reports a caller contract violation. Settings are never clamped.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidSettings, s.Width, s.Height)
	}
	if s.Stride < 1 {
		return fmt.Errorf("%w: stride %d < 1", ErrInvalidSettings, s.Stride)
	}
	if s.FOV <= 0 || s.FOV >= 180 {
		return fmt.Errorf("%w: fov %.1f outside (0,180)", ErrInvalidSettings, s.FOV)
	}
	return nil
}
