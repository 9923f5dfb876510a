package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mouseTracker turns cursor positions into per-tick horizontal motion while
// the cursor is captured. The ebiten calls are fields so tests can run
// without a window.
type mouseTracker struct {
	captured bool
	lastX    int
	known    bool

	cursorPosition func() (int, int)
	setCursorMode  func(ebiten.CursorModeType)
	clicked        func() bool
}

func newMouseTracker() *mouseTracker {
	return &mouseTracker{
		cursorPosition: ebiten.CursorPosition,
		setCursorMode:  ebiten.SetCursorMode,
		clicked: func() bool {
			return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		},
	}
}

func (m *mouseTracker) setCaptured(captured bool) {
	if captured == m.captured {
		return
	}
	m.captured = captured
	m.known = false
	if captured {
		m.setCursorMode(ebiten.CursorModeCaptured)
	} else {
		m.setCursorMode(ebiten.CursorModeVisible)
	}
}

// deltaX returns the horizontal motion since the previous call. The first
// call after a capture change only records the position.
func (m *mouseTracker) deltaX() float64 {
	if !m.captured {
		return 0
	}
	x, _ := m.cursorPosition()
	if !m.known {
		m.lastX = x
		m.known = true
		return 0
	}
	dx := x - m.lastX
	m.lastX = x
	return float64(dx)
}

// leftClick returns the cursor position of a left click made this tick.
func (m *mouseTracker) leftClick() (x, y int, ok bool) {
	if !m.clicked() {
		return 0, 0, false
	}
	x, y = m.cursorPosition()
	return x, y, true
}
