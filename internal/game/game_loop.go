package game

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameLoop manages the main game update and render cycle
type GameLoop struct {
	game         *Game
	inputHandler *InputHandler
	ui           *UISystem

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *Game) *GameLoop {
	return &GameLoop{
		game:         game,
		inputHandler: game.input,
		ui:           NewUISystem(game),
	}
}

// Update handles all game logic updates for one tick
func (gl *GameLoop) Update() error {
	start := time.Now()
	defer func() { gl.lastUpdateDuration = time.Since(start) }()

	gl.inputHandler.HandleInput()
	if gl.game.exitRequested {
		return ebiten.Termination
	}

	if !gl.game.menu.IsOpen() {
		gl.game.session.Update(gl.inputHandler.MovementInput(), tickDuration(ebiten.TPS()))
	}
	gl.checkCompletion()
	gl.maybeLogPerfDrop()
	return nil
}

// checkCompletion records the best time once per finished run.
func (gl *GameLoop) checkCompletion() {
	res, done := gl.game.session.Completed()
	if !done || gl.game.reported {
		return
	}
	gl.game.reported = true
	gl.game.lastRank = recordBestTime(gl.game.bestTimes, res, time.Now())
	gl.game.input.setCursorCaptured(false)
}

// Draw renders the first-person view and the UI for one frame
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() { gl.lastDrawDuration = time.Since(start) }()

	frameTimer := gl.game.threading.PerformanceMonitor.StartFrame()
	defer frameTimer.EndFrame()

	b := screen.Bounds()
	img, err := gl.game.session.Frame(start, b.Dx(), b.Dy())
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}

	if gl.game.frame == nil || gl.game.frame.Bounds() != img.Rect {
		if gl.game.frame != nil {
			gl.game.frame.Deallocate()
		}
		gl.game.frame = ebiten.NewImage(img.Rect.Dx(), img.Rect.Dy())
	}
	gl.game.frame.WritePixels(img.Pix)
	screen.DrawImage(gl.game.frame, nil)

	gl.ui.Draw(screen)
}

// Layout returns the screen dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if gl.game.config.Display.Resizable && outsideWidth > 0 && outsideHeight > 0 {
		return outsideWidth, outsideHeight
	}
	return gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()
}
