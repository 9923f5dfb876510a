// Package game is the windowed frontend: an ebiten Game that drives a
// session, presents its frames and draws the HUD, minimap and pause menu.
package game

import (
	"time"

	"gridcaster/internal/audio"
	"gridcaster/internal/config"
	"gridcaster/internal/session"
	"gridcaster/internal/threading"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game implements ebiten.Game.
type Game struct {
	config    *config.Config
	session   *session.Session
	threading *threading.ThreadingComponents
	music     *audio.MusicPlayer
	bestTimes *session.BestTimes

	gameLoop *GameLoop
	input    *InputHandler
	menu     *PauseMenu

	// frame is the GPU copy of the last rendered view
	frame *ebiten.Image

	// Run completion
	reported bool
	lastRank int

	exitRequested bool

	// Performance debug
	perfDebugEnabled bool
	perfLowFpsSince  time.Time
	perfLastPerfLog  time.Time
}

// NewGame wires a session into the window frontend. music and bestTimes may
// be nil.
func NewGame(cfg *config.Config, sess *session.Session, tc *threading.ThreadingComponents, music *audio.MusicPlayer, bestTimes *session.BestTimes) *Game {
	g := &Game{
		config:           cfg,
		session:          sess,
		threading:        tc,
		music:            music,
		bestTimes:        bestTimes,
		perfDebugEnabled: cfg.Display.PerfDebug,
	}
	g.input = NewInputHandler(g, ebiten.IsKeyPressed)
	g.menu = NewPauseMenu()
	g.gameLoop = NewGameLoop(g)
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	return g.gameLoop.Update()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.gameLoop.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.gameLoop.Layout(outsideWidth, outsideHeight)
}

// Session returns the session being played.
func (g *Game) Session() *session.Session {
	return g.session
}

// setPaused opens or closes the pause menu and keeps music and cursor
// capture in step with it.
func (g *Game) setPaused(paused bool) {
	if paused {
		g.menu.Open()
	} else {
		g.menu.Close()
	}
	if g.music != nil {
		g.music.SetPaused(paused)
	}
	_, done := g.session.Completed()
	g.input.setCursorCaptured(!paused && !done)
}

// restart begins a fresh run of the same level.
func (g *Game) restart() {
	g.session.Restart()
	g.reported = false
	g.lastRank = 0
}

// tickDuration is the simulated time of one Update call.
func tickDuration(tps int) time.Duration {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}
