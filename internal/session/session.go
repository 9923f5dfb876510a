// Package session runs one play-through of a level: player movement, tile
// effects, the run timer, and per-frame rendering with adaptive quality.
package session

import (
	"fmt"
	"image"
	"log"
	"time"

	"gridcaster/internal/config"
	"gridcaster/internal/quality"
	"gridcaster/internal/render"
	"gridcaster/internal/world"
)

// Input is one tick of player intent, already decoupled from any device.
type Input struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
	Sprint      bool
	Turn        float64 // keyboard turning, -1 (left) .. 1 (right)
	MouseDX     float64 // horizontal mouse movement in pixels
}

func (in Input) moving() bool {
	return in.Forward || in.Backward || in.StrafeLeft || in.StrafeRight
}

// Result describes a finished run.
type Result struct {
	Level   string
	Tile    world.TileKind // Endgame or Win
	Elapsed time.Duration
}

// Session is driven from a single goroutine: Update once per tick, Frame
// once per drawn frame.
type Session struct {
	cfg      *config.Config
	level    *world.Level
	player   *Player
	quality  *quality.Controller
	renderer *render.Renderer
	minimap  *Minimap

	checkpointX, checkpointY float64
	tile                     world.TileKind

	timerStarted bool
	elapsed      time.Duration

	done   bool
	result Result
}

// New starts a session at the level's spawn facing east.
func New(cfg *config.Config, level *world.Level, renderer *render.Renderer) *Session {
	s := &Session{
		cfg:      cfg,
		level:    level,
		quality:  quality.NewController(cfg.Quality),
		renderer: renderer,
		minimap:  NewMinimap(),
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.player = NewPlayer(s.level.SpawnX, s.level.SpawnY, 0, s.cfg.Movement)
	s.checkpointX, s.checkpointY = s.level.SpawnX, s.level.SpawnY
	s.tile = s.currentTile()
	s.timerStarted = false
	s.elapsed = 0
	s.done = false
	s.result = Result{}
	s.minimap.Reset()
}

// Restart puts the player back at the spawn with a fresh timer.
func (s *Session) Restart() {
	s.reset()
}

// Update advances one tick of dt. It does nothing once the run is complete.
func (s *Session) Update(in Input, dt time.Duration) {
	if s.done {
		return
	}

	if !s.timerStarted && in.moving() {
		s.timerStarted = true
		log.Printf("[Level] %s: timer started", s.level.Name)
	}

	p := s.player
	p.SetSprint(in.Sprint)

	var forward, strafe float64
	if in.Forward {
		forward++
	}
	if in.Backward {
		forward--
	}
	if in.StrafeRight {
		strafe++
	}
	if in.StrafeLeft {
		strafe--
	}
	p.Move(s.level.Grid, forward, strafe)
	p.Rotate(in.Turn*s.cfg.Movement.RotationSpeed + in.MouseDX*s.cfg.Movement.MouseSensitivity)
	p.UpdateStamina(dt.Seconds())

	if s.timerStarted {
		s.elapsed += dt
	}

	s.tile = s.currentTile()
	s.applyTile()
}

func (s *Session) currentTile() world.TileKind {
	x, y := s.player.Cell()
	return s.level.Grid.TileAt(x, y)
}

func (s *Session) applyTile() {
	x, y := s.player.Cell()
	switch s.tile {
	case world.TileEndgame, world.TileWin:
		s.done = true
		s.result = Result{Level: s.level.Name, Tile: s.tile, Elapsed: s.elapsed}
		log.Printf("[Level] %s completed in %.2f seconds", s.level.Name, s.elapsed.Seconds())
	case world.TileRespawn:
		s.checkpointX, s.checkpointY = float64(x)+0.5, float64(y)+0.5
	case world.TileVoid:
		s.player.Teleport(s.checkpointX, s.checkpointY)
		s.tile = s.currentTile()
	}
}

// Frame advances the quality controller and renders the view at w x h.
func (s *Session) Frame(now time.Time, w, h int) (*image.RGBA, error) {
	stride, fov := s.quality.Frame(now, s.tile)
	img, err := s.renderer.Render(s.level.Grid, s.player.Pose(), render.Settings{
		FOV:    fov,
		Stride: stride,
		Width:  w,
		Height: h,
	})
	if err != nil {
		return nil, fmt.Errorf("render frame: %w", err)
	}
	s.minimap.Sweep(s.level.Grid, s.player.Pose())
	return img, nil
}

// Completed returns the run result once an end tile has been reached.
func (s *Session) Completed() (Result, bool) {
	return s.result, s.done
}

// Elapsed is the run time since the first movement.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// TimerStarted reports whether the player has moved yet.
func (s *Session) TimerStarted() bool { return s.timerStarted }

// Player returns the live player.
func (s *Session) Player() *Player { return s.player }

// Quality returns the adaptive quality controller.
func (s *Session) Quality() *quality.Controller { return s.quality }

// Level returns the level being played.
func (s *Session) Level() *world.Level { return s.level }

// Tile is the kind of tile under the player.
func (s *Session) Tile() world.TileKind { return s.tile }

// Checkpoint is where a void tile sends the player.
func (s *Session) Checkpoint() (float64, float64) {
	return s.checkpointX, s.checkpointY
}

// Minimap returns the lidar minimap state.
func (s *Session) Minimap() *Minimap { return s.minimap }

// Renderer returns the renderer used by Frame.
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// SetMouseSensitivity changes the radians turned per pixel of mouse motion.
func (s *Session) SetMouseSensitivity(v float64) {
	if v < 0.0001 {
		v = 0.0001
	}
	s.cfg.Movement.MouseSensitivity = v
}

// MouseSensitivity is the radians turned per pixel of mouse motion.
func (s *Session) MouseSensitivity() float64 {
	return s.cfg.Movement.MouseSensitivity
}
