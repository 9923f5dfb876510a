package session

import (
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/render"
	"gridcaster/internal/world"
)

const tick = time.Second / 60

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Movement.MoveSpeed = 0.25
	return cfg
}

func mustLevel(t *testing.T, name string, rows ...string) *world.Level {
	t.Helper()
	level, err := world.ParseLevel(strings.NewReader(strings.Join(rows, "\n")), nil)
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	level.Name = name
	return level
}

func newSession(t *testing.T, rows ...string) *Session {
	t.Helper()
	r := render.NewRenderer(graphics.TextureSet{}, render.Options{
		ViewDistance:  16,
		BrightnessMin: 0.15,
		SkyColor:      color.RGBA{135, 206, 235, 255},
		WallColor:     color.RGBA{160, 160, 160, 255},
		FloorColor:    color.RGBA{110, 110, 110, 255},
	}, nil)
	return New(testConfig(), mustLevel(t, "test", rows...), r)
}

func forward(s *Session, ticks int) {
	for i := 0; i < ticks; i++ {
		s.Update(Input{Forward: true}, tick)
	}
}

func TestTimerStartsOnFirstMovement(t *testing.T) {
	s := newSession(t,
		"111111",
		"1P0001",
		"111111",
	)
	s.Update(Input{}, tick)
	s.Update(Input{Turn: 1}, tick)
	if s.TimerStarted() || s.Elapsed() != 0 {
		t.Fatalf("timer running before movement: %v", s.Elapsed())
	}

	forward(s, 3)
	if !s.TimerStarted() {
		t.Fatal("timer did not start on movement")
	}
	if s.Elapsed() != 3*tick {
		t.Errorf("elapsed = %v, want %v", s.Elapsed(), 3*tick)
	}
}

func TestEndgameCompletesRun(t *testing.T) {
	s := newSession(t,
		"1111111",
		"1P0E001",
		"1111111",
	)
	forward(s, 5)
	if _, done := s.Completed(); done {
		t.Fatal("completed too early")
	}
	forward(s, 1)

	res, done := s.Completed()
	if !done {
		t.Fatalf("expected completion on endgame tile, player at (%v,%v)", s.Player().X, s.Player().Y)
	}
	if res.Tile != world.TileEndgame || res.Level != "test" || res.Elapsed != 6*tick {
		t.Errorf("unexpected result %+v", res)
	}

	x := s.Player().X
	forward(s, 3)
	if s.Player().X != x {
		t.Error("player moved after completion")
	}
}

func TestVoidReturnsToCheckpoint(t *testing.T) {
	s := newSession(t,
		"11111",
		"1PV01",
		"11111",
	)
	forward(s, 2)
	if s.Player().X != 1.5 || s.Player().Y != 1.5 {
		t.Errorf("expected return to spawn, got (%v,%v)", s.Player().X, s.Player().Y)
	}
	if s.Tile() != world.TileOpen {
		t.Errorf("tile after teleport = %v", s.Tile())
	}
}

func TestRespawnMovesCheckpoint(t *testing.T) {
	s := newSession(t,
		"1111111",
		"1PRV001",
		"1111111",
	)
	forward(s, 2)
	if x, y := s.Checkpoint(); x != 2.5 || y != 1.5 {
		t.Fatalf("checkpoint = (%v,%v), want (2.5,1.5)", x, y)
	}
	forward(s, 4)
	if s.Player().X != 2.5 {
		t.Errorf("expected void to return to checkpoint, x = %v", s.Player().X)
	}
}

func TestFovTrapWidensView(t *testing.T) {
	s := newSession(t,
		"11111",
		"1PT01",
		"11111",
	)
	forward(s, 2)
	if s.Tile() != world.TileFovTrap {
		t.Fatalf("expected to stand on the trap, got %v", s.Tile())
	}

	now := time.Unix(0, 0)
	for i := 0; i < 5; i++ {
		if _, err := s.Frame(now.Add(time.Duration(i)*tick), 64, 48); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Quality().FOV(); got != 65 {
		t.Errorf("fov after 5 frames = %v, want 65", got)
	}
}

func TestFrameRejectsBadSize(t *testing.T) {
	s := newSession(t, "111", "1P1", "111")
	if _, err := s.Frame(time.Now(), 0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestRestart(t *testing.T) {
	s := newSession(t,
		"1111111",
		"1P0E001",
		"1111111",
	)
	forward(s, 6)
	s.Restart()
	if _, done := s.Completed(); done || s.TimerStarted() {
		t.Error("restart did not clear the run")
	}
	if s.Player().X != 1.5 {
		t.Errorf("restart x = %v", s.Player().X)
	}
}

func TestMouseTurning(t *testing.T) {
	s := newSession(t, "111", "1P1", "111")
	s.SetMouseSensitivity(0.01)
	s.Update(Input{MouseDX: 50}, tick)
	if math.Abs(s.Player().Angle-0.5) > 1e-12 {
		t.Errorf("angle = %v, want 0.5", s.Player().Angle)
	}
	s.SetMouseSensitivity(0)
	if s.MouseSensitivity() != 0.0001 {
		t.Errorf("sensitivity floor = %v", s.MouseSensitivity())
	}
}

func TestMinimapDotsDeduplicate(t *testing.T) {
	s := newSession(t,
		"11111",
		"1P001",
		"10001",
		"11111",
	)
	m := s.Minimap()
	rays := m.Sweep(s.Level().Grid, s.Player().Pose())
	if len(rays) != minimapFanDegrees+1 {
		t.Fatalf("expected %d rays, got %d", minimapFanDegrees+1, len(rays))
	}
	count := m.DotCount()
	if count == 0 {
		t.Fatal("no dots recorded")
	}
	m.Sweep(s.Level().Grid, s.Player().Pose())
	if m.DotCount() != count {
		t.Errorf("repeat sweep added dots: %d -> %d", count, m.DotCount())
	}
	for _, r := range rays {
		if !touchesWall(s.Level().Grid, r.ToX, r.ToY) {
			t.Errorf("ray ends away from a wall at (%v,%v)", r.ToX, r.ToY)
		}
	}
}

// touchesWall reports whether any cell meeting at (x, y) is a wall.
func touchesWall(g *world.Grid, x, y float64) bool {
	const eps = 1e-6
	for _, dx := range []float64{-eps, eps} {
		for _, dy := range []float64{-eps, eps} {
			if g.IsWall(int(math.Floor(x+dx)), int(math.Floor(y+dy))) {
				return true
			}
		}
	}
	return false
}

func TestBestTimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "besttimes.json")
	bt, err := LoadBestTimes(path)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if rank := bt.Add("demo", 12*time.Second, now); rank != 1 {
		t.Errorf("first rank = %d", rank)
	}
	if rank := bt.Add("demo", 9*time.Second, now.Add(time.Minute)); rank != 1 {
		t.Errorf("faster rank = %d", rank)
	}
	if rank := bt.Add("demo", 20*time.Second, now.Add(2*time.Minute)); rank != 3 {
		t.Errorf("slower rank = %d", rank)
	}
	if err := bt.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadBestTimes(path)
	if err != nil {
		t.Fatal(err)
	}
	best, ok := loaded.Best("demo")
	if !ok || best.Seconds != 9 {
		t.Errorf("best = %+v, %v", best, ok)
	}
	if _, ok := loaded.Best("other"); ok {
		t.Error("unexpected entry for unknown level")
	}

	for i := 0; i < 15; i++ {
		loaded.Add("demo", time.Duration(30+i)*time.Second, now)
	}
	if n := len(loaded.Levels["demo"]); n != maxBestTimes {
		t.Errorf("expected table capped at %d, got %d", maxBestTimes, n)
	}
	if rank := loaded.Add("demo", time.Hour, now); rank != 0 {
		t.Errorf("slow run ranked %d", rank)
	}
}
