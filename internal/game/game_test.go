package game

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/render"
	"gridcaster/internal/session"
	"gridcaster/internal/threading"
	"gridcaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeDevices stands in for the keyboard, mouse and cursor of a window.
type fakeDevices struct {
	down    map[ebiten.Key]bool
	cursorX int
	cursorY int
	click   bool
	modes   []ebiten.CursorModeType
}

func (d *fakeDevices) press(keys ...ebiten.Key) {
	clear(d.down)
	for _, k := range keys {
		d.down[k] = true
	}
}

type testGame struct {
	*Game
	dev *fakeDevices
}

func newTestGame(t *testing.T, cfg *config.Config, bt *session.BestTimes, rows ...string) testGame {
	t.Helper()
	level, err := world.ParseLevel(strings.NewReader(strings.Join(rows, "\n")), nil)
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	level.Name = "test"

	r := render.NewRenderer(graphics.TextureSet{}, render.Options{
		ViewDistance:  16,
		BrightnessMin: 0.15,
		SkyColor:      color.RGBA{135, 206, 235, 255},
		WallColor:     color.RGBA{160, 160, 160, 255},
		FloorColor:    color.RGBA{110, 110, 110, 255},
	}, nil)
	tc := threading.NewThreadingComponents(1)
	t.Cleanup(tc.Shutdown)

	g := NewGame(cfg, session.New(cfg, level, r), tc, nil, bt)
	dev := &fakeDevices{down: make(map[ebiten.Key]bool)}
	g.input.isDown = func(k ebiten.Key) bool { return dev.down[k] }
	g.input.mouse.cursorPosition = func() (int, int) { return dev.cursorX, dev.cursorY }
	g.input.mouse.setCursorMode = func(m ebiten.CursorModeType) { dev.modes = append(dev.modes, m) }
	g.input.mouse.clicked = func() bool {
		c := dev.click
		dev.click = false
		return c
	}
	return testGame{Game: g, dev: dev}
}

var corridor = []string{
	"1111111",
	"1P00E01",
	"1111111",
}

func fastConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Movement.MoveSpeed = 0.25
	return cfg
}

func TestPauseMenuSelectionWraps(t *testing.T) {
	m := NewPauseMenu()
	m.Open()
	m.MoveSelection(-1)
	if m.Selection() != len(mainMenuOptions)-1 {
		t.Errorf("selection = %d, want last row", m.Selection())
	}
	m.MoveSelection(1)
	if m.Selection() != 0 {
		t.Errorf("selection = %d, want 0 after wrapping", m.Selection())
	}
	m.MoveSelection(2)
	m.Close()
	m.Open()
	if m.Selection() != 0 || m.Mode() != MenuMain {
		t.Errorf("reopened menu at (%d, %v), want first row of main page", m.Selection(), m.Mode())
	}
}

func TestEscapeTogglesPauseAndCursorCapture(t *testing.T) {
	g := newTestGame(t, fastConfig(), nil, corridor...)

	g.dev.press(ebiten.KeyEscape)
	g.input.HandleInput()
	if !g.menu.IsOpen() {
		t.Fatal("Escape should open the menu")
	}
	if g.input.mouse.captured {
		t.Error("cursor should be released while paused")
	}

	g.dev.press()
	g.input.HandleInput()
	g.dev.press(ebiten.KeyEscape)
	g.input.HandleInput()
	if g.menu.IsOpen() {
		t.Fatal("second Escape should close the menu")
	}
	if !g.input.mouse.captured {
		t.Error("cursor should be captured after resuming")
	}
	if n := len(g.dev.modes); n == 0 || g.dev.modes[n-1] != ebiten.CursorModeCaptured {
		t.Errorf("cursor modes = %v, want last to be captured", g.dev.modes)
	}
}

func TestHeldMovementKeyDoesNotMoveMenuSelection(t *testing.T) {
	g := newTestGame(t, fastConfig(), nil, corridor...)

	g.dev.press(ebiten.KeyW)
	g.input.HandleInput()
	g.dev.press(ebiten.KeyW, ebiten.KeyEscape)
	g.input.HandleInput()
	if !g.menu.IsOpen() {
		t.Fatal("menu should be open")
	}
	g.input.HandleInput()
	if g.menu.Selection() != 0 {
		t.Errorf("selection = %d, want 0 while W stays held", g.menu.Selection())
	}
}

func TestOptionsAdjustSettings(t *testing.T) {
	g := newTestGame(t, fastConfig(), nil, corridor...)
	q := g.session.Quality()

	g.setPaused(true)
	g.menu.MoveSelection(1) // Options
	g.activateMenu()
	if g.menu.Mode() != MenuOptions {
		t.Fatalf("mode = %v, want options", g.menu.Mode())
	}

	g.adjustSelected(1)
	if q.BaseFOV() != 65 {
		t.Errorf("base FOV = %v, want 65", q.BaseFOV())
	}
	for i := 0; i < 20; i++ {
		g.activateMenu()
	}
	if q.BaseFOV() != 120 {
		t.Errorf("base FOV = %v, want clamp at 120", q.BaseFOV())
	}
	if labels := g.menuLabels(); labels[0] != "FOV: 120" {
		t.Errorf("label = %q, want %q", labels[0], "FOV: 120")
	}

	g.menu.MoveSelection(1)
	g.adjustSelected(-1)
	if s := g.session.MouseSensitivity(); s != 0.0001 {
		t.Errorf("sensitivity = %v, want floor 0.0001", s)
	}

	g.menu.MoveSelection(1)
	if q.Stride() != 2 {
		t.Fatalf("initial stride = %d, want 2", q.Stride())
	}
	g.adjustSelected(1)
	g.adjustSelected(1)
	if q.Stride() != 1 {
		t.Errorf("stride = %d, want 1 after raising resolution", q.Stride())
	}
	g.adjustSelected(-1)
	if q.Stride() != 2 {
		t.Errorf("stride = %d, want 2 after lowering resolution", q.Stride())
	}

	g.menu.MoveSelection(1) // Back
	g.activateMenu()
	if g.menu.Mode() != MenuMain {
		t.Errorf("mode = %v, want main after Back", g.menu.Mode())
	}
}

func TestMenuClickActivatesRow(t *testing.T) {
	g := newTestGame(t, fastConfig(), nil, corridor...)
	g.setPaused(true)

	sw, sh := g.gameLoop.ui.screenSize()
	px, py, pw, _ := menuPanel(len(mainMenuOptions), sw, sh)
	g.dev.cursorX = px + pw/2
	g.dev.cursorY = py + menuRowsTop + 1*menuRowHeight + 4
	if idx := menuItemAt(g.menu, sw, sh, g.dev.cursorX, g.dev.cursorY); idx != 1 {
		t.Fatalf("menuItemAt = %d, want 1", idx)
	}
	if idx := menuItemAt(g.menu, sw, sh, px-5, g.dev.cursorY); idx != -1 {
		t.Errorf("menuItemAt left of panel = %d, want -1", idx)
	}

	g.dev.click = true
	g.input.HandleInput()
	if g.menu.Mode() != MenuOptions {
		t.Errorf("clicking Options left mode %v", g.menu.Mode())
	}
}

func TestQuitEndsGame(t *testing.T) {
	g := newTestGame(t, fastConfig(), nil, corridor...)
	g.setPaused(true)
	g.menu.MoveSelection(-1) // Quit
	g.activateMenu()

	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update = %v, want ebiten.Termination", err)
	}
}

func TestMovementInputFromKeysAndMouse(t *testing.T) {
	g := newTestGame(t, fastConfig(), nil, corridor...)

	g.dev.press(ebiten.KeyW, ebiten.KeyShiftLeft, ebiten.KeyLeft, ebiten.KeyD)
	in := g.input.MovementInput()
	if !in.Forward || in.Backward || !in.Sprint || !in.StrafeRight || in.StrafeLeft {
		t.Errorf("input = %+v, want forward, sprint and strafe right", in)
	}
	if in.Turn != -1 {
		t.Errorf("turn = %v, want -1", in.Turn)
	}
	if in.MouseDX != 0 {
		t.Errorf("mouse dx = %v, want 0 while the cursor is free", in.MouseDX)
	}

	g.input.setCursorCaptured(true)
	g.dev.cursorX = 100
	if dx := g.input.MovementInput().MouseDX; dx != 0 {
		t.Errorf("first captured dx = %v, want 0", dx)
	}
	g.dev.cursorX = 112
	if dx := g.input.MovementInput().MouseDX; dx != 12 {
		t.Errorf("dx = %v, want 12", dx)
	}
}

func TestCompletionRecordsBestTimeOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "besttimes.json")
	bt, err := session.LoadBestTimes(path)
	if err != nil {
		t.Fatalf("LoadBestTimes: %v", err)
	}
	g := newTestGame(t, fastConfig(), bt, corridor...)

	g.dev.press(ebiten.KeyW)
	for i := 0; i < 20; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	res, done := g.session.Completed()
	if !done {
		t.Fatal("walking east should reach the endgame tile")
	}
	if !g.reported || g.lastRank != 1 {
		t.Errorf("reported=%v rank=%d, want recorded at rank 1", g.reported, g.lastRank)
	}
	if got := len(bt.Levels["test"]); got != 1 {
		t.Errorf("best times for level = %d, want exactly 1", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("best times file not written: %v", err)
	}
	if res.Elapsed <= 0 {
		t.Errorf("elapsed = %v, want positive", res.Elapsed)
	}

	g.dev.press()
	g.Update()
	g.dev.press(ebiten.KeyR)
	g.Update()
	if _, done := g.session.Completed(); done || g.reported {
		t.Error("R should start a fresh run")
	}
}

func TestHudLines(t *testing.T) {
	g := newTestGame(t, fastConfig(), nil, corridor...)
	lines := hudLines(g.session, 59.4)
	want := []string{
		"Position: (1.50, 1.50)",
		"Dots [minimap Lidar]: 0",
		"FPS: 59",
		"Stride: 2  FOV: 60",
		"Time: 0.00s",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestMinimapLayout(t *testing.T) {
	tests := []struct {
		name                   string
		sw, sh, gw, gh         int
		tile, offsetX, offsetY int
	}{
		{"square", 800, 600, 10, 10, 12, 340, 470},
		{"wide grid", 800, 600, 20, 5, 6, 340, 560},
		{"grid larger than box", 800, 600, 200, 10, 1, 300, 580},
	}
	for _, tt := range tests {
		tile, ox, oy := minimapLayout(tt.sw, tt.sh, tt.gw, tt.gh)
		if tile != tt.tile || ox != tt.offsetX || oy != tt.offsetY {
			t.Errorf("%s: got (%d,%d,%d), want (%d,%d,%d)", tt.name, tile, ox, oy, tt.tile, tt.offsetX, tt.offsetY)
		}
	}
}

func TestMinimapTileColors(t *testing.T) {
	if _, ok := getMinimapTileColor(world.TileWall); ok {
		t.Error("walls should not be drawn")
	}
	if c, _ := getMinimapTileColor(world.TileFovTrap); c != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("trap color = %v, want blue", c)
	}
	if c, _ := getMinimapTileColor(world.TileEndgame); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("endgame color = %v, want red", c)
	}
}

func TestCompletionLines(t *testing.T) {
	res := session.Result{Level: "demo", Tile: world.TileWin, Elapsed: 12340 * time.Millisecond}
	best := &session.BestTimeEntry{Seconds: 9.5, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}

	lines := completionLines(res, 1, nil)
	if lines[0] != "Level demo completed in 12.34 seconds!" || lines[1] != "New best time!" {
		t.Errorf("rank 1 lines = %q", lines)
	}
	lines = completionLines(res, 3, best)
	if lines[1] != "Rank #3" || lines[2] != "Best: 9.50s (2024-05-01)" {
		t.Errorf("rank 3 lines = %q", lines)
	}
	if lines = completionLines(res, 0, nil); lines[1] != "No new record" {
		t.Errorf("unranked lines = %q", lines)
	}
}

func TestRecordBestTimeWithoutTable(t *testing.T) {
	if rank := recordBestTime(nil, session.Result{Level: "x", Elapsed: time.Second}, time.Now()); rank != 0 {
		t.Errorf("rank = %d, want 0 without a table", rank)
	}
}

func TestShouldLogPerf(t *testing.T) {
	g := newTestGame(t, fastConfig(), nil, corridor...)
	gl := g.gameLoop
	t0 := time.Unix(1000, 0)

	steps := []struct {
		fps  float64
		at   time.Duration
		want bool
	}{
		{20, 0, false},
		{20, time.Second, false},
		{20, 3 * time.Second, true},
		{20, 4 * time.Second, false},
		{20, 6 * time.Second, true},
		{60, 7 * time.Second, false},
		{20, 8 * time.Second, false},
	}
	for i, s := range steps {
		if got := gl.shouldLogPerf(s.fps, t0.Add(s.at)); got != s.want {
			t.Errorf("step %d (fps %.0f at %v) = %v, want %v", i, s.fps, s.at, got, s.want)
		}
	}
}

func TestPerfCauses(t *testing.T) {
	cfg := fastConfig()
	cfg.Render.Parallel = false
	g := newTestGame(t, cfg, nil, corridor...)
	g.setPaused(true)

	causes := strings.Join(g.gameLoop.perfCauses(), ", ")
	for _, want := range []string{"serial rendering", "menu open"} {
		if !strings.Contains(causes, want) {
			t.Errorf("causes %q missing %q", causes, want)
		}
	}
}

func TestPerfStatHelpers(t *testing.T) {
	stats := map[string]interface{}{"f": 1.5, "u": uint64(7), "n": uint32(3), "i": 4}
	if getPerfFloat(stats, "f") != 1.5 || getPerfUint(stats, "u") != 7 || getPerfUint(stats, "n") != 3 || getPerfInt(stats, "i") != 4 {
		t.Error("perf stat helpers returned wrong values")
	}
	if getPerfFloat(stats, "missing") != 0 {
		t.Error("missing key should read as 0")
	}
	if idleBudgetMs(50, 15*time.Millisecond, 10*time.Millisecond) != 0 {
		t.Error("idle budget should not go negative")
	}
}

func TestTickDuration(t *testing.T) {
	if d := tickDuration(60); d != time.Second/60 {
		t.Errorf("tickDuration(60) = %v", d)
	}
	if d := tickDuration(ebiten.SyncWithFPS); d != time.Second/ebiten.DefaultTPS {
		t.Errorf("tickDuration(SyncWithFPS) = %v, want default tick", d)
	}
}

func TestLayout(t *testing.T) {
	cfg := fastConfig()
	g := newTestGame(t, cfg, nil, corridor...)
	if w, h := g.Layout(1920, 1080); w != 800 || h != 600 {
		t.Errorf("fixed layout = %dx%d, want 800x600", w, h)
	}
	cfg.Display.Resizable = true
	if w, h := g.Layout(1920, 1080); w != 1920 || h != 1080 {
		t.Errorf("resizable layout = %dx%d, want 1920x1080", w, h)
	}
}
