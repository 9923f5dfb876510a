package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gridcaster/internal/config"
	"gridcaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type levelInfo struct {
	Name  string
	Level *world.Level
	Err   error
}

type viewer struct {
	levels       []levelInfo
	levelIndex   int
	legendLines  []string
	legendScroll int
	sidebarTab   int
	tileManager  *world.TileManager
	lastErr      string
}

const (
	tabInfo = iota
	tabLegend
)

// specialKinds are the tiles that carry a gameplay effect, in legend order.
var specialKinds = []world.TileKind{
	world.TileFovTrap,
	world.TileEndgame,
	world.TileWin,
	world.TileRespawn,
	world.TileVoid,
}

func main() {
	ensureRuntimeCWD()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Printf("Warning: %v; using defaults", err)
		cfg = config.DefaultConfig()
	}

	tm := world.NewTileManager()
	if err := tm.LoadTileConfig(cfg.Levels.Palette); err != nil {
		log.Printf("Warning: Failed to load tile config: %v", err)
	}

	levels, err := loadLevels(cfg.Levels.Dir, tm)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	v := &viewer{
		levels:      levels,
		legendLines: buildLegendLines(tm),
		sidebarTab:  tabInfo,
		tileManager: tm,
	}
	if len(levels) == 0 {
		v.lastErr = "no levels in " + cfg.Levels.Dir
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Gridcaster Level Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.step(-1)
	}

	if v.sidebarTab == tabLegend {
		_, wheelY := ebiten.Wheel()
		if wheelY != 0 {
			v.legendScroll -= int(wheelY * 14)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
			v.legendScroll += 14
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
			v.legendScroll -= 14
		}
		v.legendScroll = max(0, min(v.legendScroll, v.maxLegendScroll()))
	}
	return nil
}

// step moves to the next or previous level, wrapping around.
func (v *viewer) step(delta int) {
	n := len(v.levels)
	if n == 0 {
		return
	}
	v.levelIndex = ((v.levelIndex+delta)%n + n) % n
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.levels) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	l := v.levels[v.levelIndex]
	if l.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("level %s failed to load: %v", l.Name, l.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	mapAreaX := padding
	mapAreaY := padding
	sidebarX := mapAreaX + mapAreaW + padding
	sidebarY := padding

	drawLevelPanel(screen, l, mapAreaX, mapAreaY, mapAreaW, mapAreaH, v.tileManager)
	drawSidebar(screen, l, sidebarX, sidebarY, sidebarWidth, mapAreaH, v.sidebarTab, v.legendLines, v.legendScroll)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func (v *viewer) maxLegendScroll() int {
	lineHeight := 14
	padding := 12
	tabHeight := 24
	sidebarHeight := windowHeight - padding*2
	contentHeight := max(lineHeight, sidebarHeight-tabHeight-padding)
	totalHeight := len(v.legendLines) * lineHeight
	if totalHeight <= contentHeight {
		return 0
	}
	return totalHeight - contentHeight
}

// panelTileSize fits a w x h grid of square tiles into a panel.
func panelTileSize(panelW, panelH, gridW, gridH int) int {
	return max(2, min(panelW/gridW, panelH/gridH))
}

func drawLevelPanel(screen *ebiten.Image, l levelInfo, x, y, w, h int, tm *world.TileManager) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	grid := l.Level.Grid
	tileSize := panelTileSize(w, h, grid.Width(), grid.Height())
	originX := x + (w-grid.Width()*tileSize)/2
	originY := y + (h-grid.Height()*tileSize)/2

	for ty := 0; ty < grid.Height(); ty++ {
		for tx := 0; tx < grid.Width(); tx++ {
			kind := grid.TileAt(tx, ty)
			drawX := originX + tx*tileSize
			drawY := originY + ty*tileSize
			vector.DrawFilledRect(screen, float32(drawX), float32(drawY), float32(tileSize), float32(tileSize), getLevelTileColor(kind, tm), false)
			if kind.IsSpecial() {
				drawTileLetter(screen, originX, originY, tileSize, tx, ty, string(tm.GetLetterFromKind(kind)))
			}
		}
	}

	spawnX, spawnY := int(l.Level.SpawnX), int(l.Level.SpawnY)
	drawTileMarkerCircle(screen, originX, originY, tileSize, spawnX, spawnY, color.RGBA{50, 200, 255, 255}, true)

	ebitenutil.DebugPrintAt(screen, l.Name, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch levels, Esc to quit", x+12, y+24)
}

func drawSidebar(screen *ebiten.Image, l levelInfo, x, y, w, h int, tab int, legendLines []string, scroll int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	if tab == tabLegend {
		drawLegendList(screen, x, row, w, h-(row-y)-12, legendLines, scroll)
		return
	}

	for _, line := range levelStats(l.Level) {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
	row += 8
	ebitenutil.DebugPrintAt(screen, "Markers:", x+12, row)
	ebitenutil.DebugPrintAt(screen, "Cyan: spawn  Letters: special tiles", x+12, row+16)
}

// levelStats summarizes a level for the info tab.
func levelStats(level *world.Level) []string {
	grid := level.Grid
	spawn := fmt.Sprintf("Spawn: (%.1f, %.1f)", level.SpawnX, level.SpawnY)
	if !level.HasSpawn {
		spawn += " default"
	}
	lines := []string{
		fmt.Sprintf("Tiles: %dx%d", grid.Width(), grid.Height()),
		spawn,
		fmt.Sprintf("Walls: %d", grid.Count(world.TileWall)),
	}
	for _, kind := range specialKinds {
		if n := grid.Count(kind); n > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d", kind, n))
		}
	}
	return lines
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

func drawLegendList(screen *ebiten.Image, x, y, w, h int, lines []string, scroll int) {
	lineHeight := 14
	startY := y - scroll
	for i, line := range lines {
		drawY := startY + i*lineHeight
		if drawY < y-lineHeight {
			continue
		}
		if drawY > y+h-lineHeight {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+10, drawY)
	}
}

func drawTileMarkerCircle(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, clr color.RGBA, stroke bool) {
	if tileSize < 2 {
		return
	}
	centerX := float32(originX + tx*tileSize + tileSize/2)
	centerY := float32(originY + ty*tileSize + tileSize/2)
	radius := float32(tileSize) * 0.35
	vector.DrawFilledCircle(screen, centerX, centerY, radius, clr, true)
	if stroke {
		vector.StrokeCircle(screen, centerX, centerY, radius, 1, color.RGBA{255, 255, 255, 255}, true)
	}
}

func drawTileLetter(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, letter string) {
	if tileSize < 6 || letter == "" {
		return
	}
	drawX := originX + tx*tileSize + 2
	drawY := originY + ty*tileSize + 1
	ebitenutil.DebugPrintAt(screen, letter, drawX, drawY)
}

// getLevelTileColor uses the palette floor color for special tiles.
func getLevelTileColor(kind world.TileKind, tm *world.TileManager) color.RGBA {
	if kind == world.TileWall {
		return color.RGBA{50, 50, 60, 255}
	}
	if clr, ok := tm.GetFloorColor(kind); ok {
		return clr
	}
	return color.RGBA{170, 170, 170, 255}
}

func loadLevels(dir string, tm *world.TileManager) ([]levelInfo, error) {
	names, err := world.ListLevels(dir)
	if err != nil {
		return nil, err
	}
	levels := make([]levelInfo, 0, len(names))
	for _, name := range names {
		level, err := world.LoadLevel(world.LevelPath(dir, name), tm)
		levels = append(levels, levelInfo{Name: name, Level: level, Err: err})
	}
	return levels, nil
}

func buildLegendLines(tm *world.TileManager) []string {
	lines := []string{
		"Tiles (letter -> key/name)",
		"--------------------------",
	}
	kinds := append([]world.TileKind{world.TileWall, world.TileOpen, world.TileSpawnMarker}, specialKinds...)
	for _, kind := range kinds {
		name := kind.String()
		if data := tm.GetTileData(kind); data != nil && data.Name != "" {
			name = data.Name
		}
		lines = append(lines, fmt.Sprintf("%c -> %s (%s)", tm.GetLetterFromKind(kind), kind, name))
	}

	lines = append(lines, "")
	lines = append(lines, "Notes")
	lines = append(lines, "-----")
	lines = append(lines, ". and space are open floor")
	lines = append(lines, "# starts a comment line")
	return lines
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}
