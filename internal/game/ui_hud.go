package game

import (
	"fmt"
	"image/color"

	"gridcaster/internal/session"
	"gridcaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	staminaBarWidth  = 80
	staminaBarHeight = 6
	crosshairLength  = 8
	hudLineHeight    = 16
	minimapMargin    = 10
)

var (
	hudPanelColor      = color.RGBA{0, 0, 0, 120}
	staminaBackColor   = color.RGBA{64, 64, 64, 255}
	staminaFillColor   = color.RGBA{0, 255, 0, 255}
	staminaSprintColor = color.RGBA{255, 200, 0, 255}
	crosshairColor     = color.RGBA{255, 0, 0, 255}
	minimapRayColor    = color.RGBA{255, 255, 0, 160}
	minimapDotColor    = color.RGBA{0, 0, 0, 255}
	minimapPlayerColor = color.RGBA{255, 0, 0, 255}
	bestTimeColor      = color.RGBA{255, 215, 0, 255}
)

// UISystem draws everything on top of the rendered view
type UISystem struct {
	game    *Game
	showHUD bool

	screenW, screenH int
}

// NewUISystem creates the overlay drawer
func NewUISystem(game *Game) *UISystem {
	return &UISystem{
		game:    game,
		showHUD: true,
		screenW: game.config.GetScreenWidth(),
		screenH: game.config.GetScreenHeight(),
	}
}

// screenSize is the size of the last drawn frame.
func (ui *UISystem) screenSize() (int, int) {
	return ui.screenW, ui.screenH
}

// Draw draws the minimap, HUD, completion banner and pause menu
func (ui *UISystem) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	ui.screenW, ui.screenH = b.Dx(), b.Dy()

	ui.drawMinimap(screen)
	if ui.game.menu.IsOpen() {
		ui.drawMainMenu(screen)
		return
	}
	if ui.showHUD {
		ui.drawHUD(screen)
	}
	if res, done := ui.game.session.Completed(); done {
		ui.drawCompletion(screen, res)
	}
}

// hudLines is the text block under the stamina bar.
func hudLines(s *session.Session, fps float64) []string {
	p := s.Player()
	q := s.Quality()
	return []string{
		fmt.Sprintf("Position: (%.2f, %.2f)", p.X, p.Y),
		fmt.Sprintf("Dots [minimap Lidar]: %d", s.Minimap().DotCount()),
		fmt.Sprintf("FPS: %.0f", fps),
		fmt.Sprintf("Stride: %d  FOV: %.0f", q.Stride(), q.FOV()),
		fmt.Sprintf("Time: %.2fs", s.Elapsed().Seconds()),
	}
}

// drawHUD draws the stamina bar, the status text and the crosshair
func (ui *UISystem) drawHUD(screen *ebiten.Image) {
	s := ui.game.session
	p := s.Player()

	bx, by := 10, 10
	fill := staminaFillColor
	if p.Sprinting() {
		fill = staminaSprintColor
	}
	drawFilledRect(screen, bx, by, staminaBarWidth, staminaBarHeight, staminaBackColor)
	drawFilledRect(screen, bx, by, int(staminaBarWidth*p.StaminaRatio()), staminaBarHeight, fill)
	vector.StrokeRect(screen, float32(bx), float32(by), staminaBarWidth, staminaBarHeight, 1, color.Black, false)

	lines := hudLines(s, ebiten.ActualFPS())
	ty := by + staminaBarHeight + 6
	drawFilledRect(screen, bx-4, ty-2, widestLine(lines)+8, len(lines)*hudLineHeight+4, hudPanelColor)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, bx, ty+i*hudLineHeight)
	}

	cx, cy := float32(ui.screenW/2), float32(ui.screenH/2)
	vector.StrokeLine(screen, cx-crosshairLength, cy, cx+crosshairLength, cy, 1, crosshairColor, false)
	vector.StrokeLine(screen, cx, cy-crosshairLength, cx, cy+crosshairLength, 1, crosshairColor, false)
}

// minimapLayout places the grid in a square a fifth of the short screen
// side, centered at the bottom. tile is at least one pixel.
func minimapLayout(screenW, screenH, gridW, gridH int) (tile, offsetX, offsetY int) {
	size := min(screenW, screenH) / 5
	tile = max(1, size/max(1, gridW, gridH))
	offsetX = (screenW - tile*gridW) / 2
	offsetY = screenH - tile*gridH - minimapMargin
	return tile, offsetX, offsetY
}

// getMinimapTileColor returns the color for a tile kind on the minimap.
// Walls are not drawn.
func getMinimapTileColor(kind world.TileKind) (color.RGBA, bool) {
	switch kind {
	case world.TileWall:
		return color.RGBA{}, false
	case world.TileFovTrap:
		return color.RGBA{0, 0, 255, 255}, true
	case world.TileEndgame:
		return color.RGBA{255, 0, 0, 255}, true
	case world.TileWin:
		return color.RGBA{255, 255, 0, 255}, true
	case world.TileRespawn:
		return color.RGBA{255, 0, 255, 255}, true
	case world.TileVoid:
		return color.RGBA{0, 0, 0, 255}, true
	default:
		return color.RGBA{192, 192, 192, 255}, true
	}
}

// drawMinimap draws the grid top-down with the lidar fan and its dots
func (ui *UISystem) drawMinimap(screen *ebiten.Image) {
	s := ui.game.session
	grid := s.Level().Grid
	tile, ox, oy := minimapLayout(ui.screenW, ui.screenH, grid.Width(), grid.Height())

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if c, ok := getMinimapTileColor(grid.TileAt(x, y)); ok {
				drawFilledRect(screen, ox+x*tile, oy+y*tile, tile, tile, c)
			}
		}
	}

	toScreen := func(wx, wy float64) (float32, float32) {
		return float32(float64(ox) + wx*float64(tile)), float32(float64(oy) + wy*float64(tile))
	}

	for _, ray := range s.Minimap().Rays() {
		x0, y0 := toScreen(ray.FromX, ray.FromY)
		x1, y1 := toScreen(ray.ToX, ray.ToY)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, minimapRayColor, false)
	}
	for _, dot := range s.Minimap().Dots() {
		dx, dy := toScreen(dot[0], dot[1])
		vector.DrawFilledRect(screen, dx-1, dy-1, 2, 2, minimapDotColor, false)
	}

	p := s.Player()
	px, py := toScreen(p.X, p.Y)
	vector.DrawFilledCircle(screen, px, py, 3, minimapPlayerColor, true)
}

// drawCompletion draws the end-of-run banner
func (ui *UISystem) drawCompletion(screen *ebiten.Image, res session.Result) {
	var best *session.BestTimeEntry
	if ui.game.bestTimes != nil {
		if e, ok := ui.game.bestTimes.Best(res.Level); ok {
			best = &e
		}
	}
	lines := completionLines(res, ui.game.lastRank, best)

	padding := 15
	w := widestLine(lines) + padding*2
	h := len(lines)*hudLineHeight + padding*2
	x := (ui.screenW - w) / 2
	y := (ui.screenH - h) / 3

	drawFilledRect(screen, x, y, w, h, color.RGBA{0, 0, 0, 180})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{255, 255, 255, 200})
	for i, line := range lines {
		ty := y + padding + i*hudLineHeight
		if i == 1 && ui.game.lastRank == 1 {
			drawDebugTextColored(screen, line, x+padding, ty, bestTimeColor)
			continue
		}
		ebitenutil.DebugPrintAt(screen, line, x+padding, ty)
	}
}
