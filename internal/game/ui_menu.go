package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	menuPanelWidth  = 300
	menuRowHeight   = 32
	menuRowsTop     = 56
	menuPanelBottom = 96
)

var menuTips = []string{
	"Controls:",
	"WASD: Move  Arrows/QE: Turn  Shift: Sprint",
	"Mouse: Look (click to capture)",
	"R: Restart  M: Mute  /: HUD",
	"Left/Right: change option",
}

// menuPanel returns the panel rectangle for a page with rows rows.
func menuPanel(rows, screenW, screenH int) (x, y, w, h int) {
	w = max(menuPanelWidth, widestLine(menuTips)+32)
	h = menuRowsTop + rows*menuRowHeight + menuPanelBottom
	return (screenW - w) / 2, (screenH - h) / 2, w, h
}

// menuItemAt returns the row under (x, y), or -1.
func menuItemAt(m *PauseMenu, screenW, screenH, x, y int) int {
	px, py, pw, _ := menuPanel(m.rowCount(), screenW, screenH)
	if x < px+16 || x >= px+pw-16 {
		return -1
	}
	startY := py + menuRowsTop
	for i := 0; i < m.rowCount(); i++ {
		rowY := startY + i*menuRowHeight - 4
		if y >= rowY && y < rowY+28 {
			return i
		}
	}
	return -1
}

// drawMainMenu draws the pause menu page that is currently open
func (ui *UISystem) drawMainMenu(screen *ebiten.Image) {
	w, h := ui.screenW, ui.screenH
	m := ui.game.menu
	labels := ui.game.menuLabels()

	// Dim background
	drawFilledRect(screen, 0, 0, w, h, color.RGBA{0, 0, 0, 128})

	px, py, panelW, panelH := menuPanel(len(labels), w, h)
	drawFilledRect(screen, px, py, panelW, panelH, color.RGBA{20, 20, 40, 230})
	drawRectBorder(screen, px, py, panelW, panelH, 2, color.RGBA{100, 100, 160, 255})

	title := "Paused"
	highlight := color.RGBA{60, 120, 180, 200}
	if m.Mode() == MenuOptions {
		title = "Options"
		highlight = color.RGBA{80, 180, 80, 200}
	}
	drawCenteredDebugText(screen, title, px, py+8, panelW, 32)

	startY := py + menuRowsTop
	for i, label := range labels {
		y := startY + i*menuRowHeight
		if i == m.Selection() {
			drawFilledRect(screen, px+16, y-4, panelW-32, 28, highlight)
		}
		ebitenutil.DebugPrintAt(screen, label, px+28, y)
	}

	tipsY := startY + len(labels)*menuRowHeight + 10
	for i, tip := range menuTips {
		ebitenutil.DebugPrintAt(screen, tip, px+16, tipsY+i*14)
	}
}
