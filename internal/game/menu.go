package game

import (
	"fmt"
)

// MainMenuMode selects which page of the pause menu is shown
type MainMenuMode int

const (
	MenuMain MainMenuMode = iota
	MenuOptions
)

var mainMenuOptions = []string{"Resume", "Options", "Restart Level", "Quit"}

// Options page rows; the last row returns to the main page.
const (
	optionFOV = iota
	optionMouseSensitivity
	optionWallResolution
	optionBack
)

const (
	fovMenuStep         = 5.0
	sensitivityMenuStep = 0.001
)

// PauseMenu is the state of the escape menu.
type PauseMenu struct {
	open      bool
	mode      MainMenuMode
	selection int
}

// NewPauseMenu creates a closed menu.
func NewPauseMenu() *PauseMenu {
	return &PauseMenu{}
}

// Open shows the main page with the first row selected.
func (m *PauseMenu) Open() {
	m.open = true
	m.mode = MenuMain
	m.selection = 0
}

func (m *PauseMenu) Close()             { m.open = false }
func (m *PauseMenu) IsOpen() bool       { return m.open }
func (m *PauseMenu) Mode() MainMenuMode { return m.mode }
func (m *PauseMenu) Selection() int     { return m.selection }

// rowCount is the number of rows on the current page.
func (m *PauseMenu) rowCount() int {
	if m.mode == MenuOptions {
		return optionBack + 1
	}
	return len(mainMenuOptions)
}

// MoveSelection moves the highlight by delta rows, wrapping around.
func (m *PauseMenu) MoveSelection(delta int) {
	n := m.rowCount()
	m.selection = ((m.selection+delta)%n + n) % n
}

func (m *PauseMenu) setMode(mode MainMenuMode) {
	m.mode = mode
	m.selection = 0
}

// activateMenu runs the selected row. On the options page every row except
// Back nudges its setting up.
func (g *Game) activateMenu() {
	m := g.menu
	if m.mode == MenuOptions {
		if m.selection == optionBack {
			m.setMode(MenuMain)
			return
		}
		g.adjustSelected(1)
		return
	}

	switch mainMenuOptions[m.selection] {
	case "Resume":
		g.setPaused(false)
	case "Options":
		m.setMode(MenuOptions)
	case "Restart Level":
		g.restart()
		g.setPaused(false)
	case "Quit":
		g.exitRequested = true
	}
}

// adjustSelected changes the setting on the selected options row by one
// step in direction dir.
func (g *Game) adjustSelected(dir int) {
	if g.menu.mode != MenuOptions {
		return
	}
	q := g.session.Quality()
	switch g.menu.selection {
	case optionFOV:
		q.SetBaseFOV(q.BaseFOV() + fovMenuStep*float64(dir))
	case optionMouseSensitivity:
		g.session.SetMouseSensitivity(g.session.MouseSensitivity() + sensitivityMenuStep*float64(dir))
	case optionWallResolution:
		// finer resolution is a smaller stride
		q.AdjustStride(-dir)
	}
}

// menuLabels returns the rows of the current page with live values.
func (g *Game) menuLabels() []string {
	if g.menu.mode == MenuMain {
		return mainMenuOptions
	}
	q := g.session.Quality()
	return []string{
		fmt.Sprintf("FOV: %.0f", q.BaseFOV()),
		fmt.Sprintf("Mouse Sensitivity: %.4f", g.session.MouseSensitivity()),
		fmt.Sprintf("Wall Resolution: 1/%d", q.Stride()),
		"Back",
	}
}
