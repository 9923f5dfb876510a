package game

import (
	"log"

	"gridcaster/internal/game/keytracker"
	"gridcaster/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputHandler handles all user input for the game
type InputHandler struct {
	game   *Game
	isDown keytracker.KeyStateFunc
	mouse  *mouseTracker

	// Movement
	forward     *keytracker.Binding
	backward    *keytracker.Binding
	strafeLeft  *keytracker.Binding
	strafeRight *keytracker.Binding
	turnLeft    *keytracker.Binding
	turnRight   *keytracker.Binding
	sprint      *keytracker.Binding

	// Single-press actions
	pause     *keytracker.Binding
	restart   *keytracker.Binding
	mute      *keytracker.Binding
	toggleHUD *keytracker.Binding

	// Menu navigation
	menuUp     *keytracker.Binding
	menuDown   *keytracker.Binding
	menuLeft   *keytracker.Binding
	menuRight  *keytracker.Binding
	menuSelect *keytracker.Binding
}

// NewInputHandler creates a new input handler reading keys through isDown
func NewInputHandler(game *Game, isDown keytracker.KeyStateFunc) *InputHandler {
	return &InputHandler{
		game:   game,
		isDown: isDown,
		mouse:  newMouseTracker(),

		forward:     keytracker.NewBinding(ebiten.KeyW, ebiten.KeyUp),
		backward:    keytracker.NewBinding(ebiten.KeyS, ebiten.KeyDown),
		strafeLeft:  keytracker.NewBinding(ebiten.KeyA),
		strafeRight: keytracker.NewBinding(ebiten.KeyD),
		turnLeft:    keytracker.NewBinding(ebiten.KeyLeft, ebiten.KeyQ),
		turnRight:   keytracker.NewBinding(ebiten.KeyRight, ebiten.KeyE),
		sprint:      keytracker.NewBinding(ebiten.KeyShiftLeft, ebiten.KeyShiftRight),

		pause:     keytracker.NewBinding(ebiten.KeyEscape, ebiten.KeyP),
		restart:   keytracker.NewBinding(ebiten.KeyR),
		mute:      keytracker.NewBinding(ebiten.KeyM),
		toggleHUD: keytracker.NewBinding(ebiten.KeySlash),

		menuUp:     keytracker.NewBinding(ebiten.KeyUp, ebiten.KeyW),
		menuDown:   keytracker.NewBinding(ebiten.KeyDown, ebiten.KeyS),
		menuLeft:   keytracker.NewBinding(ebiten.KeyLeft, ebiten.KeyA),
		menuRight:  keytracker.NewBinding(ebiten.KeyRight, ebiten.KeyD),
		menuSelect: keytracker.NewBinding(ebiten.KeyEnter, ebiten.KeySpace),
	}
}

// HandleInput processes the single-press actions for the current tick.
// Held movement keys are read separately by MovementInput.
func (ih *InputHandler) HandleInput() {
	if ih.pause.JustPressed(ih.isDown) {
		opening := !ih.game.menu.IsOpen()
		ih.game.setPaused(opening)
		if opening {
			ih.primeMenuBindings()
		}
	}

	if ih.game.menu.IsOpen() {
		ih.handleMenuInput()
		return
	}

	ih.handleUIInput()
	ih.handleMouseInput()
}

// handleUIInput processes gameplay shortcuts
func (ih *InputHandler) handleUIInput() {
	if ih.restart.JustPressed(ih.isDown) {
		ih.game.restart()
	}
	if _, done := ih.game.session.Completed(); done && ih.menuSelect.JustPressed(ih.isDown) {
		ih.game.restart()
	}
	if ih.mute.JustPressed(ih.isDown) && ih.game.music != nil {
		log.Printf("[Audio] muted: %v", ih.game.music.ToggleMute())
	}
	if ih.toggleHUD.JustPressed(ih.isDown) {
		ih.game.gameLoop.ui.showHUD = !ih.game.gameLoop.ui.showHUD
	}
}

// handleMenuInput navigates the pause menu with the keyboard and mouse
func (ih *InputHandler) handleMenuInput() {
	m := ih.game.menu
	if ih.menuUp.JustPressed(ih.isDown) {
		m.MoveSelection(-1)
	}
	if ih.menuDown.JustPressed(ih.isDown) {
		m.MoveSelection(1)
	}
	if ih.menuLeft.JustPressed(ih.isDown) {
		ih.game.adjustSelected(-1)
	}
	if ih.menuRight.JustPressed(ih.isDown) {
		ih.game.adjustSelected(1)
	}
	if ih.menuSelect.JustPressed(ih.isDown) {
		ih.game.activateMenu()
	}

	if x, y, ok := ih.mouse.leftClick(); ok {
		sw, sh := ih.game.gameLoop.ui.screenSize()
		if idx := menuItemAt(m, sw, sh, x, y); idx >= 0 {
			m.selection = idx
			ih.game.activateMenu()
		}
	}
}

// primeMenuBindings records the keys already held when the menu opens so a
// movement key held down does not count as a menu press.
func (ih *InputHandler) primeMenuBindings() {
	for _, b := range []*keytracker.Binding{ih.menuUp, ih.menuDown, ih.menuLeft, ih.menuRight, ih.menuSelect} {
		b.JustPressed(ih.isDown)
	}
}

// handleMouseInput captures the cursor when the view is clicked
func (ih *InputHandler) handleMouseInput() {
	if _, _, ok := ih.mouse.leftClick(); ok && !ih.mouse.captured {
		if _, done := ih.game.session.Completed(); !done {
			ih.setCursorCaptured(true)
		}
	}
}

// MovementInput builds one tick of session input from the held keys and
// the mouse motion since the previous tick.
func (ih *InputHandler) MovementInput() session.Input {
	in := session.Input{
		Forward:     ih.forward.Pressed(ih.isDown),
		Backward:    ih.backward.Pressed(ih.isDown),
		StrafeLeft:  ih.strafeLeft.Pressed(ih.isDown),
		StrafeRight: ih.strafeRight.Pressed(ih.isDown),
		Sprint:      ih.sprint.Pressed(ih.isDown),
	}
	if ih.turnLeft.Pressed(ih.isDown) {
		in.Turn--
	}
	if ih.turnRight.Pressed(ih.isDown) {
		in.Turn++
	}
	in.MouseDX = ih.mouse.deltaX()
	return in
}

func (ih *InputHandler) setCursorCaptured(captured bool) {
	ih.mouse.setCaptured(captured)
}
