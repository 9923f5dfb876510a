package terminal

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"gridcaster/internal/session"
)

// Terminals report presses but not releases, so a press counts as held for
// holdDuration. Auto-repeat keeps a held key alive.
const holdDuration = 150 * time.Millisecond

type action int

const (
	actNone action = iota
	actForward
	actBackward
	actStrafeLeft
	actStrafeRight
	actTurnLeft
	actTurnRight
	actSprint
	actQuit
	actRestart
	actMute
	actPause
)

// keyAction maps a key press to an action. Upper-case movement letters also
// imply sprint.
func keyAction(key tcell.Key, r rune) (action, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit, false
	case tcell.KeyUp:
		return actForward, false
	case tcell.KeyDown:
		return actBackward, false
	case tcell.KeyLeft:
		return actTurnLeft, false
	case tcell.KeyRight:
		return actTurnRight, false
	case tcell.KeyRune:
	default:
		return actNone, false
	}

	sprint := unicode.IsUpper(r)
	switch unicode.ToLower(r) {
	case 'w':
		return actForward, sprint
	case 's':
		return actBackward, sprint
	case 'a':
		return actStrafeLeft, sprint
	case 'd':
		return actStrafeRight, sprint
	case 'q':
		return actQuit, false
	case 'r':
		return actRestart, false
	case 'm':
		return actMute, false
	case 'p', ' ':
		return actPause, false
	}
	return actNone, false
}

// heldKeys tracks which movement actions are currently considered held.
type heldKeys struct {
	until map[action]time.Time
}

func newHeldKeys() *heldKeys {
	return &heldKeys{until: make(map[action]time.Time)}
}

func (h *heldKeys) press(a action, now time.Time) {
	h.until[a] = now.Add(holdDuration)
}

func (h *heldKeys) held(a action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

func (h *heldKeys) clear() {
	clear(h.until)
}

// input builds one tick of session input from the held keys.
func (h *heldKeys) input(now time.Time) session.Input {
	in := session.Input{
		Forward:     h.held(actForward, now),
		Backward:    h.held(actBackward, now),
		StrafeLeft:  h.held(actStrafeLeft, now),
		StrafeRight: h.held(actStrafeRight, now),
		Sprint:      h.held(actSprint, now),
	}
	if h.held(actTurnLeft, now) {
		in.Turn--
	}
	if h.held(actTurnRight, now) {
		in.Turn++
	}
	return in
}
