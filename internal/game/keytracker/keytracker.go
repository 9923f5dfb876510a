// Package keytracker turns held-key state into single presses for bindings
// of one or more keys.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateFunc reports whether a key is currently down.
// ebiten.IsKeyPressed satisfies it.
type KeyStateFunc func(ebiten.Key) bool

// Binding is a set of keys that trigger the same action.
type Binding struct {
	keys        []ebiten.Key
	prevPressed bool
}

// NewBinding creates a binding triggered by any of keys.
func NewBinding(keys ...ebiten.Key) *Binding {
	return &Binding{keys: keys}
}

// Pressed reports whether any key of the binding is down.
func (b *Binding) Pressed(isDown KeyStateFunc) bool {
	for _, k := range b.keys {
		if isDown(k) {
			return true
		}
	}
	return false
}

// JustPressed returns true if no key of the binding was down at the previous
// call but one is down now. Call it once per tick.
func (b *Binding) JustPressed(isDown KeyStateFunc) bool {
	pressed := b.Pressed(isDown)
	justPressed := pressed && !b.prevPressed
	b.prevPressed = pressed
	return justPressed
}

// Keys returns the keys of the binding.
func (b *Binding) Keys() []ebiten.Key {
	return b.keys
}
