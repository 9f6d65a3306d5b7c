package ui

import (
	"flight-simulator/internal/game/controls"

	"github.com/hajimehoshi/ebiten/v2"
)

var DefaultBindings = map[ebiten.Key]controls.Action{
	ebiten.KeyW:        controls.PITCH_UP,
	ebiten.KeyUp:       controls.PITCH_UP,
	ebiten.KeyS:        controls.PITCH_DOWN,
	ebiten.KeyDown:     controls.PITCH_DOWN,
	ebiten.KeyA:        controls.YAW_LEFT,
	ebiten.KeyLeft:     controls.YAW_LEFT,
	ebiten.KeyD:        controls.YAW_RIGHT,
	ebiten.KeyRight:    controls.YAW_RIGHT,
	ebiten.KeyR:        controls.CLIMB,
	ebiten.KeyPageUp:   controls.CLIMB,
	ebiten.KeyF:        controls.DESCEND,
	ebiten.KeyPageDown: controls.DESCEND,
	ebiten.KeyE:        controls.SPEED_UP,
	ebiten.KeyEqual:    controls.SPEED_UP,
	ebiten.KeyQ:        controls.SPEED_DOWN,
	ebiten.KeyMinus:    controls.SPEED_DOWN,
	ebiten.KeyG:        controls.TOGGLE_GLOBE,
	ebiten.KeyX:        controls.CANCEL_TARGET,
	ebiten.KeyEscape:   controls.CANCEL_TARGET,
}

// Keyboard polls ebiten once per tick and feeds key edges to the aggregator.
type Keyboard struct {
	tracker *controls.KeyTracker[ebiten.Key]
}

func NewKeyboard(bindings map[ebiten.Key]controls.Action) *Keyboard {
	if bindings == nil {
		bindings = DefaultBindings
	}
	return &Keyboard{tracker: controls.NewKeyTracker(bindings)}
}

func (k *Keyboard) Poll(a *controls.Aggregator) {
	k.tracker.Poll(a, ebiten.IsKeyPressed)
}

// Suspend releases everything held, used while a text field has focus.
func (k *Keyboard) Suspend(a *controls.Aggregator) {
	k.tracker.ReleaseAll(a)
}
