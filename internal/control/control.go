// Package control maps keyboard input to camera motion and frame toggles.
// It is shared by the terminal viewer and the GL window.
package control

import (
	"github.com/taigrr/facet/pkg/render"
)

// Action is a set of camera motions held during one frame.
type Action uint16

const (
	MoveForward Action = 1 << iota
	MoveBack
	StrafeLeft
	StrafeRight
	MoveUp
	MoveDown
	YawLeft
	YawRight
	PitchUp
	PitchDown
)

// Has reports whether every action in b is set in a.
func (a Action) Has(b Action) bool {
	return a&b == b
}

// Bindings maps key names to actions.
var Bindings = map[string]Action{
	"w":     MoveForward,
	"s":     MoveBack,
	"a":     StrafeLeft,
	"d":     StrafeRight,
	"q":     MoveUp,
	"e":     MoveDown,
	"left":  YawLeft,
	"right": YawRight,
	"up":    PitchUp,
	"down":  PitchDown,
}

// Speeds are the per-frame step sizes.
type Speeds struct {
	Move   float64 // world units per frame
	Rotate float64 // radians per frame
}

// DefaultSpeeds moves 0.1 units and turns 0.02 radians per frame.
func DefaultSpeeds() Speeds {
	return Speeds{Move: 0.1, Rotate: 0.02}
}

// Apply moves and turns cam for one frame of held actions. Movement follows
// the camera's own axes, so Q and E move along the tilted up vector.
func Apply(cam *render.Camera, a Action, s Speeds) {
	if a.Has(MoveForward) {
		cam.MoveForward(s.Move)
	}
	if a.Has(MoveBack) {
		cam.MoveForward(-s.Move)
	}
	if a.Has(StrafeLeft) {
		cam.MoveRight(-s.Move)
	}
	if a.Has(StrafeRight) {
		cam.MoveRight(s.Move)
	}
	if a.Has(MoveUp) {
		cam.MoveUp(s.Move)
	}
	if a.Has(MoveDown) {
		cam.MoveUp(-s.Move)
	}

	var dPitch, dYaw float64
	if a.Has(YawLeft) {
		dYaw += s.Rotate
	}
	if a.Has(YawRight) {
		dYaw -= s.Rotate
	}
	if a.Has(PitchUp) {
		dPitch += s.Rotate
	}
	if a.Has(PitchDown) {
		dPitch -= s.Rotate
	}
	cam.Rotate(dPitch, dYaw)
}

// Toggle is a set of mode keys.
type Toggle uint8

const (
	ToggleFlat       Toggle = 1 << iota // F1
	ToggleGouraud                       // F2
	TogglePhong                         // F3
	ToggleProjection                    // F4
)

// ToggleKeys maps key names to toggles.
var ToggleKeys = map[string]Toggle{
	"f1": ToggleFlat,
	"f2": ToggleGouraud,
	"f3": TogglePhong,
	"f4": ToggleProjection,
}

// Toggles turns held mode keys into presses. A key counts once when it goes
// down and not again until it has been released.
type Toggles struct {
	held Toggle
}

// Update records the keys held this frame and returns the newly pressed ones.
func (t *Toggles) Update(held Toggle) Toggle {
	pressed := held &^ t.held
	t.held = held
	return pressed
}

// ApplyToggles changes cfg for the pressed toggles.
func ApplyToggles(cfg *render.FrameConfig, pressed Toggle) {
	switch {
	case pressed&ToggleFlat != 0:
		cfg.Shading = render.Flat
	case pressed&ToggleGouraud != 0:
		cfg.Shading = render.Gouraud
	case pressed&TogglePhong != 0:
		cfg.Shading = render.Phong
	}
	if pressed&ToggleProjection != 0 {
		cfg.Projection = cfg.Projection.Toggle()
	}
}
