package control

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

func TestApplyMovement(t *testing.T) {
	s := DefaultSpeeds()
	tests := []struct {
		name   string
		action Action
		want   math3d.Vec3
	}{
		{"forward", MoveForward, math3d.V3(0, 0, 4.9)},
		{"back", MoveBack, math3d.V3(0, 0, 5.1)},
		{"left", StrafeLeft, math3d.V3(-0.1, 0, 5)},
		{"right", StrafeRight, math3d.V3(0.1, 0, 5)},
		{"up", MoveUp, math3d.V3(0, 0.1, 5)},
		{"down", MoveDown, math3d.V3(0, -0.1, 5)},
		{"forward and back cancel", MoveForward | MoveBack, math3d.V3(0, 0, 5)},
		{"diagonal", MoveForward | StrafeRight, math3d.V3(0.1, 0, 4.9)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := render.NewCamera()
			Apply(cam, tc.action, s)
			if !cam.Position.ApproxEqual(tc.want, 1e-12) {
				t.Errorf("position = %v, want %v", cam.Position, tc.want)
			}
		})
	}
}

func TestApplyRotation(t *testing.T) {
	s := DefaultSpeeds()
	tests := []struct {
		name       string
		action     Action
		yaw, pitch float64
	}{
		{"yaw left", YawLeft, 0.02, 0},
		{"yaw right", YawRight, -0.02, 0},
		{"pitch up", PitchUp, 0, 0.02},
		{"pitch down", PitchDown, 0, -0.02},
		{"combined", YawLeft | PitchDown, 0.02, -0.02},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := render.NewCamera()
			Apply(cam, tc.action, s)
			if math.Abs(cam.Yaw-tc.yaw) > 1e-12 || math.Abs(cam.Pitch-tc.pitch) > 1e-12 {
				t.Errorf("yaw/pitch = %v/%v, want %v/%v", cam.Yaw, cam.Pitch, tc.yaw, tc.pitch)
			}
		})
	}
}

func TestApplyFollowsCameraAxes(t *testing.T) {
	cam := render.NewCamera()
	cam.Yaw = math.Pi / 2 // looking down -X
	Apply(cam, MoveForward, Speeds{Move: 1})
	if !cam.Position.ApproxEqual(math3d.V3(-1, 0, 5), 1e-12) {
		t.Errorf("position = %v, want (-1, 0, 5)", cam.Position)
	}
}

func TestBindings(t *testing.T) {
	seen := Action(0)
	for key, a := range Bindings {
		if seen&a != 0 {
			t.Errorf("action for %q bound twice", key)
		}
		seen |= a
	}
	if seen != MoveForward|MoveBack|StrafeLeft|StrafeRight|MoveUp|MoveDown|YawLeft|YawRight|PitchUp|PitchDown {
		t.Errorf("bindings cover %b", seen)
	}
}

func TestTogglesEdgeTriggered(t *testing.T) {
	var tg Toggles
	frames := []struct {
		held, want Toggle
	}{
		{ToggleProjection, ToggleProjection},
		{ToggleProjection, 0}, // still held
		{ToggleProjection | ToggleFlat, ToggleFlat},
		{0, 0},
		{ToggleProjection, ToggleProjection},
	}
	for i, f := range frames {
		if got := tg.Update(f.held); got != f.want {
			t.Errorf("frame %d: pressed = %b, want %b", i, got, f.want)
		}
	}
}

func TestApplyToggles(t *testing.T) {
	cfg := render.DefaultFrameConfig()

	ApplyToggles(&cfg, ToggleFlat)
	if cfg.Shading != render.Flat {
		t.Errorf("shading = %v, want flat", cfg.Shading)
	}
	ApplyToggles(&cfg, ToggleGouraud)
	if cfg.Shading != render.Gouraud {
		t.Errorf("shading = %v, want gouraud", cfg.Shading)
	}
	ApplyToggles(&cfg, TogglePhong|ToggleProjection)
	if cfg.Shading != render.Phong || cfg.Projection != render.Orthographic {
		t.Errorf("cfg = %v/%v, want phong/orthographic", cfg.Shading, cfg.Projection)
	}
	ApplyToggles(&cfg, ToggleProjection)
	if cfg.Projection != render.Perspective {
		t.Errorf("projection = %v, want perspective", cfg.Projection)
	}
}

func TestSmootherConverges(t *testing.T) {
	s := NewSmoother(60, *render.NewCamera())
	s.Target.Position = math3d.V3(1, 2, 3)
	s.Target.Yaw = 0.5
	s.Target.Pitch = -0.3

	first := s.Update()
	if first.Position == s.Target.Position {
		t.Error("smoother jumped straight to the target")
	}

	var cur render.Camera
	for range 600 {
		cur = s.Update()
	}
	if !cur.Position.ApproxEqual(s.Target.Position, 1e-4) ||
		math.Abs(cur.Yaw-0.5) > 1e-4 || math.Abs(cur.Pitch+0.3) > 1e-4 {
		t.Errorf("after 10s: %+v, want %+v", cur, s.Target)
	}
}

func TestSmootherSnap(t *testing.T) {
	s := NewSmoother(30, *render.NewCamera())
	s.Target.Yaw = 2
	s.Update()
	s.Snap()
	if got := s.Update(); got.Yaw != 2 {
		t.Errorf("yaw after Snap+Update = %v, want 2", got.Yaw)
	}
}
