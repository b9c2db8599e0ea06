package render

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera()
	if cam.Position != math3d.V3(0, 0, 5) || cam.Yaw != 0 || cam.Pitch != 0 {
		t.Errorf("NewCamera() = %+v", cam)
	}
	if !cam.Forward().ApproxEqual(math3d.V3(0, 0, -1), 1e-12) {
		t.Errorf("default forward = %v", cam.Forward())
	}
}

func TestCameraViewMatrix(t *testing.T) {
	poses := []struct {
		name       string
		pos        math3d.Vec3
		yaw, pitch float64
	}{
		{"default", math3d.V3(0, 0, 5), 0, 0},
		{"yawed", math3d.V3(3, -1, 2), 0.8, 0},
		{"pitched", math3d.V3(0, 4, 0), 0, -0.6},
		{"both", math3d.V3(-2, 1, 7), -2.3, 0.4},
	}

	for _, p := range poses {
		t.Run(p.name, func(t *testing.T) {
			cam := &Camera{Position: p.pos, Yaw: p.yaw, Pitch: p.pitch}
			view := cam.ViewMatrix()

			if got := view.MulVec3(cam.Position); !got.ApproxEqual(math3d.Zero3(), 1e-9) {
				t.Errorf("eye in view space = %v, want origin", got)
			}
			if got := view.MulVec3Dir(cam.Forward()); !got.ApproxEqual(math3d.V3(0, 0, -1), 1e-9) {
				t.Errorf("forward in view space = %v, want -Z", got)
			}
			if got := view.MulVec3Dir(cam.Right()); !got.ApproxEqual(math3d.V3(1, 0, 0), 1e-9) {
				t.Errorf("right in view space = %v, want +X", got)
			}
			if got := view.MulVec3Dir(cam.Up()); !got.ApproxEqual(math3d.V3(0, 1, 0), 1e-9) {
				t.Errorf("up in view space = %v, want +Y", got)
			}
			if view != cam.ViewMatrix() {
				t.Error("ViewMatrix is not idempotent")
			}
		})
	}
}

func TestCameraViewIsInverseOfWorld(t *testing.T) {
	cam := &Camera{Position: math3d.V3(1, 2, 3), Yaw: 0.3, Pitch: -0.2}
	world := math3d.Translate(cam.Position).Mul(cam.WorldRotation())
	if !cam.ViewMatrix().ApproxEqual(world.Inverse(), 1e-9) {
		t.Error("view matrix is not the inverse of the camera's world transform")
	}
}

func TestCameraLookAt(t *testing.T) {
	targets := []math3d.Vec3{
		math3d.Zero3(),
		math3d.V3(4, 0, 5),
		math3d.V3(-3, 2, -1),
	}
	for _, target := range targets {
		cam := NewCamera()
		cam.LookAt(target)

		got := cam.ViewMatrix().MulVec3(target)
		if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 || got.Z >= 0 {
			t.Errorf("LookAt(%v): target in view space = %v, want on -Z", target, got)
		}
	}

	cam := NewCamera()
	cam.LookAt(cam.Position)
	if cam.Yaw != 0 || cam.Pitch != 0 {
		t.Error("looking at own position should leave orientation unchanged")
	}
}

func TestCameraRotateClampsPitch(t *testing.T) {
	cam := NewCamera()
	cam.Rotate(10, 0.5)
	if cam.Pitch >= math.Pi/2 {
		t.Errorf("pitch = %v, want below π/2", cam.Pitch)
	}
	if cam.Yaw != 0.5 {
		t.Errorf("yaw = %v, want 0.5", cam.Yaw)
	}
	cam.Rotate(-20, 0)
	if cam.Pitch <= -math.Pi/2 {
		t.Errorf("pitch = %v, want above -π/2", cam.Pitch)
	}
}

func TestCameraMove(t *testing.T) {
	cam := NewCamera()
	cam.MoveForward(2)
	if !cam.Position.ApproxEqual(math3d.V3(0, 0, 3), 1e-12) {
		t.Errorf("after MoveForward = %v", cam.Position)
	}
	cam.MoveRight(1)
	if !cam.Position.ApproxEqual(math3d.V3(1, 0, 3), 1e-12) {
		t.Errorf("after MoveRight = %v", cam.Position)
	}
	cam.MoveUp(0.5)
	if !cam.Position.ApproxEqual(math3d.V3(1, 0.5, 3), 1e-12) {
		t.Errorf("after MoveUp = %v", cam.Position)
	}
}
