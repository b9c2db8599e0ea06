package control

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// Smoother eases a displayed camera toward a target camera with critically
// damped springs. Input moves Target in discrete steps; Update returns the
// pose to render.
type Smoother struct {
	Target render.Camera

	current render.Camera
	vel     [5]float64 // x, y, z, yaw, pitch
	spring  harmonica.Spring
}

// NewSmoother creates a smoother starting at rest on cam.
func NewSmoother(fps int, cam render.Camera) *Smoother {
	return &Smoother{
		Target:  cam,
		current: cam,
		// Frequency 6.0 settles in a few frames, damping 1.0 = no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update advances the springs one frame and returns the smoothed camera.
func (s *Smoother) Update() render.Camera {
	step := func(pos float64, i int, target float64) float64 {
		pos, s.vel[i] = s.spring.Update(pos, s.vel[i], target)
		return pos
	}

	s.current.Position = math3d.V3(
		step(s.current.Position.X, 0, s.Target.Position.X),
		step(s.current.Position.Y, 1, s.Target.Position.Y),
		step(s.current.Position.Z, 2, s.Target.Position.Z),
	)
	s.current.Yaw = step(s.current.Yaw, 3, s.Target.Yaw)
	s.current.Pitch = render.ClampPitch(step(s.current.Pitch, 4, s.Target.Pitch))
	return s.current
}

// Snap jumps to the target and stops all motion.
func (s *Smoother) Snap() {
	s.current = s.Target
	s.vel = [5]float64{}
}
