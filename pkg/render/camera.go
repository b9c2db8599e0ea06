package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// maxPitch keeps the camera just short of looking straight up or down.
const maxPitch = math.Pi/2 - 0.01

// Camera is a first-person camera: a position plus yaw and pitch.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Yaw   float64 // Rotation around Y axis (look left/right)
	Pitch float64 // Rotation around X axis (look up/down)
}

// NewCamera creates a camera at (0, 0, 5) looking down -Z.
func NewCamera() *Camera {
	return &Camera{Position: math3d.V3(0, 0, 5)}
}

// ViewMatrix returns RotateX(-Pitch)·RotateY(-Yaw)·Translate(-Position).
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.RotateX(-c.Pitch).
		Mul(math3d.RotateY(-c.Yaw)).
		Mul(math3d.Translate(c.Position.Negate()))
}

// WorldRotation returns the camera orientation in world space,
// RotateY(Yaw)·RotateX(Pitch).
func (c *Camera) WorldRotation() math3d.Mat4 {
	return math3d.RotateY(c.Yaw).Mul(math3d.RotateX(c.Pitch))
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 {
	// Forward is -Z in camera space, rotated by yaw and pitch
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(
		math.Cos(c.Yaw),
		0,
		-math.Sin(c.Yaw),
	)
}

// Up returns the camera's up vector, +Y rotated by the camera orientation.
func (c *Camera) Up() math3d.Vec3 {
	return c.WorldRotation().MulVec3Dir(math3d.Up())
}

// Move translates the camera by delta in world space.
func (c *Camera) Move(delta math3d.Vec3) {
	c.Position = c.Position.Add(delta)
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Move(c.Forward().Scale(distance))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Move(c.Right().Scale(distance))
}

// MoveUp moves the camera along its own up vector.
func (c *Camera) MoveUp(distance float64) {
	c.Move(c.Up().Scale(distance))
}

// Rotate adds the given angles (radians) and clamps pitch.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw
	c.Pitch = ClampPitch(c.Pitch)
}

// ClampPitch limits a pitch angle to just inside ±π/2.
func ClampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}

// LookAt makes the camera look at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir == (math3d.Vec3{}) {
		return
	}

	c.Pitch = ClampPitch(math.Asin(dir.Y))
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
}
