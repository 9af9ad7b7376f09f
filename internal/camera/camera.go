package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point: drag to orbit, wheel to zoom.
// This is the preview-mode camera; during an AR session it doubles as
// the simulated device camera.
type OrbitCamera struct {
	Target    rl.Vector3
	Distance  float32
	Yaw       float32 // degrees
	Pitch     float32 // degrees
	LookSpeed float32
	ZoomSpeed float32

	MinDistance float32
	MaxDistance float32
}

func New(target rl.Vector3) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    6.0,
		Yaw:         -45.0,
		Pitch:       -25.0,
		LookSpeed:   0.25,
		ZoomSpeed:   0.8,
		MinDistance: 1.5,
		MaxDistance: 40.0,
	}
}

func (c *OrbitCamera) Update(deltaTime float32) {
	if rl.IsMouseButtonDown(rl.MouseRightButton) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		mouseDelta := rl.GetMouseDelta()
		c.Yaw += mouseDelta.X * c.LookSpeed
		c.Pitch -= mouseDelta.Y * c.LookSpeed
	}

	// Clamp pitch short of the poles so the up vector stays sane
	if c.Pitch > 85 {
		c.Pitch = 85
	}
	if c.Pitch < -85 {
		c.Pitch = -85
	}

	c.Distance -= rl.GetMouseWheelMove() * c.ZoomSpeed
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}

	// WASD pans the target across the ground plane
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward := rl.Vector3{X: float32(-math.Cos(yawRad)), Z: float32(-math.Sin(yawRad))}
	right := rl.Vector3{X: float32(-math.Sin(yawRad)), Z: float32(math.Cos(yawRad))}

	panSpeed := c.Distance * 0.6 * deltaTime
	if rl.IsKeyDown(rl.KeyW) {
		c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(forward, panSpeed))
	}
	if rl.IsKeyDown(rl.KeyS) {
		c.Target = rl.Vector3Subtract(c.Target, rl.Vector3Scale(forward, panSpeed))
	}
	if rl.IsKeyDown(rl.KeyA) {
		c.Target = rl.Vector3Subtract(c.Target, rl.Vector3Scale(right, panSpeed))
	}
	if rl.IsKeyDown(rl.KeyD) {
		c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(right, panSpeed))
	}
}

// Position computes the camera eye point from the spherical orbit.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	horiz := float64(c.Distance) * math.Cos(pitchRad)
	return rl.Vector3{
		X: c.Target.X + float32(horiz*math.Cos(yawRad)),
		Y: c.Target.Y - float32(float64(c.Distance)*math.Sin(pitchRad)),
		Z: c.Target.Z + float32(horiz*math.Sin(yawRad)),
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// ViewRay returns the ray from the eye through the target, the
// "screen center" ray hit testing is driven by.
func (c *OrbitCamera) ViewRay() rl.Ray {
	pos := c.Position()
	dir := rl.Vector3Normalize(rl.Vector3Subtract(c.Target, pos))
	return rl.Ray{Position: pos, Direction: dir}
}
