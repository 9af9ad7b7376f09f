package xr

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Pose is a position plus a unit-quaternion orientation in the
// session's reference space.
type Pose struct {
	Position    rl.Vector3
	Orientation rl.Quaternion
}

// IdentityPose returns the origin pose.
func IdentityPose() Pose {
	return Pose{Orientation: rl.QuaternionIdentity()}
}

// PoseFromMatrix derives a pose from a platform-reported column-major
// transform matrix. This is the only way poses enter the system;
// orientations are never assembled by hand.
func PoseFromMatrix(m rl.Matrix) Pose {
	return Pose{
		Position:    rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14},
		Orientation: rl.QuaternionNormalize(rl.QuaternionFromMatrix(m)),
	}
}

// Matrix rebuilds the transform matrix for the pose.
func (p Pose) Matrix() rl.Matrix {
	rot := rl.QuaternionToMatrix(p.Orientation)
	trans := rl.MatrixTranslate(p.Position.X, p.Position.Y, p.Position.Z)
	return rl.MatrixMultiply(rot, trans)
}

// ApproxEqual reports whether two poses match within tol, treating q
// and -q as the same orientation.
func (p Pose) ApproxEqual(other Pose, tol float32) bool {
	if !approx(p.Position.X, other.Position.X, tol) ||
		!approx(p.Position.Y, other.Position.Y, tol) ||
		!approx(p.Position.Z, other.Position.Z, tol) {
		return false
	}
	dot := p.Orientation.X*other.Orientation.X +
		p.Orientation.Y*other.Orientation.Y +
		p.Orientation.Z*other.Orientation.Z +
		p.Orientation.W*other.Orientation.W
	return float32(math.Abs(float64(dot))) > 1-tol
}

func approx(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}
