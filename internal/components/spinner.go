package components

import (
	"arview/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spinner rotates its GameObject around the local Y axis at a fixed
// rate. Every placed copy gets its own Spinner, so copies animate
// independently of each other and of the prototype.
type Spinner struct {
	engine.BaseComponent
	// DegPerSec is the rotation rate in degrees per second.
	DegPerSec float32
}

func NewSpinner(degPerSec float32) *Spinner {
	return &Spinner{DegPerSec: degPerSec}
}

func (s *Spinner) Update(deltaTime float32) {
	g := s.GetGameObject()
	if g == nil {
		return
	}
	step := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, s.DegPerSec*deltaTime*rl.Deg2rad)
	g.Transform.Rotation = rl.QuaternionNormalize(
		rl.QuaternionMultiply(g.Transform.Rotation, step))
}

func (s *Spinner) Clone() engine.Component {
	return &Spinner{DegPerSec: s.DegPerSec}
}
