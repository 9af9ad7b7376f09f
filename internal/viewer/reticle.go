package viewer

import (
	"arview/internal/engine"
	"arview/internal/xr"
)

// Reticle is the surface indicator: a single scene node whose pose and
// visibility mirror the latest hit-test result. It projects exactly
// what the current frame reported; there is no smoothing and no
// history. The node is created once and reused across sessions.
type Reticle struct {
	node *engine.GameObject
}

func NewReticle(node *engine.GameObject) *Reticle {
	node.Active = false
	return &Reticle{node: node}
}

// Update stamps the frame's hit pose, or hides the reticle when the
// frame produced none.
func (r *Reticle) Update(pose xr.Pose, ok bool) {
	if !ok {
		r.node.Active = false
		return
	}
	r.node.Transform.Position = pose.Position
	r.node.Transform.Rotation = pose.Orientation
	r.node.Active = true
}

func (r *Reticle) Hide() {
	r.node.Active = false
}

func (r *Reticle) Visible() bool {
	return r.node.Active
}

// Pose returns the reticle's current pose. Only meaningful while
// visible.
func (r *Reticle) Pose() xr.Pose {
	return xr.Pose{
		Position:    r.node.Transform.Position,
		Orientation: r.node.Transform.Rotation,
	}
}

func (r *Reticle) Node() *engine.GameObject {
	return r.node
}
