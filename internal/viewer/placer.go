package viewer

import (
	"fmt"
	"log/slog"

	"arview/internal/components"
	"arview/internal/engine"
	"arview/internal/xr"
)

// Placer owns the placed copies of the prototype. Copies are
// independent after creation: each carries its own transform and its
// own Spinner, and nothing refers back to the reticle.
type Placer struct {
	scene     *engine.Scene
	prototype *engine.GameObject
	spinRate  float32
	placed    []*engine.GameObject
	log       *slog.Logger
}

func NewPlacer(scene *engine.Scene, spinRate float32, log *slog.Logger) *Placer {
	return &Placer{
		scene:    scene,
		spinRate: spinRate,
		log:      log,
	}
}

func (p *Placer) SetPrototype(proto *engine.GameObject) {
	p.prototype = proto
}

// Place clones the prototype at the given pose and inserts it into the
// scene. One call, one instance.
func (p *Placer) Place(pose xr.Pose) *engine.GameObject {
	if p.prototype == nil {
		return nil
	}

	clone := p.prototype.Clone()
	clone.Name = fmt.Sprintf("Placed_%d", len(p.placed)+1)
	clone.Tags = []string{"placed"}
	clone.Transform.Position = pose.Position
	clone.Transform.Rotation = pose.Orientation

	if spin := engine.GetComponent[*components.Spinner](clone); spin != nil {
		spin.DegPerSec = p.spinRate
	} else {
		clone.AddComponent(components.NewSpinner(p.spinRate))
	}

	p.placed = append(p.placed, clone)
	p.scene.AddGameObject(clone)
	clone.Start()

	p.log.Debug("placed instance", "name", clone.Name,
		"x", pose.Position.X, "y", pose.Position.Y, "z", pose.Position.Z)
	return clone
}

// Clear removes every placed instance from the scene and empties the
// collection. Runs at session end.
func (p *Placer) Clear() {
	for _, g := range p.placed {
		p.scene.RemoveGameObject(g)
	}
	p.placed = nil
}

func (p *Placer) Count() int {
	return len(p.placed)
}

func (p *Placer) Instances() []*engine.GameObject {
	return p.placed
}
