// Package model builds the placeable object: ideally by loading an
// asset file, otherwise by assembling a procedural stand-in. Either
// way the caller gets a usable prototype.
package model

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"arview/internal/components"
	"arview/internal/engine"
)

// supportedExtensions are the model formats raylib can load.
var supportedExtensions = map[string]bool{
	".obj":  true,
	".gltf": true,
	".glb":  true,
	".iqm":  true,
	".m3d":  true,
	".vox":  true,
}

type Provider struct {
	// AssetPath is the model file to try first. Empty skips straight
	// to the procedural build.
	AssetPath string
	// SpinDegPerSec is the rotation rate the prototype is tagged with.
	SpinDegPerSec float32

	log *slog.Logger
}

func NewProvider(assetPath string, spinDegPerSec float32, log *slog.Logger) *Provider {
	return &Provider{
		AssetPath:     assetPath,
		SpinDegPerSec: spinDegPerSec,
		log:           log,
	}
}

// Obtain returns the model prototype, never nil. An asset failure is
// logged and resolves to the procedural fallback; no error crosses
// this boundary. fromAsset reports which path produced the model, so
// the caller can word its status line.
func (p *Provider) Obtain() (node *engine.GameObject, fromAsset bool) {
	if node, err := p.loadAsset(); err == nil {
		p.log.Info("model loaded from asset", "path", p.AssetPath)
		return node, true
	} else if p.AssetPath != "" {
		p.log.Warn("asset load failed, using procedural model", "path", p.AssetPath, "err", err)
	}
	return p.buildProcedural(), false
}

func (p *Provider) loadAsset() (*engine.GameObject, error) {
	if err := ValidateAssetPath(p.AssetPath); err != nil {
		return nil, err
	}

	m := rl.LoadModel(p.AssetPath)
	if m.MeshCount == 0 {
		return nil, fmt.Errorf("load %s: no meshes", p.AssetPath)
	}

	node := engine.NewGameObject("Model")
	node.Tags = []string{"model"}
	node.AddComponent(components.NewModelRenderer(m, rl.White))
	node.AddComponent(components.NewSpinner(p.SpinDegPerSec))
	return node, nil
}

// ValidateAssetPath checks the path before handing it to the loader.
func ValidateAssetPath(path string) error {
	if path == "" {
		return fmt.Errorf("no asset path configured")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return fmt.Errorf("unsupported model format %q", ext)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat asset: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("asset path %s is a directory", path)
	}
	return nil
}

// buildProcedural assembles a potted flower from raylib primitives:
// a pot, a stem and a blossom, as children of one root so the whole
// thing clones and spins as a unit.
func (p *Provider) buildProcedural() *engine.GameObject {
	root := engine.NewGameObject("Model")
	root.Tags = []string{"model"}
	root.AddComponent(components.NewSpinner(p.SpinDegPerSec))

	pot := engine.NewGameObject("Pot")
	potModel := rl.LoadModelFromMesh(rl.GenMeshCylinder(0.35, 0.3, 12))
	pot.AddComponent(components.NewModelRenderer(potModel, rl.Brown))
	root.AddChild(pot)

	stem := engine.NewGameObject("Stem")
	stemModel := rl.LoadModelFromMesh(rl.GenMeshCylinder(0.05, 0.8, 8))
	stem.Transform.Position = rl.Vector3{Y: 0.3}
	stem.AddComponent(components.NewModelRenderer(stemModel, rl.DarkGreen))
	root.AddChild(stem)

	blossom := engine.NewGameObject("Blossom")
	blossomModel := rl.LoadModelFromMesh(rl.GenMeshSphere(0.25, 12, 12))
	blossom.Transform.Position = rl.Vector3{Y: 1.2}
	blossom.AddComponent(components.NewModelRenderer(blossomModel, rl.Gold))
	root.AddChild(blossom)

	p.log.Info("procedural model built")
	return root
}
