// Package viewer wires the pieces into the running application: scene
// setup, the per-frame loop, and the AR session controls on top of it.
package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"arview/internal/camera"
	"arview/internal/components"
	"arview/internal/config"
	"arview/internal/engine"
	"arview/internal/model"
	"arview/internal/render"
	"arview/internal/sim"
)

const groundSize = 24.0

// viewRayFeeder is implemented by drivers that take the view-center
// ray from the host instead of a device camera.
type viewRayFeeder interface {
	SetViewRay(ray rl.Ray)
}

type Viewer struct {
	cfg *config.Config
	log *slog.Logger

	scene    *engine.Scene
	renderer *render.Renderer
	orbit    *camera.OrbitCamera
	ar       *ARController
	hud      *HUD
}

func New(cfg *config.Config, log *slog.Logger) *Viewer {
	return &Viewer{cfg: cfg, log: log}
}

// Run opens the window and blocks until the user closes it.
func (v *Viewer) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(v.cfg.Window.Width, v.cfg.Window.Height, v.cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	v.scene = engine.NewScene("Main")
	v.renderer = render.NewRenderer()
	v.renderer.Initialize(groundSize)

	sun := engine.NewGameObject("Sun")
	light := components.NewDirectionalLight()
	sun.AddComponent(light)
	v.scene.AddGameObject(sun)
	v.renderer.SetLight(light)

	ground := v.makeGround()
	v.scene.AddGameObject(ground)

	provider := model.NewProvider(v.cfg.Model.Asset, v.cfg.Model.SpinDegPerSec, v.log)
	prototype, fromAsset := provider.Obtain()
	v.renderer.ApplyShader(prototype)
	v.scene.AddGameObject(prototype)

	reticle := NewReticle(v.makeReticleNode())
	v.scene.AddGameObject(reticle.Node())

	placer := NewPlacer(v.scene, v.cfg.Model.SpinDegPerSec, v.log)
	driver := sim.NewDriver(sim.FromConfig(v.cfg), v.log)

	v.ar = NewARController(driver, v.scene, reticle, placer, v.log)
	v.ar.SetPrototype(prototype)

	v.hud = NewHUD()
	v.ar.StatusChanged.AddListener(v.hud.SetStatus)
	if fromAsset {
		v.hud.SetStatus("Model loaded. Drag to orbit, scroll to zoom.")
	} else {
		v.hud.SetStatus("Procedural model ready. Drag to orbit, scroll to zoom.")
	}

	v.orbit = camera.New(rl.Vector3{Y: 0.6})

	v.scene.Start()

	for !rl.WindowShouldClose() {
		v.update()
		v.draw()
	}

	if v.ar.State() == SessionActive {
		v.ar.StopAR()
	}
	v.renderer.Unload(v.scene.GameObjects)
	return nil
}

func (v *Viewer) update() {
	deltaTime := rl.GetFrameTime()

	v.orbit.Update(deltaTime)

	if v.ar.State() == SessionActive {
		if feeder, ok := v.ar.Session().(viewRayFeeder); ok {
			feeder.SetViewRay(v.orbit.ViewRay())
		}
		v.ar.OnFrame()

		if v.confirmPressed() {
			v.ar.Confirm()
		}
	}

	v.scene.Update(deltaTime)
}

// confirmPressed is edge-triggered: one placement per discrete tap,
// and clicks on the HUD button never count.
func (v *Viewer) confirmPressed() bool {
	if rl.IsKeyPressed(rl.KeySpace) {
		return true
	}
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return false
	}
	return !v.hud.ButtonContains(rl.GetMousePosition())
}

func (v *Viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(18, 18, 24, 255))

	v.renderer.DrawShadowMap(v.scene.GameObjects)

	cam := v.orbit.GetRaylibCamera()
	rl.BeginMode3D(cam)
	v.renderer.DrawWithShadows(cam.Position, v.scene.GameObjects)
	rl.EndMode3D()

	startAR, stopAR := v.hud.Draw(v.ar.State() == SessionActive, v.ar.Supported())
	if startAR {
		v.ar.StartAR()
	}
	if stopAR {
		v.ar.StopAR()
	}

	rl.EndDrawing()
}

func (v *Viewer) makeGround() *engine.GameObject {
	ground := engine.NewGameObject("Ground")
	groundModel := rl.LoadModelFromMesh(rl.GenMeshPlane(groundSize, groundSize, 1, 1))
	mr := components.NewModelRenderer(groundModel, rl.LightGray)
	ground.AddComponent(mr)
	mr.SetShader(v.renderer.Shader)
	return ground
}

// makeReticleNode builds the ring indicator. The pose lands on the
// root; the child carries the lie-flat correction for the torus mesh.
func (v *Viewer) makeReticleNode() *engine.GameObject {
	root := engine.NewGameObject("Reticle")

	ring := engine.NewGameObject("Ring")
	ringModel := rl.LoadModelFromMesh(rl.GenMeshTorus(0.15, 0.03, 24, 24))
	ring.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, 90*rl.Deg2rad)
	mr := components.NewModelRenderer(ringModel, rl.NewColor(240, 240, 240, 255))
	ring.AddComponent(mr)
	mr.SetShader(v.renderer.Shader)
	root.AddChild(ring)

	return root
}
