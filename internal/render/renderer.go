// Package render owns the draw passes: a depth-only shadow pass from
// the light's view, then the lit pass with the shadow map bound.
package render

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"arview/internal/components"
	"arview/internal/engine"
)

const ShadowMapResolution = 2048

const (
	ShadowNear float32 = 1.0
	ShadowFar  float32 = 150.0
)

type Renderer struct {
	Shader      rl.Shader
	ShadowMap   rl.RenderTexture2D
	Light       *components.DirectionalLight
	LightCamera rl.Camera3D
	MatLightVP  rl.Matrix
	groundSize  float32
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Initialize loads GPU resources; requires the window context.
func (r *Renderer) Initialize(groundSize float32) {
	r.groundSize = groundSize

	r.Shader = rl.LoadShader("assets/shaders/lighting.vs", "assets/shaders/lighting.fs")

	// Map the normal map to texture slot 1 so raylib binds it
	locs := unsafe.Slice(r.Shader.Locs, rl.ShaderLocMapCubemap+1)
	locs[rl.ShaderLocMapNormal] = rl.GetShaderLocation(r.Shader, "texture1")

	r.ShadowMap = loadShadowmapRenderTexture(ShadowMapResolution, ShadowMapResolution)
}

func (r *Renderer) SetLight(light *components.DirectionalLight) {
	r.Light = light
	r.LightCamera = light.GetLightCamera(r.groundSize + 20)
	r.updateShaderUniforms()
}

func (r *Renderer) updateShaderUniforms() {
	if r.Light == nil {
		return
	}

	lightDirLoc := rl.GetShaderLocation(r.Shader, "lightDir")
	rl.SetShaderValue(r.Shader, lightDirLoc, []float32{r.Light.Direction.X, r.Light.Direction.Y, r.Light.Direction.Z}, rl.ShaderUniformVec3)

	lightColorLoc := rl.GetShaderLocation(r.Shader, "lightColor")
	rl.SetShaderValue(r.Shader, lightColorLoc, r.Light.GetColorFloat(), rl.ShaderUniformVec4)

	ambientLoc := rl.GetShaderLocation(r.Shader, "ambient")
	rl.SetShaderValue(r.Shader, ambientLoc, r.Light.GetAmbientFloat(), rl.ShaderUniformVec4)
}

func (r *Renderer) DrawShadowMap(gameObjects []*engine.GameObject) {
	rl.BeginTextureMode(r.ShadowMap)
	rl.ClearBackground(rl.White)

	rl.BeginMode3D(r.LightCamera)

	halfSize := r.LightCamera.Fovy / 2.0
	shadowProj := rl.MatrixOrtho(
		-halfSize, halfSize,
		-halfSize, halfSize,
		ShadowNear, ShadowFar,
	)
	rl.SetMatrixProjection(shadowProj)

	lightView := rl.GetMatrixModelview()
	lightProj := rl.GetMatrixProjection()

	rl.SetCullFace(0)
	r.drawScene(gameObjects)
	rl.SetCullFace(1)

	rl.EndMode3D()
	rl.EndTextureMode()

	rl.Viewport(0, 0, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))

	r.MatLightVP = rl.MatrixMultiply(lightView, lightProj)
}

func (r *Renderer) DrawWithShadows(cameraPos rl.Vector3, gameObjects []*engine.GameObject) {
	viewPosLoc := rl.GetShaderLocation(r.Shader, "viewPos")
	rl.SetShaderValue(r.Shader, viewPosLoc, []float32{cameraPos.X, cameraPos.Y, cameraPos.Z}, rl.ShaderUniformVec3)

	lightVPLoc := rl.GetShaderLocation(r.Shader, "matLightVP")
	rl.SetShaderValueMatrix(r.Shader, lightVPLoc, r.MatLightVP)

	shadowMapLoc := rl.GetShaderLocation(r.Shader, "shadowMap")
	rl.EnableShader(r.Shader.ID)

	textureSlot := int32(10)
	rl.ActiveTextureSlot(textureSlot)
	rl.EnableTexture(r.ShadowMap.Depth.ID)
	rl.SetUniform(shadowMapLoc, []int32{textureSlot}, int32(rl.ShaderUniformInt), 1)

	r.drawScene(gameObjects)
}

// drawScene draws every Drawable component, descending into children
// so multi-part models render whole.
func (r *Renderer) drawScene(gameObjects []*engine.GameObject) {
	for _, g := range gameObjects {
		r.drawObject(g)
	}
}

func (r *Renderer) drawObject(g *engine.GameObject) {
	if !g.Active {
		return
	}
	for _, c := range g.Components() {
		if d, ok := c.(engine.Drawable); ok {
			d.Draw()
		}
	}
	for _, child := range g.Children {
		r.drawObject(child)
	}
}

// ApplyShader hooks the lighting shader onto every renderer in the
// subtree. Called once per object after construction.
func (r *Renderer) ApplyShader(g *engine.GameObject) {
	if mr := engine.GetComponent[*components.ModelRenderer](g); mr != nil {
		mr.SetShader(r.Shader)
	}
	for _, child := range g.Children {
		r.ApplyShader(child)
	}
}

func (r *Renderer) Unload(gameObjects []*engine.GameObject) {
	rl.UnloadShader(r.Shader)
	rl.UnloadRenderTexture(r.ShadowMap)

	for _, g := range gameObjects {
		unloadObject(g)
	}
}

func unloadObject(g *engine.GameObject) {
	if mr := engine.GetComponent[*components.ModelRenderer](g); mr != nil {
		mr.Unload()
	}
	for _, child := range g.Children {
		unloadObject(child)
	}
}

func loadShadowmapRenderTexture(width, height int32) rl.RenderTexture2D {
	target := rl.RenderTexture2D{}

	target.ID = rl.LoadFramebuffer()
	target.Texture.Width = width
	target.Texture.Height = height

	if target.ID > 0 {
		rl.EnableFramebuffer(target.ID)

		target.Depth.ID = rl.LoadTextureDepth(width, height, false)
		target.Depth.Width = width
		target.Depth.Height = height
		target.Depth.Format = 19
		target.Depth.Mipmaps = 1

		rl.FramebufferAttach(target.ID, target.Depth.ID, rl.AttachmentDepth, rl.AttachmentTexture2d, 0)

		rl.DisableFramebuffer()
	}

	return target
}
