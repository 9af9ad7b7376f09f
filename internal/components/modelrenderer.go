package components

import (
	"arview/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModelRenderer draws a raylib model at its GameObject's world
// transform. Clones share the underlying GPU model and differ only in
// transform and tint, which is what makes placed copies cheap.
type ModelRenderer struct {
	engine.BaseComponent
	Model  rl.Model
	Color  rl.Color
	shader rl.Shader
	// ownsModel marks the renderer that should unload the GPU model.
	// Clones never own it.
	ownsModel bool
}

func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model:     model,
		Color:     color,
		ownsModel: true,
	}
}

func (m *ModelRenderer) SetShader(shader rl.Shader) {
	m.shader = shader
	m.Model.Materials.Shader = shader
	m.Model.Materials.Maps.Color = m.Color
}

// Clone shares the model handle with the original.
func (m *ModelRenderer) Clone() engine.Component {
	return &ModelRenderer{
		Model:     m.Model,
		Color:     m.Color,
		shader:    m.shader,
		ownsModel: false,
	}
}

func (m *ModelRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	scale := g.WorldScale()
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	rotMatrix := rl.QuaternionToMatrix(g.WorldRotation())
	pos := g.WorldPosition()
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	// Combine: scale -> rotate -> translate
	m.Model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)

	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, rl.White)
}

func (m *ModelRenderer) Unload() {
	if m.ownsModel {
		rl.UnloadModel(m.Model)
	}
}
