package viewer

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudButtonWidth  = 120
	hudButtonHeight = 32
	hudMargin       = 12
	hudStatusHeight = 26
)

// HUD draws the status bar, the AR start/stop control and the aim
// crosshair. It keeps no state beyond the last status line.
type HUD struct {
	status string
}

func NewHUD() *HUD {
	return &HUD{status: "Loading..."}
}

func (h *HUD) SetStatus(s string) {
	h.status = s
}

// Draw renders the overlay and reports button presses for this frame.
func (h *HUD) Draw(arActive, arSupported bool) (startAR, stopAR bool) {
	w := float32(rl.GetScreenWidth())
	hgt := float32(rl.GetScreenHeight())

	gui.StatusBar(rl.NewRectangle(0, hgt-hudStatusHeight, w, hudStatusHeight), h.status)

	button := rl.NewRectangle(w-hudButtonWidth-hudMargin, hudMargin, hudButtonWidth, hudButtonHeight)
	switch {
	case arActive:
		stopAR = gui.Button(button, "Stop AR")
	case arSupported:
		startAR = gui.Button(button, "Start AR")
	default:
		gui.Label(button, "AR unavailable")
	}

	if arActive {
		h.drawCrosshair(w/2, (hgt-hudStatusHeight)/2)
	}
	return startAR, stopAR
}

// ButtonContains reports whether the point sits on the AR control, so
// a click on the button never doubles as a placement tap.
func (h *HUD) ButtonContains(p rl.Vector2) bool {
	w := float32(rl.GetScreenWidth())
	button := rl.NewRectangle(w-hudButtonWidth-hudMargin, hudMargin, hudButtonWidth, hudButtonHeight)
	return rl.CheckCollisionPointRec(p, button)
}

func (h *HUD) drawCrosshair(x, y float32) {
	const arm = 8
	c := rl.NewColor(255, 255, 255, 200)
	rl.DrawLineV(rl.Vector2{X: x - arm, Y: y}, rl.Vector2{X: x + arm, Y: y}, c)
	rl.DrawLineV(rl.Vector2{X: x, Y: y - arm}, rl.Vector2{X: x, Y: y + arm}, c)
}
