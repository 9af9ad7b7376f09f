package viewer

import (
	"fmt"
	"log/slog"

	"arview/internal/engine"
	"arview/internal/xr"
)

// SessionState is the AR session lifecycle.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionActive
)

func (s SessionState) String() string {
	if s == SessionActive {
		return "active"
	}
	return "idle"
}

// ARController coordinates the AR session: starting and stopping it,
// running the per-frame hit-test/reticle pipeline, and converting
// confirmed taps into placements. User stop and platform-initiated end
// funnel into the same cleanup.
type ARController struct {
	system    xr.System
	scene     *engine.Scene
	tracker   *xr.HitTestTracker
	reticle   *Reticle
	placer    *Placer
	prototype *engine.GameObject

	session xr.Session
	state   SessionState
	log     *slog.Logger

	// StatusChanged carries user-facing status text; the HUD listens.
	StatusChanged engine.EventWithArg[string]
}

func NewARController(system xr.System, scene *engine.Scene, reticle *Reticle, placer *Placer, log *slog.Logger) *ARController {
	return &ARController{
		system:  system,
		scene:   scene,
		tracker: xr.NewHitTestTracker(log),
		reticle: reticle,
		placer:  placer,
		log:     log,
	}
}

// SetPrototype hands the controller the preview model it removes while
// a session runs and restores afterwards.
func (c *ARController) SetPrototype(proto *engine.GameObject) {
	c.prototype = proto
	c.placer.SetPrototype(proto)
}

func (c *ARController) State() SessionState {
	return c.state
}

func (c *ARController) Session() xr.Session {
	return c.session
}

func (c *ARController) Supported() bool {
	return c.system.IsSessionSupported()
}

// StartAR transitions Idle -> Active. Unsupported platforms and
// rejected session requests leave the controller Idle with a
// user-visible message.
func (c *ARController) StartAR() {
	if c.state == SessionActive {
		return
	}

	if !c.system.IsSessionSupported() {
		c.log.Warn("AR not supported, staying in preview")
		c.setStatus("AR is not supported here. Preview only.")
		return
	}

	session, err := c.system.RequestSession()
	if err != nil {
		c.log.Error("AR session request failed", "err", err)
		c.setStatus(fmt.Sprintf("Could not start AR: %v", err))
		return
	}

	c.session = session
	c.state = SessionActive

	// The prototype is not itself placed; only confirmed copies are.
	c.scene.RemoveGameObject(c.prototype)

	session.OnEnd(c.handleSessionEnd)

	c.log.Info("AR session active")
	c.setStatus("Aim at a surface, then click to place the model.")
}

// StopAR requests session end. The cleanup itself happens in the
// session's end callback so that user stop and platform stop share it.
func (c *ARController) StopAR() {
	if c.state != SessionActive {
		return
	}
	if err := c.session.End(); err != nil {
		c.log.Error("ending AR session", "err", err)
		// Converge anyway; the session is unusable.
		c.handleSessionEnd()
	}
}

// handleSessionEnd is the single cleanup path. Idempotent: the session
// may end twice (user stop racing a platform end).
func (c *ARController) handleSessionEnd() {
	if c.state == SessionIdle {
		return
	}
	c.state = SessionIdle
	c.session = nil

	c.placer.Clear()
	c.tracker.Reset()
	c.reticle.Hide()

	if c.prototype != nil && !c.scene.Contains(c.prototype) {
		c.scene.AddGameObject(c.prototype)
	}

	c.log.Info("AR session ended")
	c.setStatus("Preview mode. Drag to orbit, scroll to zoom.")
}

// OnFrame runs the per-frame AR pipeline: pull the frame, keep the
// hit-test capability moving, query it, project the result onto the
// reticle. Querying precedes the reticle update, which precedes any
// confirm processed for this frame's input.
func (c *ARController) OnFrame() {
	if c.state != SessionActive {
		return
	}

	frame := c.session.Frame()
	c.tracker.OnFrame(c.session)

	pose, ok := c.tracker.Query(frame)
	c.reticle.Update(pose, ok)
}

// Confirm places one copy at the reticle. Outside an active session,
// or with no surface under the reticle, it is a no-op.
func (c *ARController) Confirm() {
	if c.state != SessionActive || !c.reticle.Visible() {
		return
	}
	c.placer.Place(c.reticle.Pose())
	c.setStatus(fmt.Sprintf("%d placed. Click to place another.", c.placer.Count()))
}

func (c *ARController) setStatus(s string) {
	c.StatusChanged.Invoke(s)
}
