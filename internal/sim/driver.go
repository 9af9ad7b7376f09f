// Package sim is a desktop stand-in for a real AR platform. Surfaces
// come from config, hit testing is ray casting from the view center,
// and hit-test source acquisition resolves a configurable number of
// frames late so the async path behaves like the real thing.
package sim

import (
	"log/slog"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"arview/internal/config"
	"arview/internal/engine"
	"arview/internal/xr"
)

// Options configures the driver.
type Options struct {
	// Supported toggles AR session support entirely.
	Supported bool
	// HitTestAvailable toggles hit-test source acquisition.
	HitTestAvailable bool
	// LatencyFrames is how many frames a source request stays pending.
	LatencyFrames int
	// Surfaces are the detectable world rectangles.
	Surfaces []Surface
}

// FromConfig maps the viewer config onto driver options.
func FromConfig(cfg *config.Config) Options {
	opts := Options{
		Supported:        cfg.SimSupported(),
		HitTestAvailable: cfg.Sim.HitTest == "supported",
		LatencyFrames:    cfg.Sim.LatencyFrames,
	}
	for _, s := range cfg.Sim.Surfaces {
		opts.Surfaces = append(opts.Surfaces, Surface{
			Center: rl.Vector3{X: s.Center[0], Y: s.Center[1], Z: s.Center[2]},
			Width:  s.Width,
			Depth:  s.Depth,
		})
	}
	return opts
}

var (
	_ xr.System  = (*Driver)(nil)
	_ xr.Session = (*Session)(nil)
)

// Driver implements xr.System.
type Driver struct {
	opts Options
	log  *slog.Logger
}

func NewDriver(opts Options, log *slog.Logger) *Driver {
	return &Driver{opts: opts, log: log}
}

func (d *Driver) IsSessionSupported() bool {
	return d.opts.Supported
}

func (d *Driver) RequestSession() (xr.Session, error) {
	if !d.opts.Supported {
		return nil, xr.ErrNotSupported
	}
	d.log.Info("simulated AR session started",
		"surfaces", len(d.opts.Surfaces),
		"hit_test", d.opts.HitTestAvailable)
	return newSession(d), nil
}

type pendingRequest struct {
	due     int
	deliver func(xr.HitTestSource, error)
}

// Session implements xr.Session.
type Session struct {
	drv *Driver

	mu       sync.Mutex
	ended    bool
	frameNum int
	viewRay  rl.Ray
	pending  []pendingRequest
	onEnd    engine.Event
}

func newSession(d *Driver) *Session {
	return &Session{drv: d}
}

// SetViewRay feeds the session the current view-center ray. The viewer
// calls this once per render tick before pulling the frame; a real
// driver would read the device camera instead.
func (s *Session) SetViewRay(ray rl.Ray) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewRay = ray
}

// Frame advances the simulation one tick: due source requests resolve,
// and the view ray is cast against all surfaces.
func (s *Session) Frame() xr.Frame {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return nil
	}
	s.frameNum++

	var due []pendingRequest
	remaining := s.pending[:0]
	for _, p := range s.pending {
		if s.frameNum >= p.due {
			due = append(due, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	s.pending = remaining

	hits := castAll(s.viewRay, s.drv.opts.Surfaces)
	frame := &simFrame{session: s, hits: hits}
	s.mu.Unlock()

	// Deliver outside the lock; the tracker takes its own.
	for _, p := range due {
		if s.drv.opts.HitTestAvailable {
			p.deliver(&Source{session: s}, nil)
		} else {
			p.deliver(nil, xr.ErrNotSupported)
		}
	}
	return frame
}

func (s *Session) RequestHitTestSource(deliver func(xr.HitTestSource, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		// A request racing session end never resolves; the caller's
		// generation guard covers late deliveries anyway.
		return
	}
	s.pending = append(s.pending, pendingRequest{
		due:     s.frameNum + s.drv.opts.LatencyFrames,
		deliver: deliver,
	})
}

func (s *Session) OnEnd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd.AddListener(fn)
}

func (s *Session) End() error {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return nil
	}
	s.ended = true
	s.pending = nil
	s.mu.Unlock()

	s.drv.log.Info("simulated AR session ended")
	s.onEnd.Invoke()
	return nil
}

// Source implements xr.HitTestSource.
type Source struct {
	session   *Session
	mu        sync.Mutex
	cancelled bool
}

func (s *Source) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
}

func (s *Source) valid(session *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.cancelled && s.session == session
}

type hit struct {
	matrix   rl.Matrix
	distance float32
}

func (h hit) Pose() (xr.Pose, bool) {
	return xr.PoseFromMatrix(h.matrix), true
}

type simFrame struct {
	session *Session
	hits    []hit
}

func (f *simFrame) HitTestResults(src xr.HitTestSource) []xr.HitResult {
	source, ok := src.(*Source)
	if !ok || !source.valid(f.session) {
		return nil
	}
	results := make([]xr.HitResult, len(f.hits))
	for i, h := range f.hits {
		results[i] = h
	}
	return results
}
