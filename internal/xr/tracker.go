package xr

import (
	"log/slog"
	"sync"
)

// TrackerState is the lifecycle of the session's hit-test capability.
type TrackerState int

const (
	// TrackerIdle: no source and no request in flight.
	TrackerIdle TrackerState = iota
	// TrackerRequesting: exactly one source request is in flight.
	TrackerRequesting
	// TrackerReady: the source is acquired and queryable.
	TrackerReady
	// TrackerUnavailable: the platform refused hit testing; stays off
	// for the rest of the session.
	TrackerUnavailable
)

func (s TrackerState) String() string {
	switch s {
	case TrackerIdle:
		return "idle"
	case TrackerRequesting:
		return "requesting"
	case TrackerReady:
		return "ready"
	case TrackerUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// HitTestTracker manages the hit-test capability for one AR session at
// a time: lazy one-shot acquisition, per-frame querying, and reset at
// session end. The request resolves asynchronously; its completion is
// matched against a generation counter so a resolution that lands
// after Reset is discarded instead of resurrecting a dead session's
// state.
type HitTestTracker struct {
	mu     sync.Mutex
	state  TrackerState
	gen    uint64
	source HitTestSource
	log    *slog.Logger
}

func NewHitTestTracker(log *slog.Logger) *HitTestTracker {
	return &HitTestTracker{log: log}
}

func (t *HitTestTracker) State() TrackerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// OnFrame issues the capability request on the first frame that finds
// the tracker idle. Frames arriving while the request is in flight, or
// after it settled, change nothing.
func (t *HitTestTracker) OnFrame(session Session) {
	if session == nil {
		return
	}

	t.mu.Lock()
	if t.state != TrackerIdle {
		t.mu.Unlock()
		return
	}
	t.state = TrackerRequesting
	gen := t.gen
	t.mu.Unlock()

	session.RequestHitTestSource(func(src HitTestSource, err error) {
		t.deliver(gen, src, err)
	})
}

func (t *HitTestTracker) deliver(gen uint64, src HitTestSource, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		// The session this request belonged to is gone.
		if src != nil {
			src.Cancel()
		}
		t.log.Debug("discarding stale hit-test source", "gen", gen)
		return
	}

	if err != nil {
		t.state = TrackerUnavailable
		t.log.Warn("hit testing unavailable for this session", "err", err)
		return
	}

	t.source = src
	t.state = TrackerReady
	t.log.Debug("hit-test source acquired")
}

// Query returns the pose of the frame's first resolvable hit result,
// or ok=false when the tracker is not ready or nothing was hit.
func (t *HitTestTracker) Query(frame Frame) (Pose, bool) {
	t.mu.Lock()
	state, src := t.state, t.source
	t.mu.Unlock()

	if state != TrackerReady || frame == nil {
		return Pose{}, false
	}

	for _, hit := range frame.HitTestResults(src) {
		if pose, ok := hit.Pose(); ok {
			return pose, true
		}
	}
	return Pose{}, false
}

// Reset invalidates the cached source and any in-flight request,
// returning the tracker to idle for the next session. Idempotent.
func (t *HitTestTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.source != nil {
		t.source.Cancel()
		t.source = nil
	}
	t.state = TrackerIdle
}
