// Package xr abstracts the platform AR capability: session lifecycle,
// per-frame hit testing against detected real-world surfaces, and the
// poses those hits resolve to. Drivers (the simulated one in
// internal/sim, or a real platform binding) implement these interfaces;
// the viewer only ever talks to them through this package.
package xr

import "errors"

var (
	// ErrNotSupported is reported when the platform lacks AR sessions
	// or hit testing.
	ErrNotSupported = errors.New("xr: not supported")
	// ErrSessionEnded is reported for operations against a session
	// that has already ended.
	ErrSessionEnded = errors.New("xr: session ended")
)

// System is the platform entry point.
type System interface {
	// IsSessionSupported reports whether an AR session can be started
	// at all. Callers must check this before RequestSession.
	IsSessionSupported() bool
	// RequestSession starts an AR session. The platform may refuse
	// even when IsSessionSupported returned true.
	RequestSession() (Session, error)
}

// Session is one active AR session.
type Session interface {
	// Frame advances the session and returns the current frame
	// snapshot. Returns nil once the session has ended.
	Frame() Frame
	// RequestHitTestSource asynchronously acquires the session's
	// standing hit-test query. deliver fires exactly once, possibly on
	// another goroutine, and possibly after the session has ended.
	RequestHitTestSource(deliver func(HitTestSource, error))
	// OnEnd registers a callback for session end, both user-requested
	// and platform-initiated. Callbacks fire at most once.
	OnEnd(fn func())
	// End terminates the session. Idempotent.
	End() error
}

// Frame is a single-frame snapshot of tracking state.
type Frame interface {
	// HitTestResults returns this frame's surface intersections for
	// the given source, in platform order (nearest first).
	HitTestResults(src HitTestSource) []HitResult
}

// HitResult is one candidate surface intersection.
type HitResult interface {
	// Pose resolves the hit to a pose in the session's reference
	// space. ok is false when tracking could not resolve it.
	Pose() (Pose, bool)
}

// HitTestSource is the session-scoped hit-test capability handle.
type HitTestSource interface {
	// Cancel releases the source. Further queries return nothing.
	Cancel()
}
