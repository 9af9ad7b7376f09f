package xr

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arview/internal/logging"
)

// fakeSession records hit-test source requests and lets the test
// resolve them whenever it wants, mimicking the multi-frame latency of
// the real platform.
type fakeSession struct {
	requests []func(HitTestSource, error)
}

func (s *fakeSession) Frame() Frame { return nil }

func (s *fakeSession) RequestHitTestSource(deliver func(HitTestSource, error)) {
	s.requests = append(s.requests, deliver)
}

func (s *fakeSession) OnEnd(fn func()) {}
func (s *fakeSession) End() error      { return nil }

func (s *fakeSession) resolve(t *testing.T, i int, src HitTestSource, err error) {
	t.Helper()
	require.Greater(t, len(s.requests), i, "no request %d to resolve", i)
	s.requests[i](src, err)
}

type fakeSource struct {
	cancelled bool
}

func (s *fakeSource) Cancel() { s.cancelled = true }

type fakeHit struct {
	pose Pose
	ok   bool
}

func (h fakeHit) Pose() (Pose, bool) { return h.pose, h.ok }

type fakeFrame struct {
	hits []HitResult
}

func (f *fakeFrame) HitTestResults(src HitTestSource) []HitResult { return f.hits }

func poseAt(x, y, z float32) Pose {
	return PoseFromMatrix(rl.MatrixTranslate(x, y, z))
}

func TestTrackerRequestsOnceAcrossFrames(t *testing.T) {
	tracker := NewHitTestTracker(logging.NewNop())
	session := &fakeSession{}

	for range 10 {
		tracker.OnFrame(session)
	}

	assert.Len(t, session.requests, 1, "repeated frames must not re-issue the request")
	assert.Equal(t, TrackerRequesting, tracker.State())
}

func TestTrackerBecomesReady(t *testing.T) {
	tracker := NewHitTestTracker(logging.NewNop())
	session := &fakeSession{}
	src := &fakeSource{}

	tracker.OnFrame(session)
	session.resolve(t, 0, src, nil)

	assert.Equal(t, TrackerReady, tracker.State())

	// Once settled, further frames do nothing.
	tracker.OnFrame(session)
	assert.Len(t, session.requests, 1)
}

func TestTrackerUnavailableOnFailure(t *testing.T) {
	tracker := NewHitTestTracker(logging.NewNop())
	session := &fakeSession{}

	tracker.OnFrame(session)
	session.resolve(t, 0, nil, ErrNotSupported)

	assert.Equal(t, TrackerUnavailable, tracker.State())

	// No retry for the remainder of the session.
	tracker.OnFrame(session)
	assert.Len(t, session.requests, 1)
}

func TestTrackerQueryBeforeReadyIsEmpty(t *testing.T) {
	tracker := NewHitTestTracker(logging.NewNop())
	session := &fakeSession{}
	frame := &fakeFrame{hits: []HitResult{fakeHit{pose: poseAt(1, 0, 0), ok: true}}}

	_, ok := tracker.Query(frame)
	assert.False(t, ok, "idle tracker must not report hits")

	tracker.OnFrame(session)
	_, ok = tracker.Query(frame)
	assert.False(t, ok, "requesting tracker must not report hits")
}

func TestTrackerQueryFirstResolvableHit(t *testing.T) {
	tracker := NewHitTestTracker(logging.NewNop())
	session := &fakeSession{}

	tracker.OnFrame(session)
	session.resolve(t, 0, &fakeSource{}, nil)

	want := poseAt(2, 0, -1)
	frame := &fakeFrame{hits: []HitResult{
		fakeHit{ok: false}, // unresolvable, skipped
		fakeHit{pose: want, ok: true},
		fakeHit{pose: poseAt(9, 9, 9), ok: true},
	}}

	got, ok := tracker.Query(frame)
	require.True(t, ok)
	assert.True(t, got.ApproxEqual(want, 1e-6))

	_, ok = tracker.Query(&fakeFrame{})
	assert.False(t, ok, "frame with no hits must report nothing")

	_, ok = tracker.Query(nil)
	assert.False(t, ok)
}

func TestTrackerResetDiscardsLateResolution(t *testing.T) {
	tracker := NewHitTestTracker(logging.NewNop())
	session := &fakeSession{}
	src := &fakeSource{}

	tracker.OnFrame(session)
	tracker.Reset() // session ended while the request was pending

	session.resolve(t, 0, src, nil)

	assert.Equal(t, TrackerIdle, tracker.State(), "stale resolution must not change state")
	assert.True(t, src.cancelled, "stale source must be released")

	// A fresh session issues a fresh request.
	tracker.OnFrame(session)
	assert.Len(t, session.requests, 2)
	session.resolve(t, 1, &fakeSource{}, nil)
	assert.Equal(t, TrackerReady, tracker.State())
}

func TestTrackerResetCancelsSource(t *testing.T) {
	tracker := NewHitTestTracker(logging.NewNop())
	session := &fakeSession{}
	src := &fakeSource{}

	tracker.OnFrame(session)
	session.resolve(t, 0, src, nil)
	require.Equal(t, TrackerReady, tracker.State())

	tracker.Reset()
	tracker.Reset() // idempotent

	assert.True(t, src.cancelled)
	assert.Equal(t, TrackerIdle, tracker.State())

	_, ok := tracker.Query(&fakeFrame{hits: []HitResult{fakeHit{pose: poseAt(0, 0, 0), ok: true}}})
	assert.False(t, ok, "reset tracker must not report hits")
}

func TestTrackerNilSession(t *testing.T) {
	tracker := NewHitTestTracker(logging.NewNop())
	tracker.OnFrame(nil)
	assert.Equal(t, TrackerIdle, tracker.State())
}
