package sim

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arview/internal/logging"
	"arview/internal/xr"
)

func testOptions() Options {
	return Options{
		Supported:        true,
		HitTestAvailable: true,
		LatencyFrames:    2,
		Surfaces: []Surface{
			{Center: rl.Vector3{}, Width: 20, Depth: 20},
		},
	}
}

// downRay looks straight down at the origin from above.
func downRay() rl.Ray {
	return rl.Ray{
		Position:  rl.Vector3{Y: 5},
		Direction: rl.Vector3{Y: -1},
	}
}

func startSession(t *testing.T, opts Options) *Session {
	t.Helper()
	drv := NewDriver(opts, logging.NewNop())
	sess, err := drv.RequestSession()
	require.NoError(t, err)
	return sess.(*Session)
}

func acquireSource(t *testing.T, sess *Session, opts Options) xr.HitTestSource {
	t.Helper()
	var src xr.HitTestSource
	sess.RequestHitTestSource(func(s xr.HitTestSource, err error) {
		require.NoError(t, err)
		src = s
	})
	for range opts.LatencyFrames {
		require.Nil(t, src, "source must not resolve early")
		sess.Frame()
	}
	require.NotNil(t, src)
	return src
}

func TestDriverUnsupported(t *testing.T) {
	opts := testOptions()
	opts.Supported = false
	drv := NewDriver(opts, logging.NewNop())

	assert.False(t, drv.IsSessionSupported())
	_, err := drv.RequestSession()
	assert.ErrorIs(t, err, xr.ErrNotSupported)
}

func TestSourceResolvesAfterLatency(t *testing.T) {
	opts := testOptions()
	sess := startSession(t, opts)

	src := acquireSource(t, sess, opts)
	assert.NotNil(t, src)
}

func TestHitTestUnavailable(t *testing.T) {
	opts := testOptions()
	opts.HitTestAvailable = false
	sess := startSession(t, opts)

	var gotErr error
	delivered := false
	sess.RequestHitTestSource(func(s xr.HitTestSource, err error) {
		delivered = true
		gotErr = err
	})
	for range opts.LatencyFrames {
		sess.Frame()
	}

	require.True(t, delivered)
	assert.ErrorIs(t, gotErr, xr.ErrNotSupported)
}

func TestFrameReportsNearestFirst(t *testing.T) {
	opts := testOptions()
	// A small table 2 units above the floor, both under the ray.
	opts.Surfaces = append(opts.Surfaces, Surface{
		Center: rl.Vector3{Y: 2}, Width: 1, Depth: 1,
	})
	sess := startSession(t, opts)
	src := acquireSource(t, sess, opts)

	sess.SetViewRay(downRay())
	frame := sess.Frame()
	results := frame.HitTestResults(src)
	require.Len(t, results, 2)

	first, ok := results[0].Pose()
	require.True(t, ok)
	assert.InDelta(t, 2, first.Position.Y, 1e-5, "nearest surface (the table) must come first")

	second, ok := results[1].Pose()
	require.True(t, ok)
	assert.InDelta(t, 0, second.Position.Y, 1e-5)
}

func TestFrameEmptyWhenRayMisses(t *testing.T) {
	opts := testOptions()
	sess := startSession(t, opts)
	src := acquireSource(t, sess, opts)

	// Looking at the horizon, parallel to every surface.
	sess.SetViewRay(rl.Ray{Position: rl.Vector3{Y: 2}, Direction: rl.Vector3{X: 1}})
	frame := sess.Frame()
	assert.Empty(t, frame.HitTestResults(src))
}

func TestCancelledSourceReturnsNothing(t *testing.T) {
	opts := testOptions()
	sess := startSession(t, opts)
	src := acquireSource(t, sess, opts)

	sess.SetViewRay(downRay())
	src.Cancel()
	frame := sess.Frame()
	assert.Empty(t, frame.HitTestResults(src))
}

func TestForeignSourceReturnsNothing(t *testing.T) {
	opts := testOptions()
	sessA := startSession(t, opts)
	sessB := startSession(t, opts)
	srcB := acquireSource(t, sessB, opts)

	sessA.SetViewRay(downRay())
	frame := sessA.Frame()
	assert.Empty(t, frame.HitTestResults(srcB), "a source only works against its own session")
}

func TestEndIsIdempotentAndFiresOnce(t *testing.T) {
	opts := testOptions()
	sess := startSession(t, opts)

	ends := 0
	sess.OnEnd(func() { ends++ })

	require.NoError(t, sess.End())
	require.NoError(t, sess.End())

	assert.Equal(t, 1, ends)
	assert.Nil(t, sess.Frame(), "ended session yields no frames")
}

func TestEndDropsPendingRequests(t *testing.T) {
	opts := testOptions()
	sess := startSession(t, opts)

	delivered := false
	sess.RequestHitTestSource(func(xr.HitTestSource, error) { delivered = true })
	require.NoError(t, sess.End())
	sess.Frame()

	assert.False(t, delivered, "pending request must not resolve after session end")
}

func TestIntersectBounds(t *testing.T) {
	s := Surface{Center: rl.Vector3{X: 1, Y: 0, Z: 1}, Width: 2, Depth: 2}

	// Straight down inside the rectangle.
	_, dist, ok := intersect(rl.Ray{Position: rl.Vector3{X: 1, Y: 3, Z: 1}, Direction: rl.Vector3{Y: -1}}, s)
	require.True(t, ok)
	assert.InDelta(t, 3, dist, 1e-5)

	// Outside the rectangle.
	_, _, ok = intersect(rl.Ray{Position: rl.Vector3{X: 5, Y: 3, Z: 1}, Direction: rl.Vector3{Y: -1}}, s)
	assert.False(t, ok)

	// Pointing away from the plane.
	_, _, ok = intersect(rl.Ray{Position: rl.Vector3{X: 1, Y: 3, Z: 1}, Direction: rl.Vector3{Y: 1}}, s)
	assert.False(t, ok)
}
