package trajectory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"honnef.co/go/motion"
)

const delta = 1e-5

func straightPath(t *testing.T) *Path {
	t.Helper()
	p := NewPath("straight")
	p.AddPoint(0, 0)
	p.AddPoint(0, 10)
	return p
}

func requirePoint(t *testing.T, want, got motion.Point) {
	t.Helper()
	require.InDelta(t, want.X, got.X, delta, "x of %v", got)
	require.InDelta(t, want.Y, got.Y, delta, "y of %v", got)
}

func TestPathDefaults(t *testing.T) {
	p := NewPath("defaults")
	require.Equal(t, "defaults", p.Name)
	require.Equal(t, 1.0, p.Speed())
	require.Equal(t, Forward, p.Direction())
	require.False(t, p.Mirrored())
	require.Equal(t, 25.0/12.0, p.TrackWidth())
	require.Equal(t, 1.12, p.ScrubFactor())
	require.False(t, p.HasPoints())

	p = NewPath("custom", WithTrackWidth(2), WithScrubFactor(1), WithLogger(nil))
	require.Equal(t, 2.0, p.TrackWidth())
	require.Equal(t, 1.0, p.ScrubFactor())
}

func TestPathWithoutEase(t *testing.T) {
	p := straightPath(t)
	require.Equal(t, 5.0, p.Duration())
	require.Equal(t, 5.0, p.DurationWithSpeed())

	requirePoint(t, motion.Pt(0, 0), p.Position(0))
	requirePoint(t, motion.Pt(0, 5), p.Position(2.5))
	requirePoint(t, motion.Pt(0, 10), p.Position(5))

	p.SetSpeed(-1)
	requirePoint(t, motion.Pt(0, 10), p.Position(0))
	requirePoint(t, motion.Pt(0, 8), p.Position(1))

	require.ErrorIs(t, p.SetDuration(3), ErrNoEaseKeys)
}

func TestPathEase(t *testing.T) {
	p := straightPath(t)
	p.AddEasePoint(0, 0)
	p.AddEasePoint(2, 1)
	require.Equal(t, 2.0, p.Duration())

	requirePoint(t, motion.Pt(0, 0), p.Position(0))
	requirePoint(t, motion.Pt(0, 5), p.Position(1))
	requirePoint(t, motion.Pt(0, 10), p.Position(2))
	requirePoint(t, motion.Pt(0, 10), p.Position(3))
	// Eased in.
	require.Less(t, p.Position(0.5).Y, 2.5)

	p.SetSpeed(2)
	require.Equal(t, 1.0, p.DurationWithSpeed())
	requirePoint(t, motion.Pt(0, 5), p.Position(0.5))

	p.SetSpeed(-1)
	requirePoint(t, motion.Pt(0, 10), p.Position(0))
	requirePoint(t, motion.Pt(0, 0), p.Position(2))

	p.SetSpeed(1)
	require.NoError(t, p.SetDuration(4))
	require.Equal(t, 4.0, p.Duration())
	requirePoint(t, motion.Pt(0, 5), p.Position(2))
	require.ErrorIs(t, p.SetDuration(0), motion.ErrTimeOccupied)

	p.RemoveAllEasePoints()
	require.Equal(t, 5.0, p.Duration())
}

func TestPathEaseSlopeAndMagnitude(t *testing.T) {
	p := straightPath(t)
	p.AddEasePoint(0, 0)
	p.AddEasePointSlopeAndMagnitude(1, 0.5, motion.SlopeLinear, 1)
	p.AddEasePoint(2, 1)

	k, ok := p.EaseCurve().KeyAt(1)
	require.True(t, ok)
	require.Equal(t, motion.SlopeSmooth, k.PrevSlope())
	requirePoint(t, motion.Pt(0, 5), p.Position(1))
}

func TestPathTangentAndSides(t *testing.T) {
	p := straightPath(t)
	tangent := p.Tangent(1).Normalize()
	require.InDelta(t, 0.0, tangent.X, delta)
	require.InDelta(t, 1.0, tangent.Y, delta)

	half := DefaultTrackWidth * DefaultScrubFactor / 2
	requirePoint(t, motion.Pt(-half, 5), p.LeftPosition(2.5))
	requirePoint(t, motion.Pt(half, 5), p.RightPosition(2.5))
	requirePoint(t, motion.Pt(1, 5), p.SidePosition(2.5, 1))

	p.SetDirection(Backward)
	tangent = p.Tangent(1).Normalize()
	require.InDelta(t, -1.0, tangent.Y, delta)
	// Driving backwards swaps the sides.
	requirePoint(t, motion.Pt(half, 5), p.LeftPosition(2.5))

	p.SetDirection(Forward)
	p.SetSpeed(-1)
	// A negative speed drives the path from its end, so the robot faces the
	// other way.
	requirePoint(t, motion.Pt(half, 5), p.LeftPosition(2.5))
}

func TestPathVelocity(t *testing.T) {
	p := straightPath(t)
	v := p.VelocityAtEase(0.3)
	require.InDelta(t, 0.0, v.X, 1e-9)
	require.InDelta(t, 10.0, v.Y, 1e-5)

	// 10 units in 5 seconds.
	v = p.Velocity(2.5)
	require.InDelta(t, 0.0, v.X, 1e-9)
	require.InDelta(t, 2.0, v.Y, 1e-5)

	p.SetSpeed(-1)
	v = p.Velocity(2.5)
	require.InDelta(t, -2.0, v.Y, 1e-5)

	p.SetSpeed(1)
	p.AddEasePoint(0, 0)
	p.AddEasePoint(2, 1)
	// The ease curve is a smoothstep over 2 seconds, fastest halfway.
	v = p.Velocity(1)
	require.InDelta(t, 7.5, v.Y, 1e-4)
	v = p.Velocity(3)
	require.InDelta(t, 0.0, v.Y, 1e-9)
}

func TestPathMirrored(t *testing.T) {
	p := NewPath("mirrored")
	p.AddPoint(1, 0)
	p.AddPoint(3, 10)
	p.SetMirrored(true)

	requirePoint(t, motion.Pt(-1, 0), p.PositionAtEase(0))
	requirePoint(t, motion.Pt(-3, 10), p.PositionAtEase(1))
	require.Less(t, p.TangentAtEase(0.5).X, 0.0)
}

func TestPathDistances(t *testing.T) {
	p := straightPath(t)
	p.AddEasePoint(0, 0)
	p.AddEasePoint(2, 1)

	var left, right float64
	for i := range 41 {
		tt := float64(i) * 0.05
		left = p.LeftDistance(tt)
		right = p.RightDistance(tt)
		if i == 0 {
			require.Equal(t, 0.0, left)
			require.Equal(t, 0.0, right)
		}
	}
	require.InDelta(t, 10.0, left, delta)
	require.InDelta(t, 10.0, right, delta)

	p.ResetDistances()
	require.Equal(t, 0.0, p.LeftPositionDelta(1))
	require.InDelta(t, 5.0, p.LeftPositionDelta(2), delta)
	require.Equal(t, 0.0, p.RightPositionDelta(2))

	p.ResetDistances()
	p.SetDirection(Backward)
	p.LeftDistance(0)
	require.InDelta(t, -5.0, p.LeftDistance(1), delta)
}

func TestPathCurvedWheelDistances(t *testing.T) {
	// A left turn: the left wheels cover less ground than the right ones.
	p := NewPath("turn")
	p.AddPointAngleAndMagnitude(0, 0, 0, 10)
	p.AddPointAngleAndMagnitude(-10, 10, -90, 10)
	p.AddEasePoint(0, 0)
	p.AddEasePoint(3, 1)

	var left, right float64
	for i := range 301 {
		tt := float64(i) * 0.01
		left = p.LeftDistance(tt)
		right = p.RightDistance(tt)
	}
	require.Less(t, left, right)
	center := p.Length()
	require.Less(t, left, center)
	require.Greater(t, right, center)
}

func TestPathHeading(t *testing.T) {
	p := straightPath(t)
	p.AddHeadingPoint(0, 0)
	p.AddHeadingPoint(2, 90)
	require.InDelta(t, 45.0, p.Heading(1), 1e-9)
	require.Equal(t, 90.0, p.Heading(5))
}

func TestPathPointAngles(t *testing.T) {
	tests := []struct {
		angle float64
		want  motion.Vec2
	}{
		{0, motion.Vec(0, 4)},
		{90, motion.Vec(4, 0)},
		{-90, motion.Vec(-4, 0)},
		{180, motion.Vec(0, -4)},
		{45, motion.Vec(2*math.Sqrt2, 2*math.Sqrt2)},
	}
	for _, tt := range tests {
		p := NewPath("angles")
		p.AddPointAngleAndMagnitude(0, 0, tt.angle, 4)
		got := p.XYCurve().Point(0).Tangent
		require.InDelta(t, tt.want.X, got.X, 1e-12, "angle %g", tt.angle)
		require.InDelta(t, tt.want.Y, got.Y, 1e-12, "angle %g", tt.angle)
	}
}

func TestPathPointEditing(t *testing.T) {
	p := NewPath("edit")
	p.AddPointAngleAndMagnitude(0, 0, 90, 2)
	pt := p.XYCurve().Point(0)
	require.True(t, pt.Explicit)
	require.InDelta(t, 2.0, pt.Tangent.X, 1e-12)
	require.InDelta(t, 0.0, pt.Tangent.Y, 1e-12)

	p.AddPointAndTangent(5, 0, 1, 0)
	require.Equal(t, motion.Vec(1, 0), p.XYCurve().Point(1).Tangent)
	require.ErrorIs(t, p.RemovePoint(2), ErrPointIndex)
	require.NoError(t, p.RemovePoint(0))
	require.Equal(t, 1, p.XYCurve().Len())
	require.Contains(t, p.String(), `"edit"`)
	require.False(t, math.IsNaN(p.Position(1).X))
}
