package trajectory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"honnef.co/go/motion"
)

func TestXYCurveStraight(t *testing.T) {
	var c XYCurve
	c.AddPoint(motion.Pt(0, 0))
	c.AddPoint(motion.Pt(0, 10))

	require.InDelta(t, 10.0, c.Length(), 1e-9)
	for _, d := range []float64{0, 2.5, 5, 7.5, 10} {
		pos := c.PositionAtDistance(d)
		require.InDelta(t, 0.0, pos.X, 1e-9)
		require.InDelta(t, d, pos.Y, 1e-5)
	}

	tangent := c.TangentAtDistance(5)
	require.InDelta(t, 0.0, tangent.X, 1e-9)
	require.Greater(t, tangent.Y, 0.0)

	// Distances are clamped to the curve.
	require.Equal(t, motion.Pt(0, 0), c.PositionAtDistance(-3))
	require.InDelta(t, 10.0, c.PositionAtDistance(30).Y, 1e-9)
}

func TestXYCurveLines(t *testing.T) {
	var c XYCurve
	c.AddPointAndTangent(motion.Pt(0, 0), motion.Vec2{})
	c.AddPointAndTangent(motion.Pt(3, 4), motion.Vec2{})
	c.AddPointAndTangent(motion.Pt(3, 10), motion.Vec2{})

	require.InDelta(t, 11.0, c.Length(), 1e-12)
	pos := c.PositionAtDistance(2.5)
	require.InDelta(t, 1.5, pos.X, 1e-12)
	require.InDelta(t, 2.0, pos.Y, 1e-12)
	pos = c.PositionAtDistance(8)
	require.InDelta(t, 3.0, pos.X, 1e-12)
	require.InDelta(t, 7.0, pos.Y, 1e-12)
	require.Equal(t, motion.Vec(0, 6), c.TangentAtDistance(8))
}

func TestXYCurveCorner(t *testing.T) {
	var c XYCurve
	c.AddPoint(motion.Pt(0, 0))
	c.AddPoint(motion.Pt(10, 0))
	c.AddPoint(motion.Pt(10, 10))

	length := c.Length()
	require.Greater(t, length, 20.0)

	start := c.PositionAtDistance(0)
	end := c.PositionAtDistance(length)
	require.InDelta(t, 0.0, start.Distance(motion.Pt(0, 0)), 1e-9)
	require.InDelta(t, 0.0, end.Distance(motion.Pt(10, 10)), 1e-9)
	require.InDelta(t, 0.0, c.PositionAtDistance(c.spans[0].length).Distance(motion.Pt(10, 0)), 1e-6)

	// Walking along the curve never covers more ground than the distance
	// walked.
	const step = 0.25
	prev := start
	for d := step; d <= length; d += step {
		pos := c.PositionAtDistance(d)
		require.LessOrEqual(t, pos.Distance(prev), step+1e-6)
		require.Greater(t, pos.Distance(prev), step*0.5)
		prev = pos
	}
}

func TestXYCurveEditing(t *testing.T) {
	var c XYCurve
	require.Equal(t, 0.0, c.Length())
	require.Equal(t, motion.Point{}, c.PositionAtDistance(1))

	c.AddPoint(motion.Pt(1, 2))
	require.Equal(t, motion.Pt(1, 2), c.PositionAtDistance(5))
	require.Equal(t, motion.Vec2{}, c.TangentAtDistance(5))

	c.AddPoint(motion.Pt(1, 12))
	require.InDelta(t, 10.0, c.Length(), 1e-9)

	require.NoError(t, c.InsertPoint(1, PathPoint{Position: motion.Pt(1, 7)}))
	require.Equal(t, 3, c.Len())
	require.Equal(t, motion.Pt(1, 7), c.Point(1).Position)
	require.InDelta(t, 10.0, c.Length(), 1e-9)

	require.ErrorIs(t, c.RemovePoint(3), ErrPointIndex)
	require.ErrorIs(t, c.InsertPoint(-1, PathPoint{}), ErrPointIndex)
	require.NoError(t, c.RemovePoint(0))
	require.InDelta(t, 5.0, c.Length(), 1e-9)

	var got []motion.Point
	for _, pt := range c.Points() {
		got = append(got, pt.Position)
	}
	require.Equal(t, []motion.Point{motion.Pt(1, 7), motion.Pt(1, 12)}, got)
}
