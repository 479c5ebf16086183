package trajectory

import (
	"fmt"
	"iter"
	"math"
	"sort"

	"honnef.co/go/motion"
)

var _ spanCurve = motion.CubicBez{}
var _ spanCurve = motion.Line{}

type spanCurve interface {
	motion.ParametricCurve
	motion.Arclener
	Deriv(t float64) motion.Vec2
}

// PathPoint is a point that a trajectory passes through.
type PathPoint struct {
	Position motion.Point
	// Tangent is the derivative of the trajectory at the point, with respect
	// to the parameter of the adjacent spans. It is only used if Explicit is
	// set; otherwise the tangent is derived from the neighboring points.
	Tangent  motion.Vec2
	Explicit bool
}

func (pt PathPoint) String() string {
	if pt.Explicit {
		return fmt.Sprintf("%v %v", pt.Position, pt.Tangent)
	}
	return pt.Position.String()
}

type span struct {
	curve spanCurve
	// start is the distance along the XY curve at which the span begins.
	start  float64
	length float64
}

// XYCurve is a smooth curve in the plane through a sequence of points. Each
// span between two consecutive points is a cubic Hermite curve; spans whose
// tangents are both zero are straight lines.
//
// Points without an explicit tangent get Catmull-Rom tangents: half the
// difference between their neighbors, or the difference to the only neighbor
// for the first and last point.
type XYCurve struct {
	points []PathPoint

	// spans is rebuilt lazily after the points change.
	spans []span
	dirty bool
}

// Len returns the number of points.
func (c *XYCurve) Len() int { return len(c.points) }

// Point returns the i'th point.
func (c *XYCurve) Point(i int) PathPoint { return c.points[i] }

// Points returns an iterator over the points, in order.
func (c *XYCurve) Points() iter.Seq2[int, PathPoint] {
	return func(yield func(int, PathPoint) bool) {
		for i, pt := range c.points {
			if !yield(i, pt) {
				return
			}
		}
	}
}

// AddPoint appends a point with an automatic tangent.
func (c *XYCurve) AddPoint(pos motion.Point) int {
	return c.add(PathPoint{Position: pos})
}

// AddPointAndTangent appends a point with an explicit tangent.
func (c *XYCurve) AddPointAndTangent(pos motion.Point, tangent motion.Vec2) int {
	return c.add(PathPoint{Position: pos, Tangent: tangent, Explicit: true})
}

func (c *XYCurve) add(pt PathPoint) int {
	c.points = append(c.points, pt)
	c.dirty = true
	return len(c.points) - 1
}

// InsertPoint inserts a point before index i. An index equal to Len appends.
func (c *XYCurve) InsertPoint(i int, pt PathPoint) error {
	if i < 0 || i > len(c.points) {
		return fmt.Errorf("%w: %d", ErrPointIndex, i)
	}
	c.points = append(c.points, PathPoint{})
	copy(c.points[i+1:], c.points[i:])
	c.points[i] = pt
	c.dirty = true
	return nil
}

// RemovePoint removes the i'th point.
func (c *XYCurve) RemovePoint(i int) error {
	if i < 0 || i >= len(c.points) {
		return fmt.Errorf("%w: %d", ErrPointIndex, i)
	}
	c.points = append(c.points[:i], c.points[i+1:]...)
	c.dirty = true
	return nil
}

// tangent returns the tangent used at point i.
func (c *XYCurve) tangent(i int) motion.Vec2 {
	pt := c.points[i]
	switch {
	case pt.Explicit:
		return pt.Tangent
	case len(c.points) < 2:
		return motion.Vec2{}
	case i == 0:
		return c.points[1].Position.Sub(pt.Position)
	case i == len(c.points)-1:
		return pt.Position.Sub(c.points[i-1].Position)
	default:
		return c.points[i+1].Position.Sub(c.points[i-1].Position).Mul(0.5)
	}
}

func (c *XYCurve) build() {
	if !c.dirty && c.spans != nil {
		return
	}
	c.spans = c.spans[:0]
	var dist float64
	for i := 0; i+1 < len(c.points); i++ {
		p0, p1 := c.points[i].Position, c.points[i+1].Position
		m0, m1 := c.tangent(i), c.tangent(i+1)
		var sc spanCurve
		if m0 == (motion.Vec2{}) && m1 == (motion.Vec2{}) {
			sc = motion.Line{P0: p0, P1: p1}
		} else {
			sc = motion.HermiteBez(p0, p1, m0, m1)
		}
		n := sc.Arclen(motion.DefaultAccuracy)
		c.spans = append(c.spans, span{curve: sc, start: dist, length: n})
		dist += n
	}
	c.dirty = false
}

// Length returns the arc length of the curve.
func (c *XYCurve) Length() float64 {
	c.build()
	if len(c.spans) == 0 {
		return 0
	}
	last := c.spans[len(c.spans)-1]
	return last.start + last.length
}

// locate returns the span containing the given distance along the curve and
// the span parameter at that distance. Distances are clamped to the curve.
func (c *XYCurve) locate(distance float64) (spanCurve, float64, bool) {
	c.build()
	if len(c.spans) == 0 {
		return nil, 0, false
	}
	if math.IsNaN(distance) || distance <= 0 {
		return c.spans[0].curve, 0, true
	}
	i := sort.Search(len(c.spans), func(i int) bool {
		return c.spans[i].start+c.spans[i].length >= distance
	})
	if i == len(c.spans) {
		return c.spans[i-1].curve, 1, true
	}
	s := c.spans[i]
	return s.curve, motion.SolveForArclen(s.curve, distance-s.start, motion.DefaultAccuracy), true
}

// PositionAtDistance returns the point at the given distance along the
// curve. Distances outside of [0, Length] are clamped.
func (c *XYCurve) PositionAtDistance(distance float64) motion.Point {
	sc, t, ok := c.locate(distance)
	if !ok {
		if len(c.points) == 1 {
			return c.points[0].Position
		}
		return motion.Point{}
	}
	return sc.Eval(t)
}

// TangentAtDistance returns the derivative of the curve at the given distance
// along it, with respect to the span parameter.
func (c *XYCurve) TangentAtDistance(distance float64) motion.Vec2 {
	sc, t, ok := c.locate(distance)
	if !ok {
		return motion.Vec2{}
	}
	return sc.Deriv(t)
}
