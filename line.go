package motion

// Line is a line segment. Trajectories use lines for spans whose tangents are
// both zero.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ ParametricCurve = Line{}
var _ ArclenSolver = Line{}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Arclen returns the length of the line.
func (l Line) Arclen(accuracy float64) float64 {
	return l.Length()
}

// SolveForArclen implements [ArclenSolver]. A line of length zero solves to
// its start.
func (l Line) SolveForArclen(arclen float64, accuracy float64) float64 {
	n := l.Length()
	if n == 0 {
		return 0
	}
	return clamp01(arclen / n)
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Subsegment(start, end float64) Line {
	return Line{l.Eval(start), l.Eval(end)}
}

func (l Line) SubsegmentCurve(start, end float64) ParametricCurve {
	return l.Subsegment(start, end)
}

func (l Line) Subdivide() (Line, Line) {
	return l.Subsegment(0.0, 0.5), l.Subsegment(0.5, 1.0)
}

func (l Line) SubdivideCurve() (ParametricCurve, ParametricCurve) {
	return l.Subdivide()
}

// Deriv returns the derivative of the line, which is the same everywhere.
func (l Line) Deriv(t float64) Vec2 {
	return l.P1.Sub(l.P0)
}
