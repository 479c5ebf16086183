package motion

import (
	"math"
	"testing"
)

func TestLineArclen(t *testing.T) {
	l := Line{Pt(0.0, 0.0), Pt(1.0, 1.0)}
	want := math.Sqrt(2.0)
	epsilon := 1e-9
	if d := l.Arclen(epsilon) - want; d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}

	ts := l.SolveForArclen(want/3.0, epsilon)
	if d := math.Abs(ts - 1.0/3.0); d > epsilon {
		t.Errorf("%g > %g", d, epsilon)
	}
	// SolveForArclen defers to the line's own solver.
	if ts := SolveForArclen(l, want/3.0, epsilon); math.Abs(ts-1.0/3.0) > epsilon {
		t.Errorf("got t = %g, want 1/3", ts)
	}
}

func TestLineDegenerate(t *testing.T) {
	l := Line{Pt(2, 3), Pt(2, 3)}
	if ts := l.SolveForArclen(1, 1e-9); ts != 0 {
		t.Errorf("got t = %g, want 0", ts)
	}
	diff(t, Pt(2, 3), l.Eval(0.5))
	diff(t, Vec2{}, l.Deriv(0.5))
}

func TestLineSubdivide(t *testing.T) {
	l := Line{Pt(0, 0), Pt(4, 2)}
	a, b := l.Subdivide()
	diff(t, Line{Pt(0, 0), Pt(2, 1)}, a)
	diff(t, Line{Pt(2, 1), Pt(4, 2)}, b)
}
