package motion

import "sort"

// Cubic is the polynomial C0 + C1 t + C2 t² + C3 t³.
//
// A curve segment between two keyframes is described by two cubics in the
// segment parameter t ∈ [0, 1]: one for the value and one for time.
type Cubic struct {
	C0, C1, C2, C3 float64
}

// Hermite returns the cubic that starts at p0 with slope m0 and ends at p1
// with slope m1, for t ∈ [0, 1].
func Hermite(p0, p1, m0, m1 float64) Cubic {
	return Cubic{
		C0: p0,
		C1: m0,
		C2: 3.0*(p1-p0) - 2.0*m0 - m1,
		C3: 2.0*(p0-p1) + m0 + m1,
	}
}

// Eval evaluates the cubic at t.
func (c Cubic) Eval(t float64) float64 {
	return ((c.C3*t+c.C2)*t+c.C1)*t + c.C0
}

// Derivative evaluates the cubic's first derivative at t.
func (c Cubic) Derivative(t float64) float64 {
	return (3.0*c.C3*t+2.0*c.C2)*t + c.C1
}

// CriticalPoints returns the parameters in the open interval (0, 1) at which
// the derivative is zero, in increasing order.
func (c Cubic) CriticalPoints() ([2]float64, int) {
	var out [2]float64
	var n int
	roots, rootsN := SolveQuadratic(c.C1, 2.0*c.C2, 3.0*c.C3)
	for _, t := range roots[:rootsN] {
		if t > 0.0 && t < 1.0 {
			out[n] = t
			n++
		}
	}
	sort.Float64s(out[:n])
	return out, n
}

// Monotonic reports whether the cubic is monotonic on [0, 1].
func (c Cubic) Monotonic() bool {
	ts, n := c.CriticalPoints()
	var pos, neg bool
	t0 := 0.0
	for _, t1 := range append(ts[:n:n], 1.0) {
		switch d := c.Derivative(0.5 * (t0 + t1)); {
		case d > 0:
			pos = true
		case d < 0:
			neg = true
		}
		t0 = t1
	}
	return !(pos && neg)
}

// ForcedSampling returns a sampler that walks the cubic in steps evenly
// spaced parameter increments across [0, 1], using forward differencing.
// Each sample costs three additions, at the price of accumulated rounding
// error.
func (c Cubic) ForcedSampling(steps int) ForcedSampler {
	if steps < 1 {
		steps = 1
	}
	h := 1.0 / float64(steps)
	h2 := h * h
	h3 := h2 * h
	return ForcedSampler{
		dt: h,
		v:  c.C0,
		d1: c.C1*h + c.C2*h2 + c.C3*h3,
		d2: 2.0*c.C2*h2 + 6.0*c.C3*h3,
		d3: 6.0 * c.C3 * h3,
	}
}

// ForcedSampler steps through a [Cubic] by forward differencing. See
// [Cubic.ForcedSampling].
type ForcedSampler struct {
	t, dt         float64
	v, d1, d2, d3 float64
}

// T returns the parameter of the current sample.
func (s *ForcedSampler) T() float64 { return s.t }

// Value returns the current sample.
func (s *ForcedSampler) Value() float64 { return s.v }

// Next advances to the next sample and returns it.
func (s *ForcedSampler) Next() float64 {
	s.v += s.d1
	s.d1 += s.d2
	s.d2 += s.d3
	s.t += s.dt
	return s.v
}
