package motion

import (
	"math"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

const (
	// maxFrameError is the largest acceptable time error, in frames, when
	// solving a segment's time axis.
	maxFrameError   = 0.003
	framesPerSecond = 30.0
	newtonTolerance = maxFrameError / framesPerSecond

	// sampleTolerance is the coarser time tolerance used when Newton's
	// method doesn't converge and the time axis is sampled instead.
	sampleTolerance = 1.0 / 100.0

	// maxSolveSteps bounds both the number of Newton iterations and the
	// number of samples.
	maxSolveSteps = 1000
)

// Segment is the parametric form of the span between two adjacent
// keyframes A and B. Both cubics are parametrized by t ∈ [0, 1], with t = 0
// at A and t = 1 at B.
type Segment struct {
	// X maps t to time.
	X Cubic
	// Y maps t to value.
	Y Cubic
}

func newSegment(a, b *keyframe) Segment {
	return Segment{
		X: Hermite(a.time, b.time, a.nextTangent.X, b.prevTangent.X),
		Y: Hermite(a.value, b.value, a.nextTangent.Y, b.prevTangent.Y),
	}
}

// interpolate computes the value at time, which lies strictly between the
// times of the adjacent keyframes a and b.
func (c *Curve) interpolate(time float64, a, b *keyframe) float64 {
	switch a.nextSlope {
	case SlopeStepped:
		return a.value
	case SlopeSteppedNext:
		return b.value
	}
	if a.nextSlope == SlopeLinear && b.prevSlope == SlopeLinear {
		return a.value + (time-a.time)/(b.time-a.time)*(b.value-a.value)
	}

	span := b.time - a.time
	guess := (time - a.time) / span
	seg := newSegment(a, b)
	if a.nextMagnitude == 1.0 && b.prevMagnitude == 1.0 {
		// Time is linear in t.
		return seg.Y.Eval(guess)
	}

	t, ok := solveTime(seg.X, time, guess, span)
	if !ok {
		c.logger.WithFields(
			l.StringField("time", cast.ToString(time)),
			l.StringField("start", cast.ToString(a.time)),
			l.StringField("end", cast.ToString(b.time)),
		).Debug("segment time axis did not converge")
	}
	return seg.Y.Eval(t)
}

// solveTime finds t ∈ [0, 1] such that x(t) = time, starting from guess.
//
// It uses Newton's method and gives up on it as soon as an iteration fails to
// reduce the residual on its side of the root. It then scans x at up to
// maxSolveSteps evenly spaced parameters. The second return value reports
// whether the returned t is within the tolerance of the method that produced
// it.
func solveTime(x Cubic, time, guess, span float64) (float64, bool) {
	t := guess
	diff := time - x.Eval(t)
	if math.Abs(diff) <= newtonTolerance {
		return t, true
	}

	posErr := math.MaxFloat64
	negErr := -math.MaxFloat64
	if diff > 0 {
		posErr = diff
	} else {
		negErr = diff
	}

	for range maxSolveSteps {
		d := x.Derivative(t)
		if d == 0 || math.IsInf(d, 0) || math.IsNaN(d) {
			break
		}
		t = clamp01(t + diff/d)
		diff = time - x.Eval(t)
		if math.Abs(diff) <= newtonTolerance {
			return t, true
		}
		if (diff > 0 && diff >= posErr) || (diff < 0 && diff <= negErr) || math.IsNaN(diff) {
			// Not converging.
			break
		}
		if diff > 0 {
			posErr = diff
		} else {
			negErr = diff
		}
	}

	return sampleTime(x, time, span)
}

// sampleTime scans x for the first parameter whose time is within
// sampleTolerance of time. If there is none, it returns the best parameter it
// found.
func sampleTime(x Cubic, time, span float64) (float64, bool) {
	steps := int(max(min(span/sampleTolerance, maxSolveSteps), 1))
	s := x.ForcedSampling(steps)
	bestT := 0.0
	best := math.Abs(time - s.Value())
	for i := 0; best > sampleTolerance && i < steps; i++ {
		if d := math.Abs(time - s.Next()); d < best {
			best = d
			bestT = s.T()
		}
	}
	return clamp01(bestT), best <= sampleTolerance
}

func clamp01(t float64) float64 {
	return max(0.0, min(t, 1.0))
}
