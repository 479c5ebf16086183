package motion

import (
	"fmt"
	"math"
)

// Value returns the curve's value at the given time.
//
// An empty curve has its default value everywhere. Times before the first and
// after the last keyframe are extrapolated.
func (c *Curve) Value(time float64) float64 {
	if c.head == 0 {
		return c.defaultValue
	}
	switch {
	case time > c.at(c.tail).time:
		return c.extrapolate(c.post, time, true)
	case time < c.at(c.head).time:
		return c.extrapolate(c.pre, time, false)
	default:
		return c.valueInRange(time)
	}
}

// valueInRange evaluates the curve at a time within the time range of its
// keyframes.
func (c *Curve) valueInRange(time float64) float64 {
	if c.memo.isSet && c.memo.value.time == time {
		return c.memo.value.value
	}

	a := c.at(c.seek(time))
	var v float64
	switch {
	case a.time == time, a.next == 0:
		v = a.value
	default:
		if b := c.at(a.next); b.time == time {
			v = b.value
		} else {
			v = c.interpolate(time, a, b)
		}
	}

	c.memo.set(memo{time: time, value: v})
	return v
}

// extrapolate evaluates the curve outside of the time range of its keyframes.
// post selects between times after the last and before the first keyframe.
func (c *Curve) extrapolate(method Extrapolation, time float64, post bool) float64 {
	head, tail := c.at(c.head), c.at(c.tail)
	start, end := head.time, tail.time
	startValue, endValue := head.value, tail.value
	length := end - start

	switch method {
	case ExtrapolateConstant:
		if post {
			return endValue
		}
		return startValue

	case ExtrapolateLinear:
		if post {
			return endValue + slope(tail.nextTangent)*(time-end)
		}
		return startValue + slope(head.prevTangent)*(time-start)

	case ExtrapolateCycle, ExtrapolateCycleRelative, ExtrapolateOscillate:
		if length == 0 {
			return c.valueInRange(start)
		}

		// The distance is measured from the far end of the curve, so that
		// the first repetition on either side is number 1.
		var since, wrapped float64
		if post {
			since = time - start
			wrapped = start + math.Mod(since, length)
		} else {
			since = end - time
			wrapped = end - math.Mod(since, length)
		}
		n := math.Trunc(since / length)

		switch method {
		case ExtrapolateCycle:
			return c.valueInRange(clamp(wrapped, start, end))
		case ExtrapolateCycleRelative:
			height := endValue - startValue
			if !post {
				height = -height
			}
			return height*n + c.valueInRange(clamp(wrapped, start, end))
		case ExtrapolateOscillate:
			if math.Mod(n, 2) != 0 {
				wrapped = start + end - wrapped
			}
			return c.valueInRange(clamp(wrapped, start, end))
		}
	}
	panic(fmt.Sprintf("unhandled extrapolation %v", method))
}

// slope returns the slope of a tangent, treating vertical and zero tangents
// as flat.
func slope(v Vec2) float64 {
	if v.X == 0 {
		return 0
	}
	return v.Y / v.X
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
