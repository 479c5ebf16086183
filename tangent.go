package motion

import (
	"fmt"
	"math"
)

// computeTangents derives both tangents of keyframe r from its slope methods,
// its neighbors and its magnitudes.
//
// With magnitudes of 1, the x component of a tangent always equals the time
// span of the segment on that side, which keeps time linear in the segment
// parameter.
func (c *Curve) computeTangents(r ref) {
	k := c.at(r)
	var prev, next *keyframe
	if k.prev != 0 {
		prev = c.at(k.prev)
	}
	if k.next != 0 {
		next = c.at(k.next)
	}
	k.prevTangent = sideTangent(k.prevSlope, k, prev, next, true).Mul(k.prevMagnitude)
	k.nextTangent = sideTangent(k.nextSlope, k, prev, next, false).Mul(k.nextMagnitude)
}

func sideTangent(method SlopeMethod, k, prev, next *keyframe, incoming bool) Vec2 {
	// span is the time distance to the neighbor on this side, or to the
	// other neighbor for the outer side of an end keyframe.
	var span float64
	switch {
	case incoming && prev != nil:
		span = k.time - prev.time
	case !incoming && next != nil:
		span = next.time - k.time
	case prev != nil:
		span = k.time - prev.time
	case next != nil:
		span = next.time - k.time
	}

	switch method {
	case SlopeSmooth:
		switch {
		case prev != nil && next != nil:
			d := next.pos().Sub(prev.pos())
			w := math.Abs(d.X)
			if w == 0 {
				return Vec2{}
			}
			return d.Mul(span / w)
		case next != nil:
			return next.pos().Sub(k.pos())
		case prev != nil:
			return k.pos().Sub(prev.pos())
		default:
			return Vec2{}
		}
	case SlopeLinear:
		switch {
		case incoming && prev != nil, next == nil && prev != nil:
			return k.pos().Sub(prev.pos())
		case next != nil:
			return next.pos().Sub(k.pos())
		default:
			return Vec2{}
		}
	case SlopeFlat, SlopeStepped, SlopeSteppedNext:
		return Vec2{X: span}
	default:
		panic(fmt.Sprintf("unhandled slope method %v", method))
	}
}
