package motion

import (
	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

// KeyframeState is the editable state of a keyframe. Tangents are not part of
// it, as they are derived.
type KeyframeState struct {
	Time          float64
	Value         float64
	PrevSlope     SlopeMethod
	NextSlope     SlopeMethod
	PrevMagnitude float64
	NextMagnitude float64
}

// CurveState is the editable state of a [Curve]: its keyframes in time order
// and its settings.
type CurveState struct {
	Keys              []KeyframeState
	DefaultValue      float64
	MinValue          float64
	MaxValue          float64
	PreExtrapolation  Extrapolation
	PostExtrapolation Extrapolation
}

// State returns the curve's editable state.
func (c *Curve) State() CurveState {
	s := CurveState{
		Keys:              make([]KeyframeState, 0, c.n),
		DefaultValue:      c.defaultValue,
		MinValue:          c.minValue,
		MaxValue:          c.maxValue,
		PreExtrapolation:  c.pre,
		PostExtrapolation: c.post,
	}
	for r := c.head; r != 0; r = c.at(r).next {
		k := c.at(r)
		s.Keys = append(s.Keys, KeyframeState{
			Time:          k.time,
			Value:         k.value,
			PrevSlope:     k.prevSlope,
			NextSlope:     k.nextSlope,
			PrevMagnitude: k.prevMagnitude,
			NextMagnitude: k.nextMagnitude,
		})
	}
	return s
}

// Restore replaces the curve's keyframes and settings with s.
//
// Keyframes may be given in any order. Of several keyframes with the same
// time, the last one wins. The boundary slope policy is applied after all
// keyframes have been stored, so restoring the result of [Curve.State]
// reproduces it exactly.
func (c *Curve) Restore(s CurveState) {
	c.RemoveAllPoints()
	c.defaultValue = s.DefaultValue
	c.minValue = s.MinValue
	c.maxValue = s.MaxValue
	c.pre = s.PreExtrapolation
	c.post = s.PostExtrapolation

	refs := make([]ref, len(s.Keys))
	for i, ks := range s.Keys {
		if _, ok := c.KeyAt(ks.Time); ok {
			c.logger.WithFields(l.StringField("time", cast.ToString(ks.Time))).
				Warn("duplicate keyframe time, keeping the last one")
		}
		refs[i] = c.createKey(ks.Time)
	}
	for i, ks := range s.Keys {
		k := c.at(refs[i])
		k.value = ks.Value
		k.prevSlope, k.nextSlope = ks.PrevSlope, ks.NextSlope
		k.prevMagnitude, k.nextMagnitude = ks.PrevMagnitude, ks.NextMagnitude
	}
	c.enforceBoundaries()
	for r := c.head; r != 0; r = c.at(r).next {
		c.computeTangents(r)
	}
	c.invalidate()
}
