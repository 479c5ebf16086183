package motion

import "fmt"

// ref is a 1-based index into a curve's keyframe arena. The zero value refers
// to no keyframe.
type ref int32

type keyframe struct {
	time  float64
	value float64

	prevSlope     SlopeMethod
	nextSlope     SlopeMethod
	prevMagnitude float64
	nextMagnitude float64

	// Derived from the slope methods, magnitudes and neighbors by
	// computeTangents.
	prevTangent Vec2
	nextTangent Vec2

	prev ref
	next ref

	gen  uint32
	live bool
}

func (k *keyframe) pos() Vec2 {
	return Vec2{X: k.time, Y: k.value}
}

// Key is a handle to a keyframe owned by a [Curve].
//
// Keys are cheap values. A Key stays valid until its keyframe is removed from
// the curve; using an invalid Key with any method other than [Key.Valid]
// panics. Modifying a keyframe through its Key has the same effects on the
// curve as the curve's own mutation methods: tangents are recomputed, the
// boundary slope policy is reapplied, and cached results are discarded.
type Key struct {
	c     *Curve
	ref   ref
	gen   uint32
	epoch uint32
}

// Valid reports whether k refers to a keyframe that is still part of its
// curve.
func (k Key) Valid() bool {
	if k.c == nil || k.ref <= 0 || k.epoch != k.c.epoch || int(k.ref) > len(k.c.keys) {
		return false
	}
	rec := &k.c.keys[k.ref-1]
	return rec.live && rec.gen == k.gen
}

func (k Key) rec() *keyframe {
	if !k.Valid() {
		panic("motion: use of invalid Key")
	}
	return &k.c.keys[k.ref-1]
}

func (k Key) String() string {
	if !k.Valid() {
		return "Key(invalid)"
	}
	rec := k.rec()
	return fmt.Sprintf("Key(%g: %g)", rec.time, rec.value)
}

// Curve returns the curve that owns the keyframe.
func (k Key) Curve() *Curve { return k.c }

// Time returns the keyframe's time.
func (k Key) Time() float64 { return k.rec().time }

// Value returns the keyframe's value.
func (k Key) Value() float64 { return k.rec().value }

// PrevSlope returns the slope method of the keyframe's incoming side.
func (k Key) PrevSlope() SlopeMethod { return k.rec().prevSlope }

// NextSlope returns the slope method of the keyframe's outgoing side.
func (k Key) NextSlope() SlopeMethod { return k.rec().nextSlope }

// PrevMagnitude returns the scale of the keyframe's incoming tangent.
func (k Key) PrevMagnitude() float64 { return k.rec().prevMagnitude }

// NextMagnitude returns the scale of the keyframe's outgoing tangent.
func (k Key) NextMagnitude() float64 { return k.rec().nextMagnitude }

// PrevTangent returns the incoming tangent in (time, value) space.
func (k Key) PrevTangent() Vec2 { return k.rec().prevTangent }

// NextTangent returns the outgoing tangent in (time, value) space.
func (k Key) NextTangent() Vec2 { return k.rec().nextTangent }

// Prev returns the previous keyframe, if any.
func (k Key) Prev() (Key, bool) { return k.c.key(k.rec().prev) }

// Next returns the next keyframe, if any.
func (k Key) Next() (Key, bool) { return k.c.key(k.rec().next) }

// SetValue changes the keyframe's value.
func (k Key) SetValue(v float64) {
	k.rec().value = v
	k.c.touch(k.ref)
	k.c.invalidate()
}

// SetTime moves the keyframe to a new time. Moving a keyframe past one of its
// neighbors moves it to its new place in the chain.
//
// SetTime returns [ErrTimeOccupied] if another keyframe of the curve already
// sits at t.
func (k Key) SetTime(t float64) error {
	rec := k.rec()
	if rec.time == t {
		return nil
	}
	if other, ok := k.c.KeyAt(t); ok && other.ref != k.ref {
		return fmt.Errorf("%w: %g", ErrTimeOccupied, t)
	}
	k.c.moveKey(k.ref, t)
	return nil
}

// SetPrevSlope sets the slope method of the keyframe's incoming side. The
// incoming side of the last keyframe is always [SlopeFlat].
func (k Key) SetPrevSlope(s SlopeMethod) {
	k.rec().prevSlope = s
	k.c.enforceBoundaries()
	k.c.touch(k.ref)
	k.c.invalidate()
}

// SetNextSlope sets the slope method of the keyframe's outgoing side. The
// outgoing side of the first keyframe is always [SlopeFlat].
func (k Key) SetNextSlope(s SlopeMethod) {
	k.rec().nextSlope = s
	k.c.enforceBoundaries()
	k.c.touch(k.ref)
	k.c.invalidate()
}

// SetPrevMagnitude scales the keyframe's incoming tangent. A magnitude other
// than 1 makes time nonlinear in the segment parameter.
func (k Key) SetPrevMagnitude(m float64) {
	k.rec().prevMagnitude = m
	k.c.touch(k.ref)
	k.c.invalidate()
	k.c.checkSegments(k.ref)
}

// SetNextMagnitude scales the keyframe's outgoing tangent. A magnitude other
// than 1 makes time nonlinear in the segment parameter.
func (k Key) SetNextMagnitude(m float64) {
	k.rec().nextMagnitude = m
	k.c.touch(k.ref)
	k.c.invalidate()
	k.c.checkSegments(k.ref)
}

// Segment returns the parametric form of the span from k to the next
// keyframe. It returns false for the last keyframe.
func (k Key) Segment() (Segment, bool) {
	rec := k.rec()
	if rec.next == 0 {
		return Segment{}, false
	}
	return newSegment(rec, k.c.at(rec.next)), true
}
