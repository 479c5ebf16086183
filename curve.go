package motion

import (
	"iter"
	"math"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

// Evaluator is the query side of a keyframe curve.
type Evaluator interface {
	// Value returns the curve's value at the given time.
	Value(time float64) float64
	// Length returns the time of the last keyframe, or 0 for an empty curve.
	Length() float64
}

// Editor is the mutation side of a keyframe curve.
type Editor interface {
	StoreValue(time, value float64) Key
	StoreValueWithSlopeAndMagnitude(time, value float64, slope SlopeMethod, magnitude float64) Key
	RemoveKey(k Key) error
	RemoveAllPoints()
}

var _ Evaluator = (*Curve)(nil)
var _ Editor = (*Curve)(nil)

type memo struct {
	time  float64
	value float64
}

// Curve is a scalar function of time defined by a chain of keyframes.
//
// Between keyframes, the curve interpolates according to the keyframes' slope
// methods. Outside of the keyframes' time range, it extrapolates according to
// its pre- and post-extrapolation settings.
//
// The first keyframe's outgoing side and the last keyframe's incoming side are
// always flat, so that a curve used as an ease curve starts and ends at rest.
// A keyframe that stops being the first or last keyframe because another
// keyframe was stored before or after it has both of its sides reset to
// [SlopeSmooth].
//
// Curve is optimized for being sampled at increasing times, such as once per
// iteration of a control loop: it remembers the keyframe last looked at and
// starts searching from there, and it caches the result of the last
// evaluation. Because of this, even [Curve.Value] modifies the curve, and a
// Curve must not be used concurrently from multiple goroutines.
//
// Use [NewCurve] to create curves.
type Curve struct {
	keys  []keyframe
	free  []ref
	epoch uint32

	head ref
	tail ref
	n    int

	// hint is the keyframe a search starts from.
	hint ref
	memo option[memo]

	defaultValue float64
	minValue     float64
	maxValue     float64
	pre          Extrapolation
	post         Extrapolation

	logger l.Wrapper
}

// NewCurve returns an empty curve with a default value of 0, no value bounds,
// and constant extrapolation on both ends.
func NewCurve(opts ...Option) *Curve {
	c := &Curve{
		minValue: -math.MaxFloat64,
		maxValue: math.MaxFloat64,
		pre:      ExtrapolateConstant,
		post:     ExtrapolateConstant,
		logger:   l.NewNopLoggerWrapper(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithFields(l.StringField(l.ClsKey, "motion.Curve"))
	return c
}

func (c *Curve) at(r ref) *keyframe {
	return &c.keys[r-1]
}

func (c *Curve) key(r ref) (Key, bool) {
	if r == 0 {
		return Key{}, false
	}
	return Key{c: c, ref: r, gen: c.at(r).gen, epoch: c.epoch}, true
}

func (c *Curve) mustKey(r ref) Key {
	k, _ := c.key(r)
	return k
}

func (c *Curve) invalidate() {
	c.memo.clear()
}

// Len returns the number of keyframes.
func (c *Curve) Len() int { return c.n }

// Head returns the first keyframe.
func (c *Curve) Head() (Key, bool) { return c.key(c.head) }

// Tail returns the last keyframe.
func (c *Curve) Tail() (Key, bool) { return c.key(c.tail) }

// Length returns the time of the last keyframe, or 0 if the curve has no
// keyframes.
func (c *Curve) Length() float64 {
	if c.tail == 0 {
		return 0
	}
	return c.at(c.tail).time
}

// Keys returns an iterator over the keyframes, in time order.
//
// The curve must not be modified structurally while iterating; changing
// values is fine.
func (c *Curve) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for r := c.head; r != 0; r = c.at(r).next {
			if !yield(c.mustKey(r)) {
				return
			}
		}
	}
}

// DefaultValue returns the value of the curve while it has no keyframes.
func (c *Curve) DefaultValue() float64 { return c.defaultValue }

// SetDefaultValue sets the value of the curve while it has no keyframes.
func (c *Curve) SetDefaultValue(v float64) { c.defaultValue = v }

// MinValue returns the curve's lower bound. MinValue and MaxValue are
// informational bounds carried with the curve. They are not applied by
// [Curve.Value].
func (c *Curve) MinValue() float64 { return c.minValue }

// SetMinValue sets the curve's lower bound.
func (c *Curve) SetMinValue(v float64) { c.minValue = v }

// MaxValue returns the curve's upper bound.
func (c *Curve) MaxValue() float64 { return c.maxValue }

// SetMaxValue sets the curve's upper bound.
func (c *Curve) SetMaxValue(v float64) { c.maxValue = v }

// PreExtrapolation returns how the curve behaves before its first keyframe.
func (c *Curve) PreExtrapolation() Extrapolation { return c.pre }

// SetPreExtrapolation sets how the curve behaves before its first keyframe.
func (c *Curve) SetPreExtrapolation(e Extrapolation) { c.pre = e }

// PostExtrapolation returns how the curve behaves after its last keyframe.
func (c *Curve) PostExtrapolation() Extrapolation { return c.post }

// SetPostExtrapolation sets how the curve behaves after its last keyframe.
func (c *Curve) SetPostExtrapolation(e Extrapolation) { c.post = e }

// seek returns the last keyframe whose time is at most t, or the first
// keyframe if all keyframes are later than t. The search starts at the hint
// and walks towards t, which makes monotonic sequences of lookups cheap.
func (c *Curve) seek(t float64) ref {
	r := c.hint
	if r == 0 {
		r = c.head
	}
	if r == 0 {
		return 0
	}

	if k := c.at(r); k.time < t {
		for next := k.next; next != 0; next = c.at(r).next {
			if c.at(next).time > t {
				break
			}
			r = next
		}
	} else if k.time > t {
		for prev := k.prev; prev != 0; prev = c.at(r).prev {
			r = prev
			if c.at(r).time <= t {
				break
			}
		}
	}

	c.hint = r
	return r
}

// KeyAt returns the keyframe at exactly time t.
func (c *Curve) KeyAt(t float64) (Key, bool) {
	r := c.seek(t)
	if r == 0 || c.at(r).time != t {
		return Key{}, false
	}
	return c.key(r)
}

func (c *Curve) alloc(t float64) ref {
	var r ref
	if n := len(c.free); n > 0 {
		r = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		c.keys = append(c.keys, keyframe{})
		r = ref(len(c.keys))
	}
	k := c.at(r)
	*k = keyframe{
		time:          t,
		prevSlope:     SlopeSmooth,
		nextSlope:     SlopeSmooth,
		prevMagnitude: 1.0,
		nextMagnitude: 1.0,
		gen:           k.gen,
		live:          true,
	}
	return r
}

func (c *Curve) release(r ref) {
	k := c.at(r)
	k.live = false
	k.gen++
	k.prev, k.next = 0, 0
	c.free = append(c.free, r)
}

func (c *Curve) linkAfter(at, r ref) {
	a, k := c.at(at), c.at(r)
	k.prev = at
	k.next = a.next
	if a.next != 0 {
		c.at(a.next).prev = r
	} else {
		c.tail = r
	}
	a.next = r
}

func (c *Curve) linkBefore(at, r ref) {
	a, k := c.at(at), c.at(r)
	k.next = at
	k.prev = a.prev
	if a.prev != 0 {
		c.at(a.prev).next = r
	} else {
		c.head = r
	}
	a.prev = r
}

// link inserts the unlinked keyframe r at its place in time order.
func (c *Curve) link(r ref) {
	t := c.at(r).time
	switch at := c.seek(t); {
	case at == 0:
		c.head, c.tail = r, r
	case c.at(at).time < t:
		c.linkAfter(at, r)
	default:
		c.linkBefore(at, r)
	}
}

func (c *Curve) unlink(r ref) {
	k := c.at(r)
	if k.prev != 0 {
		c.at(k.prev).next = k.next
	} else {
		c.head = k.next
	}
	if k.next != 0 {
		c.at(k.next).prev = k.prev
	} else {
		c.tail = k.prev
	}
	k.prev, k.next = 0, 0
	if c.hint == r {
		c.hint = 0
	}
}

// touch recomputes the tangents that depend on keyframe r.
func (c *Curve) touch(r ref) {
	k := c.at(r)
	if k.prev != 0 {
		c.computeTangents(k.prev)
	}
	c.computeTangents(r)
	if k.next != 0 {
		c.computeTangents(k.next)
	}
}

// applyBoundaryPolicy sets the slope methods of a newly inserted keyframe and
// of the keyframe that lost its place as the first or last keyframe.
func (c *Curve) applyBoundaryPolicy(r ref) {
	k := c.at(r)
	switch {
	case r == c.head && r == c.tail:
		k.prevSlope = SlopeFlat
		k.nextSlope = SlopeFlat
	case r == c.head:
		k.nextSlope = SlopeFlat
		if k.next != c.tail {
			c.smooth(k.next)
		} else {
			// The former single keyframe. Its incoming side stays flat.
			c.at(k.next).nextSlope = SlopeSmooth
		}
	case r == c.tail:
		k.prevSlope = SlopeFlat
		if k.prev != c.head {
			c.smooth(k.prev)
		} else {
			c.at(k.prev).prevSlope = SlopeSmooth
		}
	default:
		c.smooth(r)
	}
}

func (c *Curve) smooth(r ref) {
	k := c.at(r)
	k.prevSlope = SlopeSmooth
	k.nextSlope = SlopeSmooth
}

// enforceBoundaries flattens the outgoing side of the first keyframe and the
// incoming side of the last keyframe.
func (c *Curve) enforceBoundaries() {
	if c.head == 0 {
		return
	}
	if h := c.at(c.head); h.nextSlope != SlopeFlat {
		h.nextSlope = SlopeFlat
		c.computeTangents(c.head)
	}
	if t := c.at(c.tail); t.prevSlope != SlopeFlat {
		t.prevSlope = SlopeFlat
		c.computeTangents(c.tail)
	}
}

// createKey returns the keyframe at time t, inserting it if needed. Existing
// keyframes keep their slope methods.
func (c *Curve) createKey(t float64) ref {
	r := c.seek(t)
	if r == 0 || c.at(r).time != t {
		r = c.alloc(t)
		c.link(r)
		c.n++
		c.applyBoundaryPolicy(r)
	}
	c.hint = r
	c.invalidate()
	return r
}

// StoreValue sets the curve's value at the given time, reusing the keyframe
// at that time if there is one and inserting a new keyframe otherwise.
func (c *Curve) StoreValue(time, value float64) Key {
	r := c.createKey(time)
	c.at(r).value = value
	c.touch(r)
	return c.mustKey(r)
}

// StoreValueWithSlopeAndMagnitude is like [Curve.StoreValue], but also sets
// both of the keyframe's slope methods and tangent magnitudes. The boundary
// slope policy takes precedence over slope.
func (c *Curve) StoreValueWithSlopeAndMagnitude(time, value float64, slope SlopeMethod, magnitude float64) Key {
	r := c.createKey(time)
	k := c.at(r)
	k.value = value
	k.prevSlope, k.nextSlope = slope, slope
	k.prevMagnitude, k.nextMagnitude = magnitude, magnitude
	c.enforceBoundaries()
	c.touch(r)
	c.checkSegments(r)
	return c.mustKey(r)
}

// RemoveKey removes a keyframe from the curve. It returns [ErrInvalidKey] if
// k doesn't refer to a keyframe of c.
func (c *Curve) RemoveKey(k Key) error {
	if k.c != c || !k.Valid() {
		return ErrInvalidKey
	}
	r := k.ref
	prev, next := c.at(r).prev, c.at(r).next
	c.unlink(r)
	c.release(r)
	c.n--

	c.enforceBoundaries()
	if prev != 0 {
		c.touch(prev)
	}
	if next != 0 {
		c.touch(next)
	}
	c.invalidate()
	return nil
}

// RemoveAllPoints removes all keyframes. Keys obtained before the call become
// invalid.
func (c *Curve) RemoveAllPoints() {
	c.keys = nil
	c.free = nil
	c.epoch++
	c.head, c.tail, c.hint = 0, 0, 0
	c.n = 0
	c.invalidate()
}

// moveKey changes the time of keyframe r, moving it to its new place in the
// chain if it passed one of its neighbors.
func (c *Curve) moveKey(r ref, t float64) {
	k := c.at(r)
	from := k.time
	k.time = t

	prev, next := k.prev, k.next
	if (prev == 0 || c.at(prev).time < t) && (next == 0 || c.at(next).time > t) {
		c.touch(r)
		c.invalidate()
		return
	}

	c.logger.WithFields(
		l.StringField("from", cast.ToString(from)),
		l.StringField("to", cast.ToString(t)),
	).Warn("keyframe moved past a neighbor, reordering")

	oldHead, oldTail := c.head, c.tail
	c.unlink(r)
	if prev != 0 {
		c.touch(prev)
	}
	if next != 0 {
		c.touch(next)
	}
	c.link(r)

	for _, e := range [...]ref{oldHead, oldTail} {
		if e != c.head && e != c.tail {
			c.smooth(e)
			c.touch(e)
		}
	}
	c.enforceBoundaries()
	c.touch(r)
	c.hint = r
	c.invalidate()
}

// checkSegments warns about segments next to keyframe r whose time axis is not
// monotonic. Evaluating such segments falls back to sampling.
func (c *Curve) checkSegments(r ref) {
	k := c.at(r)
	for _, pair := range [...][2]ref{{k.prev, r}, {r, k.next}} {
		if pair[0] == 0 || pair[1] == 0 {
			continue
		}
		a, b := c.at(pair[0]), c.at(pair[1])
		if a.nextMagnitude == 1.0 && b.prevMagnitude == 1.0 {
			continue
		}
		if seg := newSegment(a, b); !seg.X.Monotonic() {
			c.logger.WithFields(
				l.StringField("start", cast.ToString(a.time)),
				l.StringField("end", cast.ToString(b.time)),
			).Warn("segment time axis is not monotonic")
		}
	}
}
