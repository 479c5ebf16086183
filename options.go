package motion

import "github.com/sgostarter/i/l"

// Option configures a [Curve] created by [NewCurve].
type Option func(*Curve)

// WithLogger sets the logger used for diagnostics, such as keyframes being
// reordered or segments whose time axis can't be solved accurately. Curves
// log nothing by default.
func WithLogger(logger l.Wrapper) Option {
	return func(c *Curve) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultValue sets the value of the curve while it has no keyframes.
func WithDefaultValue(v float64) Option {
	return func(c *Curve) {
		c.defaultValue = v
	}
}

// WithValueRange sets the curve's informational value bounds.
func WithValueRange(lo, hi float64) Option {
	return func(c *Curve) {
		c.minValue = lo
		c.maxValue = hi
	}
}

// WithExtrapolation sets the extrapolation methods before the first and after
// the last keyframe.
func WithExtrapolation(pre, post Extrapolation) Option {
	return func(c *Curve) {
		c.pre = pre
		c.post = post
	}
}
