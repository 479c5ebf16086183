// Package motion provides keyframe curves for motion profiling: scalar
// functions of time defined by a sparse set of keyframes, sampled many times
// per second by control loops.
//
// # Curves and keyframes
//
// A [Curve] holds its keyframes in time order. Keyframes are created with
// [Curve.StoreValue] and [Curve.StoreValueWithSlopeAndMagnitude] and are
// referred to by [Key] handles, which can be used to move a keyframe in time,
// change its value, or adjust its slope methods and tangent magnitudes.
//
// Each side of a keyframe has a [SlopeMethod]. Smooth, linear and flat sides
// produce cubic Hermite segments; stepped sides hold a value until the next
// keyframe. The first keyframe's outgoing side and the last keyframe's
// incoming side are always flat.
//
// # Time-axis inversion
//
// Both time and value of a segment are cubics in a segment parameter t. As
// long as a segment's tangent magnitudes are 1, time is linear in t and
// evaluation is direct. Other magnitudes make time a general cubic, which is
// inverted with Newton's method, falling back to bounded sampling when
// Newton's method fails to converge. A magnitude large enough to make the
// time axis non-monotonic produces a curve whose value is only approximately
// defined; the curve logs a warning when such a segment is created.
//
// # Extrapolation
//
// Outside the time range of its keyframes, a curve extrapolates according to
// its pre- and post-[Extrapolation] methods: holding the boundary value,
// continuing along the boundary tangent, or repeating the curve in one of
// three ways.
//
// # Sampling performance
//
// Curves remember the keyframe they last looked at and the last value they
// computed. Sampling at increasing times, as a control loop does, costs
// constant time per sample.
//
// # Geometry
//
// The package also provides the 2D primitives that trajectories are built
// from: [Vec2], [Point], [Line], [QuadBez] and [CubicBez], together with
// arc length computation ([Arclener]) and its inverse ([SolveForArclen]).
// The trajectory subpackage combines them with curves into paths that a
// differential drive robot can follow.
package motion
