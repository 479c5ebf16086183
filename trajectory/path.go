package trajectory

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"

	"honnef.co/go/motion"
)

const (
	// DefaultTrackWidth is the distance between the left and right wheels of
	// the drivetrain, in feet.
	DefaultTrackWidth = 25.0 / 12.0
	// DefaultScrubFactor widens the effective track width to account for
	// wheel scrub while turning.
	DefaultScrubFactor = 1.12

	// defaultDuration is how long a path without ease keyframes takes.
	defaultDuration = 5.0
)

// Direction is the direction the robot faces while following a path.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Option configures a [Path] created by [NewPath].
type Option func(*Path)

// WithLogger sets the logger of the path and of its curves.
func WithLogger(logger l.Wrapper) Option {
	return func(p *Path) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTrackWidth sets the distance between the left and right wheels.
func WithTrackWidth(w float64) Option {
	return func(p *Path) { p.trackWidth = w }
}

// WithScrubFactor sets the factor the track width is scaled by.
func WithScrubFactor(f float64) Option {
	return func(p *Path) { p.scrubFactor = f }
}

// wheel tracks the odometry of one side of the drivetrain.
type wheel struct {
	started    bool
	prevCenter motion.Point
	prevSide   motion.Point
	distance   float64
}

// Path is a trajectory for a differential drive robot: an XY curve giving the
// route, an ease curve giving the fraction of the route covered as a function
// of time, and a heading curve.
//
// Positive y is forward in robot space and positive x is to the robot's right.
//
// A Path is not safe for concurrent use. Besides the curves' own caches, it
// tracks the distance covered by each wheel between calls.
type Path struct {
	Name string

	xy      XYCurve
	ease    *motion.Curve
	heading *motion.Curve

	speed       float64
	direction   Direction
	mirrored    bool
	trackWidth  float64
	scrubFactor float64

	left, right wheel

	logger l.Wrapper
}

// NewPath returns an empty path that plays forward at speed 1.
func NewPath(name string, opts ...Option) *Path {
	p := &Path{
		Name:        name,
		speed:       1.0,
		trackWidth:  DefaultTrackWidth,
		scrubFactor: DefaultScrubFactor,
		logger:      l.NewNopLoggerWrapper(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithFields(l.StringField(l.ClsKey, "trajectory.Path"), l.StringField("path", name))
	p.ease = motion.NewCurve(motion.WithLogger(p.logger.WithFields(l.StringField("curve", "ease"))))
	p.heading = motion.NewCurve(motion.WithLogger(p.logger.WithFields(l.StringField("curve", "heading"))))
	return p
}

func (p *Path) String() string {
	return fmt.Sprintf("Path(%q, %d points, %d ease keys)", p.Name, p.xy.Len(), p.ease.Len())
}

func (p *Path) XYCurve() *XYCurve           { return &p.xy }
func (p *Path) EaseCurve() *motion.Curve    { return p.ease }
func (p *Path) HeadingCurve() *motion.Curve { return p.heading }
func (p *Path) Speed() float64              { return p.speed }
func (p *Path) SetSpeed(s float64)          { p.speed = s }
func (p *Path) Direction() Direction        { return p.direction }
func (p *Path) SetDirection(d Direction)    { p.direction = d }
func (p *Path) Mirrored() bool              { return p.mirrored }
func (p *Path) SetMirrored(m bool)          { p.mirrored = m }
func (p *Path) TrackWidth() float64         { return p.trackWidth }
func (p *Path) ScrubFactor() float64        { return p.scrubFactor }
func (p *Path) Length() float64             { return p.xy.Length() }
func (p *Path) HasPoints() bool             { return p.xy.Len() > 0 }
func (p *Path) RemovePoint(i int) error     { return p.xy.RemovePoint(i) }
func (p *Path) RemoveAllEasePoints()        { p.ease.RemoveAllPoints() }
func (p *Path) AddPoint(x, y float64) int   { return p.xy.AddPoint(motion.Pt(x, y)) }
func (p *Path) AddEasePoint(time, value float64) motion.Key {
	return p.ease.StoreValue(time, value)
}

// AddPointAndTangent appends a point with an explicit tangent.
func (p *Path) AddPointAndTangent(x, y, xTangent, yTangent float64) int {
	return p.xy.AddPointAndTangent(motion.Pt(x, y), motion.Vec(xTangent, yTangent))
}

// AddPointAngleAndMagnitude appends a point whose tangent has the given
// length and points in the given direction. The angle is in degrees, with 0
// pointing forward and positive angles turning right.
func (p *Path) AddPointAngleAndMagnitude(x, y, angle, magnitude float64) int {
	// Angles are measured clockwise from positive y.
	dir := motion.VecFromAngle(math.Pi/2 - angle*math.Pi/180)
	return p.xy.AddPointAndTangent(motion.Pt(x, y), dir.Mul(magnitude))
}

// AddEasePointSlopeAndMagnitude stores an ease keyframe with the given slope
// method and tangent magnitude on both sides.
func (p *Path) AddEasePointSlopeAndMagnitude(time, value float64, slope motion.SlopeMethod, magnitude float64) motion.Key {
	return p.ease.StoreValueWithSlopeAndMagnitude(time, value, slope, magnitude)
}

// AddHeadingPoint stores a heading keyframe.
func (p *Path) AddHeadingPoint(time, value float64) motion.Key {
	return p.heading.StoreValue(time, value)
}

// easeAt returns the fraction of the route covered at the given time.
//
// Without ease keyframes, the path is covered linearly in defaultDuration
// seconds. A negative speed plays the path backwards from its end.
func (p *Path) easeAt(time float64) float64 {
	if p.ease.Len() == 0 {
		e := time / defaultDuration * math.Abs(p.speed)
		if p.speed < 0 {
			return 1 - e
		}
		return e
	}
	return p.ease.Value(p.curveTime(time))
}

// curveTime maps path time to the time of the ease and heading curves.
func (p *Path) curveTime(time float64) float64 {
	if p.speed < 0 {
		return p.Duration() - time*-p.speed
	}
	return time * p.speed
}

// Position returns the position of the robot's center at the given time.
func (p *Path) Position(time float64) motion.Point {
	return p.PositionAtEase(p.easeAt(time))
}

// Tangent returns the direction of travel at the given time. It points
// backwards when the robot drives the path backwards.
func (p *Path) Tangent(time float64) motion.Vec2 {
	t := p.TangentAtEase(p.easeAt(time))
	if p.direction == Backward {
		t = t.Negate()
	}
	return t
}

// PositionAtEase returns the position at the given fraction of the route.
func (p *Path) PositionAtEase(ease float64) motion.Point {
	pos := p.xy.PositionAtDistance(ease * p.xy.Length())
	if p.mirrored {
		pos = pos.MirrorX()
	}
	return pos
}

// TangentAtEase returns the route's tangent at the given fraction of the
// route.
func (p *Path) TangentAtEase(ease float64) motion.Vec2 {
	t := p.xy.TangentAtDistance(ease * p.xy.Length())
	if p.mirrored {
		t = t.MirrorX()
	}
	return t
}

// VelocityAtEase returns the derivative of the position with respect to ease:
// the direction of the route at the given fraction of it, scaled by the
// route's length.
func (p *Path) VelocityAtEase(ease float64) motion.Vec2 {
	return p.TangentAtEase(ease).Normalize().Mul(p.xy.Length())
}

// Velocity returns the velocity of the robot's center at the given time, in
// field units per second.
func (p *Path) Velocity(time float64) motion.Vec2 {
	const h = 1e-4
	rate := (p.easeAt(time+h) - p.easeAt(time-h)) / (2 * h)
	return p.VelocityAtEase(p.easeAt(time)).Mul(rate)
}

// Heading returns the value of the heading curve at the given time.
func (p *Path) Heading(time float64) float64 {
	return p.heading.Value(p.curveTime(time))
}

// SidePosition returns the point offset perpendicularly from the robot's
// center at the given time. Positive offsets are to the right of the
// direction of travel.
func (p *Path) SidePosition(time, offset float64) motion.Point {
	center := p.Position(time)
	normal := p.Tangent(time).Normalize().Perpendicular()
	if p.speed < 0 {
		offset = -offset
	}
	return center.Translate(normal.Mul(offset))
}

func (p *Path) halfTrack() float64 {
	return p.trackWidth * p.scrubFactor / 2
}

// LeftPosition returns the position of the left wheels at the given time.
func (p *Path) LeftPosition(time float64) motion.Point {
	return p.SidePosition(time, -p.halfTrack())
}

// RightPosition returns the position of the right wheels at the given time.
func (p *Path) RightPosition(time float64) motion.Point {
	return p.SidePosition(time, p.halfTrack())
}

// delta advances w to the given time and returns the signed distance its
// side moved since the previous call. The first call after a reset returns 0.
func (p *Path) delta(w *wheel, time float64, side func(float64) motion.Point) float64 {
	center, pos := p.Position(time), side(time)
	if !w.started {
		w.started = true
		w.prevCenter, w.prevSide = center, pos
		return 0
	}

	dCenter := center.Sub(w.prevCenter)
	dSide := pos.Sub(w.prevSide)
	w.prevCenter, w.prevSide = center, pos

	d := dSide.Hypot()
	if dCenter.Dot(dSide) <= 0 {
		d = -d
	}
	if p.direction == Backward {
		d = -d
	}
	return d
}

// LeftPositionDelta returns how far the left wheels moved since the previous
// call.
func (p *Path) LeftPositionDelta(time float64) float64 {
	return p.delta(&p.left, time, p.LeftPosition)
}

// RightPositionDelta returns how far the right wheels moved since the
// previous call.
func (p *Path) RightPositionDelta(time float64) float64 {
	return p.delta(&p.right, time, p.RightPosition)
}

// LeftDistance returns the total distance covered by the left wheels, as
// accumulated by calls since the last [Path.ResetDistances].
func (p *Path) LeftDistance(time float64) float64 {
	p.left.distance += p.LeftPositionDelta(time)
	return p.left.distance
}

// RightDistance returns the total distance covered by the right wheels, as
// accumulated by calls since the last [Path.ResetDistances].
func (p *Path) RightDistance(time float64) float64 {
	p.right.distance += p.RightPositionDelta(time)
	return p.right.distance
}

// ResetDistances resets the wheel odometry.
func (p *Path) ResetDistances() {
	p.left = wheel{}
	p.right = wheel{}
}

// Duration returns the time of the last ease keyframe, or the default
// duration of 5 seconds if there are no ease keyframes.
func (p *Path) Duration() float64 {
	if p.ease.Len() == 0 {
		return defaultDuration
	}
	return p.ease.Length()
}

// DurationWithSpeed returns how long the path takes at its speed.
func (p *Path) DurationWithSpeed() float64 {
	return p.Duration() / math.Abs(p.speed)
}

// SetDuration moves the last ease keyframe to the given time.
func (p *Path) SetDuration(seconds float64) error {
	tail, ok := p.ease.Tail()
	if !ok {
		return ErrNoEaseKeys
	}
	if err := tail.SetTime(seconds); err != nil {
		p.logger.WithFields(
			l.StringField("duration", cast.ToString(seconds)),
			l.ErrorField(err),
		).Warn("failed to set path duration")
		return err
	}
	return nil
}
