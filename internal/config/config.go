package config

import (
	"errors"
	"fmt"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"honnef.co/go/motion"
	"honnef.co/go/motion/trajectory"
)

// Config describes which curves to sample, and when.
type Config struct {
	Sample SampleConfig  `yaml:"sample"`
	Curves []CurveConfig `yaml:"curves"`
	Path   *PathConfig   `yaml:"path"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Sample.Validate(); err != nil {
		return fmt.Errorf("sample: %w", err)
	}
	if len(c.Curves) == 0 && c.Path == nil {
		return errors.New("no curves or path configured")
	}
	seen := make(map[string]bool, len(c.Curves))
	for i := range c.Curves {
		cc := &c.Curves[i]
		if err := cc.Validate(); err != nil {
			return fmt.Errorf("curves[%d]: %w", i, err)
		}
		if seen[cc.Name] {
			return fmt.Errorf("curves[%d]: duplicate curve name %q", i, cc.Name)
		}
		seen[cc.Name] = true
	}
	if c.Path != nil {
		if err := c.Path.Validate(); err != nil {
			return fmt.Errorf("path: %w", err)
		}
	}
	return nil
}

// maxSamples bounds the number of sample times a configuration may request.
const maxSamples = 1_000_000

// SampleConfig is the time range to sample and the distance between samples.
type SampleConfig struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	Step float64 `yaml:"step"`
}

// Validate validates the sample configuration.
func (c *SampleConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.From, validation.By(finite)),
		validation.Field(&c.To, validation.By(finite)),
		validation.Field(&c.Step, validation.Required, validation.Min(0.0).Exclusive()),
	); err != nil {
		return err
	}
	if c.To < c.From {
		return fmt.Errorf("to %g is before from %g", c.To, c.From)
	}
	if n := (c.To - c.From) / c.Step; !(n < maxSamples) {
		return fmt.Errorf("%g to %g in steps of %g exceeds %d samples", c.From, c.To, c.Step, maxSamples)
	}
	return nil
}

// Times returns the sample times from From to To inclusive.
func (c *SampleConfig) Times() []float64 {
	if c.Step <= 0 || c.To < c.From || !((c.To-c.From)/c.Step < maxSamples) {
		return nil
	}
	n := int(math.Floor((c.To-c.From)/c.Step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = c.From + float64(i)*c.Step
	}
	return out
}

// CurveConfig describes one keyframe curve.
type CurveConfig struct {
	Name    string               `yaml:"name"`
	Default float64              `yaml:"default"`
	Min     *float64             `yaml:"min"`
	Max     *float64             `yaml:"max"`
	Pre     motion.Extrapolation `yaml:"pre"`
	Post    motion.Extrapolation `yaml:"post"`
	Keys    []KeyConfig          `yaml:"keys"`
}

// Validate validates the curve configuration.
func (c *CurveConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Keys),
	); err != nil {
		return err
	}
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		return fmt.Errorf("min %g is greater than max %g", *c.Min, *c.Max)
	}
	return nil
}

// State returns the curve's state, ready for [motion.Curve.Restore].
func (c *CurveConfig) State() motion.CurveState {
	s := motion.CurveState{
		DefaultValue:      c.Default,
		MinValue:          -math.MaxFloat64,
		MaxValue:          math.MaxFloat64,
		PreExtrapolation:  c.Pre,
		PostExtrapolation: c.Post,
		Keys:              make([]motion.KeyframeState, len(c.Keys)),
	}
	if c.Min != nil {
		s.MinValue = *c.Min
	}
	if c.Max != nil {
		s.MaxValue = *c.Max
	}
	for i, k := range c.Keys {
		s.Keys[i] = k.State()
	}
	return s
}

// KeyConfig describes one keyframe. Omitted magnitudes default to 1.
type KeyConfig struct {
	Time          float64            `yaml:"time"`
	Value         float64            `yaml:"value"`
	PrevSlope     motion.SlopeMethod `yaml:"prev_slope"`
	NextSlope     motion.SlopeMethod `yaml:"next_slope"`
	PrevMagnitude *float64           `yaml:"prev_magnitude"`
	NextMagnitude *float64           `yaml:"next_magnitude"`
}

// Validate validates the keyframe configuration.
func (c KeyConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Time, validation.By(finite)),
		validation.Field(&c.Value, validation.By(finite)),
		validation.Field(&c.PrevMagnitude, validation.By(finite)),
		validation.Field(&c.NextMagnitude, validation.By(finite)),
	)
}

// State returns the keyframe's state.
func (c KeyConfig) State() motion.KeyframeState {
	ks := motion.KeyframeState{
		Time:          c.Time,
		Value:         c.Value,
		PrevSlope:     c.PrevSlope,
		NextSlope:     c.NextSlope,
		PrevMagnitude: 1,
		NextMagnitude: 1,
	}
	if c.PrevMagnitude != nil {
		ks.PrevMagnitude = *c.PrevMagnitude
	}
	if c.NextMagnitude != nil {
		ks.NextMagnitude = *c.NextMagnitude
	}
	return ks
}

func finite(value any) error {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case *float64:
		if v == nil {
			return nil
		}
		f = *v
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("must be finite")
	}
	return nil
}

// PathConfig describes a trajectory.
type PathConfig struct {
	Name        string        `yaml:"name"`
	Speed       *float64      `yaml:"speed"`
	Direction   string        `yaml:"direction"`
	Mirrored    bool          `yaml:"mirrored"`
	TrackWidth  *float64      `yaml:"track_width"`
	ScrubFactor *float64      `yaml:"scrub_factor"`
	Points      []PointConfig `yaml:"points"`
	Ease        []KeyConfig   `yaml:"ease"`
	Heading     []KeyConfig   `yaml:"heading"`
}

// Path direction names.
const (
	DirectionForward  = "forward"
	DirectionBackward = "backward"
)

// Validate validates the path configuration.
func (c *PathConfig) Validate() error {
	if c.Direction == "" {
		c.Direction = DirectionForward
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Direction, validation.In(DirectionForward, DirectionBackward)),
		validation.Field(&c.TrackWidth, validation.NilOrNotEmpty, validation.Min(0.0).Exclusive()),
		validation.Field(&c.ScrubFactor, validation.NilOrNotEmpty, validation.Min(0.0).Exclusive()),
		validation.Field(&c.Points, validation.Required, validation.Length(2, 0)),
		validation.Field(&c.Ease),
		validation.Field(&c.Heading),
	)
}

// PointConfig is a path point. The tangent is explicit if both of its
// components are given.
type PointConfig struct {
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	TangentX *float64 `yaml:"tangent_x"`
	TangentY *float64 `yaml:"tangent_y"`
}

// Validate validates the point configuration.
func (c PointConfig) Validate() error {
	if (c.TangentX == nil) != (c.TangentY == nil) {
		return errors.New("tangent_x and tangent_y must be given together")
	}
	return nil
}

// Build creates the path described by c.
func (c *PathConfig) Build(opts ...trajectory.Option) *trajectory.Path {
	if c.TrackWidth != nil {
		opts = append(opts, trajectory.WithTrackWidth(*c.TrackWidth))
	}
	if c.ScrubFactor != nil {
		opts = append(opts, trajectory.WithScrubFactor(*c.ScrubFactor))
	}
	p := trajectory.NewPath(c.Name, opts...)
	if c.Speed != nil {
		p.SetSpeed(*c.Speed)
	}
	if c.Direction == DirectionBackward {
		p.SetDirection(trajectory.Backward)
	}
	p.SetMirrored(c.Mirrored)

	for _, pt := range c.Points {
		if pt.TangentX != nil && pt.TangentY != nil {
			p.AddPointAndTangent(pt.X, pt.Y, *pt.TangentX, *pt.TangentY)
		} else {
			p.AddPoint(pt.X, pt.Y)
		}
	}
	p.EaseCurve().Restore(keysState(c.Ease))
	p.HeadingCurve().Restore(keysState(c.Heading))
	return p
}

func keysState(keys []KeyConfig) motion.CurveState {
	s := motion.CurveState{
		MinValue: -math.MaxFloat64,
		MaxValue: math.MaxFloat64,
		Keys:     make([]motion.KeyframeState, len(keys)),
	}
	for i, k := range keys {
		s.Keys[i] = k.State()
	}
	return s
}
