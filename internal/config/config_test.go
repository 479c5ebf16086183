package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"honnef.co/go/motion"
	"honnef.co/go/motion/trajectory"
)

const curvesYAML = `
sample:
  from: 0
  to: 2
  step: 0.5
curves:
  - name: lift
    default: 1
    min: 0
    max: ${LIFT_MAX}
    pre: constant
    post: oscillate
    keys:
      - time: 0
        value: 0
        next_slope: linear
      - time: 1
        value: 10
        prev_slope: linear
        next_slope: stepped
        next_magnitude: 2
      - time: 2
        value: 5
`

func TestParse(t *testing.T) {
	t.Setenv("LIFT_MAX", "12")

	var cfg Config
	require.NoError(t, Parse([]byte(curvesYAML), &cfg))
	require.Equal(t, SampleConfig{From: 0, To: 2, Step: 0.5}, cfg.Sample)
	require.Nil(t, cfg.Path)
	require.Len(t, cfg.Curves, 1)

	cc := cfg.Curves[0]
	require.Equal(t, "lift", cc.Name)
	require.Equal(t, motion.ExtrapolateConstant, cc.Pre)
	require.Equal(t, motion.ExtrapolateOscillate, cc.Post)
	require.NotNil(t, cc.Max)
	require.Equal(t, 12.0, *cc.Max)
	require.Len(t, cc.Keys, 3)
	require.Equal(t, motion.SlopeLinear, cc.Keys[0].NextSlope)
	require.Equal(t, motion.SlopeStepped, cc.Keys[1].NextSlope)
	require.Nil(t, cc.Keys[1].PrevMagnitude)

	s := cc.State()
	require.Equal(t, 1.0, s.DefaultValue)
	require.Equal(t, 0.0, s.MinValue)
	require.Equal(t, 12.0, s.MaxValue)
	require.Equal(t, 1.0, s.Keys[1].PrevMagnitude)
	require.Equal(t, 2.0, s.Keys[1].NextMagnitude)

	c := motion.NewCurve()
	c.Restore(s)
	require.Equal(t, 3, c.Len())
	// The first key's outgoing side is flat regardless of the file.
	head, _ := c.Head()
	require.Equal(t, motion.SlopeFlat, head.NextSlope())
	require.InDelta(t, 3.75, c.Value(0.5), 1e-9)
	// Stepped holds the value until the next key.
	require.Equal(t, 10.0, c.Value(1.5))
}

func TestLoad(t *testing.T) {
	t.Setenv("LIFT_MAX", "3")

	name := filepath.Join(t.TempDir(), "curves.yaml")
	require.NoError(t, os.WriteFile(name, []byte(curvesYAML), 0o644))

	var cfg Config
	require.NoError(t, Load(name, &cfg))
	require.Equal(t, 3.0, *cfg.Curves[0].Max)

	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			"zero step",
			"sample: {from: 0, to: 1, step: 0}\ncurves: [{name: a}]",
		},
		{
			"negative step",
			"sample: {from: 0, to: 1, step: -1}\ncurves: [{name: a}]",
		},
		{
			"reversed range",
			"sample: {from: 2, to: 1, step: 0.1}\ncurves: [{name: a}]",
		},
		{
			"nothing to sample",
			"sample: {from: 0, to: 1, step: 0.1}",
		},
		{
			"unnamed curve",
			"sample: {from: 0, to: 1, step: 0.1}\ncurves: [{default: 1}]",
		},
		{
			"duplicate names",
			"sample: {from: 0, to: 1, step: 0.1}\ncurves: [{name: a}, {name: a}]",
		},
		{
			"min above max",
			"sample: {from: 0, to: 1, step: 0.1}\ncurves: [{name: a, min: 2, max: 1}]",
		},
		{
			"infinite magnitude",
			"sample: {from: 0, to: 1, step: 0.1}\ncurves: [{name: a, keys: [{time: 0, next_magnitude: .inf}]}]",
		},
		{
			"nan key time",
			"sample: {from: 0, to: 1, step: 0.1}\ncurves: [{name: a, keys: [{time: .nan, value: 1}]}]",
		},
		{
			"infinite key value",
			"sample: {from: 0, to: 1, step: 0.1}\ncurves: [{name: a, keys: [{time: 0, value: -.inf}]}]",
		},
		{
			"too many samples",
			"sample: {from: 0, to: 1000, step: 1e-6}\ncurves: [{name: a}]",
		},
		{
			"infinite range",
			"sample: {from: 0, to: .inf, step: 1}\ncurves: [{name: a}]",
		},
		{
			"bad direction",
			"sample: {from: 0, to: 1, step: 0.1}\npath: {name: p, direction: sideways, points: [{x: 0, y: 0}, {x: 0, y: 1}]}",
		},
		{
			"single point",
			"sample: {from: 0, to: 1, step: 0.1}\npath: {name: p, points: [{x: 0, y: 0}]}",
		},
		{
			"zero track width",
			"sample: {from: 0, to: 1, step: 0.1}\npath: {name: p, track_width: 0, points: [{x: 0, y: 0}, {x: 0, y: 1}]}",
		},
		{
			"half a tangent",
			"sample: {from: 0, to: 1, step: 0.1}\npath: {name: p, points: [{x: 0, y: 0, tangent_x: 1}, {x: 0, y: 1}]}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			require.Error(t, Parse([]byte(tt.yaml), &cfg))
		})
	}
}

func TestParseUnknownNames(t *testing.T) {
	var cfg Config
	err := Parse([]byte("curves: [{name: a, keys: [{time: 0, next_slope: bogus}]}]"), &cfg)
	require.ErrorIs(t, err, motion.ErrUnknownSlopeMethod)

	cfg = Config{}
	err = Parse([]byte("curves: [{name: a, post: bogus}]"), &cfg)
	require.ErrorIs(t, err, motion.ErrUnknownExtrapolation)
}

func TestSampleTimes(t *testing.T) {
	s := SampleConfig{From: 0, To: 1, Step: 0.25}
	require.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, s.Times())

	s = SampleConfig{From: 0, To: 0.3, Step: 0.1}
	require.Len(t, s.Times(), 4)

	s = SampleConfig{From: 1, To: 1, Step: 0.1}
	require.Equal(t, []float64{1}, s.Times())

	s = SampleConfig{From: 2, To: 1, Step: 0.1}
	require.Nil(t, s.Times())

	s = SampleConfig{From: 0, To: 1, Step: 1e-9}
	require.Error(t, s.Validate())
	require.Nil(t, s.Times())
}

func TestPathBuild(t *testing.T) {
	const pathYAML = `
sample: {from: 0, to: 2, step: 1}
path:
  name: straight
  speed: 2
  track_width: 2
  points:
    - {x: 0, y: 0}
    - {x: 0, y: 10, tangent_x: 0, tangent_y: 10}
  ease:
    - {time: 0, value: 0}
    - {time: 2, value: 1}
  heading:
    - {time: 0, value: 0}
    - {time: 2, value: 90}
`
	var cfg Config
	require.NoError(t, Parse([]byte(pathYAML), &cfg))
	require.NotNil(t, cfg.Path)
	require.Equal(t, DirectionForward, cfg.Path.Direction)

	p := cfg.Path.Build()
	require.Equal(t, "straight", p.Name)
	require.Equal(t, 2.0, p.Speed())
	require.Equal(t, 2.0, p.TrackWidth())
	require.Equal(t, 2, p.XYCurve().Len())
	require.Equal(t, 2.0, p.Duration())
	require.Equal(t, 1.0, p.DurationWithSpeed())

	pos := p.Position(0.5)
	require.InDelta(t, 0.0, pos.X, 1e-6)
	require.InDelta(t, 5.0, pos.Y, 1e-5)
	require.InDelta(t, 45.0, p.Heading(0.5), 1e-9)

	left := p.LeftPosition(0.5)
	require.InDelta(t, -trajectory.DefaultScrubFactor, left.X, 1e-6)
}

func TestPathBuildBackward(t *testing.T) {
	speed := -1.0
	c := PathConfig{
		Name:      "back",
		Speed:     &speed,
		Direction: DirectionBackward,
		Mirrored:  true,
		Points:    []PointConfig{{X: 1, Y: 0}, {X: 1, Y: 10}},
	}
	require.NoError(t, c.Validate())

	p := c.Build()
	require.True(t, p.Mirrored())
	require.Equal(t, -1.0, p.Speed())
	pos := p.Position(0)
	require.InDelta(t, -1.0, pos.X, 1e-9)
	require.InDelta(t, 10.0, pos.Y, 1e-9)
}
