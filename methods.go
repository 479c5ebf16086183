package motion

import (
	"fmt"
	"strings"
)

// SlopeMethod selects how a curve behaves on one side of a keyframe.
type SlopeMethod uint8

const (
	// SlopeSmooth derives the tangent from both neighbors, producing a C1
	// spline through the keyframe.
	SlopeSmooth SlopeMethod = iota
	// SlopeLinear points the tangent at the neighbor on that side. A
	// segment whose both ends are linear is a straight line.
	SlopeLinear
	// SlopeFlat uses a horizontal tangent.
	SlopeFlat
	// SlopeStepped holds the keyframe's value until the next keyframe.
	SlopeStepped
	// SlopeSteppedNext jumps to the next keyframe's value right after the
	// keyframe.
	SlopeSteppedNext
)

var slopeMethodNames = [...]string{
	SlopeSmooth:      "smooth",
	SlopeLinear:      "linear",
	SlopeFlat:        "flat",
	SlopeStepped:     "stepped",
	SlopeSteppedNext: "stepped-next",
}

func (s SlopeMethod) String() string {
	if int(s) < len(slopeMethodNames) {
		return slopeMethodNames[s]
	}
	return fmt.Sprintf("SlopeMethod(%d)", uint8(s))
}

// ParseSlopeMethod parses the name returned by [SlopeMethod.String].
// Matching is case-insensitive.
func ParseSlopeMethod(s string) (SlopeMethod, error) {
	for i, name := range slopeMethodNames {
		if strings.EqualFold(s, name) {
			return SlopeMethod(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlopeMethod, s)
}

func (s SlopeMethod) MarshalText() ([]byte, error) {
	if int(s) >= len(slopeMethodNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSlopeMethod, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *SlopeMethod) UnmarshalText(text []byte) error {
	v, err := ParseSlopeMethod(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Extrapolation selects how a curve produces values outside of the time range
// spanned by its keyframes.
type Extrapolation uint8

const (
	// ExtrapolateConstant holds the boundary keyframe's value.
	ExtrapolateConstant Extrapolation = iota
	// ExtrapolateLinear continues along the boundary keyframe's tangent.
	ExtrapolateLinear
	// ExtrapolateCycle repeats the curve.
	ExtrapolateCycle
	// ExtrapolateCycleRelative repeats the curve, offsetting each repetition
	// by the difference between the last and first keyframe values.
	ExtrapolateCycleRelative
	// ExtrapolateOscillate repeats the curve, playing every other
	// repetition backwards.
	ExtrapolateOscillate
)

var extrapolationNames = [...]string{
	ExtrapolateConstant:      "constant",
	ExtrapolateLinear:        "linear",
	ExtrapolateCycle:         "cycle",
	ExtrapolateCycleRelative: "cycle-relative",
	ExtrapolateOscillate:     "oscillate",
}

func (e Extrapolation) String() string {
	if int(e) < len(extrapolationNames) {
		return extrapolationNames[e]
	}
	return fmt.Sprintf("Extrapolation(%d)", uint8(e))
}

// ParseExtrapolation parses the name returned by [Extrapolation.String].
// Matching is case-insensitive.
func ParseExtrapolation(s string) (Extrapolation, error) {
	for i, name := range extrapolationNames {
		if strings.EqualFold(s, name) {
			return Extrapolation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownExtrapolation, s)
}

func (e Extrapolation) MarshalText() ([]byte, error) {
	if int(e) >= len(extrapolationNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownExtrapolation, uint8(e))
	}
	return []byte(e.String()), nil
}

func (e *Extrapolation) UnmarshalText(text []byte) error {
	v, err := ParseExtrapolation(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
