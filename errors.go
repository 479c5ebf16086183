package motion

import "errors"

var (
	// ErrTimeOccupied is returned when a key is moved onto the time of
	// another key of the same curve.
	ErrTimeOccupied = errors.New("time is occupied by another key")

	// ErrInvalidKey is returned when a Key no longer refers to a keyframe of
	// the curve it is used with.
	ErrInvalidKey = errors.New("invalid key")

	ErrUnknownSlopeMethod   = errors.New("unknown slope method")
	ErrUnknownExtrapolation = errors.New("unknown extrapolation")
)
