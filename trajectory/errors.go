package trajectory

import "errors"

var (
	// ErrPointIndex is returned when a path point index is out of range.
	ErrPointIndex = errors.New("path point index out of range")

	// ErrNoEaseKeys is returned when an operation needs the ease curve to
	// have keyframes.
	ErrNoEaseKeys = errors.New("ease curve has no keyframes")
)
