package gaze

import "errors"

var (
	// ErrDegenerateRay indicates a visual axis that is (near) parallel to
	// the target plane, or an intersection that is not finite.
	ErrDegenerateRay = errors.New("gaze ray does not intersect the target plane")

	// ErrBehindCamera indicates a direction that cannot be projected onto
	// the image plane.
	ErrBehindCamera = errors.New("direction points away from the image plane")
)
