package calibration

import "errors"

var (
	// ErrShapeMismatch indicates a flat value vector whose length does not
	// match the declared parameter slots.
	ErrShapeMismatch = errors.New("value vector length does not match parameter slots")

	// ErrEmptyTrainingSet indicates a calibration attempt with no samples.
	ErrEmptyTrainingSet = errors.New("training set is empty")

	// ErrInvalidBound indicates a slot whose bounds are not a valid interval.
	ErrInvalidBound = errors.New("invalid slot bounds")
)
