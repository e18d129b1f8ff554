package gaze

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// CameraObservation holds the features extracted from one camera's image:
// the pupil center and the glints produced by the light sources.
type CameraObservation struct {
	PupilCenter r2.Point
	Glints      []r2.Point
}

// PupilCenterGlintInputs is one estimation sample, one observation per
// configured camera.
type PupilCenterGlintInputs struct {
	Observations []CameraObservation
}

// GazeResult is a forward model's output: the cornea center and the unit
// visual axis, both in the estimation frame.
type GazeResult struct {
	CorneaCenter r3.Vector
	VisualAxis   r3.Vector
}

// Estimator estimates gaze from one input bundle under the given parameters.
type Estimator interface {
	Estimate(inputs PupilCenterGlintInputs, params EyeAndCameraParameters) (GazeResult, error)
}

// EstimatorFunc adapts a plain function to the Estimator interface.
type EstimatorFunc func(PupilCenterGlintInputs, EyeAndCameraParameters) (GazeResult, error)

func (f EstimatorFunc) Estimate(inputs PupilCenterGlintInputs, params EyeAndCameraParameters) (GazeResult, error) {
	return f(inputs, params)
}

// VisualAxisFrom offsets an optical axis by the angular deviations alpha
// (horizontal) and beta (vertical) and returns the unit visual axis. The
// offsets are applied in the axis's own spherical decomposition, so
// VisualAxisFrom(v, -a, -b) inverts VisualAxisFrom(v, a, b).
func VisualAxisFrom(optical r3.Vector, alpha, beta float64) r3.Vector {
	theta := math.Atan2(optical.X, optical.Z) + alpha
	phi := math.Atan2(optical.Y, math.Hypot(optical.X, optical.Z)) + beta
	return r3.Vector{
		X: math.Cos(phi) * math.Sin(theta),
		Y: math.Sin(phi),
		Z: math.Cos(phi) * math.Cos(theta),
	}
}
