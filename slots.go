package gazecalib

import (
	"gazecalib/calibration"
	"gazecalib/gaze"
	"gazecalib/utils"
)

// SixVariableSlots returns the standard subject-calibration subset: the
// visual-axis offsets, the two eye distances, and the first camera's
// orientation angles, each with its usual search bounds. The parameter
// object must have at least one camera configured.
func SixVariableSlots() []calibration.Slot[gaze.EyeAndCameraParameters] {
	return []calibration.Slot[gaze.EyeAndCameraParameters]{
		{
			Name: "alpha",
			Min:  utils.DegreesToRadians(-10), Max: utils.DegreesToRadians(10),
			Get: func(p gaze.EyeAndCameraParameters) float64 { return p.Alpha },
			Set: func(p *gaze.EyeAndCameraParameters, v float64) { p.Alpha = v },
		},
		{
			Name: "beta",
			Min:  utils.DegreesToRadians(-5), Max: utils.DegreesToRadians(5),
			Get: func(p gaze.EyeAndCameraParameters) float64 { return p.Beta },
			Set: func(p *gaze.EyeAndCameraParameters, v float64) { p.Beta = v },
		},
		{
			Name: "corneal-radius",
			Min:  0.3, Max: 2.0,
			Get: func(p gaze.EyeAndCameraParameters) float64 { return p.R },
			Set: func(p *gaze.EyeAndCameraParameters, v float64) { p.R = v },
		},
		{
			Name: "cornea-pupil-distance",
			Min:  0.2, Max: 1.5,
			Get: func(p gaze.EyeAndCameraParameters) float64 { return p.K },
			Set: func(p *gaze.EyeAndCameraParameters, v float64) { p.K = v },
		},
		{
			Name: "camera0-angle-y",
			Min:  utils.DegreesToRadians(-8), Max: utils.DegreesToRadians(8),
			Get:  func(p gaze.EyeAndCameraParameters) float64 { return p.Cameras[0].AngleY() },
			Set: func(p *gaze.EyeAndCameraParameters, v float64) {
				p.Cameras[0].SetAngles(v, p.Cameras[0].AngleZ())
			},
		},
		{
			Name: "camera0-angle-z",
			Min:  utils.DegreesToRadians(-5), Max: utils.DegreesToRadians(5),
			Get:  func(p gaze.EyeAndCameraParameters) float64 { return p.Cameras[0].AngleZ() },
			Set: func(p *gaze.EyeAndCameraParameters, v float64) {
				p.Cameras[0].SetAngles(p.Cameras[0].AngleY(), v)
			},
		},
	}
}
