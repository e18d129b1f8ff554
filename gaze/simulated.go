package gaze

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// SimulatedModel is a deterministic forward model used for harness runs and
// synthetic experiments. It encodes the gaze geometry directly into the pixel
// features: the pupil center carries the camera-to-eye direction and the
// first glint carries the reversed optical axis, both through the camera's
// pinhole projection. Because decoding goes through the camera rotation and
// the alpha/beta offsets, calibrating those parameters genuinely changes the
// model's output.
type SimulatedModel struct {
	// CameraIndex selects which configured camera the model reads.
	CameraIndex int
}

func (m SimulatedModel) observation(inputs PupilCenterGlintInputs, params EyeAndCameraParameters) (CameraObservation, PinholeCamera, error) {
	if m.CameraIndex < 0 || m.CameraIndex >= len(params.Cameras) {
		return CameraObservation{}, PinholeCamera{}, fmt.Errorf("camera %d is not configured", m.CameraIndex)
	}
	if m.CameraIndex >= len(inputs.Observations) {
		return CameraObservation{}, PinholeCamera{}, fmt.Errorf("no observation for camera %d", m.CameraIndex)
	}
	obs := inputs.Observations[m.CameraIndex]
	if len(obs.Glints) == 0 {
		return CameraObservation{}, PinholeCamera{}, fmt.Errorf("observation for camera %d has no glints", m.CameraIndex)
	}
	return obs, params.Cameras[m.CameraIndex], nil
}

// Estimate decodes the pupil pixel into the eye direction, places the cornea
// center DistanceToCameraEstimate along it, decodes the glint pixel into the
// optical axis, and applies the alpha/beta offsets to obtain the visual axis.
func (m SimulatedModel) Estimate(inputs PupilCenterGlintInputs, params EyeAndCameraParameters) (GazeResult, error) {
	obs, cam, err := m.observation(inputs, params)
	if err != nil {
		return GazeResult{}, err
	}
	eyeDir := cam.BackProject(obs.PupilCenter)
	cornea := cam.Position.Add(eyeDir.Mul(params.DistanceToCameraEstimate))
	optical := cam.BackProject(obs.Glints[0]).Mul(-1)
	return GazeResult{
		CorneaCenter: cornea,
		VisualAxis:   VisualAxisFrom(optical, params.Alpha, params.Beta),
	}, nil
}

// Synthesize builds the input bundle Estimate decodes, for an eye at the
// given position looking at the given target. For an exact round trip the
// eye should sit DistanceToCameraEstimate away from the camera.
func (m SimulatedModel) Synthesize(params EyeAndCameraParameters, eye, target r3.Vector) (PupilCenterGlintInputs, error) {
	if m.CameraIndex < 0 || m.CameraIndex >= len(params.Cameras) {
		return PupilCenterGlintInputs{}, fmt.Errorf("camera %d is not configured", m.CameraIndex)
	}
	cam := params.Cameras[m.CameraIndex]

	pupil, err := cam.Project(eye.Sub(cam.Position).Normalize())
	if err != nil {
		return PupilCenterGlintInputs{}, fmt.Errorf("eye is outside the camera view: %w", err)
	}
	visual := target.Sub(eye).Normalize()
	optical := VisualAxisFrom(visual, -params.Alpha, -params.Beta)
	glint, err := cam.Project(optical.Mul(-1))
	if err != nil {
		return PupilCenterGlintInputs{}, fmt.Errorf("gaze direction is outside the camera view: %w", err)
	}

	observations := make([]CameraObservation, m.CameraIndex+1)
	observations[m.CameraIndex] = CameraObservation{
		PupilCenter: pupil,
		Glints:      []r2.Point{glint},
	}
	return PupilCenterGlintInputs{Observations: observations}, nil
}
