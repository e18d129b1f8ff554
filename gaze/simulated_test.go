package gaze

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

func testParameters() EyeAndCameraParameters {
	cam := PinholeCamera{
		PrincipalPointX: 299.5,
		PrincipalPointY: 399.5,
		PixelPitchX:     2.4e-6,
		PixelPitchY:     2.4e-6,
		FocalLength:     0.0119144,
	}
	cam.SetAngles(8*deg, 0)

	params := DefaultEyeParameters()
	params.Cameras = []PinholeCamera{cam}
	params.Lights = []r3.Vector{{X: -13}, {X: 13}}
	params.DistanceToCameraEstimate = 10
	return params
}

func TestVisualAxisFromInverse(t *testing.T) {
	axis := r3.Vector{X: 0.2, Y: -0.3, Z: 0.93}.Normalize()
	alpha, beta := -5*deg, 1.5*deg

	back := VisualAxisFrom(VisualAxisFrom(axis, -alpha, -beta), alpha, beta)
	if !vectorsAlmostEqual(back, axis, 1e-12) {
		t.Errorf("offset inversion failed: got %+v, want %+v", back, axis)
	}
}

func TestSimulatedRoundTrip(t *testing.T) {
	params := testParameters()
	model := SimulatedModel{}
	cam := params.Cameras[0]

	// Eye on the camera axis at the assumed distance, fixating a point on
	// the plane z = -10.
	axis := cam.BackProject(r2.Point{X: cam.PrincipalPointX, Y: cam.PrincipalPointY})
	eye := cam.Position.Add(axis.Mul(params.DistanceToCameraEstimate))
	target := r3.Vector{X: 5, Y: -3, Z: -10}

	inputs, err := model.Synthesize(params, eye, target)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	result, err := model.Estimate(inputs, params)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if !vectorsAlmostEqual(result.CorneaCenter, eye, 1e-6) {
		t.Errorf("cornea center not recovered: got %+v, want %+v", result.CorneaCenter, eye)
	}

	poi, err := PointOfInterest(result.CorneaCenter, result.VisualAxis, -10)
	if err != nil {
		t.Fatalf("PointOfInterest failed: %v", err)
	}
	if !vectorsAlmostEqual(poi, target, 1e-5) {
		t.Errorf("target not recovered: got %+v, want %+v", poi, target)
	}
}

func TestSimulatedEstimateDependsOnCalibratedFields(t *testing.T) {
	params := testParameters()
	model := SimulatedModel{}
	cam := params.Cameras[0]

	axis := cam.BackProject(r2.Point{X: cam.PrincipalPointX, Y: cam.PrincipalPointY})
	eye := cam.Position.Add(axis.Mul(params.DistanceToCameraEstimate))
	inputs, err := model.Synthesize(params, eye, r3.Vector{X: 5, Y: -3, Z: -10})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	baseline, err := model.Estimate(inputs, params)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	shifted := params.Clone()
	shifted.Alpha += 2 * deg
	withAlpha, err := model.Estimate(inputs, shifted)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if vectorsAlmostEqual(withAlpha.VisualAxis, baseline.VisualAxis, 1e-9) {
		t.Error("changing alpha did not move the visual axis")
	}

	tilted := params.Clone()
	tilted.Cameras[0].SetAngles(6*deg, 1*deg)
	withTilt, err := model.Estimate(inputs, tilted)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if vectorsAlmostEqual(withTilt.CorneaCenter, baseline.CorneaCenter, 1e-9) {
		t.Error("changing the camera angles did not move the cornea center")
	}
}

func TestSimulatedEstimateMissingObservation(t *testing.T) {
	params := testParameters()
	model := SimulatedModel{}

	if _, err := model.Estimate(PupilCenterGlintInputs{}, params); err == nil {
		t.Error("expected an error for a missing observation")
	}

	inputs := PupilCenterGlintInputs{Observations: []CameraObservation{{PupilCenter: r2.Point{X: 300, Y: 400}}}}
	if _, err := model.Estimate(inputs, params); err == nil {
		t.Error("expected an error for an observation without glints")
	}

	if _, err := model.Estimate(inputs, EyeAndCameraParameters{}); err == nil {
		t.Error("expected an error when no camera is configured")
	}
}

func TestSimulatedRoundTripOffAxisEye(t *testing.T) {
	params := testParameters()
	model := SimulatedModel{}
	cam := params.Cameras[0]

	dir := cam.BackProject(r2.Point{X: cam.PrincipalPointX + 50, Y: cam.PrincipalPointY - 80})
	eye := cam.Position.Add(dir.Mul(params.DistanceToCameraEstimate))
	target := r3.Vector{X: -4, Y: 6, Z: -10}

	inputs, err := model.Synthesize(params, eye, target)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	result, err := model.Estimate(inputs, params)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	poi, err := PointOfInterest(result.CorneaCenter, result.VisualAxis, -10)
	if err != nil {
		t.Fatalf("PointOfInterest failed: %v", err)
	}
	if !vectorsAlmostEqual(poi, target, 1e-5) {
		t.Errorf("target not recovered: got %+v, want %+v", poi, target)
	}

	// sanity: the distance between eye and target keeps the reconstruction
	// well away from the degenerate plane
	if math.Abs(result.VisualAxis.Z) < 0.1 {
		t.Errorf("visual axis nearly parallel to the display plane: %+v", result.VisualAxis)
	}
}
