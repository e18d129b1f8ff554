package main

import (
	"fmt"
	"os"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"

	gazecalib "gazecalib"
	"gazecalib/gaze"
	"gazecalib/utils"
)

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	logger := logging.NewLogger("cli")

	// One-camera desktop setup: camera mounted below a 48.7x27.4cm display,
	// world origin at the screen's origin pixel. The estimation frame is
	// centered on the camera, so the display plane sits at z = -cameraZ.
	cameraPosition := r3.Vector{X: 24.5, Y: -35, Z: 10}
	wcsOffset := cameraPosition.Mul(-1)

	camera := gaze.PinholeCamera{
		PrincipalPointX: 299.5,
		PrincipalPointY: 399.5,
		PixelPitchX:     2.4e-6,
		PixelPitchY:     2.4e-6,
		FocalLength:     0.0119144,
		Position:        cameraPosition.Add(wcsOffset),
	}
	camera.SetAngles(utils.DegreesToRadians(8), 0)

	params := gaze.DefaultEyeParameters()
	params.Cameras = []gaze.PinholeCamera{camera}
	params.Lights = []r3.Vector{
		cameraPosition.Add(r3.Vector{X: -13}).Add(wcsOffset),
		cameraPosition.Add(r3.Vector{X: 13}).Add(wcsOffset),
	}
	params.DistanceToCameraEstimate = 10

	cfg := gazecalib.Config{
		Screen: gaze.ScreenGeometry{
			WidthCm:     48.7,
			HeightCm:    27.4,
			ResolutionX: 1680,
			ResolutionY: 1050,
		},
		ZShift:    -cameraPosition.Z,
		WCSOffset: wcsOffset,
	}

	model := gaze.SimulatedModel{}

	var train, test []gazecalib.Measurement
	if len(os.Args) == 3 {
		var err error
		if train, err = gazecalib.ReadMeasurements(os.Args[1]); err != nil {
			return err
		}
		if test, err = gazecalib.ReadMeasurements(os.Args[2]); err != nil {
			return err
		}
	} else {
		logger.Info("no measurement files given, synthesizing a demo target grid")
		var err error
		if train, test, err = synthesizeGrids(model, params, cfg, wcsOffset); err != nil {
			return err
		}
		// Start calibration away from the synthesized truth.
		params.Alpha = utils.DegreesToRadians(-3)
		params.Beta = utils.DegreesToRadians(0.5)
		params.Cameras[0].SetAngles(utils.DegreesToRadians(6), utils.DegreesToRadians(1))
	}

	harness, err := gazecalib.NewHarness(model, params, cfg, logger)
	if err != nil {
		return err
	}

	result, err := harness.Calibrate(gazecalib.SixVariableSlots(), train)
	if err != nil {
		return err
	}
	calibrated := harness.Parameters()
	logger.Infof("calibrated: alpha=%.3fdeg beta=%.3fdeg R=%.3f K=%.3f camY=%.3fdeg camZ=%.3fdeg (objective %.6g)",
		utils.RadiansToDegrees(calibrated.Alpha),
		utils.RadiansToDegrees(calibrated.Beta),
		calibrated.R,
		calibrated.K,
		utils.RadiansToDegrees(calibrated.Cameras[0].AngleY()),
		utils.RadiansToDegrees(calibrated.Cameras[0].AngleZ()),
		result.Objective)

	report, err := harness.Evaluate(test)
	if err != nil {
		return err
	}
	logger.Infof("average error: %.2f px / %.3f cm over %d samples (%d skipped)",
		report.AvgErrorPixels, report.AvgErrorCm, report.Samples, report.Skipped)
	logger.Infof("timing: %v total, %v per estimate", report.Elapsed, report.TimePerEstimate)
	return nil
}

// synthesizeGrids builds training and test measurements for an eye sitting on
// the camera axis, fixating a grid of screen targets.
func synthesizeGrids(model gaze.SimulatedModel, params gaze.EyeAndCameraParameters, cfg gazecalib.Config, wcsOffset r3.Vector) (train, test []gazecalib.Measurement, err error) {
	cam := params.Cameras[0]
	axis := cam.BackProject(r2.Point{X: cam.PrincipalPointX, Y: cam.PrincipalPointY})
	eye := cam.Position.Add(axis.Mul(params.DistanceToCameraEstimate))

	synthesize := func(pixels []r2.Point) ([]gazecalib.Measurement, error) {
		out := make([]gazecalib.Measurement, 0, len(pixels))
		for _, px := range pixels {
			target := cfg.Screen.ToWorld(px).Add(wcsOffset)
			inputs, err := model.Synthesize(params, eye, target)
			if err != nil {
				return nil, fmt.Errorf("target (%.0f, %.0f): %w", px.X, px.Y, err)
			}
			out = append(out, gazecalib.Measurement{Inputs: inputs, TruePOG: px})
		}
		return out, nil
	}

	train, err = synthesize(gridPixels(cfg.Screen, 3, 3, 0.15))
	if err != nil {
		return nil, nil, err
	}
	test, err = synthesize(gridPixels(cfg.Screen, 4, 4, 0.2))
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// gridPixels lays out cols x rows targets inside the screen, inset from the
// edges by the given margin fraction.
func gridPixels(screen gaze.ScreenGeometry, cols, rows int, margin float64) []r2.Point {
	var pixels []r2.Point
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			fx := margin + (1-2*margin)*float64(i)/float64(cols-1)
			fy := margin + (1-2*margin)*float64(j)/float64(rows-1)
			pixels = append(pixels, r2.Point{X: fx * screen.ResolutionX, Y: fy * screen.ResolutionY})
		}
	}
	return pixels
}
