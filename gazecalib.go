// Package gazecalib orchestrates gaze-model calibration and held-out
// evaluation: it converts true points of gaze between screen pixels and
// world-plane coordinates, runs the calibration engine over a chosen set of
// parameter slots, and reports accuracy and timing over a test set.
package gazecalib

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"

	"gazecalib/calibration"
	"gazecalib/gaze"
)

// ErrNoTestSamples indicates an evaluation attempt with an empty test set.
var ErrNoTestSamples = errors.New("test set is empty")

// Measurement pairs one capture's extracted features with the true point of
// gaze in screen pixels.
type Measurement struct {
	Inputs  gaze.PupilCenterGlintInputs
	TruePOG r2.Point
}

// Config fixes the geometry shared by calibration and evaluation.
type Config struct {
	Screen gaze.ScreenGeometry
	// ZShift is the z-coordinate of the display plane in the estimation
	// frame.
	ZShift float64
	// WCSOffset is subtracted from estimation-frame points of interest to
	// reach world coordinates (where the screen plane is z = 0).
	WCSOffset r3.Vector
	// Calibration configures the optimizer; zero values use the engine
	// defaults.
	Calibration calibration.Settings
}

// Validate checks the config for a usable screen geometry.
func (c Config) Validate() error {
	if c.Screen.WidthCm <= 0 || c.Screen.HeightCm <= 0 {
		return fmt.Errorf("screen size must be positive, got %.4gx%.4g cm", c.Screen.WidthCm, c.Screen.HeightCm)
	}
	if c.Screen.ResolutionX <= 0 || c.Screen.ResolutionY <= 0 {
		return fmt.Errorf("screen resolution must be positive, got %.4gx%.4g", c.Screen.ResolutionX, c.Screen.ResolutionY)
	}
	return nil
}

// Harness drives one model through calibration and evaluation. It owns its
// copy of the parameters; Calibrate updates them in place.
type Harness struct {
	model  gaze.Estimator
	params gaze.EyeAndCameraParameters
	cfg    Config
	logger logging.Logger
}

func NewHarness(model gaze.Estimator, params gaze.EyeAndCameraParameters, cfg Config, logger logging.Logger) (*Harness, error) {
	if model == nil {
		return nil, errors.New("harness needs a model")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Harness{
		model:  model,
		params: params.Clone(),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Parameters returns a copy of the harness's current parameters.
func (h *Harness) Parameters() gaze.EyeAndCameraParameters {
	return h.params.Clone()
}

// Calibrate optimizes the given parameter slots against the training
// measurements and applies the result to the harness parameters. True points
// of gaze are compared in world-plane centimeters.
func (h *Harness) Calibrate(slots []calibration.Slot[gaze.EyeAndCameraParameters], train []Measurement) (calibration.Result, error) {
	checkTrainingQuality(train, h.logger)

	samples := make([]calibration.Sample[gaze.PupilCenterGlintInputs], len(train))
	for i, m := range train {
		samples[i] = calibration.Sample[gaze.PupilCenterGlintInputs]{
			Input:  m.Inputs,
			Target: h.cfg.Screen.ToWorld(m.TruePOG),
		}
	}

	zShift := h.cfg.ZShift
	offset := h.cfg.WCSOffset
	problem := calibration.Problem[gaze.PupilCenterGlintInputs, gaze.EyeAndCameraParameters, gaze.GazeResult]{
		Model: h.model,
		Base:  h.params,
		Slots: slots,
		Process: func(res gaze.GazeResult) (r3.Vector, error) {
			poi, err := gaze.PointOfInterest(res.CorneaCenter, res.VisualAxis, zShift)
			if err != nil {
				return r3.Vector{}, err
			}
			return poi.Sub(offset), nil
		},
		Samples: samples,
	}

	result, err := calibration.Calibrate(problem, &h.cfg.Calibration, h.logger)
	if err != nil {
		return result, err
	}
	applied, err := problem.Apply(result.Values)
	if err != nil {
		return result, err
	}
	h.params = applied
	return result, nil
}

// Report aggregates one evaluation pass. Skipped counts samples the model
// could not evaluate or whose gaze ray missed the display plane; they are
// excluded from the averages.
type Report struct {
	AvgErrorPixels  float64
	AvgErrorCm      float64
	Samples         int
	Skipped         int
	Elapsed         time.Duration
	TimePerEstimate time.Duration
	// Estimates holds the estimated screen points for the samples that
	// evaluated, in input order.
	Estimates []r2.Point
}

// Evaluate runs the model with the current parameters over the test set and
// reports average pixel error, average physical error, and timing.
func (h *Harness) Evaluate(test []Measurement) (Report, error) {
	if len(test) == 0 {
		return Report{}, ErrNoTestSamples
	}

	var report Report
	var sumPixels, sumCm float64
	start := time.Now()
	for i, m := range test {
		result, err := h.model.Estimate(m.Inputs, h.params)
		if err != nil {
			report.Skipped++
			h.logger.Warnf("sample %d skipped: %v", i, err)
			continue
		}
		poi, err := gaze.PointOfInterest(result.CorneaCenter, result.VisualAxis, h.cfg.ZShift)
		if err != nil {
			report.Skipped++
			h.logger.Warnf("sample %d skipped: %v", i, err)
			continue
		}
		poiWorld := poi.Sub(h.cfg.WCSOffset)
		estimate := h.cfg.Screen.ToPixels(poiWorld)
		report.Estimates = append(report.Estimates, estimate)

		sumPixels += estimate.Sub(m.TruePOG).Norm()
		trueWorld := h.cfg.Screen.ToWorld(m.TruePOG)
		sumCm += math.Hypot(trueWorld.X-poiWorld.X, trueWorld.Y-poiWorld.Y)
		report.Samples++
	}
	report.Elapsed = time.Since(start)

	if report.Samples > 0 {
		report.AvgErrorPixels = sumPixels / float64(report.Samples)
		report.AvgErrorCm = sumCm / float64(report.Samples)
		report.TimePerEstimate = report.Elapsed / time.Duration(report.Samples)
	}
	h.logger.Infof("evaluation finished: samples=%d skipped=%d avgErr=%.2fpx (%.3fcm) perEstimate=%v",
		report.Samples, report.Skipped, report.AvgErrorPixels, report.AvgErrorCm, report.TimePerEstimate)
	return report, nil
}
