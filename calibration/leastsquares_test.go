package calibration

import (
	"errors"
	"math"
	"testing"

	"go.viam.com/rdk/logging"
)

func TestLeastSquaresRecoversCurve(t *testing.T) {
	logger := logging.NewTestLogger(t)
	truth := curveParams{A: 1.2, B: -0.7, C: 0.3}
	base := curveParams{A: 0.5, B: 0.0, C: 0.0}
	problem := curveProblem(base, curveSlots(-5, 5), curveSamples(truth))

	result, err := CalibrateLeastSquares(problem, nil, logger)
	if err != nil {
		t.Fatalf("CalibrateLeastSquares failed: %v", err)
	}

	want := []float64{truth.A, truth.B, truth.C}
	for i, got := range result.Values {
		if math.Abs(got-want[i]) > 1e-4 {
			t.Errorf("slot %q not recovered: got %f, want %f", problem.Slots[i].Name, got, want[i])
		}
	}
}

func TestLeastSquaresRespectsBounds(t *testing.T) {
	logger := logging.NewTestLogger(t)
	truth := curveParams{A: 0.0, B: 0.0, C: 3.0}
	slots := curveSlots(-1, 1)
	problem := curveProblem(curveParams{}, slots, curveSamples(truth))

	result, err := CalibrateLeastSquares(problem, nil, logger)
	if err != nil {
		t.Fatalf("CalibrateLeastSquares failed: %v", err)
	}
	for i, v := range result.Values {
		if v < slots[i].Min || v > slots[i].Max {
			t.Errorf("slot %q out of bounds: got %f, want within [%f, %f]", slots[i].Name, v, slots[i].Min, slots[i].Max)
		}
	}
}

func TestLeastSquaresEmptyTrainingSet(t *testing.T) {
	logger := logging.NewTestLogger(t)
	problem := curveProblem(curveParams{}, curveSlots(-5, 5), nil)

	_, err := CalibrateLeastSquares(problem, nil, logger)
	if !errors.Is(err, ErrEmptyTrainingSet) {
		t.Errorf("got error %v, want ErrEmptyTrainingSet", err)
	}
}
