package calibration

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"go.viam.com/rdk/logging"
)

// LMSettings controls the Levenberg-Marquardt backend.
type LMSettings struct {
	// Iterations caps LM iterations. Default 100.
	Iterations int
	// Tau scales the initial damping. Default 1e-6.
	Tau float64
	// Eps1 and Eps2 are the gradient and step tolerances.
	// Defaults 1e-8 each.
	Eps1 float64
	Eps2 float64
	// ObjectiveTol stops when the residual norm drops below it.
	// Default 1e-16.
	ObjectiveTol float64
}

func (s *LMSettings) withDefaults() LMSettings {
	out := LMSettings{}
	if s != nil {
		out = *s
	}
	if out.Iterations <= 0 {
		out.Iterations = 100
	}
	if out.Tau <= 0 {
		out.Tau = 1e-6
	}
	if out.Eps1 <= 0 {
		out.Eps1 = 1e-8
	}
	if out.Eps2 <= 0 {
		out.Eps2 = 1e-8
	}
	if out.ObjectiveTol <= 0 {
		out.ObjectiveTol = 1e-16
	}
	return out
}

// residuals fills dst with the per-sample residual components followed by the
// per-slot bound-violation terms, evaluated at the box-clamped candidate.
func (p Problem[I, P, R]) residuals(dst, values []float64) {
	clamped := p.clampToBounds(values)
	params, err := p.Apply(clamped)
	if err != nil {
		for i := range dst {
			dst[i] = badSampleResidual
		}
		return
	}
	for i, sample := range p.Samples {
		base := 3 * i
		result, err := p.Model.Estimate(sample.Input, params)
		if err != nil {
			dst[base], dst[base+1], dst[base+2] = badSampleResidual, badSampleResidual, badSampleResidual
			continue
		}
		point, err := p.Process(result)
		if err != nil {
			dst[base], dst[base+1], dst[base+2] = badSampleResidual, badSampleResidual, badSampleResidual
			continue
		}
		diff := point.Sub(sample.Target)
		dst[base], dst[base+1], dst[base+2] = diff.X, diff.Y, diff.Z
	}
	offset := 3 * len(p.Samples)
	for i := range p.Slots {
		dst[offset+i] = math.Sqrt(boundPenaltyWeight) * (values[i] - clamped[i])
	}
}

// CalibrateLeastSquares runs the same calibration problem through a
// Levenberg-Marquardt solver with a numerical Jacobian. Same result contract
// as Calibrate: returned values always lie inside the slot bounds.
func CalibrateLeastSquares[I any, P Cloner[P], R any](
	problem Problem[I, P, R],
	settings *LMSettings,
	logger logging.Logger,
) (Result, error) {
	s := settings.withDefaults()
	if err := problem.validate(); err != nil {
		return Result{}, err
	}

	residualFunc := func(dst, x []float64) {
		problem.residuals(dst, x)
	}
	jacobian := lm.NumJac{Func: residualFunc}
	lmProblem := lm.LMProblem{
		Dim:        len(problem.Slots),
		Size:       3*len(problem.Samples) + len(problem.Slots),
		Func:       residualFunc,
		Jac:        jacobian.Jac,
		InitParams: problem.InitialValues(),
		Tau:        s.Tau,
		Eps1:       s.Eps1,
		Eps2:       s.Eps2,
	}
	lmResult, err := lm.LM(lmProblem, &lm.Settings{Iterations: s.Iterations, ObjectiveTol: s.ObjectiveTol})
	if err != nil {
		return Result{}, fmt.Errorf("least-squares optimization failed: %w", err)
	}

	values := problem.clampToBounds(lmResult.X)
	result := Result{
		Values:    values,
		Objective: problem.objective(values),
		Converged: true,
	}
	logger.Infof("least-squares calibration finished: objective=%.6g", result.Objective)
	return result, nil
}
