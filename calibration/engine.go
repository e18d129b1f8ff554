// Package calibration fits a chosen subset of a model's parameters against
// ground-truth targets using bounded nonlinear optimization. The engine is
// agnostic to the model: it only needs a way to clone the parameter object,
// selectors for the calibrated fields, and a forward evaluation that yields a
// comparable 3D point per sample.
package calibration

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"
	"gonum.org/v1/gonum/optimize"

	"gazecalib/utils"
)

const (
	// Residual charged per vector component when a sample cannot be
	// evaluated at the candidate parameters.
	badSampleResidual = 1000.0

	// Weight on squared box-constraint violations added to the objective.
	boundPenaltyWeight = 1e6
)

// Cloner is implemented by parameter types that can produce an independent
// deep copy. The engine never mutates the caller's base parameters; every
// candidate is applied to a fresh clone.
type Cloner[P any] interface {
	Clone() P
}

// Evaluator is the forward-model contract: estimate a result from one input
// bundle under the given parameters. Implementations must be deterministic
// for the same (input, params) pair.
type Evaluator[I any, P any, R any] interface {
	Estimate(input I, params P) (R, error)
}

// Slot binds one calibrated scalar to a field of the parameter object. The
// ordered slot list is the single source of truth for the flat value vector:
// initial values come from Get on the base parameters, bounds from Min/Max,
// and Apply writes values back through Set in the same order.
type Slot[P any] struct {
	Name string
	Min  float64
	Max  float64
	Get  func(P) float64
	Set  func(*P, float64)
}

// Sample pairs one forward-model input with the ground-truth point it should
// reproduce.
type Sample[I any] struct {
	Input  I
	Target r3.Vector
}

// Problem describes one calibration run: the model, the base parameters, the
// slots to optimize, the processor that turns a raw model result into a point
// comparable with the targets, and the training samples.
type Problem[I any, P Cloner[P], R any] struct {
	Model   Evaluator[I, P, R]
	Base    P
	Slots   []Slot[P]
	Process func(R) (r3.Vector, error)
	Samples []Sample[I]
}

// Settings controls the default optimizer backend.
type Settings struct {
	// MaxEvaluations caps objective evaluations. Default 50000.
	MaxEvaluations int
	// Absolute and Relative are the function-convergence tolerances.
	// Default 1e-10 each.
	Absolute float64
	Relative float64
	// Method selects the gonum optimizer. Default NelderMead.
	Method optimize.Method
}

func (s *Settings) withDefaults() Settings {
	out := Settings{}
	if s != nil {
		out = *s
	}
	if out.MaxEvaluations <= 0 {
		out.MaxEvaluations = 50000
	}
	if out.Absolute <= 0 {
		out.Absolute = 1e-10
	}
	if out.Relative <= 0 {
		out.Relative = 1e-10
	}
	if out.Method == nil {
		out.Method = &optimize.NelderMead{}
	}
	return out
}

// Result reports the outcome of a calibration run. Values are always inside
// the declared bounds. Converged is false when the run stopped on an
// evaluation or iteration cap; Values still hold the best point found.
type Result struct {
	Values      []float64
	Objective   float64
	Converged   bool
	Evaluations int
}

// Apply writes a flat value vector onto a clone of the base parameters.
func (p Problem[I, P, R]) Apply(values []float64) (P, error) {
	applied := p.Base.Clone()
	if len(values) != len(p.Slots) {
		return applied, fmt.Errorf("%w: got %d values for %d slots", ErrShapeMismatch, len(values), len(p.Slots))
	}
	for i, slot := range p.Slots {
		slot.Set(&applied, values[i])
	}
	return applied, nil
}

// InitialValues reads the slot fields off the base parameters, clamped into
// the slot bounds.
func (p Problem[I, P, R]) InitialValues() []float64 {
	values := make([]float64, len(p.Slots))
	for i, slot := range p.Slots {
		values[i] = utils.Clamp(slot.Get(p.Base), slot.Min, slot.Max)
	}
	return values
}

func (p Problem[I, P, R]) validate() error {
	if p.Model == nil {
		return fmt.Errorf("calibration problem has no model")
	}
	if p.Process == nil {
		return fmt.Errorf("calibration problem has no result processor")
	}
	if len(p.Samples) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(p.Slots) == 0 {
		return fmt.Errorf("%w: no parameter slots declared", ErrShapeMismatch)
	}
	for _, slot := range p.Slots {
		if slot.Get == nil || slot.Set == nil {
			return fmt.Errorf("slot %q is missing a field selector", slot.Name)
		}
		if math.IsNaN(slot.Min) || math.IsNaN(slot.Max) || slot.Min > slot.Max {
			return fmt.Errorf("%w: slot %q has bounds [%v, %v]", ErrInvalidBound, slot.Name, slot.Min, slot.Max)
		}
	}
	return nil
}

func (p Problem[I, P, R]) clampToBounds(values []float64) []float64 {
	clamped := make([]float64, len(values))
	for i, slot := range p.Slots {
		clamped[i] = utils.Clamp(values[i], slot.Min, slot.Max)
	}
	return clamped
}

// objective is the sum of squared residual norms at the candidate, evaluated
// at the box-clamped point, plus a penalty on the clamp distance so the
// optimizer is steered back inside the bounds.
func (p Problem[I, P, R]) objective(values []float64) float64 {
	clamped := p.clampToBounds(values)
	total := 0.0
	for i := range values {
		diff := values[i] - clamped[i]
		total += boundPenaltyWeight * diff * diff
	}

	params, err := p.Apply(clamped)
	if err != nil {
		// Length mismatches are caught before optimization starts.
		return math.Inf(1)
	}
	for _, sample := range p.Samples {
		result, err := p.Model.Estimate(sample.Input, params)
		if err != nil {
			total += 3 * badSampleResidual * badSampleResidual
			continue
		}
		point, err := p.Process(result)
		if err != nil {
			total += 3 * badSampleResidual * badSampleResidual
			continue
		}
		total += point.Sub(sample.Target).Norm2()
	}
	return total
}

// Calibrate minimizes the training residual over the slot values and returns
// the best point found, guaranteed to lie inside the slot bounds. Hitting the
// evaluation cap is not an error: the result carries Converged=false along
// with the best values seen.
func Calibrate[I any, P Cloner[P], R any](
	problem Problem[I, P, R],
	settings *Settings,
	logger logging.Logger,
) (Result, error) {
	s := settings.withDefaults()
	if err := problem.validate(); err != nil {
		return Result{}, err
	}

	initial := problem.InitialValues()
	optProblem := optimize.Problem{Func: problem.objective}
	optSettings := &optimize.Settings{
		FuncEvaluations: s.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   s.Absolute,
			Relative:   s.Relative,
			Iterations: 50,
		},
	}

	optResult, err := optimize.Minimize(optProblem, initial, optSettings, s.Method)
	if err != nil {
		return Result{}, fmt.Errorf("optimization failed: %w", err)
	}

	values := problem.clampToBounds(optResult.X)
	result := Result{
		Values:      values,
		Objective:   problem.objective(values),
		Converged:   optResult.Status != optimize.FunctionEvaluationLimit && optResult.Status != optimize.IterationLimit,
		Evaluations: optResult.Stats.FuncEvaluations,
	}
	logger.Infof("calibration finished: objective=%.6g evaluations=%d converged=%v status=%v",
		result.Objective, result.Evaluations, result.Converged, optResult.Status)
	return result, nil
}
