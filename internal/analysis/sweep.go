package analysis

import (
	"fmt"

	"github.com/san-kum/growthlab/internal/growth"
)

// SweepPoint is the steady state for one value of the swept parameter.
type SweepPoint struct {
	Value       float64            `json:"value" yaml:"value"`
	SteadyState growth.SteadyState `json:"steady_state" yaml:"steady_state"`
	// CapitalChange is the relative change of k* from the previous point;
	// zero for the first point.
	CapitalChange float64 `json:"k_star_change" yaml:"k_star_change"`
}

// Sweep evaluates the steady state at steps evenly spaced values of param
// in [min, max], holding the other parameters of p fixed.
func Sweep(p growth.Params, param string, min, max float64, steps int) ([]SweepPoint, error) {
	if steps < 1 {
		return nil, fmt.Errorf("sweep %s: %w", param, growth.ErrInvalidStepCount)
	}
	stride := 0.0
	if steps > 1 {
		stride = (max - min) / float64(steps-1)
	}

	first, err := p.With(param, min)
	if err != nil {
		return nil, err
	}
	model := growth.New(first)
	ss, err := model.SteadyState()
	if err != nil {
		return nil, fmt.Errorf("sweep %s=%g: %w", param, min, err)
	}

	points := make([]SweepPoint, 0, steps)
	points = append(points, SweepPoint{Value: min, SteadyState: ss})

	for i := 1; i < steps; i++ {
		value := min + float64(i)*stride
		next, err := p.With(param, value)
		if err != nil {
			return nil, err
		}
		report, err := model.ReplaceParameters(next)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", param, value, err)
		}
		points = append(points, SweepPoint{
			Value:         value,
			SteadyState:   report.New,
			CapitalChange: report.CapitalChangePct,
		})
	}

	return points, nil
}

// Capitals extracts k* from each point.
func Capitals(points []SweepPoint) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = pt.SteadyState.Capital
	}
	return out
}

// Consumptions extracts c* from each point.
func Consumptions(points []SweepPoint) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = pt.SteadyState.Consumption
	}
	return out
}
