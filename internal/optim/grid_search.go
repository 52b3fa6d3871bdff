// Package optim searches parameter grids for the best-scoring model.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/growthlab/internal/growth"
)

// ErrNoFeasiblePoint is returned when every grid point fails its objective.
var ErrNoFeasiblePoint = errors.New("optim: no feasible grid point")

// Objective scores a parameter set; higher is better.
type Objective func(growth.Params) (float64, error)

// SteadyStateConsumption scores a parameter set by c*.
func SteadyStateConsumption(p growth.Params) (float64, error) {
	return growth.New(p).SteadyStateConsumption()
}

// SteadyStateOutput scores a parameter set by y*.
func SteadyStateOutput(p growth.Params) (float64, error) {
	return growth.New(p).SteadyStateOutput()
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params but %d ranges", len(params), len(ranges))
	}
	var probe growth.Params
	for i, name := range params {
		if _, err := probe.Get(name); err != nil {
			return nil, err
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Result is the best grid point found.
type Result struct {
	Params    growth.Params `json:"params" yaml:"params"`
	Score     float64       `json:"score" yaml:"score"`
	Evaluated int           `json:"evaluated" yaml:"evaluated"`
	Failed    int           `json:"failed" yaml:"failed"`
}

// Search evaluates obj at every grid point, holding the parameters not on
// the grid at their values in base. Points whose objective fails are
// counted and skipped. Ties keep the first point visited.
func (g *GridSearch) Search(ctx context.Context, base growth.Params, obj Objective) (Result, error) {
	res := Result{Score: math.Inf(-1)}
	found := false

	if err := g.searchRecursive(ctx, 0, base, obj, &res, &found); err != nil {
		return Result{}, err
	}
	if !found {
		return res, fmt.Errorf("%w (%d points)", ErrNoFeasiblePoint, res.Evaluated)
	}
	return res, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current growth.Params,
	obj Objective,
	best *Result,
	found *bool,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}
		best.Evaluated++
		val, err := obj(current)
		if err != nil || math.IsNaN(val) {
			best.Failed++
			return nil
		}
		if !*found || val > best.Score {
			best.Score = val
			best.Params = current
			*found = true
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next, err := current.With(name, val)
		if err != nil {
			return err
		}
		if err := g.searchRecursive(ctx, depth+1, next, obj, best, found); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from min to max inclusive.
func Linspace(min, max float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{min}
	}
	out := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	out[n-1] = max
	return out
}
