package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/growthlab/internal/growth"
)

var baseline = growth.Params{N: 0.01, S: 0.2, D: 0.04, Alpha: 0.3, G: 0.02}

func TestLinspace(t *testing.T) {
	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{0.5}, Linspace(0.5, 1, 1))

	xs := Linspace(0, 1, 5)
	require.Len(t, xs, 5)
	assert.Equal(t, 0.0, xs[0])
	assert.Equal(t, 1.0, xs[4])
	assert.InDelta(t, 0.25, xs[1], 1e-12)
}

func TestNewGridSearchValidates(t *testing.T) {
	_, err := NewGridSearch([]string{"s"}, nil)
	assert.Error(t, err)

	_, err = NewGridSearch([]string{"beta"}, [][]float64{{1}})
	assert.Error(t, err)

	_, err = NewGridSearch([]string{"s"}, [][]float64{{}})
	assert.Error(t, err)
}

func TestGoldenRuleBySearch(t *testing.T) {
	g, err := NewGridSearch([]string{growth.KeyS}, [][]float64{Linspace(0.01, 0.99, 99)})
	require.NoError(t, err)

	res, err := g.Search(context.Background(), baseline, SteadyStateConsumption)
	require.NoError(t, err)
	// c* peaks at s = alpha for Cobb-Douglas production.
	assert.InDelta(t, baseline.Alpha, res.Params.S, 1e-9)
	assert.Equal(t, 99, res.Evaluated)
	assert.Zero(t, res.Failed)
	assert.Equal(t, baseline.N, res.Params.N)
}

func TestSearchTwoParameters(t *testing.T) {
	g, err := NewGridSearch(
		[]string{growth.KeyS, growth.KeyD},
		[][]float64{{0.1, 0.2, 0.3}, {0.02, 0.04}},
	)
	require.NoError(t, err)

	res, err := g.Search(context.Background(), baseline, SteadyStateOutput)
	require.NoError(t, err)
	assert.Equal(t, 0.3, res.Params.S)
	assert.Equal(t, 0.02, res.Params.D)
	assert.Equal(t, 6, res.Evaluated)
}

func TestSearchSkipsFailures(t *testing.T) {
	p := baseline
	p.N, p.G = 0, 0
	g, err := NewGridSearch([]string{growth.KeyD}, [][]float64{{0, 0.05}})
	require.NoError(t, err)

	res, err := g.Search(context.Background(), p, SteadyStateConsumption)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 0.05, res.Params.D)
}

func TestSearchNoFeasiblePoint(t *testing.T) {
	g, err := NewGridSearch([]string{growth.KeyS}, [][]float64{{0.1, 0.2}})
	require.NoError(t, err)

	failing := func(growth.Params) (float64, error) { return math.NaN(), nil }
	_, err = g.Search(context.Background(), baseline, failing)
	assert.True(t, errors.Is(err, ErrNoFeasiblePoint))
}

func TestSearchCancelled(t *testing.T) {
	g, err := NewGridSearch([]string{growth.KeyS}, [][]float64{{0.1, 0.2}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Search(ctx, baseline, SteadyStateConsumption)
	assert.ErrorIs(t, err, context.Canceled)
}
