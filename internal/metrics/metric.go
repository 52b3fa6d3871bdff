package metrics

import "github.com/san-kum/growthlab/internal/growth"

// Metric summarises a simulated capital path.
type Metric interface {
	growth.Observer
	Name() string
	Value() float64
	Reset()
}

// Default returns the standard metric set for a model with steady state kStar.
func Default(kStar float64) []Metric {
	return []Metric{
		NewConvergence(kStar),
		NewHalfLife(kStar),
		NewPeakGrowth(),
		NewMeanGrowth(),
		NewStability(kStar),
	}
}

// Observers adapts a metric slice for growth.Model.Simulate.
func Observers(ms []Metric) []growth.Observer {
	obs := make([]growth.Observer, len(ms))
	for i, m := range ms {
		m.Reset()
		obs[i] = m
	}
	return obs
}

// Collect returns the current value of every metric keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
