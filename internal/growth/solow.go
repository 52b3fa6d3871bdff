package growth

import (
	"math"
	"sync"
)

// Model is a Solow growth model over one parameter set.
type Model struct {
	mu     sync.RWMutex
	params Params
}

// New returns a model over p. Parameters are not validated here; each
// computation reports its own failures.
func New(p Params) *Model {
	return &Model{params: p}
}

// NewFromSet decodes set and returns a model over it.
func NewFromSet(set ParameterSet) (*Model, error) {
	p, err := Decode(set)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// Params returns a copy of the current parameters.
func (m *Model) Params() Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

func (m *Model) String() string {
	return m.Params().String()
}

// IsCobbDouglas reports whether the production function is in Cobb-Douglas
// form, i.e. alpha != 1.
func (m *Model) IsCobbDouglas() bool {
	return m.Params().Alpha != 1
}

// SteadyState holds the steady-state levels of capital, output and consumption.
type SteadyState struct {
	Capital     float64 `json:"k_star" yaml:"k_star"`
	Output      float64 `json:"y_star" yaml:"y_star"`
	Consumption float64 `json:"c_star" yaml:"c_star"`
}

// SteadyStateCapital returns k*.
func (m *Model) SteadyStateCapital() (float64, error) {
	return steadyStateCapital(m.Params())
}

// SteadyStateOutput returns y* = k*^alpha.
func (m *Model) SteadyStateOutput() (float64, error) {
	ss, err := steadyState(m.Params())
	return ss.Output, err
}

// SteadyStateConsumption returns c* = (1-s) y*.
func (m *Model) SteadyStateConsumption() (float64, error) {
	ss, err := steadyState(m.Params())
	return ss.Consumption, err
}

// SteadyState returns k*, y* and c* computed from one parameter snapshot.
func (m *Model) SteadyState() (SteadyState, error) {
	return steadyState(m.Params())
}

// Production evaluates the Cobb-Douglas production function k^alpha.
func (m *Model) Production(k float64) (float64, error) {
	return production(m.Params(), k)
}

// MarginalProduct returns alpha * k^(alpha-1).
func (m *Model) MarginalProduct(k float64) (float64, error) {
	return marginalProduct(m.Params(), k)
}

// EquationOfMotion returns k_dot = s f(k) - (n+g+d) k. A positive value
// means k is below the steady state.
func (m *Model) EquationOfMotion(k float64) (float64, error) {
	p := m.Params()
	y, err := production(p, k)
	if err != nil {
		return 0, err
	}
	return p.S*y - p.Dilution()*k, nil
}

// GrowthRate returns the derivative of k_dot with respect to k:
// s f'(k) - (n+g+d).
func (m *Model) GrowthRate(k float64) (float64, error) {
	p := m.Params()
	mpk, err := marginalProduct(p, k)
	if err != nil {
		return 0, err
	}
	return p.S*mpk - p.Dilution(), nil
}

// steadyStateCapital requires n+g+d > 0; a zero or negative effective
// depreciation has no steady state.
func steadyStateCapital(p Params) (float64, error) {
	denom := p.Dilution()
	if denom <= 0 || math.IsNaN(denom) {
		return 0, fail("steady state capital", denom, ErrDegenerateDenominator)
	}

	k := p.S / denom
	if p.Alpha != 1 {
		var err error
		k, err = power("steady state capital", k, 1/(1-p.Alpha))
		if err != nil {
			return 0, err
		}
	}
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return 0, fail("steady state capital", k, ErrInvalidDomain)
	}
	return k, nil
}

func steadyState(p Params) (SteadyState, error) {
	k, err := steadyStateCapital(p)
	if err != nil {
		return SteadyState{}, err
	}
	y, err := production(p, k)
	if err != nil {
		return SteadyState{}, err
	}
	return SteadyState{Capital: k, Output: y, Consumption: (1 - p.S) * y}, nil
}

func production(p Params, k float64) (float64, error) {
	return power("production", k, p.Alpha)
}

func marginalProduct(p Params, k float64) (float64, error) {
	if k == 0 && p.Alpha < 1 {
		return 0, fail("marginal product", k, ErrDegenerateDenominator)
	}
	f, err := power("marginal product", k, p.Alpha-1)
	if err != nil {
		return 0, err
	}
	return p.Alpha * f, nil
}

// power is math.Pow restricted to real results.
func power(op string, base, exp float64) (float64, error) {
	if base < 0 && exp != math.Trunc(exp) {
		return 0, fail(op, base, ErrInvalidDomain)
	}
	return math.Pow(base, exp), nil
}
