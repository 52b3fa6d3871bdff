package analysis

import (
	"fmt"

	"github.com/san-kum/growthlab/internal/growth"
)

// GoldenRule is the savings rate that maximises steady-state consumption
// and the steady state it produces.
type GoldenRule struct {
	Savings     float64            `json:"s" yaml:"s"`
	SteadyState growth.SteadyState `json:"steady_state" yaml:"steady_state"`
}

// GoldenRuleSavings returns the golden-rule savings rate for p. With
// Cobb-Douglas production consumption (1-s)(s/(n+g+d))^(alpha/(1-alpha)) is
// maximised at s = alpha.
func GoldenRuleSavings(p growth.Params) (GoldenRule, error) {
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return GoldenRule{}, fmt.Errorf("golden rule needs 0 < alpha < 1, got %g: %w", p.Alpha, growth.ErrInvalidDomain)
	}
	golden := p
	golden.S = p.Alpha
	ss, err := growth.New(golden).SteadyState()
	if err != nil {
		return GoldenRule{}, err
	}
	return GoldenRule{Savings: golden.S, SteadyState: ss}, nil
}
