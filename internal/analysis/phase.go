package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/growthlab/internal/growth"
)

// PhasePoint samples the equation of motion at one capital level.
type PhasePoint struct {
	K     float64 `json:"k"`
	KDot  float64 `json:"k_dot"`
	Slope float64 `json:"slope"`
}

// Phase holds a sampled phase line and the grid cell where k_dot changes
// sign from positive to negative.
type Phase struct {
	Points      []PhasePoint
	CrossLow    float64
	CrossHigh   float64
	HasCrossing bool
}

// PhaseLine samples k_dot and its slope at points evenly spaced capital
// levels in [kMin, kMax]. kMin must be positive.
func PhaseLine(m *growth.Model, kMin, kMax float64, points int) (*Phase, error) {
	if points < 2 {
		return nil, fmt.Errorf("phase line needs at least 2 points, got %d", points)
	}
	if kMin <= 0 || kMax <= kMin {
		return nil, fmt.Errorf("phase line range must satisfy 0 < kMin < kMax, got [%g, %g]", kMin, kMax)
	}

	phase := &Phase{Points: make([]PhasePoint, 0, points)}
	stride := (kMax - kMin) / float64(points-1)

	for i := 0; i < points; i++ {
		k := kMin + float64(i)*stride
		kdot, err := m.EquationOfMotion(k)
		if err != nil {
			return nil, err
		}
		slope, err := m.GrowthRate(k)
		if err != nil {
			return nil, err
		}
		phase.Points = append(phase.Points, PhasePoint{K: k, KDot: kdot, Slope: slope})

		if i > 0 && !phase.HasCrossing {
			prev := phase.Points[i-1]
			if prev.KDot > 0 && kdot <= 0 {
				phase.CrossLow, phase.CrossHigh = prev.K, k
				phase.HasCrossing = true
			}
		}
	}

	return phase, nil
}

// KDots extracts k_dot from each point.
func (p *Phase) KDots() []float64 {
	out := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.KDot
	}
	return out
}

// Arrows renders the phase line as a row of arrows: '>' where capital
// grows, '<' where it shrinks and '*' at the sample closest to the crossing.
func (p *Phase) Arrows() string {
	star := -1
	if p.HasCrossing {
		best := math.Inf(1)
		for i, pt := range p.Points {
			if pt.K >= p.CrossLow && pt.K <= p.CrossHigh && math.Abs(pt.KDot) < best {
				best, star = math.Abs(pt.KDot), i
			}
		}
	}

	var sb strings.Builder
	for i, pt := range p.Points {
		switch {
		case i == star || pt.KDot == 0:
			sb.WriteRune('*')
		case pt.KDot > 0:
			sb.WriteRune('>')
		default:
			sb.WriteRune('<')
		}
	}
	return sb.String()
}
