package metrics

import "math"

// Stability is the share of steps that did not move capital further from
// k*. A path converging monotonically scores 1.
type Stability struct {
	name       string
	kStar      float64
	prevGap    float64
	violations int
	samples    int
	seen       bool
}

func NewStability(kStar float64) *Stability {
	return &Stability{
		name:  "stability",
		kStar: kStar,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(step int, k float64) {
	gap := math.Abs(k - s.kStar)
	if s.seen {
		s.samples++
		if gap > s.prevGap {
			s.violations++
		}
	}
	s.prevGap = gap
	s.seen = true
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.prevGap = 0
	s.violations = 0
	s.samples = 0
	s.seen = false
}
