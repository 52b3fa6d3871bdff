package metrics

import "math"

// Convergence is the relative gap |k - k*| / k* at the last observed step.
type Convergence struct {
	name  string
	kStar float64
	last  float64
	seen  bool
}

func NewConvergence(kStar float64) *Convergence {
	return &Convergence{name: "convergence_gap", kStar: kStar}
}

func (c *Convergence) Name() string { return c.name }

func (c *Convergence) Observe(step int, k float64) {
	c.last = k
	c.seen = true
}

func (c *Convergence) Value() float64 {
	if !c.seen || c.kStar == 0 {
		return 0
	}
	return math.Abs(c.last-c.kStar) / c.kStar
}

func (c *Convergence) Reset() {
	c.last = 0
	c.seen = false
}

// HalfLife is the first step at which the gap to k* has closed to at most
// half of its initial size, or -1 if that never happens.
type HalfLife struct {
	name    string
	kStar   float64
	initial float64
	step    int
}

func NewHalfLife(kStar float64) *HalfLife {
	return &HalfLife{name: "half_life", kStar: kStar, step: -1}
}

func (h *HalfLife) Name() string { return h.name }

func (h *HalfLife) Observe(step int, k float64) {
	gap := math.Abs(k - h.kStar)
	if step == 0 {
		h.initial = gap
		if gap == 0 {
			h.step = 0
		}
		return
	}
	if h.step < 0 && gap <= h.initial/2 {
		h.step = step
	}
}

func (h *HalfLife) Value() float64 {
	return float64(h.step)
}

func (h *HalfLife) Reset() {
	h.initial = 0
	h.step = -1
}
