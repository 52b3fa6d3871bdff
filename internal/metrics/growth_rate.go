package metrics

import "math"

// PeakGrowth is the largest absolute one-step relative change of capital.
type PeakGrowth struct {
	name string
	prev float64
	peak float64
	seen bool
}

func NewPeakGrowth() *PeakGrowth {
	return &PeakGrowth{name: "peak_growth"}
}

func (p *PeakGrowth) Name() string { return p.name }

func (p *PeakGrowth) Observe(step int, k float64) {
	if p.seen && k != 0 {
		p.peak = math.Max(p.peak, math.Abs((k-p.prev)/k))
	}
	p.prev = k
	p.seen = true
}

func (p *PeakGrowth) Value() float64 {
	return p.peak
}

func (p *PeakGrowth) Reset() {
	p.prev = 0
	p.peak = 0
	p.seen = false
}

// MeanGrowth is the mean absolute one-step relative change of capital.
type MeanGrowth struct {
	name    string
	prev    float64
	sum     float64
	samples int
	seen    bool
}

func NewMeanGrowth() *MeanGrowth {
	return &MeanGrowth{name: "mean_growth"}
}

func (m *MeanGrowth) Name() string { return m.name }

func (m *MeanGrowth) Observe(step int, k float64) {
	if m.seen && k != 0 {
		m.sum += math.Abs((k - m.prev) / k)
		m.samples++
	}
	m.prev = k
	m.seen = true
}

func (m *MeanGrowth) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanGrowth) Reset() {
	m.prev = 0
	m.sum = 0
	m.samples = 0
	m.seen = false
}
