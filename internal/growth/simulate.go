package growth

import "math"

// Path is a capital trajectory indexed by discrete step; Path[0] is the
// initial stock.
type Path []float64

func (p Path) Clone() Path {
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// Last returns the final element, or 0 for an empty path.
func (p Path) Last() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1]
}

func (p Path) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Diagnostics is a simulated path with its first differences and growth
// rates. Change[0] and Growth[0] are zero.
type Diagnostics struct {
	Path   Path `json:"k"`
	Change Path `json:"k_change"`
	Growth Path `json:"k_growth"`
}

// Observer receives every element of a simulated path as it is produced.
type Observer interface {
	Observe(step int, k float64)
}

// Simulate runs the discrete-time law of motion
//
//	k[t] = (s k[t-1]^alpha + (1-d) k[t-1]) / (1+n)
//
// for steps elements starting at k0.
func (m *Model) Simulate(k0 float64, steps int, observers ...Observer) (Path, error) {
	d, err := m.simulate(k0, steps, false, observers)
	if err != nil {
		return nil, err
	}
	return d.Path, nil
}

// SimulateDeltas runs Simulate and computes the per-step change
// k[t]-k[t-1] and growth rate change/k[t] in the same pass.
func (m *Model) SimulateDeltas(k0 float64, steps int, observers ...Observer) (Diagnostics, error) {
	return m.simulate(k0, steps, true, observers)
}

func (m *Model) simulate(k0 float64, steps int, deltas bool, observers []Observer) (Diagnostics, error) {
	if steps < 1 {
		return Diagnostics{}, fail("simulate", float64(steps), ErrInvalidStepCount)
	}
	p := m.Params()
	norm := 1 + p.N
	if norm == 0 {
		return Diagnostics{}, fail("simulate", p.N, ErrDegenerateDenominator)
	}

	d := Diagnostics{Path: make(Path, steps)}
	if deltas {
		d.Change = make(Path, steps)
		d.Growth = make(Path, steps)
	}
	d.Path[0] = k0
	for _, obs := range observers {
		obs.Observe(0, k0)
	}

	for t := 1; t < steps; t++ {
		prev := d.Path[t-1]
		y, err := power("simulate", prev, p.Alpha)
		if err != nil {
			return Diagnostics{}, failAt("simulate", t, prev, ErrInvalidDomain)
		}
		k := (p.S*y + (1-p.D)*prev) / norm
		d.Path[t] = k

		if deltas {
			if k == 0 {
				return Diagnostics{}, failAt("simulate growth rate", t, k, ErrDegenerateDenominator)
			}
			d.Change[t] = k - prev
			d.Growth[t] = d.Change[t] / k
		}
		for _, obs := range observers {
			obs.Observe(t, k)
		}
	}

	return d, nil
}
