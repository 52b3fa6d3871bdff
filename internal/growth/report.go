package growth

// ComparativeReport records the steady state before and after a parameter
// replacement.
type ComparativeReport struct {
	OldParams Params      `json:"old_params" yaml:"old_params"`
	NewParams Params      `json:"new_params" yaml:"new_params"`
	Old       SteadyState `json:"old" yaml:"old"`
	New       SteadyState `json:"new" yaml:"new"`

	CapitalChangePct float64 `json:"k_star_change_pct" yaml:"k_star_change_pct"`
	CapitalRatio     float64 `json:"k_star_ratio" yaml:"k_star_ratio"`
	OutputRatio      float64 `json:"y_star_ratio" yaml:"y_star_ratio"`
	ConsumptionRatio float64 `json:"c_star_ratio" yaml:"c_star_ratio"`
}

// Report keys used by Map.
const (
	ReportOldK    = "old k star"
	ReportOldY    = "old y star"
	ReportOldC    = "old c star"
	ReportNewK    = "new k star"
	ReportNewY    = "new y star"
	ReportNewC    = "new c star"
	ReportKChange = "change in k star %"
	ReportKRatio  = "k star ratio"
	ReportYRatio  = "y star ratio"
	ReportCRatio  = "c star ratio"
)

// Map returns the report keyed by display name.
func (r ComparativeReport) Map() map[string]float64 {
	return map[string]float64{
		ReportOldK:    r.Old.Capital,
		ReportOldY:    r.Old.Output,
		ReportOldC:    r.Old.Consumption,
		ReportNewK:    r.New.Capital,
		ReportNewY:    r.New.Output,
		ReportNewC:    r.New.Consumption,
		ReportKChange: r.CapitalChangePct,
		ReportKRatio:  r.CapitalRatio,
		ReportYRatio:  r.OutputRatio,
		ReportCRatio:  r.ConsumptionRatio,
	}
}

// ReplaceParameters swaps in p and reports how the steady state moved.
// Both steady states are computed before the swap; on any error the model
// keeps its current parameters.
func (m *Model) ReplaceParameters(p Params) (ComparativeReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, err := steadyState(m.params)
	if err != nil {
		return ComparativeReport{}, err
	}
	switch {
	case old.Capital == 0:
		return ComparativeReport{}, fail("replace parameters", old.Capital, ErrDegenerateDenominator)
	case old.Output == 0:
		return ComparativeReport{}, fail("replace parameters", old.Output, ErrDegenerateDenominator)
	case old.Consumption == 0:
		return ComparativeReport{}, fail("replace parameters", old.Consumption, ErrDegenerateDenominator)
	}

	next, err := steadyState(p)
	if err != nil {
		return ComparativeReport{}, err
	}

	report := ComparativeReport{
		OldParams:        m.params,
		NewParams:        p,
		Old:              old,
		New:              next,
		CapitalChangePct: (next.Capital - old.Capital) / old.Capital,
		CapitalRatio:     next.Capital / old.Capital,
		OutputRatio:      next.Output / old.Output,
		ConsumptionRatio: next.Consumption / old.Consumption,
	}
	m.params = p
	return report, nil
}
