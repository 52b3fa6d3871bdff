// Package analysis provides comparative statics and qualitative tools for
// the Solow model.
//
//   - [Sweep]: steady states across a range of one parameter
//   - [PhaseLine]: sign of the equation of motion over a capital grid
//   - [GoldenRule]: the savings rate that maximises steady-state consumption
//   - [Ensemble]: concurrent paths from several initial capital levels
//
// # Comparative Statics
//
// Sweep walks a single model through successive parameter values with
// [growth.Model.ReplaceParameters], so each point carries the change
// relative to the previous one:
//
//	points, err := analysis.Sweep(p, "s", 0.1, 0.5, 9)
//	for _, pt := range points {
//	    fmt.Println(pt.Value, pt.SteadyState.Capital)
//	}
package analysis
