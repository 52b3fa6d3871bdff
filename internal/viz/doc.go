// Package viz renders growth model results for the terminal.
//
// Plots use asciigraph; tables and labels use lipgloss styles:
//
//   - [PlotPath]: capital path against the steady state
//   - [PlotDiagnostics]: per-step change and growth rate
//   - [PlotSweep]: k* and c* across a parameter sweep
//   - [PlotEnsemble]: several capital paths against the steady state
//   - [RenderSteadyState], [RenderReport], [RenderParams]: styled tables
//
// Colours come from the current [Theme]; [SetTheme] switches it.
//
// Output is plain text with ANSI styling; lipgloss drops the styling when
// stdout is not a terminal.
package viz
