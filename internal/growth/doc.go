// Package growth implements the Solow-Swan exogenous growth model.
//
// A [Model] owns one parameter set and exposes:
//
//   - closed-form steady states: [Model.SteadyStateCapital], [Model.SteadyStateOutput],
//     [Model.SteadyStateConsumption]
//   - the Cobb-Douglas production function and its marginal product
//   - the equation of motion of capital and its derivative
//   - a discrete-time simulator ([Model.Simulate], [Model.SimulateDeltas])
//   - comparative statics through [Model.ReplaceParameters]
//
// # Parameters
//
// Parameters arrive either as a typed [Params] value or as a string-keyed
// [ParameterSet], which [Decode] resolves once. The depreciation rate may be
// given as "d" or "delta"; a missing key is an error, never a zero.
//
//	m, err := growth.NewFromSet(growth.ParameterSet{
//	    "n": 0.01, "s": 0.2, "d": 0.04, "alpha": 1.0 / 3, "g": 0.02,
//	})
//	kStar, err := m.SteadyStateCapital()
//
// # Errors
//
// Every failure unwraps to one of the sentinel errors in errors.go. Capital
// is never clamped: a negative stock raised to a fractional power returns
// [ErrInvalidDomain].
//
// # Thread Safety
//
// Model is safe for concurrent use. ReplaceParameters computes both steady
// states and swaps the parameters under a single write lock.
package growth
