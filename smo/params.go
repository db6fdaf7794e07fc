package smo

import "github.com/go-ml-lab/svmkit/floatkind"

// Params are the stopping tolerance and shrinking toggle for a solver run,
// mirroring optimize.Settings's pattern of a plain exported-field struct
// with a Default constructor rather than a fluent builder.
type Params[A floatkind.Float] struct {
	// Eps is the stopping tolerance on the KKT violation.
	Eps A
	// Shrinking enables the shrinking heuristic during Solve.
	Shrinking bool
}

// DefaultParams returns the conventional libsvm-derived starting point:
// eps=1e-3, shrinking enabled.
func DefaultParams[A floatkind.Float]() Params[A] {
	return Params[A]{
		Eps:       floatkind.FromFloat64[A](1e-3),
		Shrinking: true,
	}
}
