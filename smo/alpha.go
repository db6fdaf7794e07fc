package smo

import "github.com/go-ml-lab/svmkit/floatkind"

// Alpha pairs a dual variable's current value with its upper bound,
// exposing the three box-membership predicates the working-set
// selection and shrinking heuristics key off.
type Alpha[A floatkind.Float] struct {
	Value      A
	UpperBound A
}

func newAlpha[A floatkind.Float](value, upperBound A) Alpha[A] {
	return Alpha[A]{Value: value, UpperBound: upperBound}
}

// ReachedUpper reports whether the variable is pinned at its upper bound.
func (a Alpha[A]) ReachedUpper() bool {
	return a.Value >= a.UpperBound
}

// ReachedLower reports whether the variable is pinned at zero.
func (a Alpha[A]) ReachedLower() bool {
	return a.Value == 0
}

// FreeFloating reports whether the variable is strictly inside the box.
func (a Alpha[A]) FreeFloating() bool {
	return a.Value > 0 && a.Value < a.UpperBound
}
