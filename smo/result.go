package smo

import (
	"github.com/go-ml-lab/svmkit/floatkind"
	"github.com/go-ml-lab/svmkit/kernel"
)

// ExitReason is a tagged union over why Solve stopped, following the same
// pattern as optimize.Status: a small int type with a String method rather
// than an interface or error.
type ExitReason int

const (
	// ReachedThreshold means the KKT optimality gap fell below eps.
	ReachedThreshold ExitReason = iota
	// ReachedIterations means the iteration cap was hit first.
	ReachedIterations
)

func (e ExitReason) String() string {
	switch e {
	case ReachedThreshold:
		return "ReachedThreshold"
	case ReachedIterations:
		return "ReachedIterations"
	default:
		return "ExitReason(unknown)"
	}
}

// Svm is the fitted model Solve returns.
type Svm[A floatkind.Float] struct {
	// Alpha holds the dual variables in original sample order.
	Alpha []A
	// Rho is the bias term of the decision function.
	Rho A
	// R is the ν-residual; non-nil only when the solver ran in
	// ν-formulation mode.
	R *A
	// ExitReason records why Solve stopped.
	ExitReason ExitReason
	// Obj is the dual objective value at termination.
	Obj A
	// Iterations is the number of update steps performed.
	Iterations int
	// Kernel is the (now fully unshrunk) kernel collaborator the solver
	// ran against, returned so a caller can score new points against the
	// same Gram matrix.
	Kernel kernel.Permutable[A]
	// LinearDecision is the precomputed primal weight vector, set only
	// when Kernel.Inner().IsLinear().
	LinearDecision []A
}
