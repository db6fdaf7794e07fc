// Package gnb implements Gaussian Naive Bayes classification with support
// for incremental (mini-batch) fitting, mirroring linfa-bayes's GaussianNb.
package gnb

import "github.com/go-ml-lab/svmkit/floatkind"

// Params configures a GaussianNb fit, following the same plain
// exported-field-struct-with-Default pattern used by smo.Params.
type Params[A floatkind.Float] struct {
	// VarSmoothing is the portion of the largest per-feature variance
	// added to every feature's variance for numerical stability.
	VarSmoothing A
	// Priors, if non-nil, fixes the per-class prior probabilities
	// instead of estimating them from class frequency. It must assign a
	// prior to every class the model has seen, and those priors must sum
	// to one; otherwise PartialFit returns ErrPriorMismatch.
	Priors map[int]A
}

// DefaultParams returns var_smoothing=1e-9 and estimated (not fixed)
// priors.
func DefaultParams[A floatkind.Float]() Params[A] {
	return Params[A]{
		VarSmoothing: floatkind.FromFloat64[A](1e-9),
	}
}
