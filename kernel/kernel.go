// Package kernel implements the Permutable kernel-matrix contract that the
// smo solver consumes (see the solver's Permutable collaborator). The
// solver only ever needs row access into a symmetric, positive
// semi-definite Gram matrix plus in-place index permutation; this package
// supplies a concrete, in-memory implementation of that contract over
// gonum/mat, along with the handful of kernel functions needed to build
// the Gram matrix in the first place.
package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/go-ml-lab/svmkit/floatkind"
)

// Func computes the kernel value between two rows of a dataset.
type Func func(x, y mat.Vector) float64

// Linear is the dot-product kernel. A solver built on a Dense wrapping this
// Func can precompute its decision weight vector directly from the dataset.
func Linear(x, y mat.Vector) float64 {
	return mat.Dot(x, y)
}

// Poly returns a polynomial kernel (gamma*<x,y> + coef0)^degree.
func Poly(gamma, coef0 float64, degree int) Func {
	return func(x, y mat.Vector) float64 {
		v := gamma*mat.Dot(x, y) + coef0
		out := 1.0
		for i := 0; i < degree; i++ {
			out *= v
		}
		return out
	}
}

// RBF returns a Gaussian radial basis function kernel exp(-gamma*||x-y||^2).
func RBF(gamma float64) Func {
	return func(x, y mat.Vector) float64 {
		n := x.Len()
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := 0; i < n; i++ {
			xs[i] = x.AtVec(i)
			ys[i] = y.AtVec(i)
		}
		dist := floats.Distance(xs, ys, 2)
		return math.Exp(-gamma * dist * dist)
	}
}

// Permutable is the contract required by the smo solver from its kernel
// collaborator.
type Permutable[A floatkind.Float] interface {
	// Distances returns a length-k view of K(i, .) over the current first
	// k positions; it must reflect all prior calls to SwapIndices.
	Distances(i, k int) []A
	// SelfDistance returns K(i, i).
	SelfDistance(i int) A
	// SwapIndices permutes the logical rows/columns so that subsequent
	// Distances and SelfDistance calls agree with the new ordering.
	SwapIndices(i, j int)
	// Inner exposes the underlying kernel so a linear decision weight
	// vector can be reconstructed when IsLinear is true.
	Inner() Inner[A]
}

// Inner is the underlying kernel object a Permutable wraps.
type Inner[A floatkind.Float] interface {
	// IsLinear reports whether the kernel is the plain dot product.
	IsLinear() bool
	// Dataset returns the raw sample matrix. Valid only if IsLinear.
	Dataset() mat.Matrix
}
