package kernel

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-ml-lab/svmkit/floatkind"
)

// Dense is a concrete Permutable backed by a fully materialized Gram
// matrix. It is the right choice for the small-to-medium datasets this
// solver targets; nothing here imposes a particular caching strategy on
// implementers of Permutable in general, but precomputing the whole
// matrix is the simplest correct one.
type Dense[A floatkind.Float] struct {
	gram [][]A
	// dataset is the raw, never-permuted sample matrix. The solver owns
	// and permutes its own targets/alpha/active_set in lockstep with the
	// kernel's row/column order (see smo.SolverState.swap); the kernel
	// itself only ever needs to permute the Gram matrix.
	dataset *mat.Dense
	linear  bool
}

// NewDense builds a Dense kernel from a row-major dataset and a kernel
// function. linear must be true iff fn computes the plain dot product;
// this is what allows smo.Solve to precompute a primal decision weight
// vector at the end of the run.
func NewDense[A floatkind.Float](dataset *mat.Dense, fn Func, linear bool) *Dense[A] {
	n, _ := dataset.Dims()
	gram := make([][]A, n)
	for i := 0; i < n; i++ {
		row := make([]A, n)
		xi := dataset.RowView(i)
		for j := 0; j < n; j++ {
			row[j] = A(fn(xi, dataset.RowView(j)))
		}
		gram[i] = row
	}

	return &Dense[A]{
		gram:    gram,
		dataset: dataset,
		linear:  linear,
	}
}

// Distances returns K(i, .) restricted to the first k columns.
func (d *Dense[A]) Distances(i, k int) []A {
	return d.gram[i][:k]
}

// SelfDistance returns K(i, i).
func (d *Dense[A]) SelfDistance(i int) A {
	return d.gram[i][i]
}

// SwapIndices permutes rows and columns of the Gram matrix together so
// every later Distances/SelfDistance call observes the new ordering.
func (d *Dense[A]) SwapIndices(i, j int) {
	if i == j {
		return
	}
	d.gram[i], d.gram[j] = d.gram[j], d.gram[i]
	for _, row := range d.gram {
		row[i], row[j] = row[j], row[i]
	}
}

// Inner returns the underlying kernel description.
func (d *Dense[A]) Inner() Inner[A] {
	return innerView[A]{dataset: d.dataset, linear: d.linear}
}

type innerView[A floatkind.Float] struct {
	dataset *mat.Dense
	linear  bool
}

func (v innerView[A]) IsLinear() bool      { return v.linear }
func (v innerView[A]) Dataset() mat.Matrix { return v.dataset }
