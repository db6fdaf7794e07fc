package gnb

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/go-ml-lab/svmkit/floatkind"
)

// JointLogLikelihood computes jll_c(x) for every class c, in the same
// sorted-class order Classes returns, for every row of x.
func (m *Model[A]) JointLogLikelihood(x *mat.Dense) ([][]A, error) {
	if m.byClass == nil {
		return nil, ErrNotFitted
	}
	rows, cols := x.Dims()
	if rows == 0 {
		panic("gnb: JointLogLikelihood called with an empty matrix")
	}
	if cols != m.nFeature {
		return nil, ErrDimensionMismatch
	}

	out := make([][]A, rows)
	for r := 0; r < rows; r++ {
		row := make([]A, len(m.classes))
		for ci, class := range m.classes {
			info := m.byClass[class]
			row[ci] = jointLogLikelihoodOne[A](info, x, r, cols)
		}
		out[r] = row
	}
	return out, nil
}

func jointLogLikelihoodOne[A floatkind.Float](info *classInfo[A], x *mat.Dense, row, cols int) A {
	jll := floatkind.Ln(info.prior)
	for f := 0; f < cols; f++ {
		xf := A(x.At(row, f))
		if math.IsNaN(float64(xf)) {
			panic("gnb: predict received NaN input")
		}
		// Normal{Mu,Sigma}.LogProb(x) computes -0.5*ln(2*pi*Sigma^2) -
		// (x-Mu)^2/(2*Sigma^2). With Mu 0, the argument x - mean, and
		// Sigma set to sqrt(variance) (the Welford merge tracks variance),
		// that is exactly the per-feature JLL term
		// -0.5*ln(2*pi*variance) - (x-mean)^2/(2*variance).
		variance := float64(info.variance[f])
		d := distuv.Normal{Mu: 0, Sigma: math.Sqrt(variance)}
		logProb := d.LogProb(float64(xf) - float64(info.mean[f]))
		jll += A(logProb)
	}
	return jll
}

// Predict returns the argmax-JLL class label for every row of x, breaking
// ties by the sorted class order Classes returns.
func (m *Model[A]) Predict(x *mat.Dense) ([]int, error) {
	jll, err := m.JointLogLikelihood(x)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(jll))
	for r, row := range jll {
		best := 0
		for ci := 1; ci < len(row); ci++ {
			if row[ci] > row[best] {
				best = ci
			}
		}
		labels[r] = m.classes[best]
	}
	return labels, nil
}
