package smo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/go-ml-lab/svmkit/floatkind"
	"github.com/go-ml-lab/svmkit/kernel"
	"github.com/go-ml-lab/svmkit/smo"
)

func linearGram(data *mat.Dense) *kernel.Dense[float64] {
	return kernel.NewDense[float64](data, kernel.Linear, true)
}

// Two points, linearly separable, C=1: the classic textbook SMO sanity
// check. The optimal separator is the perpendicular bisector of the two
// points, so alpha for both support vectors should be equal.
func TestSolveTrivialTwoPoint(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{
		0, 0,
		1, 1,
	})
	targets := []bool{true, false}
	ker := linearGram(data)

	c := 1.0
	alpha0 := []float64{0, 0}
	p := []float64{-1, -1}
	bounds := []float64{c, c}
	params := smo.DefaultParams[float64]()

	solver := smo.New[float64](alpha0, p, targets, ker, bounds, params, false)
	result := solver.Solve()

	require.Equal(t, smo.ReachedThreshold, result.ExitReason)
	assert.InDelta(t, result.Alpha[0], result.Alpha[1], 1e-6)
	assert.True(t, result.Alpha[0] > 0 && result.Alpha[0] <= c)
}

// With a linear kernel the solver must precompute the primal weight
// vector; for the two-point separable case above it should point along
// the line joining the two samples.
func TestSolveLinearDecisionWeight(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{
		0, 0,
		1, 1,
	})
	targets := []bool{true, false}
	ker := linearGram(data)

	params := smo.DefaultParams[float64]()
	solver := smo.New[float64]([]float64{0, 0}, []float64{-1, -1}, targets, ker, []float64{1, 1}, params, false)
	result := solver.Solve()

	require.NotNil(t, result.LinearDecision)
	require.Len(t, result.LinearDecision, 2)
	// w is a scalar multiple of (1,1) for this symmetric problem.
	assert.InDelta(t, result.LinearDecision[0], result.LinearDecision[1], 1e-6)
}

// Disabling shrinking must not change the answer, only (potentially) the
// iteration count.
func TestShrinkingDoesNotChangeAnswer(t *testing.T) {
	data, targets := blobs(30)
	c := 1.0
	bounds := make([]float64, 30)
	for i := range bounds {
		bounds[i] = c
	}
	alpha0 := make([]float64, 30)
	p := make([]float64, 30)
	for i := range p {
		p[i] = -1
	}

	withShrink := smo.DefaultParams[float64]()
	withoutShrink := smo.DefaultParams[float64]()
	withoutShrink.Shrinking = false

	r1 := smo.New[float64](alpha0, p, targets, linearGram(data), bounds, withShrink, false).Solve()
	r2 := smo.New[float64](alpha0, p, targets, linearGram(data), bounds, withoutShrink, false).Solve()

	for i := range r1.Alpha {
		assert.InDelta(t, r1.Alpha[i], r2.Alpha[i], 1e-4)
	}
	assert.InDelta(t, r1.Rho, r2.Rho, 1e-4)
}

// A single-sample problem should terminate immediately at the threshold,
// never touching the iteration cap.
func TestSolveSingleSampleTerminatesFast(t *testing.T) {
	data := mat.NewDense(1, 1, []float64{1})
	ker := linearGram(data)
	params := smo.DefaultParams[float64]()

	solver := smo.New[float64]([]float64{0}, []float64{-1}, []bool{true}, ker, []float64{1}, params, false)
	result := solver.Solve()

	assert.Equal(t, smo.ReachedThreshold, result.ExitReason)
	assert.Less(t, result.Iterations, 100)
}

// At the optimum, alpha must respect the box constraints for every
// coordinate regardless of dataset shape.
func TestOptimalityBoxFeasibility(t *testing.T) {
	data, targets := blobs(20)
	c := 0.5
	bounds := make([]float64, 20)
	alpha0 := make([]float64, 20)
	p := make([]float64, 20)
	for i := range bounds {
		bounds[i] = c
		p[i] = -1
	}

	result := smo.New[float64](alpha0, p, targets, linearGram(data), bounds, smo.DefaultParams[float64](), false).Solve()

	for i, a := range result.Alpha {
		assert.GreaterOrEqual(t, a, 0.0, "alpha[%d] below lower bound", i)
		assert.LessOrEqual(t, a, c+1e-9, "alpha[%d] above upper bound", i)
	}
}

// float32 must behave identically in kind to float64, just at lower
// precision: this exercises the generic instantiation over ~float32.
func TestSolveFloat32Instantiation(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	ker := kernel.NewDense[float32](data, kernel.Linear, true)
	params := smo.DefaultParams[float32]()

	solver := smo.New[float32]([]float32{0, 0}, []float32{-1, -1}, []bool{true, false}, ker, []float32{1, 1}, params, false)
	result := solver.Solve()

	assert.False(t, math.IsNaN(float64(result.Rho)))
}

// The ν-formulation requires its initial α to already satisfy the
// equality constraint Σ_{y=+1} α_i = Σ_{y=-1} α_i = ν·l/2; nuInitialAlpha
// builds that starting point the way libsvm's svm_train (Solver_NU setup
// in svm.cpp) does: walk each class in turn, pinning each coordinate to
// min(1, remaining budget) until the class's share of the budget is spent.
func nuInitialAlpha(targets []bool, nu float64) []float64 {
	l := len(targets)
	sumPos := nu * float64(l) / 2
	sumNeg := nu * float64(l) / 2
	alpha := make([]float64, l)
	for i, y := range targets {
		if y {
			a := math.Min(1, sumPos)
			alpha[i] = a
			sumPos -= a
		} else {
			a := math.Min(1, sumNeg)
			alpha[i] = a
			sumNeg -= a
		}
	}
	return alpha
}

// ν-SVC optimality at exit must satisfy the two-sided KKT gap
// max(gmax1+gmax3, gmax4+gmax2) < eps (spec.md §8), and the per-class
// equality constraint the paired update is supposed to preserve.
func TestSolveNuFormulation(t *testing.T) {
	data, targets := blobs(20)
	const nu = 0.5

	alpha0 := nuInitialAlpha(targets, nu)
	p := make([]float64, 20)
	bounds := make([]float64, 20)
	for i := range bounds {
		bounds[i] = 1.0
	}

	params := smo.DefaultParams[float64]()
	result := smo.New[float64](alpha0, p, targets, linearGram(data), bounds, params, true).Solve()

	require.Equal(t, smo.ReachedThreshold, result.ExitReason)
	require.NotNil(t, result.R, "nu-formulation run must report a nu-residual")

	var sumPos, sumNeg float64
	for i, a := range result.Alpha {
		assert.GreaterOrEqual(t, a, 0.0, "alpha[%d] below lower bound", i)
		assert.LessOrEqual(t, a, bounds[i]+1e-9, "alpha[%d] above upper bound", i)
		if targets[i] {
			sumPos += a
		} else {
			sumNeg += a
		}
	}
	assert.InDelta(t, sumPos, sumNeg, 1e-3, "nu equality constraint: positive and negative class alpha sums must match")
}

// spec.md §8 scenario 6: an impossibly small eps must force the iteration
// cap rather than ever reporting ReachedThreshold, while alpha stays
// box-feasible throughout.
func TestSolveReachesIterationCap(t *testing.T) {
	data, targets := blobs(4)
	c := 1.0
	alpha0 := make([]float64, 4)
	p := make([]float64, 4)
	bounds := make([]float64, 4)
	for i := range bounds {
		p[i] = -1
		bounds[i] = c
	}

	params := smo.DefaultParams[float64]()
	params.Eps = 0

	result := smo.New[float64](alpha0, p, targets, linearGram(data), bounds, params, false).Solve()

	require.Equal(t, smo.ReachedIterations, result.ExitReason)
	for i, a := range result.Alpha {
		assert.GreaterOrEqual(t, a, 0.0, "alpha[%d] below lower bound", i)
		assert.LessOrEqual(t, a, c+1e-9, "alpha[%d] above upper bound", i)
	}
}

func blobs(n int) (*mat.Dense, []bool) {
	data := mat.NewDense(n, 2, nil)
	targets := make([]bool, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			data.Set(i, 0, 1.0+0.01*float64(i))
			data.Set(i, 1, 1.0)
			targets[i] = true
		} else {
			data.Set(i, 0, -1.0-0.01*float64(i))
			data.Set(i, 1, -1.0)
			targets[i] = false
		}
	}
	return data, targets
}
