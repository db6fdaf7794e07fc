package gnb

import (
	"sort"

	"github.com/go-ml-lab/svmkit/floatkind"
)

// classInfo accumulates the running per-class statistics: sample count,
// per-feature mean and population variance (smoothed by epsilon), and the
// class prior. count is carried separately from prior so a later
// PartialFit batch can be merged with Welford's formula before the prior
// is recomputed.
type classInfo[A floatkind.Float] struct {
	count    int
	prior    A
	mean     []A
	variance []A
}

// Model is a fitted (or partially fitted) Gaussian Naive Bayes classifier.
// It is safe to keep calling PartialFit on the same Model to continue
// training on further batches.
type Model[A floatkind.Float] struct {
	classes []int
	byClass map[int]*classInfo[A]
	// epsilon is the absolute variance smoothing term added to every
	// feature's variance, recomputed from the data each time Fit/PartialFit
	// runs: var_smoothing * max(feature variance over the whole batch).
	epsilon  A
	nFeature int
	params   Params[A]
}

// Classes returns the sorted class labels the model has seen, in the same
// order Predict uses to break joint-log-likelihood ties.
func (m *Model[A]) Classes() []int {
	return append([]int(nil), m.classes...)
}

// Prior returns the fitted (or fixed, via Params.Priors) prior probability
// for class, and false if class has never been seen.
func (m *Model[A]) Prior(class int) (A, bool) {
	info, ok := m.byClass[class]
	if !ok {
		return *new(A), false
	}
	return info.prior, true
}

// Mean returns the per-feature mean for class, and false if class has
// never been seen.
func (m *Model[A]) Mean(class int) ([]A, bool) {
	info, ok := m.byClass[class]
	if !ok {
		return nil, false
	}
	return append([]A(nil), info.mean...), true
}

// Variance returns the per-feature (epsilon-smoothed) variance for class,
// and false if class has never been seen.
func (m *Model[A]) Variance(class int) ([]A, bool) {
	info, ok := m.byClass[class]
	if !ok {
		return nil, false
	}
	return append([]A(nil), info.variance...), true
}

// sortedInts returns the sorted unique elements of seen, which callers
// build as a set (map[int]struct{}) — the sort is what gives predict its
// deterministic tie-breaking order among classes sharing the argmax JLL.
func sortedInts(seen map[int]struct{}) []int {
	out := make([]int, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
