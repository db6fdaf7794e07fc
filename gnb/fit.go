package gnb

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-ml-lab/svmkit/floatkind"
)

// Fit builds a fresh model from a records matrix and integer class labels,
// one per row. It is equivalent to calling PartialFit on a zero-valued
// *Model[A].
func Fit[A floatkind.Float](records *mat.Dense, targets []int, params Params[A]) (*Model[A], error) {
	return (&Model[A]{}).PartialFit(records, targets, params)
}

// PartialFit folds one more batch into m, following the original
// incremental-fit contract: classes absent from this batch keep their
// prior statistics untouched, and m may be the zero value (fitting from
// scratch).
func (m *Model[A]) PartialFit(records *mat.Dense, targets []int, params Params[A]) (*Model[A], error) {
	if m == nil {
		m = &Model[A]{}
	}
	rows, cols := records.Dims()
	if rows == 0 {
		return nil, ErrEmptyBatch
	}
	if rows != len(targets) {
		return nil, ErrDimensionMismatch
	}
	if m.byClass != nil && cols != m.nFeature {
		return nil, ErrDimensionMismatch
	}

	epsilon := params.VarSmoothing * maxBatchVariance(records)

	out := &Model[A]{
		byClass:  make(map[int]*classInfo[A], len(m.byClass)),
		nFeature: cols,
		params:   params,
	}
	for k, v := range m.byClass {
		cp := *v
		cp.mean = append([]A(nil), v.mean...)
		cp.variance = append([]A(nil), v.variance...)
		out.byClass[k] = &cp
	}

	// Subtract this batch's epsilon from the carried-over variances before
	// merging; it is added back to every class below. The previous fit
	// added its own epsilon, so the two cancel exactly only when both
	// batches have the same largest feature variance.
	for _, info := range out.byClass {
		for f := range info.variance {
			info.variance[f] -= epsilon
		}
	}

	seen := make(map[int]struct{}, len(out.byClass))
	for k := range out.byClass {
		seen[k] = struct{}{}
	}

	byClassRows := make(map[int][]int)
	for i, c := range targets {
		byClassRows[c] = append(byClassRows[c], i)
		seen[c] = struct{}{}
	}

	for class, rowIdx := range byClassRows {
		newMean, newVar := meanVariance[A](records, rowIdx, cols)
		newCount := len(rowIdx)

		info, ok := out.byClass[class]
		if !ok {
			info = &classInfo[A]{}
			out.byClass[class] = info
		}
		info.mean, info.variance = mergeMeanVariance(info.count, info.mean, info.variance, newCount, newMean, newVar, cols)
		info.count += newCount
	}

	for _, info := range out.byClass {
		for f := range info.variance {
			info.variance[f] += epsilon
		}
	}

	if params.Priors != nil {
		if err := validatePriors(params.Priors, out.byClass); err != nil {
			return nil, err
		}
	}

	var total int
	for _, info := range out.byClass {
		total += info.count
	}
	for class, info := range out.byClass {
		if p, ok := params.Priors[class]; ok {
			info.prior = p
		} else {
			info.prior = floatkind.FromInt[A](info.count) / floatkind.FromInt[A](total)
		}
	}

	out.classes = sortedInts(seen)
	out.epsilon = epsilon
	return out, nil
}

// priorSumTolerance bounds how far a caller-supplied Params.Priors may drift
// from summing to one before PartialFit rejects it.
const priorSumTolerance = 1e-6

// validatePriors enforces ErrPriorMismatch's documented contract: priors
// must assign a probability to every class present in byClass, and those
// probabilities must sum to one.
func validatePriors[A floatkind.Float](priors map[int]A, byClass map[int]*classInfo[A]) error {
	var sum float64
	for class := range byClass {
		p, ok := priors[class]
		if !ok {
			return ErrPriorMismatch
		}
		sum += float64(p)
	}
	if sum < 1-priorSumTolerance || sum > 1+priorSumTolerance {
		return ErrPriorMismatch
	}
	return nil
}

// mergeMeanVariance applies the Welford-style batch merge described in
// SPEC_FULL.md: if oldCount is zero the new statistics pass through
// untouched; if newCount is zero the old ones are kept as-is.
func mergeMeanVariance[A floatkind.Float](oldCount int, oldMean, oldVar []A, newCount int, newMean, newVar []A, cols int) ([]A, []A) {
	if oldCount == 0 {
		return newMean, newVar
	}
	if newCount == 0 {
		return oldMean, oldVar
	}

	total := oldCount + newCount
	totalA := floatkind.FromInt[A](total)
	oldCountA := floatkind.FromInt[A](oldCount)
	newCountA := floatkind.FromInt[A](newCount)

	mean := make([]A, cols)
	variance := make([]A, cols)
	for f := 0; f < cols; f++ {
		mean[f] = (oldCountA*oldMean[f] + newCountA*newMean[f]) / totalA
		delta := oldMean[f] - newMean[f]
		ssd := oldCountA*oldVar[f] + newCountA*newVar[f] + (newCountA*oldCountA/totalA)*floatkind.Powi(delta, 2)
		variance[f] = ssd / totalA
	}
	return mean, variance
}

// meanVariance computes the population (not sample) mean and variance of
// records restricted to rowIdx, column by column.
func meanVariance[A floatkind.Float](records *mat.Dense, rowIdx []int, cols int) ([]A, []A) {
	n := floatkind.FromInt[A](len(rowIdx))
	mean := make([]A, cols)
	variance := make([]A, cols)

	for f := 0; f < cols; f++ {
		var sum A
		for _, r := range rowIdx {
			sum += A(records.At(r, f))
		}
		mean[f] = sum / n
	}
	for f := 0; f < cols; f++ {
		var ss A
		for _, r := range rowIdx {
			d := A(records.At(r, f)) - mean[f]
			ss += d * d
		}
		variance[f] = ss / n
	}
	return mean, variance
}

// maxBatchVariance computes the largest per-feature population variance
// over the whole batch, regardless of class; this is the quantity
// var_smoothing scales to produce epsilon.
func maxBatchVariance[A floatkind.Float](records *mat.Dense) A {
	rows, cols := records.Dims()
	allRows := make([]int, rows)
	for i := range allRows {
		allRows[i] = i
	}
	_, variance := meanVariance[A](records, allRows, cols)

	var maxVar A
	for i, v := range variance {
		if i == 0 || v > maxVar {
			maxVar = v
		}
	}
	return maxVar
}
