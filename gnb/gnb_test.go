package gnb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/go-ml-lab/svmkit/gnb"
)

func twoClusters() (*mat.Dense, []int) {
	records := mat.NewDense(6, 2, []float64{
		-2, -1,
		-1, -1,
		-1, -2,
		1, 1,
		1, 2,
		2, 1,
	})
	targets := []int{1, 1, 1, 2, 2, 2}
	return records, targets
}

func TestFitPredictTwoClusters(t *testing.T) {
	records, targets := twoClusters()
	params := gnb.DefaultParams[float64]()

	model, err := gnb.Fit[float64](records, targets, params)
	require.NoError(t, err)

	labels, err := model.Predict(records)
	require.NoError(t, err)
	assert.Equal(t, targets, labels)

	jll, err := model.JointLogLikelihood(records)
	require.NoError(t, err)

	classIdx := 0
	for i, c := range model.Classes() {
		if c == 1 {
			classIdx = i
		}
	}
	expectedClass1 := []float64{-2.2769, -1.5269, -2.2769, -25.5269, -38.2769, -38.2769}
	for r, want := range expectedClass1 {
		assert.InDelta(t, want, jll[r][classIdx], 1e-2)
	}
}

func TestIncrementalMatchesBatch(t *testing.T) {
	records, targets := twoClusters()
	params := gnb.DefaultParams[float64]()

	batch, err := gnb.Fit[float64](records, targets, params)
	require.NoError(t, err)

	var incremental *gnb.Model[float64]
	for start := 0; start < 6; start += 2 {
		chunk := records.Slice(start, start+2, 0, 2).(*mat.Dense)
		incremental, err = incremental.PartialFit(chunk, targets[start:start+2], params)
		require.NoError(t, err)
	}

	batchLabels, err := batch.Predict(records)
	require.NoError(t, err)
	incLabels, err := incremental.Predict(records)
	require.NoError(t, err)
	assert.Equal(t, batchLabels, incLabels)

	batchJLL, err := batch.JointLogLikelihood(records)
	require.NoError(t, err)
	incJLL, err := incremental.JointLogLikelihood(records)
	require.NoError(t, err)
	for r := range batchJLL {
		for c := range batchJLL[r] {
			assert.InDelta(t, batchJLL[r][c], incJLL[r][c], 1e-6)
		}
	}
}

func TestPriorsSumToOne(t *testing.T) {
	records, targets := twoClusters()
	model, err := gnb.Fit[float64](records, targets, gnb.DefaultParams[float64]())
	require.NoError(t, err)

	var sum float64
	for _, c := range model.Classes() {
		p, ok := model.Prior(c)
		require.True(t, ok)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestFitRejectsEmptyDataset(t *testing.T) {
	records, _ := twoClusters()
	empty := records.Slice(0, 0, 0, 2).(*mat.Dense)
	_, err := gnb.Fit[float64](empty, nil, gnb.DefaultParams[float64]())
	assert.ErrorIs(t, err, gnb.ErrEmptyBatch)
}

func TestFitRejectsMismatchedTargets(t *testing.T) {
	records, targets := twoClusters()
	_, err := gnb.Fit[float64](records, targets[:3], gnb.DefaultParams[float64]())
	assert.ErrorIs(t, err, gnb.ErrDimensionMismatch)
}

func TestFitAcceptsValidFixedPriors(t *testing.T) {
	records, targets := twoClusters()
	params := gnb.DefaultParams[float64]()
	params.Priors = map[int]float64{1: 0.25, 2: 0.75}

	model, err := gnb.Fit[float64](records, targets, params)
	require.NoError(t, err)

	p1, ok := model.Prior(1)
	require.True(t, ok)
	assert.InDelta(t, 0.25, p1, 1e-12)

	p2, ok := model.Prior(2)
	require.True(t, ok)
	assert.InDelta(t, 0.75, p2, 1e-12)
}

func TestFitRejectsPriorsMissingAClass(t *testing.T) {
	records, targets := twoClusters()
	params := gnb.DefaultParams[float64]()
	params.Priors = map[int]float64{1: 1.0} // class 2 is present in targets but unassigned

	_, err := gnb.Fit[float64](records, targets, params)
	assert.ErrorIs(t, err, gnb.ErrPriorMismatch)
}

func TestFitRejectsPriorsNotSummingToOne(t *testing.T) {
	records, targets := twoClusters()
	params := gnb.DefaultParams[float64]()
	params.Priors = map[int]float64{1: 0.5, 2: 0.6}

	_, err := gnb.Fit[float64](records, targets, params)
	assert.ErrorIs(t, err, gnb.ErrPriorMismatch)
}
