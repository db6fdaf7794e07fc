package gnb

import "errors"

// ErrEmptyBatch is returned by Fit and PartialFit when called with zero
// rows: variance is undefined for an empty batch.
var ErrEmptyBatch = errors.New("gnb: cannot compute variance of an empty batch")

// ErrDimensionMismatch is returned when a dataset passed to PartialFit has
// a different feature count than the model was first fit with.
var ErrDimensionMismatch = errors.New("gnb: feature count does not match previous fit")

// ErrPriorMismatch is returned when Params.Priors is set but does not
// assign a probability to every class present in the data, or the
// assigned probabilities do not sum to one.
var ErrPriorMismatch = errors.New("gnb: priors do not match classes or do not sum to one")

// ErrNotFitted is returned by Predict when called on a model that has
// never seen data.
var ErrNotFitted = errors.New("gnb: model has not been fit")
