// Package dataset provides the minimal in-memory (records, labels)
// container that cmd/svmkit assembles and whose records and targets it
// hands to smo and gnb (neither package imports it). It does not load files, normalize
// features, or persist anything — dataset loading and model persistence
// are both explicitly out of scope for this module.
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dataset pairs a row-major record matrix with one integer class label
// per row.
type Dataset struct {
	records *mat.Dense
	targets []int
}

// New validates that records and targets agree on row count and returns
// a Dataset.
func New(records *mat.Dense, targets []int) (Dataset, error) {
	r, _ := records.Dims()
	if r != len(targets) {
		return Dataset{}, fmt.Errorf("dataset: %d records but %d targets", r, len(targets))
	}
	return Dataset{records: records, targets: targets}, nil
}

// Records returns the record matrix.
func (d Dataset) Records() *mat.Dense {
	return d.records
}

// Targets returns the per-row integer class labels.
func (d Dataset) Targets() []int {
	return d.targets
}

// Rows reports the number of samples in the dataset.
func (d Dataset) Rows() int {
	r, _ := d.records.Dims()
	return r
}

// Cols reports the number of features in the dataset.
func (d Dataset) Cols() int {
	_, c := d.records.Dims()
	return c
}
