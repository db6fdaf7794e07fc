package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/go-ml-lab/svmkit/dataset"
)

// csvDataset is one parsed input file: feature columns plus a trailing
// integer label column, in file row order.
type csvDataset struct {
	path    string
	records [][]float64
	labels  []int
}

// loadCSVFiles reads every path concurrently — pure I/O fan-out, no
// shared mutable state between goroutines — and returns results in the
// same order paths were given, once every read has completed.
func loadCSVFiles(paths []string) ([]csvDataset, error) {
	out := make([]csvDataset, len(paths))

	g, _ := errgroup.WithContext(context.Background())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			ds, err := loadCSVFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadCSVFile(path string) (csvDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return csvDataset{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return csvDataset{}, err
	}
	if len(rows) == 0 {
		return csvDataset{}, fmt.Errorf("empty CSV")
	}

	ds := csvDataset{path: path, records: make([][]float64, len(rows)), labels: make([]int, len(rows))}
	for i, row := range rows {
		if len(row) < 2 {
			return csvDataset{}, fmt.Errorf("row %d: need at least one feature and a label column", i)
		}
		features := make([]float64, len(row)-1)
		for j, cell := range row[:len(row)-1] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return csvDataset{}, fmt.Errorf("row %d col %d: %w", i, j, err)
			}
			features[j] = v
		}
		label, err := strconv.Atoi(row[len(row)-1])
		if err != nil {
			return csvDataset{}, fmt.Errorf("row %d label: %w", i, err)
		}
		ds.records[i] = features
		ds.labels[i] = label
	}
	return ds, nil
}

// concatMatrix flattens one or more csvDataset into a single dataset.Dataset.
func concatMatrix(sets []csvDataset) (dataset.Dataset, error) {
	var rows int
	cols := -1
	for _, s := range sets {
		rows += len(s.records)
		for _, rec := range s.records {
			if cols == -1 {
				cols = len(rec)
			} else if len(rec) != cols {
				return dataset.Dataset{}, fmt.Errorf("%s: inconsistent feature count %d (want %d)", s.path, len(rec), cols)
			}
		}
	}
	if rows == 0 || cols <= 0 {
		return dataset.Dataset{}, fmt.Errorf("no usable rows across %d file(s)", len(sets))
	}

	data := make([]float64, 0, rows*cols)
	labels := make([]int, 0, rows)
	for _, s := range sets {
		for _, rec := range s.records {
			data = append(data, rec...)
		}
		labels = append(labels, s.labels...)
	}
	return dataset.New(mat.NewDense(rows, cols, data), labels)
}
