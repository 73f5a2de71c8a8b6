// Package dataset loads labeled tabular data from delimited text files and
// writes prepared copies back out.
//
// A Dataset is built once per run and never mutated: transformations return
// new matrices and subsets return new Datasets.
package dataset

import (
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Record is one line of input: numeric features plus a categorical label.
type Record struct {
	Features []float64
	Label    string
}

// Dataset is an immutable, non-empty set of Records with a uniform feature width.
type Dataset struct {
	records   []Record
	nFeatures int
}

// NewDataset validates records and wraps them. The slice is copied.
func NewDataset(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.NewDataset")
	}
	width := len(records[0].Features)
	for i, r := range records {
		if len(r.Features) != width {
			return nil, errors.Wrapf(errors.NewDimensionError("dataset.NewDataset", width, len(r.Features), 1),
				"record %d", i)
		}
	}
	return &Dataset{
		records:   append([]Record(nil), records...),
		nFeatures: width,
	}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// NumFeatures returns the feature-vector length shared by every record.
func (d *Dataset) NumFeatures() int { return d.nFeatures }

// Record returns a copy of the i-th record.
func (d *Dataset) Record(i int) Record {
	r := d.records[i]
	features := make([]float64, len(r.Features))
	copy(features, r.Features)
	return Record{Features: features, Label: r.Label}
}

// Labels returns a copy of the labels in record order.
func (d *Dataset) Labels() []string {
	labels := make([]string, len(d.records))
	for i, r := range d.records {
		labels[i] = r.Label
	}
	return labels
}

// Features returns a Len() x NumFeatures() copy of the feature values.
// A dataset without feature columns yields nil.
func (d *Dataset) Features() *mat.Dense {
	if d.nFeatures == 0 {
		return nil
	}
	X := mat.NewDense(len(d.records), d.nFeatures, nil)
	for i, r := range d.records {
		X.SetRow(i, r.Features)
	}
	return X
}

// Subset returns a new Dataset holding the records at indices, in that order.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	out := make([]Record, len(indices))
	for k, i := range indices {
		if i < 0 || i >= len(d.records) {
			return nil, errors.NewValidationError("indices", "index out of range", i)
		}
		out[k] = d.records[i]
	}
	return NewDataset(out)
}
