// Package dataprep prepares labeled tabular data sets for training small
// classifiers and regressors.
//
// It reads delimited files in which one column holds a class label and every
// other column a number, and produces encoded, rescaled and split copies.
//
// # Installation
//
// Install the command line tool with go install:
//
//	go install github.com/YuminosukeSato/dataprep/cmd/dataprep@latest
//
// # Quick Start
//
// Encode the iris data set, write min-max normalised and standardised copies
// and keep 75% of every class for training:
//
//	dataprep convert -i iris.csv -c 4 -o prepared/iris.csv \
//	    -n prepared/iris-normalised.csv -s prepared/iris-standardised.csv \
//	    -t 0.75 --seed 1
//
// The same steps as a library:
//
//	ds, err := dataset.LoadFile("iris.csv", 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ft, err := preprocessing.FitTransforms(ds.Features(), ds.Labels(), true, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	Xn, err := ft.Normalizer.Transform(ds.Features())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := split.Stratified(ds.Labels(), 0.75, split.WithSeed(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = dataset.WriteFile("iris-train.csv", func(w io.Writer) error {
//	    return dataset.WriteEncoded(w, Xn, ds.Labels(), ft.Encoder, res.Train)
//	})
//
// # Packages
//
//   - dataset: loading delimited files, writing encoded or labeled copies and
//     reading encoded files back
//   - preprocessing: column statistics, MinMaxScaler, StandardScaler, OneHotEncoder
//   - split: class-stratified training/testing split
//   - hog: histogram of oriented gradients descriptors for square images
//   - describe: summary tables built on gota data frames
//   - plotting: error histograms, training curves and function overlays
//   - metrics: regression error measures
//   - knn: k-nearest-neighbours baseline scored on encoded train/test files
//   - core/model: transformer interfaces, fitted state and gob persistence
//   - core/parallel: parallel processing utilities
//   - pkg/errors, pkg/log: error types, warnings and structured logging
//
// # Constant Columns
//
// A column whose range or sample standard deviation is below 1e-8 cannot be
// rescaled. Its divisor is replaced by 1 and a DegenerateColumnWarning is
// logged, so outputs never contain NaN or Inf.
package dataprep
