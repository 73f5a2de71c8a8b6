package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/YuminosukeSato/dataprep/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// WriteEncoded writes feature rows followed by their one-hot label vector.
//
// The header row has one empty cell per feature column and then the sorted
// class names, so a reader can recover the label order. rows selects which
// rows of X and labels to write, in order; nil writes all of them. X may be
// nil when there are no feature columns.
func WriteEncoded(w io.Writer, X mat.Matrix, labels []string, enc *preprocessing.OneHotEncoder, rows []int) error {
	if enc == nil || !enc.IsFitted() {
		return errors.NewNotFittedError("OneHotEncoder", "WriteEncoded")
	}
	cols, err := checkShape(X, labels)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := make([]string, cols, cols+enc.NClasses())
	header = append(header, enc.Classes()...)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}

	record := make([]string, cols+enc.NClasses())
	for _, i := range selectRows(rows, len(labels)) {
		if i < 0 || i >= len(labels) {
			return errors.NewValidationError("rows", "index out of range", i)
		}
		formatRow(record[:cols], X, i)
		vec, err := enc.Vector(labels[i])
		if err != nil {
			return err
		}
		for k, v := range vec {
			record[cols+k] = formatFloat(v)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush")
}

// WriteLabeled writes feature rows followed by the raw label, without a header.
// rows behaves as in WriteEncoded.
func WriteLabeled(w io.Writer, X mat.Matrix, labels []string, rows []int) error {
	cols, err := checkShape(X, labels)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	record := make([]string, cols+1)
	for _, i := range selectRows(rows, len(labels)) {
		if i < 0 || i >= len(labels) {
			return errors.NewValidationError("rows", "index out of range", i)
		}
		formatRow(record[:cols], X, i)
		record[cols] = labels[i]
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush")
}

// SplitPaths derives the training and testing file names for path:
// "data/iris.csv" becomes "data/iris-train.csv" and "data/iris-test.csv".
func SplitPaths(path string) (train, test string) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + "-train" + ext, base + "-test" + ext
}

// CreateFile creates path, making parent directories as needed.
func CreateFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create directory %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	return f, nil
}

// WriteFile creates path and hands it to write, closing it afterwards.
func WriteFile(path string, write func(w io.Writer) error) (err error) {
	f, err := CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	if err := write(f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

func checkShape(X mat.Matrix, labels []string) (int, error) {
	if X == nil {
		return 0, nil
	}
	if d, ok := X.(*mat.Dense); ok && d == nil {
		return 0, nil
	}
	r, c := X.Dims()
	if r != len(labels) {
		return 0, errors.NewDimensionError("dataset.Write", r, len(labels), 0)
	}
	return c, nil
}

func selectRows(rows []int, n int) []int {
	if rows != nil {
		return rows
	}
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	return all
}

func formatRow(dst []string, X mat.Matrix, i int) {
	for j := range dst {
		dst[j] = formatFloat(X.At(i, j))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
