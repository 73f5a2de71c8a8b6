package plotting

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/plot/plotter"
)

// ReadColumn reads the first field of every row as a float.
func ReadColumn(r io.Reader) ([]float64, error) {
	var values []float64
	err := readRows(r, 1, func(fields []float64) {
		values = append(values, fields[0])
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// ReadXY reads "x,y" rows.
func ReadXY(r io.Reader) (plotter.XYs, error) {
	var xys plotter.XYs
	err := readRows(r, 2, func(fields []float64) {
		xys = append(xys, plotter.XY{X: fields[0], Y: fields[1]})
	})
	if err != nil {
		return nil, err
	}
	return xys, nil
}

// ReadXYFile opens path and reads it with ReadXY.
func ReadXYFile(path string) (plotter.XYs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ReadXY(f)
}

// ReadColumnFile opens path and reads it with ReadColumn.
func ReadColumnFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ReadColumn(f)
}

func readRows(r io.Reader, width int, emit func([]float64)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	values := make([]float64, width)
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "read row %d", row)
		}
		if len(fields) < width {
			return errors.NewColumnRangeError(row, width-1, len(fields))
		}
		for col := 0; col < width; col++ {
			field := strings.TrimSpace(fields[col])
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return errors.NewParseError(row, col, field, err)
			}
			values[col] = v
		}
		emit(values)
	}
}

func mkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}
	return nil
}
