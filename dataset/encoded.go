package dataset

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/mat"
)

// Encoded is a file produced by WriteEncoded, read back into matrices.
type Encoded struct {
	// Classes are the header's class names, in column order.
	Classes []string
	// Features is Len() x the number of empty header cells.
	Features *mat.Dense
	// Targets is Len() x len(Classes), usually one-hot.
	Targets *mat.Dense
}

// Len returns the number of data rows.
func (e *Encoded) Len() int {
	r, _ := e.Features.Dims()
	return r
}

// NumFeatures returns the number of feature columns.
func (e *Encoded) NumFeatures() int {
	_, c := e.Features.Dims()
	return c
}

// LoadEncodedFile opens path and reads it with LoadEncoded.
func LoadEncodedFile(path string, opts ...LoadOption) (*Encoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	enc, err := LoadEncoded(f, fileOptions(f, path, opts)...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return enc, nil
}

// LoadEncoded reads the header and rows written by WriteEncoded. The header
// holds one empty cell per feature column followed by the class names.
//
// The header must have at least one feature cell and one class name, and
// no empty name among the classes. Row widths must match the header. A header with no rows yields
// errors.ErrEmptyData.
func LoadEncoded(r io.Reader, opts ...LoadOption) (*Encoded, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("dataset")
	}

	var bar *progressbar.ProgressBar
	if cfg.progress != nil {
		bar = newProgressBar(cfg)
		r = io.TeeReader(r, bar)
	}

	start := time.Now()
	reader := newCSVReader(r, cfg)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.LoadEncoded")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	nFeatures, classes, err := parseEncodedHeader(header, cfg.trimSpace)
	if err != nil {
		return nil, err
	}
	width := nFeatures + len(classes)

	var features, targets []float64
	n := 0
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read row %d", row)
		}
		if len(fields) != width {
			return nil, errors.Wrapf(errors.NewDimensionError("dataset.LoadEncoded", width, len(fields), 1),
				"row %d", row)
		}
		for col, field := range fields {
			if cfg.trimSpace {
				field = strings.TrimSpace(field)
			}
			v, err := parseFloat(field, row, col)
			if err != nil {
				return nil, err
			}
			if col < nFeatures {
				features = append(features, v)
			} else {
				targets = append(targets, v)
			}
		}
		n++
	}
	if bar != nil {
		_ = bar.Finish()
	}
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.LoadEncoded")
	}

	enc := &Encoded{
		Classes:  classes,
		Features: mat.NewDense(n, nFeatures, features),
		Targets:  mat.NewDense(n, len(classes), targets),
	}
	logger.Info("Encoded dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey, n,
		log.FeaturesKey, nFeatures,
		log.ClassesKey, len(classes),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return enc, nil
}

func parseEncodedHeader(header []string, trim bool) (int, []string, error) {
	nFeatures := 0
	for nFeatures < len(header) && cell(header[nFeatures], trim) == "" {
		nFeatures++
	}
	if nFeatures == 0 {
		return 0, nil, errors.Wrap(errors.Newf("header starts with class name %q, want an empty cell per feature", header[0]),
			"dataset.LoadEncoded")
	}
	if nFeatures == len(header) {
		return 0, nil, errors.Wrap(errors.Newf("header has %d empty cells and no class names", len(header)),
			"dataset.LoadEncoded")
	}
	classes := make([]string, 0, len(header)-nFeatures)
	for col := nFeatures; col < len(header); col++ {
		name := cell(header[col], trim)
		if name == "" {
			return 0, nil, errors.Wrap(errors.Newf("empty class name in header column %d", col),
				"dataset.LoadEncoded")
		}
		classes = append(classes, name)
	}
	return nFeatures, classes, nil
}

func cell(field string, trim bool) string {
	if trim {
		return strings.TrimSpace(field)
	}
	return field
}
