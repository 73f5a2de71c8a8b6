package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/schollz/progressbar/v3"
)

// LoadFile opens path and loads it with Load. When WithProgress is given
// with an unknown size, the file size is used.
func LoadFile(path string, labelColumn int, opts ...LoadOption) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	ds, err := Load(f, labelColumn, fileOptions(f, path, opts)...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return ds, nil
}

// fileOptions fills in the progress size and a path-tagged logger when the
// caller left them unset.
func fileOptions(f *os.File, path string, opts []LoadOption) []LoadOption {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.progress != nil && cfg.progressSize < 0 {
		if st, err := f.Stat(); err == nil {
			opts = append(opts, WithProgress(cfg.progress, st.Size(), cfg.progressLabel))
		}
	}
	if cfg.logger == nil {
		opts = append(opts, WithLogger(log.GetLoggerWithName("dataset").With(log.PathKey, path)))
	}
	return opts
}

// Load reads delimited rows from r. Column labelColumn holds the label; every
// other column must parse as a finite float64.
//
// Rows are numbered from 1 in errors. Failures are:
//   - *errors.ColumnRangeError when a row has no field at labelColumn
//   - *errors.ParseError for a non-numeric or non-finite feature field
//   - *errors.DimensionError when a row's feature count differs from the first row
//   - errors.ErrEmptyData when r has no rows
func Load(r io.Reader, labelColumn int, opts ...LoadOption) (*Dataset, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("dataset")
	}
	if labelColumn < 0 {
		return nil, errors.NewValidationError("label_column", "must be non-negative", labelColumn)
	}

	var bar *progressbar.ProgressBar
	if cfg.progress != nil {
		bar = newProgressBar(cfg)
		r = io.TeeReader(r, bar)
	}

	start := time.Now()
	reader := newCSVReader(r, cfg)

	var records []Record
	width := -1
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read row %d", row)
		}

		rec, err := parseRecord(fields, row, labelColumn, cfg.trimSpace)
		if err != nil {
			return nil, err
		}
		if width < 0 {
			width = len(rec.Features)
		} else if len(rec.Features) != width {
			return nil, errors.Wrapf(errors.NewDimensionError("dataset.Load", width, len(rec.Features), 1),
				"row %d", row)
		}
		records = append(records, rec)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.Load")
	}

	ds, err := NewDataset(records)
	if err != nil {
		return nil, err
	}
	logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, ds.NumFeatures(),
		log.LabelColumnKey, labelColumn,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return ds, nil
}

func parseRecord(fields []string, row, labelColumn int, trim bool) (Record, error) {
	if labelColumn >= len(fields) {
		return Record{}, errors.NewColumnRangeError(row, labelColumn, len(fields))
	}

	features := make([]float64, 0, len(fields)-1)
	for col, field := range fields {
		if trim {
			field = strings.TrimSpace(field)
		}
		if col == labelColumn {
			continue
		}
		v, err := parseFloat(field, row, col)
		if err != nil {
			return Record{}, err
		}
		features = append(features, v)
	}

	label := fields[labelColumn]
	if trim {
		label = strings.TrimSpace(label)
	}
	return Record{Features: features, Label: label}, nil
}

// parseFloat parses a finite float64 field. row and col locate it in errors.
func parseFloat(field string, row, col int) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, errors.NewParseError(row, col, field, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.NewParseError(row, col, field, errors.New("non-finite value"))
	}
	return v, nil
}

func newCSVReader(r io.Reader, cfg *loadConfig) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = cfg.comma
	reader.Comment = cfg.comment
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true
	return reader
}

func newProgressBar(cfg *loadConfig) *progressbar.ProgressBar {
	desc := cfg.progressLabel
	if desc == "" {
		desc = "loading"
	}
	return progressbar.NewOptions64(cfg.progressSize,
		progressbar.OptionSetWriter(cfg.progress),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(cfg.progress, "\n")
		}),
	)
}
