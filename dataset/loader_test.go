package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iris = `5.1,3.5,1.4,0.2,Iris-setosa
4.9,3.0,1.4,0.2,Iris-setosa
7.0,3.2,4.7,1.4,Iris-versicolor
6.3,3.3,6.0,2.5,Iris-virginica
`

func TestLoad(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)

	ds, err := Load(strings.NewReader(iris), 4, WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 4, ds.NumFeatures())
	assert.Equal(t, Record{Features: []float64{7.0, 3.2, 4.7, 1.4}, Label: "Iris-versicolor"}, ds.Record(2))

	assert.True(t, logger.ContainsMessage("Dataset loaded"))
	assert.True(t, logger.ContainsField(log.SamplesKey, float64(4)))
}

func TestLoadLabelColumnPosition(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		labelColumn int
		want        []Record
	}{
		{
			name:        "first column",
			input:       "a,1,2\nb,3,4\n",
			labelColumn: 0,
			want: []Record{
				{Features: []float64{1, 2}, Label: "a"},
				{Features: []float64{3, 4}, Label: "b"},
			},
		},
		{
			name:        "middle column",
			input:       "1,a,2\n3,b,4\n",
			labelColumn: 1,
			want: []Record{
				{Features: []float64{1, 2}, Label: "a"},
				{Features: []float64{3, 4}, Label: "b"},
			},
		},
		{
			name:        "label only",
			input:       "x\ny\n",
			labelColumn: 0,
			want: []Record{
				{Features: []float64{}, Label: "x"},
				{Features: []float64{}, Label: "y"},
			},
		},
		{
			name:        "surrounding spaces",
			input:       " 1 , 2 , a \n",
			labelColumn: 2,
			want: []Record{
				{Features: []float64{1, 2}, Label: "a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := log.NewTestLogger(log.LevelInfo)
			ds, err := Load(strings.NewReader(tt.input), tt.labelColumn, WithLogger(logger))
			require.NoError(t, err)
			require.Equal(t, len(tt.want), ds.Len())
			for i, want := range tt.want {
				assert.Equal(t, want, ds.Record(i))
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		labelColumn int
		check       func(t *testing.T, err error)
	}{
		{
			name:        "non-numeric feature",
			input:       "1,2,a\n3,x,b\n",
			labelColumn: 2,
			check: func(t *testing.T, err error) {
				var pe *errors.ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, 2, pe.Row)
				assert.Equal(t, 1, pe.Column)
				assert.Equal(t, "x", pe.Value)
			},
		},
		{
			name:        "non-finite feature",
			input:       "1,NaN,a\n",
			labelColumn: 2,
			check: func(t *testing.T, err error) {
				var pe *errors.ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, 1, pe.Row)
			},
		},
		{
			name:        "label column out of range",
			input:       "1,2,a\n1,2\n",
			labelColumn: 2,
			check: func(t *testing.T, err error) {
				var ce *errors.ColumnRangeError
				require.True(t, errors.As(err, &ce))
				assert.Equal(t, 2, ce.Row)
				assert.Equal(t, 2, ce.Width)
			},
		},
		{
			name:        "ragged row",
			input:       "1,2,a\n1,2,3,b\n",
			labelColumn: 2,
			check: func(t *testing.T, err error) {
				var de *errors.DimensionError
				require.True(t, errors.As(err, &de))
			},
		},
		{
			name:        "empty input",
			input:       "",
			labelColumn: 0,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrEmptyData))
			},
		},
		{
			name:        "negative label column",
			input:       "1,a\n",
			labelColumn: -1,
			check: func(t *testing.T, err error) {
				var ve *errors.ValidationError
				require.True(t, errors.As(err, &ve))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := log.NewTestLogger(log.LevelInfo)
			_, err := Load(strings.NewReader(tt.input), tt.labelColumn, WithLogger(logger))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLoadOptions(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelInfo)
	input := "# header comment\n1;2;a\n3;4;b\n"

	var progress bytes.Buffer
	ds, err := Load(strings.NewReader(input), 2,
		WithComma(';'),
		WithComment('#'),
		WithProgress(&progress, int64(len(input)), "test"),
		WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"a", "b"}, ds.Labels())
}

func TestLoadEndOfInput(t *testing.T) {
	for _, input := range []string{iris, strings.TrimSuffix(iris, "\n")} {
		r := iotest.DataErrReader(iotest.HalfReader(strings.NewReader(input)))
		ds, err := Load(r, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, ds.Len())
		assert.Equal(t, "Iris-virginica", ds.Record(3).Label)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iris.csv")
	require.NoError(t, os.WriteFile(path, []byte(iris), 0o644))

	ds, err := LoadFile(path, 4, WithLogger(log.GetLoggerWithName("test")))
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), 0)
	assert.Error(t, err)
}
