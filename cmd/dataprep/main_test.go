package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/YuminosukeSato/dataprep/pkg/log"
	"github.com/YuminosukeSato/dataprep/preprocessing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const irisSample = `5.1,3.5,1.4,0.2,Iris-setosa
4.9,3.0,1.4,0.2,Iris-setosa
4.7,3.2,1.3,0.2,Iris-setosa
4.6,3.1,1.5,0.2,Iris-setosa
7.0,3.2,4.7,1.4,Iris-versicolor
6.4,3.2,4.5,1.5,Iris-versicolor
6.9,3.1,4.9,1.5,Iris-versicolor
5.5,2.3,4.0,1.3,Iris-versicolor
6.3,3.3,6.0,2.5,Iris-virginica
5.8,2.7,5.1,1.9,Iris-virginica
7.1,3.0,5.9,2.1,Iris-virginica
6.3,2.9,5.6,1.8,Iris-virginica
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"dataprep"}, args...))
	return stdout.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestConvert(t *testing.T) {
	input := writeInput(t, "iris.csv", irisSample)
	out := filepath.Join(t.TempDir(), "prepared", "iris.csv")
	normalised := filepath.Join(filepath.Dir(out), "iris-normalised.csv")

	_, err := run(t, "convert", "-i", input, "-c", "4", "-o", out, "-n", normalised)
	require.NoError(t, err)

	records := readCSV(t, out)
	require.Len(t, records, 13)
	assert.Equal(t, []string{"", "", "", "", "Iris-setosa", "Iris-versicolor", "Iris-virginica"}, records[0])
	assert.Equal(t, []string{"5.1", "3.5", "1.4", "0.2", "1", "0", "0"}, records[1])
	assert.Equal(t, []string{"6.3", "2.9", "5.6", "1.8", "0", "0", "1"}, records[12])

	for _, row := range readCSV(t, normalised)[1:] {
		for _, field := range row[:4] {
			v, err := strconv.ParseFloat(field, 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestConvertWithSplit(t *testing.T) {
	input := writeInput(t, "iris.csv", irisSample)
	dir := t.TempDir()
	out := filepath.Join(dir, "iris.csv")
	standardised := filepath.Join(dir, "iris-standardised.csv")
	stats := filepath.Join(dir, "iris.gob")

	_, err := run(t, "convert", "-i", input, "-c", "4", "-o", out, "-s", standardised,
		"-t", "0.75", "--seed", "3", "--stats-file", stats)
	require.NoError(t, err)

	train := readCSV(t, filepath.Join(dir, "iris-train.csv"))
	test := readCSV(t, filepath.Join(dir, "iris-test.csv"))
	assert.Len(t, train, 1+9)
	assert.Len(t, test, 1+3)

	// the standardised files use the same row assignment
	sTrain := readCSV(t, filepath.Join(dir, "iris-standardised-train.csv"))
	require.Len(t, sTrain, len(train))
	for i := 1; i < len(train); i++ {
		assert.Equal(t, train[i][4:], sTrain[i][4:], "row %d", i)
	}

	ft, err := preprocessing.LoadFittedTransforms(stats)
	require.NoError(t, err)
	assert.Equal(t, []string{"Iris-setosa", "Iris-versicolor", "Iris-virginica"}, ft.Encoder.Classes())
	assert.NotNil(t, ft.Standardizer)
	assert.Nil(t, ft.Normalizer)
}

func TestDivide(t *testing.T) {
	input := writeInput(t, "small.csv", "1,2,a\n3,4,b\n5,6,a\n")
	out := filepath.Join(t.TempDir(), "small.csv")

	_, err := run(t, "divide", "-i", input, "-c", "2", "-o", out, "-t", "0.5", "--seed", "11")
	require.NoError(t, err)

	train := readCSV(t, filepath.Join(filepath.Dir(out), "small-train.csv"))
	test := readCSV(t, filepath.Join(filepath.Dir(out), "small-test.csv"))
	require.Len(t, train, 2)
	require.Len(t, test, 1)
	assert.Equal(t, "a", train[0][2])
	assert.Equal(t, []string{"3", "4", "b"}, train[1])
	assert.Equal(t, "a", test[0][2])
	assert.NotEqual(t, train[0], test[0])
}

func TestDivideLabelOnly(t *testing.T) {
	input := writeInput(t, "labels.csv", "a\nb\na\nb\n")
	out := filepath.Join(t.TempDir(), "labels.csv")

	_, err := run(t, "divide", "-i", input, "-c", "0", "-o", out, "-t", "0.5", "--seed", "1")
	require.NoError(t, err)

	train := readCSV(t, filepath.Join(filepath.Dir(out), "labels-train.csv"))
	test := readCSV(t, filepath.Join(filepath.Dir(out), "labels-test.csv"))
	assert.Equal(t, [][]string{{"a"}, {"b"}}, train)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, test)
}

func TestHog(t *testing.T) {
	var sb strings.Builder
	for row, label := range []string{"7", "3"} {
		sb.WriteString(label)
		for i := 0; i < 28*28; i++ {
			fmt.Fprintf(&sb, ",%d", (i*(row+1))%256)
		}
		sb.WriteString("\n")
	}
	input := writeInput(t, "digits.csv", sb.String())
	out := filepath.Join(t.TempDir(), "digits-hog.csv")

	_, err := run(t, "hog", "-i", input, "-c", "0", "-o", out, "-b", "8")
	require.NoError(t, err)

	records := readCSV(t, out)
	require.Len(t, records, 3)
	require.Len(t, records[0], 288+2)
	assert.Equal(t, []string{"3", "7"}, records[0][288:])
	assert.Equal(t, []string{"0", "1"}, records[1][288:])
}

func TestDescribe(t *testing.T) {
	input := writeInput(t, "iris.csv", irisSample)

	stdout, err := run(t, "describe", "-i", input, "-c", "4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "12 records, 4 features")
	assert.Contains(t, stdout, "Iris-versicolor")
}

func TestKNN(t *testing.T) {
	input := writeInput(t, "iris.csv", irisSample)
	dir := t.TempDir()
	out := filepath.Join(dir, "iris.csv")
	normalised := filepath.Join(dir, "iris-normalised.csv")

	_, err := run(t, "convert", "-i", input, "-c", "4", "-o", out, "-n", normalised, "-t", "0.75", "--seed", "5")
	require.NoError(t, err)

	costs := filepath.Join(dir, "knn-costs.csv")
	_, err = run(t, "knn",
		"--train", filepath.Join(dir, "iris-normalised-train.csv"),
		"--test", filepath.Join(dir, "iris-normalised-test.csv"),
		"-k", "1", "--costs-file", costs)
	require.NoError(t, err)

	// with one neighbour the output is a one-hot row, so each cost is 0 or 2
	rows := readCSV(t, costs)
	require.Len(t, rows, 3)
	for _, row := range rows {
		v, err := strconv.ParseFloat(row[0], 64)
		require.NoError(t, err)
		assert.Contains(t, []float64{0, 2}, v)
	}

	_, err = run(t, "plot", "histogram", "-i", costs)
	require.NoError(t, err)
}

func TestKNNErrors(t *testing.T) {
	train := writeInput(t, "train.csv", ",a,b\n0,1,0\n1,0,1\n")

	tests := []struct {
		name  string
		test  string
		k     string
		check func(t *testing.T, err error)
	}{
		{
			name: "different classes",
			test: ",a,c\n0,1,0\n",
			k:    "1",
			check: func(t *testing.T, err error) {
				var ve *errors.ValidationError
				require.True(t, errors.As(err, &ve), "got %v", err)
				assert.Equal(t, "c", ve.Value)
			},
		},
		{
			name: "more classes",
			test: ",a,b,c\n0,1,0,0\n",
			k:    "1",
			check: func(t *testing.T, err error) {
				var de *errors.DimensionError
				require.True(t, errors.As(err, &de), "got %v", err)
			},
		},
		{
			name: "k above training size",
			test: ",a,b\n0,1,0\n",
			k:    "3",
			check: func(t *testing.T, err error) {
				var ve *errors.ValidationError
				require.True(t, errors.As(err, &ve), "got %v", err)
				assert.Equal(t, "k", ve.ParamName)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test := writeInput(t, "test.csv", tt.test)
			_, err := run(t, "knn", "--train", train, "--test", test, "-k", tt.k)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestPlotHistogram(t *testing.T) {
	input := writeInput(t, "errors.csv", "0.1\n0.4\n0.35\n0.8\n0.05\n")

	_, err := run(t, "plot", "histogram", "-i", input)
	require.NoError(t, err)

	st, err := os.Stat(input + ".png")
	require.NoError(t, err)
	assert.Positive(t, st.Size())
}

func TestErrors(t *testing.T) {
	bad := writeInput(t, "bad.csv", "1,x,a\n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"convert", "-i", filepath.Join(t.TempDir(), "none.csv"), "-c", "0", "-o", "out.csv"}},
		{"malformed input", []string{"convert", "-i", bad, "-c", "2", "-o", filepath.Join(t.TempDir(), "out.csv")}},
		{"missing required flag", []string{"divide", "-i", bad, "-c", "2", "-o", "out.csv"}},
		{"proportion out of range", []string{"divide", "-i", writeInput(t, "ok.csv", "1,a\n"), "-c", "1", "-o", filepath.Join(t.TempDir(), "o.csv"), "-t", "2"}},
		{"invalid log level", []string{"--log-level", "loud", "describe", "-i", bad, "-c", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestTransformOutput(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{1, 3})

	scaler := preprocessing.NewStandardScaler()
	_, err := transformOutput("unused.csv", scaler, X)
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf), "got %v", err)

	require.NoError(t, scaler.Fit(X))
	out, err := transformOutput("scaled.csv", scaler, X)
	require.NoError(t, err)
	assert.Equal(t, "scaled.csv", out.path)
	assert.InDelta(t, -out.X.At(0, 0), out.X.At(1, 0), 1e-12)
}

func TestFailureAttrs(t *testing.T) {
	input := writeInput(t, "bad.csv", "1,2,a\n3,x,b\n")
	_, err := run(t, "describe", "-i", input, "-c", "2")
	require.Error(t, err)

	attrs := failureAttrs(err)
	require.Len(t, attrs, 5)
	assert.Equal(t, log.RowKey, attrs[1])
	assert.Equal(t, 2, attrs[2])
	assert.Equal(t, log.ColumnKey, attrs[3])
	assert.Equal(t, 1, attrs[4])

	assert.Len(t, failureAttrs(errors.New("plain")), 1)
}

func TestPlotCurveAndFunction(t *testing.T) {
	dir := t.TempDir()
	cost := filepath.Join(dir, "cost.csv")
	require.NoError(t, os.WriteFile(cost, []byte("1,0.9\n2,0.4\n3,0.2\n"), 0o644))

	_, err := run(t, "plot", "curve", "-i", cost, "--y-label", "Cost")
	require.NoError(t, err)
	assert.FileExists(t, cost+".png")

	var actual, net strings.Builder
	for i := 0; i < 40; i++ {
		x := float64(i) / 10
		fmt.Fprintf(&actual, "%g,%g\n", x, x*x)
		fmt.Fprintf(&net, "%g,%g\n", x, x*x+0.01*float64(i%5))
	}
	actualPath := filepath.Join(dir, "square.actual")
	netPath := filepath.Join(dir, "square.net")
	require.NoError(t, os.WriteFile(actualPath, []byte(actual.String()), 0o644))
	require.NoError(t, os.WriteFile(netPath, []byte(net.String()), 0o644))

	out := filepath.Join(dir, "plots", "square.svg")
	_, err = run(t, "plot", "function", "--actual", actualPath, "--net", netPath, "-o", out, "--name", "x^2")
	require.NoError(t, err)
	assert.FileExists(t, out)

	_, err = run(t, "plot", "function", "--actual", actualPath, "--net", cost)
	assert.Error(t, err, "mismatched point counts")
}
