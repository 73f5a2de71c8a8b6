package preprocessing

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/dataprep/core/model"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	_ model.InverseTransformer = (*StandardScaler)(nil)
	_ model.InverseTransformer = (*MinMaxScaler)(nil)
)

// collectWarnings はテスト中に発生した警告を集める
func collectWarnings(t *testing.T) *[]error {
	t.Helper()
	var got []error
	errors.SetWarningHandler(func(w error) { got = append(got, w) })
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })
	return &got
}

func TestMinMaxScalerRange(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
	})

	scaler := NewMinMaxScalerDefault()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	want := []float64{0, 0, 0.5, 0.5, 1, 1}
	r, c := Xs.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			got := Xs.At(i, j)
			if math.Abs(got-want[i*c+j]) > 1e-12 {
				t.Errorf("Xs[%d,%d] = %v, want %v", i, j, got, want[i*c+j])
			}
			if got < 0 || got > 1 {
				t.Errorf("Xs[%d,%d] = %v outside [0,1]", i, j, got)
			}
		}
	}

	back, err := scaler.InverseTransform(Xs)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	if !mat.EqualApprox(back, X, 1e-12) {
		t.Errorf("InverseTransform() = %v, want %v", mat.Formatted(back), mat.Formatted(X))
	}
}

func TestMinMaxScalerConstantColumn(t *testing.T) {
	warnings := collectWarnings(t)
	X := mat.NewDense(3, 2, []float64{
		1, 7,
		2, 7,
		3, 7,
	})

	Xs, err := NewMinMaxScalerDefault().FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if v := Xs.At(i, 1); v != 0 {
			t.Errorf("constant column value = %v, want 0", v)
		}
	}
	if len(*warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(*warnings))
	}
	var w *errors.DegenerateColumnWarning
	if !errors.As((*warnings)[0], &w) || w.Column != 1 {
		t.Errorf("unexpected warning %v", (*warnings)[0])
	}
}

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})

	scaler := NewStandardScaler()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	sd := math.Sqrt(5.0 / 3.0)
	for i, v := range []float64{1, 2, 3, 4} {
		want := (v - 2.5) / sd
		if got := Xs.At(i, 0); math.Abs(got-want) > 1e-12 {
			t.Errorf("Xs[%d] = %v, want %v", i, got, want)
		}
	}

	back, err := scaler.InverseTransform(Xs)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.EqualApprox(back, X, 1e-12) {
		t.Error("InverseTransform() did not restore the input")
	}
}

func TestStandardScalerSingleSample(t *testing.T) {
	warnings := collectWarnings(t)

	Xs, err := NewStandardScaler().FitTransform(mat.NewDense(1, 2, []float64{3, 4}))
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if Xs.At(0, 0) != 0 || Xs.At(0, 1) != 0 {
		t.Errorf("single sample should standardize to 0, got %v", mat.Formatted(Xs))
	}
	if len(*warnings) != 2 {
		t.Errorf("got %d warnings, want 2", len(*warnings))
	}
}

func TestScalerErrors(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	_, err := NewStandardScaler().Transform(X)
	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFittedError, got %v", err)
	}

	mm := NewMinMaxScalerDefault()
	if err := mm.Fit(X); err != nil {
		t.Fatal(err)
	}
	_, err = mm.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	var dim *errors.DimensionError
	if !errors.As(err, &dim) {
		t.Errorf("expected DimensionError, got %v", err)
	}

	bad := NewMinMaxScaler([2]float64{1, 0})
	if err := bad.Fit(X); err == nil {
		t.Error("expected error for inverted feature range")
	}
}

func TestFitTransformsSaveLoad(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	labels := []string{"b", "a", "b"}

	ft, err := FitTransforms(X, labels, true, true)
	if err != nil {
		t.Fatalf("FitTransforms() error = %v", err)
	}

	path := t.TempDir() + "/stats.gob"
	if err := ft.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := LoadFittedTransforms(path)
	if err != nil {
		t.Fatalf("LoadFittedTransforms() error = %v", err)
	}

	want, _ := ft.Normalizer.Transform(X)
	got, err := loaded.Normalizer.Transform(X)
	if err != nil {
		t.Fatalf("loaded normalizer: %v", err)
	}
	if !mat.EqualApprox(got, want, 1e-12) {
		t.Error("loaded normalizer differs from the original")
	}
	if v, err := loaded.Encoder.Vector("b"); err != nil || v[1] != 1 {
		t.Errorf("loaded encoder Vector(b) = %v, %v", v, err)
	}
	if loaded.Standardizer == nil || !loaded.Standardizer.IsFitted() {
		t.Error("standardizer should be restored as fitted")
	}
}
