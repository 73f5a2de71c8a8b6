package preprocessing

import (
	"fmt"
	"sort"

	"github.com/YuminosukeSato/dataprep/core/model"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// OneHotEncoder はクラスラベルをone-hotベクトルに変換するエンコーダ
//
// ラベルは辞書順にソートされ、i番目のラベルには i 番目の単位ベクトルが割り当てられる。
// 同じラベル集合からは常に同じ対応が得られる。
type OneHotEncoder struct {
	model.BaseEstimator

	// Categories はソート済みの一意なラベル
	Categories []string

	index map[string]int
}

// NewOneHotEncoder は新しいOneHotEncoderを作成する
//
// 使用例:
//
//	enc := preprocessing.NewOneHotEncoder()
//	Y, err := enc.FitTransform(ds.Labels())
//	fmt.Println(enc.Classes()) // [setosa versicolor virginica]
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit はラベル集合からソート済みのクラス一覧を作成する
func (e *OneHotEncoder) Fit(labels []string) error {
	if len(labels) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty labels", errors.ErrEmptyData)
	}

	seen := make(map[string]struct{}, 8)
	categories := make([]string, 0, 8)
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		categories = append(categories, l)
	}
	sort.Strings(categories)

	e.Categories = categories
	e.index = nil
	e.SetFitted()
	return nil
}

// Classes はソート済みのクラス一覧のコピーを返す
func (e *OneHotEncoder) Classes() []string {
	return append([]string(nil), e.Categories...)
}

// NClasses はクラス数を返す
func (e *OneHotEncoder) NClasses() int {
	return len(e.Categories)
}

// Index はラベルに割り当てられた位置を返す
func (e *OneHotEncoder) Index(label string) (int, bool) {
	if e.index == nil {
		// gobで復元した場合もここで再構築される
		e.index = make(map[string]int, len(e.Categories))
		for i, c := range e.Categories {
			e.index[c] = i
		}
	}
	i, ok := e.index[label]
	return i, ok
}

// Vector はラベルのone-hotベクトルを返す
func (e *OneHotEncoder) Vector(label string) ([]float64, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Vector")
	}
	i, ok := e.Index(label)
	if !ok {
		return nil, errors.NewUnknownLabelError(label, e.NClasses())
	}
	v := make([]float64, e.NClasses())
	v[i] = 1.0
	return v, nil
}

// Transform はラベル列を len(labels) × NClasses のone-hot行列に変換する
func (e *OneHotEncoder) Transform(labels []string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(labels) == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "empty labels", errors.ErrEmptyData)
	}

	Y := mat.NewDense(len(labels), e.NClasses(), nil)
	for r, l := range labels {
		i, ok := e.Index(l)
		if !ok {
			return nil, errors.NewUnknownLabelError(l, e.NClasses())
		}
		Y.Set(r, i, 1.0)
	}
	return Y, nil
}

// FitTransform はFitとTransformを続けて実行する
func (e *OneHotEncoder) FitTransform(labels []string) (*mat.Dense, error) {
	if err := e.Fit(labels); err != nil {
		return nil, err
	}
	return e.Transform(labels)
}

// InverseTransform は各行の最大値の位置からラベルを復元する
func (e *OneHotEncoder) InverseTransform(Y mat.Matrix) ([]string, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "InverseTransform")
	}
	r, c := Y.Dims()
	if c != e.NClasses() {
		return nil, errors.NewDimensionError("OneHotEncoder.InverseTransform", e.NClasses(), c, 1)
	}

	labels := make([]string, r)
	for i := 0; i < r; i++ {
		best := 0
		for j := 1; j < c; j++ {
			if Y.At(i, j) > Y.At(i, best) {
				best = j
			}
		}
		labels[i] = e.Categories[best]
	}
	return labels, nil
}

// String はエンコーダの文字列表現を返す
func (e *OneHotEncoder) String() string {
	if !e.IsFitted() {
		return "OneHotEncoder()"
	}
	return fmt.Sprintf("OneHotEncoder(n_classes=%d)", e.NClasses())
}
