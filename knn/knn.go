// Package knn は k 近傍法でone-hot目標を予測し、誤差を評価する
//
// convert が書き出した訓練用ファイルを記憶し、テスト用ファイルの各行について
// ユークリッド距離が最も近い k 個の訓練例の目標ベクトルを平均して出力とする。
package knn

import (
	"sort"

	"github.com/YuminosukeSato/dataprep/core/model"
	"github.com/YuminosukeSato/dataprep/core/parallel"
	"github.com/YuminosukeSato/dataprep/metrics"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// parallelThreshold 以下の行数では逐次処理する
const parallelThreshold = 32

// Candidate は探索結果の1件。Index は訓練例の行番号
type Candidate struct {
	Index    int
	Distance float64
}

// Classifier は k 近傍法の予測器
//
// Fit は訓練データを複製して保持するだけで、探索は全件の総当たりで行う。
// 学習後は複数のゴルーチンから同時に使用できる。
type Classifier struct {
	model.BaseEstimator

	k       int
	inputs  *mat.Dense
	targets *mat.Dense
}

// NewClassifier は近傍数 k の Classifier を作成する
func NewClassifier(k int) *Classifier {
	return &Classifier{k: k}
}

// K は近傍数を返す
func (c *Classifier) K() int { return c.k }

// Fit は入力 X と目標 Y を記憶する
//
// k は 1 以上かつ訓練例の数以下でなければならない。
func (c *Classifier) Fit(X, Y mat.Matrix) error {
	xr, xc := X.Dims()
	yr, _ := Y.Dims()
	if xr != yr {
		return errors.NewDimensionError("knn.Fit", xr, yr, 0)
	}
	if xr == 0 || xc == 0 {
		return errors.Wrap(errors.ErrEmptyData, "knn.Fit")
	}
	if c.k < 1 || c.k > xr {
		return errors.NewValidationError("k", "must be between 1 and the number of training examples", c.k)
	}

	c.inputs = mat.DenseCopyOf(X)
	c.targets = mat.DenseCopyOf(Y)
	c.SetFitted()
	return nil
}

// Neighbors は x に近い順に k 個の訓練例を返す
//
// 距離が等しい場合は行番号の小さい訓練例を先に並べる。
func (c *Classifier) Neighbors(x []float64) ([]Candidate, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("knn.Classifier", "Neighbors")
	}
	rows, cols := c.inputs.Dims()
	if len(x) != cols {
		return nil, errors.NewDimensionError("knn.Neighbors", cols, len(x), 1)
	}

	all := make([]Candidate, rows)
	for i := range all {
		all[i] = Candidate{Index: i, Distance: floats.Distance(x, c.inputs.RawRowView(i), 2)}
	}
	sort.SliceStable(all, func(a, b int) bool { return all[a].Distance < all[b].Distance })
	return all[:c.k], nil
}

// PredictRow は x の近傍 k 個の目標ベクトルの平均を返す
func (c *Classifier) PredictRow(x []float64) ([]float64, error) {
	neighbors, err := c.Neighbors(x)
	if err != nil {
		return nil, err
	}
	_, nOut := c.targets.Dims()
	out := make([]float64, nOut)
	for _, nb := range neighbors {
		floats.Add(out, c.targets.RawRowView(nb.Index))
	}
	floats.Scale(1/float64(len(neighbors)), out)
	return out, nil
}

// Predict は X の各行を予測する。行は並列に処理される
func (c *Classifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("knn.Classifier", "Predict")
	}
	rows, _ := X.Dims()
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "knn.Predict")
	}
	_, nOut := c.targets.Dims()

	out := mat.NewDense(rows, nOut, nil)
	err := parallel.ForEach(rows, parallelThreshold, "knn.Predict", func(i int) error {
		y, err := c.PredictRow(mat.Row(nil, i, X))
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		out.SetRow(i, y)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Evaluation はテストデータに対する評価結果
type Evaluation struct {
	// Costs は各例の二乗誤差の和 Σ(target-output)²
	Costs []float64
	// Cost は Costs の平均
	Cost float64
	// Accuracy は出力の最大要素が目標の最大要素と一致した例の割合
	Accuracy float64
	// Outputs は予測値
	Outputs *mat.Dense
}

// Evaluate は X を予測し、目標 Y との誤差を計算する
func (c *Classifier) Evaluate(X, Y mat.Matrix) (*Evaluation, error) {
	xr, _ := X.Dims()
	yr, yc := Y.Dims()
	if xr != yr {
		return nil, errors.NewDimensionError("knn.Evaluate", xr, yr, 0)
	}
	if c.IsFitted() {
		if _, nOut := c.targets.Dims(); yc != nOut {
			return nil, errors.NewDimensionError("knn.Evaluate", nOut, yc, 1)
		}
	}

	pred, err := c.Predict(X)
	if err != nil {
		return nil, err
	}
	outputs := pred.(*mat.Dense)

	ev := &Evaluation{Costs: make([]float64, xr), Outputs: outputs}
	correct := 0
	for i := 0; i < xr; i++ {
		target := mat.Row(nil, i, Y)
		output := outputs.RawRowView(i)
		sq, err := metrics.SquaredErrors(target, output)
		if err != nil {
			return nil, err
		}
		ev.Costs[i] = floats.Sum(sq)
		if floats.MaxIdx(target) == floats.MaxIdx(output) {
			correct++
		}
	}
	ev.Cost = floats.Sum(ev.Costs) / float64(xr)
	ev.Accuracy = float64(correct) / float64(xr)
	return ev, nil
}
