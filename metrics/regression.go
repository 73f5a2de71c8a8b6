// Package metrics は回帰の誤差指標を計算する
//
// 学習済みネットワークの出力と目標関数を比較する図の注記に使う。
package metrics

import (
	"math"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SquaredErrors は要素ごとの二乗誤差 (yTrue[i]-yPred[i])² を返す
func SquaredErrors(yTrue, yPred []float64) ([]float64, error) {
	if err := checkLengths("SquaredErrors", len(yTrue), len(yPred)); err != nil {
		return nil, err
	}
	out := make([]float64, len(yTrue))
	floats.SubTo(out, yTrue, yPred)
	floats.Mul(out, out)
	return out, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if err := checkLengths("MSE", n, yPred.Len()); err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var diff mat.VecDense
	diff.SubVec(yTrue, yPred)
	return mat.Dot(&diff, &diff) / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if err := checkLengths("MAE", n, yPred.Len()); err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

func checkLengths(op string, nTrue, nPred int) error {
	if nTrue == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if nPred != nTrue {
		return errors.NewDimensionError(op, nTrue, nPred, 0)
	}
	return nil
}
