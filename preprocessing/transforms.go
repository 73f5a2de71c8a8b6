package preprocessing

import (
	"github.com/YuminosukeSato/dataprep/core/model"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// FittedTransforms は1回の変換で学習したエンコーダとスケーラーをまとめたもの
//
// core/model.SaveModel でgob形式に保存し、後で別のファイル（テストセットなど）に
// 同じ統計量を適用するために使う。Normalizer と Standardizer は未使用ならnil。
type FittedTransforms struct {
	Stats        *ColumnStats
	Encoder      *OneHotEncoder
	Normalizer   *MinMaxScaler
	Standardizer *StandardScaler
}

// FitTransforms は統計量を一度だけ計算し、必要なスケーラーをそこから学習する
func FitTransforms(X mat.Matrix, labels []string, normalize, standardize bool) (*FittedTransforms, error) {
	stats, err := ComputeColumnStats(X)
	if err != nil {
		return nil, err
	}

	ft := &FittedTransforms{Stats: stats, Encoder: NewOneHotEncoder()}
	if err := ft.Encoder.Fit(labels); err != nil {
		return nil, err
	}
	if normalize {
		ft.Normalizer = NewMinMaxScalerDefault()
		if err := ft.Normalizer.FitStats(stats); err != nil {
			return nil, err
		}
	}
	if standardize {
		ft.Standardizer = NewStandardScaler()
		if err := ft.Standardizer.FitStats(stats); err != nil {
			return nil, err
		}
	}
	return ft, nil
}

// Save は core/model.SaveModel でファイルに保存する
func (ft *FittedTransforms) Save(filename string) error {
	return model.SaveModel(ft, filename)
}

// LoadFittedTransforms は Save で保存したファイルを読み込む
func LoadFittedTransforms(filename string) (*FittedTransforms, error) {
	var ft FittedTransforms
	if err := model.LoadModel(&ft, filename); err != nil {
		return nil, err
	}
	if ft.Encoder == nil || !ft.Encoder.IsFitted() {
		return nil, errors.NewNotFittedError("FittedTransforms", "Load")
	}
	return &ft, nil
}
