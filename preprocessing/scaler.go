package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/dataprep/core/model"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// StandardScaler は標準化スケーラー
// 各値を (value - mean) / stdev に変換する。stdev は標本標準偏差。
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差（退化した列では1）
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit は訓練データから平均と標本標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	stats, err := ComputeColumnStats(X)
	if err != nil {
		return errors.NewModelError("StandardScaler.Fit", "cannot compute statistics", err)
	}
	return s.FitStats(stats)
}

// FitStats は計算済みの統計量から学習する
//
// 標準偏差が1e-8未満の列（定数列、またはサンプルが1つだけの場合）は
// スケールを1にして DegenerateColumnWarning を発生させる。
func (s *StandardScaler) FitStats(stats *ColumnStats) error {
	c := stats.NFeatures()
	if c == 0 {
		return errors.NewModelError("StandardScaler.FitStats", "empty statistics", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = append([]float64(nil), stats.Mean...)
	s.Scale = make([]float64, c)
	for j := 0; j < c; j++ {
		s.Scale[j] = stats.StdDev[j]
		if math.Abs(s.Scale[j]) < degenerateTol {
			reason := "zero standard deviation"
			if stats.NSamples < 2 {
				reason = "sample standard deviation undefined for a single sample"
			}
			errors.Warn(errors.NewDegenerateColumnWarning("StandardScaler", j, reason))
			s.Scale[j] = 1.0
		}
	}

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計量でデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, X)

	if err := errors.CheckMatrix("StandardScaler.Transform", result, r, c); err != nil {
		return nil, err
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}, X)
	return result, nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return "StandardScaler()"
	}
	return fmt.Sprintf("StandardScaler(n_features=%d)", s.NFeatures)
}

// MinMaxScaler はMin-Maxスケーラー（正規化）
// データを指定した範囲（デフォルト[0,1]）にスケーリングする
type MinMaxScaler struct {
	model.BaseEstimator

	// DataMin は学習データの最小値
	DataMin []float64

	// DataMax は学習データの最大値
	DataMax []float64

	// Scale は各特徴量のスケール (max - min)、退化した列では1
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler([2]float64{0.0, 1.0})
//	XScaled, err := scaler.FitTransform(X)
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault はデフォルト設定([0,1]範囲)でMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit は訓練データから最小値・最大値を計算する
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	stats, err := ComputeColumnStats(X)
	if err != nil {
		return errors.NewModelError("MinMaxScaler.Fit", "cannot compute statistics", err)
	}
	return m.FitStats(stats)
}

// FitStats は計算済みの統計量から学習する
//
// 範囲が1e-8未満の定数列はスケールを1にして DegenerateColumnWarning を発生させる。
// 変換後の値は FeatureRange[0] になる。
func (m *MinMaxScaler) FitStats(stats *ColumnStats) error {
	if m.FeatureRange[1] <= m.FeatureRange[0] {
		return errors.NewValidationError("feature_range", "max must be greater than min", m.FeatureRange)
	}
	c := stats.NFeatures()
	if c == 0 {
		return errors.NewModelError("MinMaxScaler.FitStats", "empty statistics", errors.ErrEmptyData)
	}

	m.NFeatures = c
	m.DataMin = append([]float64(nil), stats.Min...)
	m.DataMax = append([]float64(nil), stats.Max...)
	m.Scale = make([]float64, c)
	for j := 0; j < c; j++ {
		m.Scale[j] = stats.Range(j)
		if math.Abs(m.Scale[j]) < degenerateTol {
			errors.Warn(errors.NewDegenerateColumnWarning("MinMaxScaler", j, "constant column"))
			m.Scale[j] = 1.0
		}
	}

	m.SetFitted()
	return nil
}

// Transform は学習済みの最小値・最大値でデータをスケーリングする
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", m.NFeatures, c, 1)
	}

	// X_scaled = (X - X.min) / (X.max - X.min) * (max - min) + min
	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v-m.DataMin[j])/m.Scale[j]*featureRange + m.FeatureRange[0]
	}, X)

	if err := errors.CheckMatrix("MinMaxScaler.Transform", result, r, c); err != nil {
		return nil, err
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.InverseTransform", m.NFeatures, c, 1)
	}

	featureRange := m.FeatureRange[1] - m.FeatureRange[0]
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v-m.FeatureRange[0])/featureRange*m.Scale[j] + m.DataMin[j]
	}, X)
	return result, nil
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], m.NFeatures)
}
