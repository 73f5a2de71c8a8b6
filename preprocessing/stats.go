package preprocessing

import (
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// degenerateTol より小さい範囲・標準偏差は0とみなす
const degenerateTol = 1e-8

// ColumnStats は各特徴量列の要約統計量
//
// StdDev は標本標準偏差（n-1で割る）。サンプルが1つしかない場合は定義できないため0とする。
type ColumnStats struct {
	NSamples int
	Min      []float64
	Max      []float64
	Mean     []float64
	StdDev   []float64
}

// ComputeColumnStats は行列全体から列ごとの最小値・最大値・平均・標本標準偏差を計算する
//
// 入力は変更しない純粋関数。
//
// 使用例:
//
//	stats, err := preprocessing.ComputeColumnStats(ds.Features())
//	fmt.Println(stats.Mean, stats.StdDev)
func ComputeColumnStats(X mat.Matrix) (*ColumnStats, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "ComputeColumnStats")
	}

	s := &ColumnStats{
		NSamples: r,
		Min:      make([]float64, c),
		Max:      make([]float64, c),
		Mean:     make([]float64, c),
		StdDev:   make([]float64, c),
	}

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		s.Min[j] = floats.Min(col)
		s.Max[j] = floats.Max(col)
		if r < 2 {
			s.Mean[j] = col[0]
			continue
		}
		s.Mean[j], s.StdDev[j] = stat.MeanStdDev(col, nil)
	}

	if err := errors.CheckNumericalStability("ComputeColumnStats", s.Mean, 0); err != nil {
		return nil, err
	}
	return s, nil
}

// NFeatures は列数を返す
func (s *ColumnStats) NFeatures() int {
	return len(s.Min)
}

// Range は列jの max - min を返す
func (s *ColumnStats) Range(j int) float64 {
	return s.Max[j] - s.Min[j]
}
