package hog

import (
	"github.com/YuminosukeSato/dataprep/core/parallel"
	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// parallelThreshold 以下の行数では逐次処理する
const parallelThreshold = 64

// ExtractAll は X の各行を画像とみなし、特徴量を行列として返す
//
// 行は並列に処理される。エラーが発生した場合は最も小さい行番号のエラーを返す。
func (e *Extractor) ExtractAll(X mat.Matrix) (*mat.Dense, error) {
	rows, cols := X.Dims()
	side, err := Side(cols)
	if err != nil {
		return nil, err
	}
	n, err := e.DescriptorLen(side)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(rows, n, nil)
	err = parallel.ForEach(rows, parallelThreshold, "hog.ExtractAll", func(i int) error {
		desc, err := e.Extract(mat.Row(nil, i, X))
		if err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
		if err := errors.CheckNumericalStability("hog.ExtractAll", desc, i); err != nil {
			return err
		}
		out.SetRow(i, desc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
