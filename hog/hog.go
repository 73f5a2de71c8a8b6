// Package hog は正方形のグレースケール画像から HOG (Histogram of Oriented
// Gradients) 特徴量を抽出する
//
// 画像は行優先で平坦化された1行として渡される。各行の長さは平方数でなければならない。
package hog

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// blockEps はブロック正規化のゼロ除算を防ぐ項
	blockEps = 1e-5
	// hysClip は L2-Hys 正規化のクリップ値
	hysClip = 0.2
)

// Extractor は HOG 特徴量の抽出器
//
// 設定は NewExtractor のオプションで与え、以後変更しない。
// 複数のゴルーチンから同時に使用できる。
type Extractor struct {
	orientations  int
	pixelsPerCell int
	cellsPerBlock int
	transformSqrt bool
}

// NewExtractor は新しい Extractor を作成する
//
// デフォルト: 方向ビン 9、セルあたり 7x7 ピクセル、ブロックあたり 2x2 セル、
// 平方根によるコントラスト正規化あり
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		orientations:  9,
		pixelsPerCell: 7,
		cellsPerBlock: 2,
		transformSqrt: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Orientations は方向ビン数を返す
func (e *Extractor) Orientations() int { return e.orientations }

func (e *Extractor) validate() error {
	if e.orientations < 1 {
		return errors.NewValidationError("orientations", "must be positive", e.orientations)
	}
	if e.pixelsPerCell < 1 {
		return errors.NewValidationError("pixels_per_cell", "must be positive", e.pixelsPerCell)
	}
	if e.cellsPerBlock < 1 {
		return errors.NewValidationError("cells_per_block", "must be positive", e.cellsPerBlock)
	}
	return nil
}

// DescriptorLen は一辺 side ピクセルの画像に対する特徴量の長さを返す
func (e *Extractor) DescriptorLen(side int) (int, error) {
	if err := e.validate(); err != nil {
		return 0, err
	}
	nBlocks := side/e.pixelsPerCell - e.cellsPerBlock + 1
	if nBlocks < 1 {
		return 0, errors.NewValueError("hog.DescriptorLen",
			fmt.Sprintf("image side %d too small for %d cells of %d pixels", side, e.cellsPerBlock, e.pixelsPerCell))
	}
	return nBlocks * nBlocks * e.cellsPerBlock * e.cellsPerBlock * e.orientations, nil
}

// Side は長さ n の行を正方形画像とみなしたときの一辺を返す
func Side(n int) (int, error) {
	side := int(math.Round(math.Sqrt(float64(n))))
	if n == 0 || side*side != n {
		return 0, errors.NewDimensionError("hog.Side", side*side, n, 1)
	}
	return side, nil
}

// Extract は1枚の画像から特徴量を抽出する
//
// 処理の流れ:
//  1. 正方形に整形し、必要なら各ピクセルの平方根を取る
//  2. 中心差分で勾配を計算する（端の行・列は0）
//  3. セルごとに符号なし方向 [0,180) のヒストグラムを勾配の大きさで集計する
//  4. 重なり合うブロックごとに L2-Hys で正規化し連結する
func (e *Extractor) Extract(row []float64) ([]float64, error) {
	side, err := Side(len(row))
	if err != nil {
		return nil, err
	}
	n, err := e.DescriptorLen(side)
	if err != nil {
		return nil, err
	}

	img := mat.NewDense(side, side, nil)
	for i := 0; i < side; i++ {
		img.SetRow(i, row[i*side:(i+1)*side])
	}
	if e.transformSqrt {
		if floats.Min(row) < 0 {
			return nil, errors.NewValueError("hog.Extract", "negative pixel values are not allowed with square root normalization")
		}
		img.Apply(func(_, _ int, v float64) float64 { return math.Sqrt(v) }, img)
	}

	hist := e.cellHistograms(img, side)

	out := make([]float64, 0, n)
	nCells := side / e.pixelsPerCell
	nBlocks := nCells - e.cellsPerBlock + 1
	block := make([]float64, e.cellsPerBlock*e.cellsPerBlock*e.orientations)
	for br := 0; br < nBlocks; br++ {
		for bc := 0; bc < nBlocks; bc++ {
			block = block[:0]
			for cr := br; cr < br+e.cellsPerBlock; cr++ {
				for cc := bc; cc < bc+e.cellsPerBlock; cc++ {
					block = append(block, hist[cr][cc]...)
				}
			}
			normalizeL2Hys(block)
			out = append(out, block...)
		}
	}
	return out, nil
}

// cellHistograms はセルごとの方向ヒストグラムを返す。値はセル面積で割った平均
func (e *Extractor) cellHistograms(img *mat.Dense, side int) [][][]float64 {
	nCells := side / e.pixelsPerCell
	binWidth := 180 / float64(e.orientations)
	area := float64(e.pixelsPerCell * e.pixelsPerCell)

	hist := make([][][]float64, nCells)
	for cr := range hist {
		hist[cr] = make([][]float64, nCells)
		for cc := range hist[cr] {
			hist[cr][cc] = make([]float64, e.orientations)
		}
	}

	limit := nCells * e.pixelsPerCell
	for r := 0; r < limit; r++ {
		for c := 0; c < limit; c++ {
			var gRow, gCol float64
			if r > 0 && r < side-1 {
				gRow = img.At(r+1, c) - img.At(r-1, c)
			}
			if c > 0 && c < side-1 {
				gCol = img.At(r, c+1) - img.At(r, c-1)
			}
			mag := math.Hypot(gRow, gCol)
			if mag == 0 {
				continue
			}
			angle := math.Mod(math.Atan2(gRow, gCol)*180/math.Pi, 180)
			if angle < 0 {
				angle += 180
			}
			bin := int(angle / binWidth)
			if bin >= e.orientations {
				bin = e.orientations - 1
			}
			hist[r/e.pixelsPerCell][c/e.pixelsPerCell][bin] += mag / area
		}
	}
	return hist
}

// normalizeL2Hys は L2 正規化後に hysClip でクリップし、再度 L2 正規化する
func normalizeL2Hys(v []float64) {
	floats.Scale(1/math.Sqrt(floats.Dot(v, v)+blockEps*blockEps), v)
	for i := range v {
		if v[i] > hysClip {
			v[i] = hysClip
		}
	}
	floats.Scale(1/math.Sqrt(floats.Dot(v, v)+blockEps*blockEps), v)
}
