package hog

// Option は Extractor の設定関数
type Option func(*Extractor)

// WithOrientations は方向ビン数を設定する
func WithOrientations(n int) Option {
	return func(e *Extractor) {
		e.orientations = n
	}
}

// WithPixelsPerCell はセルの一辺のピクセル数を設定する
func WithPixelsPerCell(n int) Option {
	return func(e *Extractor) {
		e.pixelsPerCell = n
	}
}

// WithCellsPerBlock はブロックの一辺のセル数を設定する
func WithCellsPerBlock(n int) Option {
	return func(e *Extractor) {
		e.cellsPerBlock = n
	}
}

// WithTransformSqrt は抽出前に平方根を取るかどうかを設定する
func WithTransformSqrt(enabled bool) Option {
	return func(e *Extractor) {
		e.transformSqrt = enabled
	}
}
