package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
)

// SaveModel は学習済みの変換器をgob形式でファイルに保存する
//
// パラメータ:
//   - model: 保存する値（BaseEstimatorを埋め込んだ構造体など）
//   - filename: 保存先のファイルパス
//
// 使用例:
//
//	bundle := preprocessing.FittedTransforms{Encoder: enc, Normalizer: mm}
//	err := model.SaveModel(&bundle, "iris.stats.gob")
func SaveModel(model interface{}, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", filename)
		}
	}()

	return SaveModelToWriter(model, file)
}

// LoadModel はファイルからgob形式の変換器を読み込む
//
// 使用例:
//
//	var bundle preprocessing.FittedTransforms
//	err := model.LoadModel(&bundle, "iris.stats.gob")
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}

// SaveModelToWriter はio.Writerにgob形式で保存する
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader はio.Readerからgob形式で読み込む
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
