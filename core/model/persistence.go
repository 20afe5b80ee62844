package model

import (
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// SaveWeights はModelWeightsをJSONとしてWriterに書き出す
//
// パラメータ:
//   - w: 保存先のWriter
//   - weights: 保存する重み
//
// 戻り値:
//   - error: 検証またはエンコードに失敗した場合のエラー
func SaveWeights(w io.Writer, weights *ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("SaveWeights", "weights cannot be nil")
	}
	if err := weights.Validate(); err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(weights); err != nil {
		return errors.Wrap(err, "encode model weights")
	}
	return nil
}

// LoadWeights はReaderからModelWeightsを読み込み、検証とチェックサム確認を行う
func LoadWeights(r io.Reader) (*ModelWeights, error) {
	var weights ModelWeights
	if err := json.NewDecoder(r).Decode(&weights); err != nil {
		return nil, errors.Wrap(err, "decode model weights")
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := weights.VerifyChecksum(); err != nil {
		return nil, err
	}
	return &weights, nil
}

// SaveWeightsFile はModelWeightsをファイルに保存する
//
// 使用例:
//
//	weights, err := reg.ExportWeights()
//	err = model.SaveWeightsFile("model.json", weights)
func SaveWeightsFile(filename string, weights *ModelWeights) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	if err := SaveWeights(file, weights); err != nil {
		_ = file.Close()
		return err
	}
	return errors.Wrapf(file.Close(), "close %s", filename)
}

// LoadWeightsFile はファイルからModelWeightsを読み込む
func LoadWeightsFile(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	return LoadWeights(file)
}
