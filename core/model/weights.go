package model

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// ChecksumKey は Metadata に格納されるチェックサムのキー
const ChecksumKey = "checksum"

// ErrChecksumMismatch は重みのチェックサムが一致しない場合のエラー
var ErrChecksumMismatch = errors.New("checksum mismatch: weights may be corrupted")

// ModelWeights はモデルの重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（GradientDescentRegressor 等）
	ModelType string `json:"model_type"`

	// Version はモデルのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Coefficients は特徴量の重み係数（バイアスを含まない）
	Coefficients []float64 `json:"coefficients"`

	// Intercept は切片（バイアス重み）
	Intercept float64 `json:"intercept"`

	// Features は特徴量の名前（オプション）
	Features []string `json:"features,omitempty"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata は追加のメタデータ（学習時の統計、チェックサム等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal model weights")
	}
	return data, nil
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "unmarshal model weights")
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}
	if len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients) {
		return errors.NewDimensionError("ModelWeights.Validate", len(mw.Coefficients), len(mw.Features), 1)
	}
	return nil
}

// Checksum は係数と切片から SHA-256 チェックサムを計算する
func (mw *ModelWeights) Checksum() (string, error) {
	params := make([]float64, 0, len(mw.Coefficients)+1)
	params = append(params, mw.Intercept)
	params = append(params, mw.Coefficients...)

	data, err := json.Marshal(params)
	if err != nil {
		// NaN や Inf は JSON で表現できない
		return "", errors.Wrap(err, "compute weight checksum")
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// Seal はチェックサムを計算して Metadata に格納する
func (mw *ModelWeights) Seal() error {
	sum, err := mw.Checksum()
	if err != nil {
		return err
	}
	if mw.Metadata == nil {
		mw.Metadata = make(map[string]interface{})
	}
	mw.Metadata[ChecksumKey] = sum
	return nil
}

// VerifyChecksum は Metadata のチェックサムを検証する。チェックサムが無い場合は何もしない。
func (mw *ModelWeights) VerifyChecksum() error {
	stored, ok := mw.Metadata[ChecksumKey].(string)
	if !ok {
		return nil
	}
	sum, err := mw.Checksum()
	if err != nil {
		return err
	}
	if sum != stored {
		return errors.WithStack(ErrChecksumMismatch)
	}
	return nil
}

// MetadataInt は Metadata から整数値を取り出す。JSON 経由の float64 も受け付ける。
func (mw *ModelWeights) MetadataInt(key string) (int, bool) {
	switch v := mw.Metadata[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    append([]float64(nil), mw.Coefficients...),
		Features:        append([]string(nil), mw.Features...),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}
