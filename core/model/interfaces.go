// Package model はモデル共通のインターフェース、学習状態の管理、重みのシリアライズを提供する。
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter は保持している訓練データで学習するモデルのインターフェース
type Fitter interface {
	// Fit は設定された反復回数だけ学習を進める
	Fit() error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データ（n_samples × n_features）に対する予測ベクトルを返す
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X mat.Matrix, y mat.Vector) (float64, error)
}

// Regressor combines the interfaces of an in-memory regression model.
type Regressor interface {
	Fitter
	Predictor
	Scorer
	IsFitted() bool
}

// ParameterGetter exposes hyperparameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// ParameterSetter allows validated hyperparameter modification.
type ParameterSetter interface {
	SetParams(params map[string]interface{}) error
}

// WeightExporter は重みをエクスポート・インポート可能なモデルのインターフェース
type WeightExporter interface {
	// ExportWeights はモデルの重みをエクスポート
	ExportWeights() (*ModelWeights, error)

	// ImportWeights はモデルの重みをインポート
	ImportWeights(weights *ModelWeights) error

	// GetWeightHash は重みのハッシュ値を計算（検証用）
	GetWeightHash() string
}

// Persistable is the interface for models that can be saved and loaded.
type Persistable interface {
	Save(path string) error
	Load(path string) error
}
