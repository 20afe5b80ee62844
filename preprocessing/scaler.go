// Package preprocessing は勾配降下法の前処理として特徴量のスケーリングを提供する。
//
// 特徴量のスケールが揃っていないと、共通の学習率では一部の重みが発散し、
// 別の重みはほとんど更新されない。学習前に StandardScaler か MinMaxScaler を適用する。
package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// 標準偏差がこれ未満の特徴量はスケール 1 として扱う
const minScale = 1e-8

// StandardScaler はデータを平均0、標準偏差1に変換する
type StandardScaler struct {
	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差（母標準偏差）
	Scale []float64

	// WithMean は平均を引くかどうか
	WithMean bool

	// WithStd は標準偏差で割るかどうか
	WithStd bool

	fitted bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{WithMean: withMean, WithStd: withStd}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから各列の平均と母標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)

		if s.WithMean {
			s.Mean[j] = mean
		}
		s.Scale[j] = 1
		if s.WithStd && std >= minScale {
			s.Scale[j] = std
		}
	}

	s.fitted = true
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	return s.apply("Transform", X, func(j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	})
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	return s.apply("InverseTransform", X, func(j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	})
}

func (s *StandardScaler) apply(method string, X mat.Matrix, fn func(j int, v float64) float64) (*mat.Dense, error) {
	if !s.fitted {
		return nil, errors.NewNotFittedError("StandardScaler", method)
	}
	return applyColumnwise("StandardScaler."+method, X, len(s.Mean), fn)
}

// IsFitted はスケーラーが学習済みかどうかを返す
func (s *StandardScaler) IsFitted() bool {
	return s.fitted
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.fitted {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)", s.WithMean, s.WithStd, len(s.Mean))
}

// MinMaxScaler は各特徴量を FeatureRange の範囲に線形変換する
type MinMaxScaler struct {
	// DataMin, DataMax は学習データの列ごとの最小値・最大値
	DataMin []float64
	DataMax []float64

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64

	fitted bool
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{FeatureRange: featureRange}
}

// Fit は各列の最小値と最大値を記録する
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if m.FeatureRange[0] >= m.FeatureRange[1] {
		return errors.NewValidationError("feature_range", "min must be smaller than max", m.FeatureRange)
	}

	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		m.DataMin[j], m.DataMax[j] = minMax(col)
	}

	m.fitted = true
	return nil
}

// Transform は学習時の範囲を FeatureRange に写す。定数列は FeatureRange[0] になる。
func (m *MinMaxScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if !m.fitted {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}
	lo, hi := m.FeatureRange[0], m.FeatureRange[1]
	return applyColumnwise("MinMaxScaler.Transform", X, len(m.DataMin), func(j int, v float64) float64 {
		span := m.DataMax[j] - m.DataMin[j]
		if span < minScale {
			return lo
		}
		return lo + (v-m.DataMin[j])/span*(hi-lo)
	})
}

// FitTransform は学習と変換を同時に実行する
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングを元に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if !m.fitted {
		return nil, errors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}
	lo, hi := m.FeatureRange[0], m.FeatureRange[1]
	return applyColumnwise("MinMaxScaler.InverseTransform", X, len(m.DataMin), func(j int, v float64) float64 {
		span := m.DataMax[j] - m.DataMin[j]
		return m.DataMin[j] + (v-lo)/(hi-lo)*span
	})
}

// IsFitted はスケーラーが学習済みかどうかを返す
func (m *MinMaxScaler) IsFitted() bool {
	return m.fitted
}

func applyColumnwise(op string, X mat.Matrix, nFeatures int, fn func(j int, v float64) float64) (*mat.Dense, error) {
	r, c := X.Dims()
	if c != nFeatures {
		return nil, errors.NewDimensionError(op, nFeatures, c, 1)
	}
	if r == 0 {
		return nil, errors.NewValueError(op, "empty data")
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return fn(j, v)
	}, X)
	return result, nil
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
