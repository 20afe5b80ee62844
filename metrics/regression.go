// Package metrics は回帰モデルの評価指標を提供する。
package metrics

import (
	"math"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// residuals は入力を検証し、yPred - yTrue を返す
func residuals(op string, yTrue, yPred mat.Vector) (*mat.VecDense, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	diff := mat.NewVecDense(n, nil)
	diff.SubVec(yPred, yTrue)
	return diff, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
//
// MSE = (1/n) * Σ(yPred - yTrue)²
func MSE(yTrue, yPred mat.Vector) (float64, error) {
	diff, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return mat.Dot(diff, diff) / float64(diff.Len()), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred mat.Vector) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred mat.Vector) (float64, error) {
	diff, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return mat.Norm(diff, 1) / float64(diff.Len()), nil
}

// R2Score は決定係数（R²）を計算する
//
// R² = 1 - RSS/TSS。yTrue に分散が無い場合はエラーを返す。
func R2Score(yTrue, yPred mat.Vector) (float64, error) {
	diff, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	n := yTrue.Len()

	mean := mat.Sum(yTrue) / float64(n)
	var tss float64
	for i := 0; i < n; i++ {
		d := yTrue.AtVec(i) - mean
		tss += d * d
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	rss := mat.Dot(diff, diff)
	return 1 - rss/tss, nil
}
