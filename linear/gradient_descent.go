// Package linear はバッチ勾配降下法で学習する最小二乗線形回帰を提供する。
package linear

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/core/parallel"
	"github.com/YuminosukeSato/gdlinear/metrics"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"github.com/YuminosukeSato/gdlinear/pkg/log"
)

const (
	modelName = "GradientDescentRegressor"

	// DefaultIterations は Fit 1回あたりの反復回数のデフォルト値
	DefaultIterations = 1000

	// DefaultLearningRate は学習率のデフォルト値
	DefaultLearningRate = 0.01

	// 並列処理の閾値（この値以下の行数では逐次処理を使用）
	parallelThreshold = 1000
)

var (
	_ model.Regressor       = (*GradientDescentRegressor)(nil)
	_ model.ParameterGetter = (*GradientDescentRegressor)(nil)
	_ model.ParameterSetter = (*GradientDescentRegressor)(nil)
	_ model.WeightExporter  = (*GradientDescentRegressor)(nil)
	_ model.Persistable     = (*GradientDescentRegressor)(nil)
)

// GradientDescentRegressor は平均二乗誤差をバッチ勾配降下法で最小化する線形回帰モデル
//
// 構築時に特徴量行列の先頭へ 1.0 のバイアス列を追加した計画行列を保持し、
// パラメータ θ（θ[0] が切片、θ[1:] が各特徴量の係数）をゼロで初期化する。
// Fit は θ を0に戻さず、現在の θ から Iterations 回だけ更新を続ける。
//
// Fit は排他ロック、Predict とアクセサは共有ロックを取るため、Predict 同士は並行に
// 実行できるが学習中の Fit とは交差しない。Iterations と LearningRate の直接代入は同期されない。
type GradientDescentRegressor struct {
	// Iterations は Fit 1回あたりの反復回数。0以下なら Fit は何もしない。
	Iterations int

	// LearningRate は勾配に掛けるステップ幅
	LearningRate float64

	mu sync.RWMutex

	x     *mat.Dense    // n_samples × (n_features+1)、列0はバイアス
	y     *mat.VecDense // n_samples
	theta *mat.VecDense // n_features+1

	nSamples  int
	nFeatures int

	checkDivergence bool
	recordLoss      bool
	lossHistory     []float64

	state  *model.StateManager
	logger log.Logger
}

// NewGradientDescentRegressor は訓練データを保持する回帰モデルを作成する
//
// パラメータ:
//   - X: 特徴量行列 (n_samples × n_features)
//   - y: 目的変数 (n_samples)
//   - opts: ハイパーパラメータなどのオプション
//
// 戻り値:
//   - *GradientDescentRegressor: θ がゼロの未学習モデル
//   - error: 空のデータ、行数の不一致、NaN/Inf を含む入力、不正なオプションの場合のエラー
//
// 使用例:
//
//	reg, err := linear.NewGradientDescentRegressor(X, y, linear.WithLearningRate(0.05))
//	if err != nil {
//	    return err
//	}
//	err = reg.Fit()
func NewGradientDescentRegressor(X mat.Matrix, y mat.Vector, opts ...Option) (*GradientDescentRegressor, error) {
	const op = "NewGradientDescentRegressor"

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if y.Len() != rows {
		return nil, errors.NewDimensionError(op, rows, y.Len(), 0)
	}
	if err := errors.CheckMatrix("input_validation", X, rows, cols, -1); err != nil {
		return nil, err
	}

	yCopy := mat.NewVecDense(rows, nil)
	yCopy.CopyVec(y)
	if err := errors.CheckNumericalStability("input_validation", yCopy.RawVector().Data, -1); err != nil {
		return nil, err
	}

	r := &GradientDescentRegressor{
		Iterations:      DefaultIterations,
		LearningRate:    DefaultLearningRate,
		x:               withBias(X),
		y:               yCopy,
		theta:           mat.NewVecDense(cols+1, nil),
		nSamples:        rows,
		nFeatures:       cols,
		checkDivergence: true,
		state:           model.NewStateManager(cols, rows),
		logger:          log.GetLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := validateHyperparameters(r.Iterations, r.LearningRate); err != nil {
		return nil, err
	}
	r.logger = r.logger.With(log.ModelNameKey, modelName)

	return r, nil
}

// withBias は先頭に 1.0 の列を追加した新しい行列を返す
func withBias(X mat.Matrix) *mat.Dense {
	rows, cols := X.Dims()
	design := mat.NewDense(rows, cols+1, nil)

	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1.0)
			for j := 0; j < cols; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
		}
	})
	return design
}

func validateHyperparameters(iterations int, learningRate float64) error {
	if iterations < 0 {
		return errors.NewValidationError("iterations", "must be non-negative", iterations)
	}
	if math.IsNaN(learningRate) || math.IsInf(learningRate, 0) || learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be a finite positive number", learningRate)
	}
	return nil
}

// Fit は Iterations 回のバッチ勾配降下を実行する
func (r *GradientDescentRegressor) Fit() error {
	return r.FitContext(context.Background())
}

// FitContext は各反復の前に ctx を確認しながら Fit を実行する
//
// 各反復で predictions = X·θ、errors = predictions − y、
// step = (Xᵀ·errors)·LearningRate / n_samples を計算し θ ← θ − step とする。
// キャンセル時は最後に完了した反復の θ を保持したままエラーを返す。
// 発散検出が有効な場合、非有限値になる更新は適用せず ErrDiverged でマークしたエラーを返す。
func (r *GradientDescentRegressor) FitContext(ctx context.Context) (err error) {
	defer errors.Recover(&err, "GradientDescentRegressor.Fit")

	r.mu.Lock()
	defer r.mu.Unlock()

	iterations := r.Iterations
	lr := r.LearningRate
	n := float64(r.nSamples)

	logger := r.logger.With(log.OperationKey, log.OperationFit)
	logger.Debug("fit started",
		log.SamplesKey, r.nSamples,
		log.FeaturesKey, r.nFeatures,
		log.IterationsKey, iterations,
		log.LearningRateKey, lr,
	)
	start := time.Now()

	residuals := mat.NewVecDense(r.nSamples, nil)
	step := mat.NewVecDense(r.theta.Len(), nil)
	next := mat.NewVecDense(r.theta.Len(), nil)

	for i := 0; i < iterations; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.state.AddIterations(i)
			logger.Warn("fit canceled",
				log.IterationKey, i,
				log.ErrorCodeKey, log.ErrorCanceled,
			)
			return errors.Wrapf(ctxErr, "gradient descent canceled after %d iterations", i)
		}

		residuals.MulVec(r.x, r.theta)
		residuals.SubVec(residuals, r.y)
		loss := mat.Dot(residuals, residuals) / n

		step.MulVec(r.x.T(), residuals)
		d := step.RawVector().Data
		for j := range d {
			d[j] = d[j] * lr / n
		}
		next.SubVec(r.theta, step)

		if r.checkDivergence {
			if instErr := errors.CheckNumericalStability("gradient_descent", next.RawVector().Data, i); instErr != nil {
				r.state.AddIterations(i)
				divErr := errors.Mark(
					errors.Wrapf(instErr, "gradient descent diverged at iteration %d (learning_rate=%g)", i, lr),
					errors.ErrDiverged,
				)
				logger.Error("fit diverged", divErr,
					log.IterationKey, i,
					log.LearningRateKey, lr,
					log.ErrorCodeKey, log.ErrorDiverged,
				)
				return divErr
			}
		}

		if r.recordLoss {
			r.lossHistory = append(r.lossHistory, loss)
		}
		r.theta, next = next, r.theta
	}

	r.state.MarkFitted(iterations)

	if !errors.IsFinite(r.theta.RawVector().Data) {
		errors.Warn(errors.NewDivergenceWarning(modelName, iterations, lr))
	}

	logger.Info("fit completed",
		log.IterationKey, max(iterations, 0),
		log.IterationsTotalKey, r.state.Iterations(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	if logger.Enabled(ctx, log.LevelDebug) {
		if loss, lossErr := r.lossLocked(); lossErr == nil {
			logger.Debug("training loss", log.LossKey, loss)
		}
	}
	return nil
}

// Predict は X に対する予測値 [1, X]·θ を返す
//
// 学習前でも呼び出せる（その場合はすべて 0 を返す）。
func (r *GradientDescentRegressor) Predict(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer errors.Recover(&err, "GradientDescentRegressor.Predict")

	rows, cols := X.Dims()
	if cols != r.nFeatures {
		return nil, errors.NewDimensionError("GradientDescentRegressor.Predict", r.nFeatures, cols, 1)
	}
	if rows == 0 {
		return nil, errors.NewValueError("GradientDescentRegressor.Predict", "X has no rows")
	}

	design := withBias(X)

	r.mu.RLock()
	defer r.mu.RUnlock()

	predictions := mat.NewVecDense(rows, nil)
	predictions.MulVec(design, r.theta)
	return predictions, nil
}

// Score は決定係数 R² を返す
func (r *GradientDescentRegressor) Score(X mat.Matrix, y mat.Vector) (float64, error) {
	predictions, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	score, err := metrics.R2Score(y, predictions)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("score computed",
		log.OperationKey, log.OperationScore,
		log.R2ScoreKey, score,
	)
	return score, nil
}

// Loss は現在の θ における訓練データの平均二乗誤差を返す
func (r *GradientDescentRegressor) Loss() (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lossLocked()
}

func (r *GradientDescentRegressor) lossLocked() (float64, error) {
	predictions := mat.NewVecDense(r.nSamples, nil)
	predictions.MulVec(r.x, r.theta)
	return metrics.MSE(r.y, predictions)
}

// Theta はパラメータ θ のコピーを返す。Theta()[0] が切片。
func (r *GradientDescentRegressor) Theta() []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mat.Col(nil, 0, r.theta)
}

// Intercept は切片 θ[0] を返す
func (r *GradientDescentRegressor) Intercept() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.theta.AtVec(0)
}

// Coef は特徴量の係数 θ[1:] のコピーを返す
func (r *GradientDescentRegressor) Coef() []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.coefLocked()
}

func (r *GradientDescentRegressor) coefLocked() []float64 {
	coef := make([]float64, r.nFeatures)
	for j := range coef {
		coef[j] = r.theta.AtVec(j + 1)
	}
	return coef
}

// NFeatures は構築時の特徴量数（バイアス列を含まない）を返す
func (r *GradientDescentRegressor) NFeatures() int {
	return r.nFeatures
}

// DesignMatrix はバイアス列付きの計画行列のコピーを返す
func (r *GradientDescentRegressor) DesignMatrix() *mat.Dense {
	return mat.DenseCopyOf(r.x)
}

// LossHistory は記録された損失のコピーを返す。WithLossHistory(true) でのみ記録される。
func (r *GradientDescentRegressor) LossHistory() []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]float64(nil), r.lossHistory...)
}

// IsFitted は Fit が1回以上完了したか、重みがインポートされたかを返す
func (r *GradientDescentRegressor) IsFitted() bool {
	return r.state.IsFitted()
}

// NIterations はこれまでに実行された反復回数の合計を返す
func (r *GradientDescentRegressor) NIterations() int {
	return r.state.Iterations()
}

// Reset は θ をゼロに戻し、損失履歴と学習状態を消去する
func (r *GradientDescentRegressor) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theta.Zero()
	r.lossHistory = nil
	r.state.Reset()
}

// Clone は同じ訓練データとハイパーパラメータを持つ未学習のモデルを返す
func (r *GradientDescentRegressor) Clone() *GradientDescentRegressor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &GradientDescentRegressor{
		Iterations:      r.Iterations,
		LearningRate:    r.LearningRate,
		x:               r.x,
		y:               r.y,
		theta:           mat.NewVecDense(r.theta.Len(), nil),
		nSamples:        r.nSamples,
		nFeatures:       r.nFeatures,
		checkDivergence: r.checkDivergence,
		recordLoss:      r.recordLoss,
		state:           model.NewStateManager(r.nFeatures, r.nSamples),
		logger:          r.logger,
	}
}

// GetParams はハイパーパラメータを返す
func (r *GradientDescentRegressor) GetParams() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.paramsLocked()
}

func (r *GradientDescentRegressor) paramsLocked() map[string]interface{} {
	return map[string]interface{}{
		"iterations":       r.Iterations,
		"learning_rate":    r.LearningRate,
		"check_divergence": r.checkDivergence,
		"record_loss":      r.recordLoss,
	}
}

// SetParams は検証済みのハイパーパラメータを設定する
//
// iterations は0以上の整数、learning_rate は有限の正の数でなければならない。
// 1つでも不正な値があればどのフィールドも変更しない。
func (r *GradientDescentRegressor) SetParams(params map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	iterations, lr := r.Iterations, r.LearningRate
	checkDivergence, recordLoss := r.checkDivergence, r.recordLoss

	for key, value := range params {
		switch key {
		case "iterations":
			v, ok := toInt(value)
			if !ok {
				return errors.NewValidationError(key, "must be an integer", value)
			}
			iterations = v
		case "learning_rate":
			v, ok := toFloat(value)
			if !ok {
				return errors.NewValidationError(key, "must be a number", value)
			}
			lr = v
		case "check_divergence":
			v, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(key, "must be a bool", value)
			}
			checkDivergence = v
		case "record_loss":
			v, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(key, "must be a bool", value)
			}
			recordLoss = v
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	if err := validateHyperparameters(iterations, lr); err != nil {
		return err
	}

	r.Iterations, r.LearningRate = iterations, lr
	r.checkDivergence, r.recordLoss = checkDivergence, recordLoss
	return nil
}

// JSON から読み込んだ値は float64 になるため整数値の float64 も受け付ける
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// String はモデルの文字列表現を返す
func (r *GradientDescentRegressor) String() string {
	return fmt.Sprintf("GradientDescentRegressor(iterations=%d, learning_rate=%g, n_features=%d, fitted=%t)",
		r.Iterations, r.LearningRate, r.nFeatures, r.IsFitted())
}
