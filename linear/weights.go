package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"github.com/YuminosukeSato/gdlinear/pkg/log"
)

// weightsVersion は ModelWeights のフォーマットバージョン
const weightsVersion = "1.0.0"

// ExportWeights は学習済みの θ とハイパーパラメータを ModelWeights として返す
//
// 戻り値の Metadata には n_features、n_samples、iterations_run と SHA-256 チェックサムが入る。
func (r *GradientDescentRegressor) ExportWeights() (*model.ModelWeights, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "ExportWeights")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := errors.CheckNumericalStability(log.OperationExport, r.theta.RawVector().Data, -1); err != nil {
		return nil, err
	}

	state := r.state.GetState()
	weights := &model.ModelWeights{
		ModelType:       modelName,
		Version:         weightsVersion,
		Coefficients:    r.coefLocked(),
		Intercept:       r.theta.AtVec(0),
		Hyperparameters: r.paramsLocked(),
		Metadata: map[string]interface{}{
			"n_features":     state.NFeatures,
			"n_samples":      state.NSamples,
			"iterations_run": state.Iterations,
		},
		IsFitted: true,
	}
	if err := weights.Seal(); err != nil {
		return nil, err
	}

	r.logger.Debug("weights exported",
		log.OperationKey, log.OperationExport,
		log.FeaturesKey, r.nFeatures,
	)
	return weights, nil
}

// ImportWeights は ModelWeights から θ とハイパーパラメータを復元する
//
// 訓練データは置き換えないため、インポート後の Fit は復元した θ から学習を再開する。
// モデル種別、チェックサム、特徴量数のいずれかが一致しない場合は何も変更しない。
func (r *GradientDescentRegressor) ImportWeights(weights *model.ModelWeights) error {
	const op = "GradientDescentRegressor.ImportWeights"

	if weights == nil {
		return errors.NewValueError(op, "weights cannot be nil")
	}
	if weights.ModelType != modelName {
		return errors.NewValidationError("model_type", "unsupported model type", weights.ModelType)
	}
	if err := weights.Validate(); err != nil {
		return err
	}
	if !weights.IsFitted {
		return errors.NewValidationError("is_fitted", "cannot import unfitted weights", weights.IsFitted)
	}
	if err := weights.VerifyChecksum(); err != nil {
		return err
	}
	if len(weights.Coefficients) != r.nFeatures {
		return errors.NewDimensionError(op, r.nFeatures, len(weights.Coefficients), 1)
	}

	theta := make([]float64, 0, r.nFeatures+1)
	theta = append(theta, weights.Intercept)
	theta = append(theta, weights.Coefficients...)
	if err := errors.CheckNumericalStability(log.OperationImport, theta, -1); err != nil {
		return err
	}

	if len(weights.Hyperparameters) > 0 {
		if err := r.SetParams(weights.Hyperparameters); err != nil {
			return errors.Wrap(err, "import hyperparameters")
		}
	}

	iterations, _ := weights.MetadataInt("iterations_run")

	r.mu.Lock()
	defer r.mu.Unlock()

	r.theta = mat.NewVecDense(len(theta), theta)
	r.lossHistory = nil
	r.state.SetState(model.ModelState{Fitted: true, Iterations: iterations})

	r.logger.Debug("weights imported",
		log.OperationKey, log.OperationImport,
		log.FeaturesKey, r.nFeatures,
		log.IterationsTotalKey, iterations,
	)
	return nil
}

// GetWeightHash は θ の SHA-256 ハッシュを返す。θ が非有限値を含む場合は空文字列。
func (r *GradientDescentRegressor) GetWeightHash() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w := model.ModelWeights{Coefficients: r.coefLocked(), Intercept: r.theta.AtVec(0)}
	sum, err := w.Checksum()
	if err != nil {
		return ""
	}
	return sum
}

// Save は学習済みの重みを JSON ファイルに保存する
func (r *GradientDescentRegressor) Save(path string) error {
	weights, err := r.ExportWeights()
	if err != nil {
		return err
	}
	return model.SaveWeightsFile(path, weights)
}

// Load は Save で保存した JSON ファイルから重みを読み込む
func (r *GradientDescentRegressor) Load(path string) error {
	weights, err := model.LoadWeightsFile(path)
	if err != nil {
		return err
	}
	return r.ImportWeights(weights)
}
