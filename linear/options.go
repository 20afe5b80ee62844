package linear

import (
	"github.com/YuminosukeSato/gdlinear/pkg/log"
)

// Option は GradientDescentRegressor を設定する関数
type Option func(*GradientDescentRegressor)

// WithIterations sets the number of gradient descent rounds run by each Fit call.
func WithIterations(n int) Option {
	return func(r *GradientDescentRegressor) {
		r.Iterations = n
	}
}

// WithLearningRate sets the step size applied to each gradient update.
func WithLearningRate(lr float64) Option {
	return func(r *GradientDescentRegressor) {
		r.LearningRate = lr
	}
}

// WithDivergenceCheck enables or disables the per-iteration NaN/Inf check on θ.
// When disabled, non-finite parameters are kept and only a warning is emitted.
func WithDivergenceCheck(enabled bool) Option {
	return func(r *GradientDescentRegressor) {
		r.checkDivergence = enabled
	}
}

// WithLossHistory records the training MSE before every update.
func WithLossHistory(enabled bool) Option {
	return func(r *GradientDescentRegressor) {
		r.recordLoss = enabled
	}
}

// WithLogger sets the logger used by the regressor instead of log.GetLogger().
func WithLogger(l log.Logger) Option {
	return func(r *GradientDescentRegressor) {
		if l != nil {
			r.logger = l
		}
	}
}
