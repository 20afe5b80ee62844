// Package gdlinear provides ordinary least-squares linear regression fitted
// by full-batch gradient descent, built on gonum.
//
// The regressor keeps its training data. Construction prepends a bias column
// and zeroes the parameters; Fit runs a fixed number of gradient steps on the
// mean squared error and resumes from the current parameters when called again.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gdlinear/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewVecDense(4, []float64{3, 5, 7, 9})
//
//	    reg, err := linear.NewGradientDescentRegressor(X, y,
//	        linear.WithIterations(2000),
//	        linear.WithLearningRate(0.05),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := reg.Fit(); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := reg.Predict(mat.NewDense(2, 1, []float64{5, 6}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predictions:", mat.Formatted(predictions.T()))
//	}
//
// # Packages
//
//   - linear: GradientDescentRegressor, options, weight export and persistence
//   - metrics: Evaluation metrics (MSE, RMSE, MAE, R²)
//   - preprocessing: StandardScaler and MinMaxScaler
//   - core/model: Model interfaces, StateManager and ModelWeights
//   - core/parallel: Parallel processing utilities
//   - pkg/errors: Typed errors, numerical checks and panic recovery
//   - pkg/log: Structured logging (zerolog by default, slog adapter)
//   - pkg/lossplot: Loss curve rendering with gonum/plot
//
// # Errors
//
// Shape problems match errors.ErrShapeMismatch and divergence during Fit
// matches errors.ErrDiverged:
//
//	if err := reg.Fit(); errors.Is(err, errors.ErrDiverged) {
//	    // lower the learning rate or scale the features
//	}
//
// # License
//
// gdlinear is released under the MIT License.
package gdlinear
