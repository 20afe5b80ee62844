// Standard attribute keys for gradient descent training and inference logs.
//
// Keys follow a hierarchical "category.name" convention so records from
// different components can be filtered the same way.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "GradientDescentRegressor".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: "fit", "predict", ...
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
)

// Training progress and performance.
const (
	// DurationMsKey records the wall time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records mean squared error on the training data.
	LossKey = "metrics.loss"

	// R2ScoreKey records the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey records an iteration index or count.
	IterationKey = "training.iteration"

	// IterationsTotalKey records iterations accumulated across Fit calls.
	IterationsTotalKey = "training.iterations_total"
)

// Hyperparameters.
const (
	LearningRateKey = "hyperparams.learning_rate"
	IterationsKey   = "hyperparams.iterations"
)

// Error context.
const (
	// ErrorCodeKey is a machine-readable code, see the Error* values below.
	ErrorCodeKey = "error.code"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationExport  = "export_weights"
	OperationImport  = "import_weights"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorDiverged          = "NUMERICAL_DIVERGENCE"
	ErrorCanceled          = "CANCELED"
)
